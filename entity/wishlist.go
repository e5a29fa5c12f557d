package entity

import (
	"gorm.io/gorm"
)

type Wishlist struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"userId"`
	User   User `json:"-"`

	Items []WishlistItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

type WishlistItem struct {
	gorm.Model
	WishlistID uint `gorm:"index:idx_wishlist_product,unique" json:"wishlistId"`

	ProductID uint    `gorm:"index:idx_wishlist_product,unique" json:"productId"`
	Product   Product `json:"product"`
}
