package entity

import (
	"gorm.io/gorm"
)

// One review per user per product, enforced by the composite unique
// index; a second attempt surfaces as Conflict.
type Review struct {
	gorm.Model
	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `json:"comment"`

	UserID uint `gorm:"index:idx_review_user_product,unique" json:"userId"`
	User   User `json:"-"`

	ProductID uint    `gorm:"index:idx_review_user_product,unique" json:"productId"`
	Product   Product `json:"-"`
}
