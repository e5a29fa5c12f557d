package entity

import (
	"time"

	"gorm.io/gorm"
)

// CartItem carries a unit price snapshot taken at add time. Checkout
// copies the snapshot as-is; it is never re-derived from Pricing.
type CartItem struct {
	gorm.Model
	CartID uint `gorm:"index" json:"cartId"`
	Cart   Cart `json:"-"`

	ProductID uint    `gorm:"index" json:"productId"`
	Product   Product `json:"-"`

	Qty         int       `gorm:"not null" json:"qty"`
	RentalStart time.Time `gorm:"not null" json:"rentalStart"`
	RentalEnd   time.Time `gorm:"not null" json:"rentalEnd"`
	UnitPrice   int64     `gorm:"not null" json:"unitPrice"`
	Total       int64     `gorm:"not null" json:"total"`
}
