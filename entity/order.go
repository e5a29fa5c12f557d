package entity

import (
	"gorm.io/gorm"
)

// Order is vendor-scoped: one checkout fans out into one Order per
// vendor, all sharing the same CheckoutRef.
type Order struct {
	gorm.Model
	CheckoutRef string `gorm:"index;not null" json:"checkoutRef"`
	Status      string `gorm:"index;not null" json:"status"`

	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`

	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	VendorID uint   `gorm:"index" json:"vendorId"`
	Vendor   Vendor `json:"-"`

	// Preload only on detail endpoints
	OrderItems []OrderItem `json:"-"`
	Invoice    *Invoice    `json:"-"`
}
