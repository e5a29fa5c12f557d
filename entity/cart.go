package entity

import (
	"gorm.io/gorm"
)

// Cart is the user's in-progress selection. The unique index on UserID
// enforces one cart per user; find-or-create can never race into two.
// The row survives checkout (items are deleted, cart is reused).
type Cart struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex" json:"userId"`
	User   User   `json:"-"`
	Status string `gorm:"not null;default:ACTIVE" json:"status"`

	Items []CartItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}
