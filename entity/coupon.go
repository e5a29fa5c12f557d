package entity

import (
	"time"

	"gorm.io/gorm"
)

type Coupon struct {
	gorm.Model
	Code          string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Description   string `json:"description"`
	DiscountType  string `gorm:"not null" json:"discountType"` // PERCENTAGE | FIXED_AMOUNT
	DiscountValue int64  `gorm:"not null" json:"discountValue"`
	IsActive      bool   `gorm:"default:true" json:"isActive"`

	// Optional constraints; zero value means unconstrained.
	MinOrderAmount    int64      `json:"minOrderAmount"`
	MaxUsageCount     int        `json:"maxUsageCount"`
	CurrentUsageCount int        `json:"currentUsageCount"`
	ExpiresAt         *time.Time `json:"expiresAt,omitempty"`

	// UserID scopes the coupon to one user; nil means global.
	UserID *uint `gorm:"index" json:"userId,omitempty"`

	// Welcome coupons only validate for users with zero prior orders.
	IsWelcomeCoupon bool `gorm:"default:false" json:"isWelcomeCoupon"`
}
