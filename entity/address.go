package entity

import (
	"gorm.io/gorm"
)

type Address struct {
	gorm.Model
	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	Line1     string `gorm:"not null" json:"line1"`
	Line2     string `json:"line2"`
	City      string `gorm:"not null" json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	IsDefault bool   `gorm:"default:false" json:"isDefault"`
}
