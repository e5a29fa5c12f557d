package entity

import (
	"gorm.io/gorm"
)

type Vendor struct {
	gorm.Model
	UserID      uint   `gorm:"uniqueIndex" json:"userId"`
	User        User   `json:"-"`
	DisplayName string `gorm:"not null" json:"displayName"`
	Description string `json:"description"`
	GSTIN       string `json:"gstin"`

	Products []Product `json:"-"`
	Orders   []Order   `json:"-"`
}
