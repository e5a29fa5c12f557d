package entity

import (
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Category    string `gorm:"index" json:"category"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	VendorID uint   `gorm:"index" json:"vendorId"`
	Vendor   Vendor `json:"-"`

	Inventory  *Inventory         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"inventory,omitempty"`
	Pricings   []Pricing          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"pricings,omitempty"`
	Attributes []ProductAttribute `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"attributes,omitempty"`
	Reviews    []Review           `json:"-"`
}
