package entity

import (
	"gorm.io/gorm"
)

// Pricing is the rate card per duration unit (HOUR/DAY/WEEK).
// Price is in minor units (paise).
type Pricing struct {
	gorm.Model
	ProductID uint   `gorm:"index:idx_pricing_product_unit,unique" json:"productId"`
	Unit      string `gorm:"index:idx_pricing_product_unit,unique;not null" json:"unit"`
	Price     int64  `gorm:"not null" json:"price"`
}
