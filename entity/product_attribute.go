package entity

import (
	"gorm.io/gorm"
)

type ProductAttribute struct {
	gorm.Model
	ProductID uint   `gorm:"index" json:"productId"`
	Name      string `gorm:"not null" json:"name"`
	Value     string `json:"value"`
}
