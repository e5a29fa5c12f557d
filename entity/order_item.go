package entity

import (
	"time"

	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	ProductID uint    `gorm:"index" json:"productId"`
	Product   Product `json:"-"`

	Qty         int       `gorm:"not null" json:"qty"`
	RentalStart time.Time `gorm:"not null" json:"rentalStart"`
	RentalEnd   time.Time `gorm:"not null" json:"rentalEnd"`
	UnitPrice   int64     `gorm:"not null" json:"unitPrice"`
	Total       int64     `gorm:"not null" json:"total"`

	Reservations []Reservation `json:"-"`
}
