package entity

import (
	"time"

	"gorm.io/gorm"
)

type Payment struct {
	gorm.Model
	Amount int64      `gorm:"not null" json:"amount"`
	Mode   string     `gorm:"not null" json:"mode"`
	Status string     `gorm:"not null" json:"status"`
	PaidAt *time.Time `json:"paidAt,omitempty"`

	GatewayPaymentRef string `json:"gatewayPaymentRef"`

	InvoiceID uint    `gorm:"index" json:"invoiceId"`
	Invoice   Invoice `json:"-"`
}
