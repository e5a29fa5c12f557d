package entity

import (
	"gorm.io/gorm"
)

// Invoice totals are pure functions of the order's undiscounted
// subtotal: GSTAmount = round(subtotal * 18%), TotalAmount = subtotal
// + GSTAmount. Coupon discounts live on the Order and reduce the
// payable, not the invoice.
type Invoice struct {
	gorm.Model
	InvoiceNumber string `gorm:"uniqueIndex;not null" json:"invoiceNumber"`
	Status        string `gorm:"index;not null;default:DRAFT" json:"status"`

	TotalAmount int64 `gorm:"not null" json:"totalAmount"`
	GSTAmount   int64 `gorm:"not null" json:"gstAmount"`

	OrderID uint  `gorm:"uniqueIndex" json:"orderId"`
	Order   Order `json:"-"`

	Payments []Payment `json:"-"`
}
