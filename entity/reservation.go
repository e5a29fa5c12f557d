package entity

import (
	"time"

	"gorm.io/gorm"
)

// Reservation is the durable record committing a quantity of a product
// to a date range for one order item. It draws down the inventory pool;
// no calendar-overlap constraint is enforced across reservations.
type Reservation struct {
	gorm.Model
	OrderItemID uint      `gorm:"index" json:"orderItemId"`
	OrderItem   OrderItem `json:"-"`

	ProductID uint      `gorm:"index" json:"productId"`
	Qty       int       `gorm:"not null" json:"qty"`
	StartDate time.Time `gorm:"not null" json:"startDate"`
	EndDate   time.Time `gorm:"index;not null" json:"endDate"`
	Status    string    `gorm:"index;not null;default:RESERVED" json:"status"`
}
