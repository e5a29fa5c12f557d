package queue

import "time"

const (
	QueueOrderConfirmed = "order.confirmed"
	QueueRentalDue      = "rental.due"
)

// OrderConfirmedEvent is published after payment finalization commits.
// Delivery is best effort and never rolls anything back.
type OrderConfirmedEvent struct {
	OrderID     uint      `json:"orderId"`
	CheckoutRef string    `json:"checkoutRef"`
	UserID      uint      `json:"userId"`
	Email       string    `json:"email"`
	VendorID    uint      `json:"vendorId"`
	Amount      int64     `json:"amount"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// RentalDueEvent reminds a renter that a rental ends tomorrow.
type RentalDueEvent struct {
	ReservationID uint      `json:"reservationId"`
	OrderID       uint      `json:"orderId"`
	UserID        uint      `json:"userId"`
	Email         string    `json:"email"`
	ProductName   string    `json:"productName"`
	DueDate       time.Time `json:"dueDate"`
}
