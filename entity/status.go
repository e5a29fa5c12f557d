package entity

// Order lifecycle. Transitions happen only through the guarded
// transition table in services; nothing writes these columns directly.
const (
	OrderPendingPayment = "PENDING_PAYMENT"
	OrderConfirmed      = "CONFIRMED"
	OrderPickedUp       = "PICKED_UP"
	OrderReturned       = "RETURNED"
	OrderCancelled      = "CANCELLED"
)

const (
	InvoiceDraft   = "DRAFT"
	InvoicePaid    = "PAID"
	InvoicePartial = "PARTIAL" // appended payments only, never set by checkout
)

const (
	PaymentSuccess = "SUCCESS"
	PaymentPending = "PENDING"
	PaymentFailed  = "FAILED"
)

const (
	PayModeOnline = "ONLINE"
	PayModeCash   = "CASH"
)

const (
	CartActive = "ACTIVE"
)

const (
	ReservationReserved = "RESERVED"
	ReservationReleased = "RELEASED"
)

const (
	CouponPercentage  = "PERCENTAGE"
	CouponFixedAmount = "FIXED_AMOUNT"
)

// Pricing duration units.
const (
	UnitHour = "HOUR"
	UnitDay  = "DAY"
	UnitWeek = "WEEK"
)

const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)
