package repository

import (
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) CreateReservation(tx *gorm.DB, res *entity.Reservation) error {
	return tx.Create(res).Error
}

func (r *OrderRepository) GetOrder(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForVendor(vendorID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("id = ? AND vendor_id = ?", orderID, vendorID).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Order("id").Find(&items).Error
	return items, err
}

func (r *OrderRepository) ListByCheckoutRef(ref string) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Where("checkout_ref = ?", ref).Order("id").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListForUser(userID uint, page, limit int) ([]entity.Order, int64, error) {
	q := r.DB.Model(&entity.Order{}).Where("user_id = ?", userID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []entity.Order
	err := q.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&orders).Error
	return orders, total, err
}

func (r *OrderRepository) ListForVendor(vendorID uint, status string, page, limit int) ([]entity.Order, int64, error) {
	q := r.DB.Model(&entity.Order{}).Where("vendor_id = ?", vendorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []entity.Order
	err := q.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&orders).Error
	return orders, total, err
}

// UpdateStatusGuard transitions only when the order still holds the
// expected status. Zero rows affected = stale state, caller reports
// Conflict.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// ReleaseReservations marks the order's reservations RELEASED and
// returns them so the caller can restore inventory.
func (r *OrderRepository) ReleaseReservations(tx *gorm.DB, orderID uint) ([]entity.Reservation, error) {
	var reservations []entity.Reservation
	err := tx.
		Where("status = ? AND order_item_id IN (SELECT id FROM order_items WHERE order_id = ?)",
			entity.ReservationReserved, orderID).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, nil
	}
	ids := make([]uint, 0, len(reservations))
	for _, res := range reservations {
		ids = append(ids, res.ID)
	}
	err = tx.Model(&entity.Reservation{}).
		Where("id IN ?", ids).
		Update("status", entity.ReservationReleased).Error
	return reservations, err
}

// DueReservation is one reminder row: an active reservation ending on
// the target date, joined to the renter.
type DueReservation struct {
	ReservationID uint      `json:"reservationId"`
	OrderID       uint      `json:"orderId"`
	UserID        uint      `json:"userId"`
	Email         string    `json:"email"`
	ProductName   string    `json:"productName"`
	EndDate       time.Time `json:"endDate"`
}

// ListDueReservations finds reservations on CONFIRMED/PICKED_UP orders
// whose rental ends within [dayStart, dayEnd).
func (r *OrderRepository) ListDueReservations(dayStart, dayEnd time.Time) ([]DueReservation, error) {
	var rows []DueReservation
	err := r.DB.Raw(`
		SELECT res.id AS reservation_id,
		       oi.order_id AS order_id,
		       o.user_id AS user_id,
		       u.email AS email,
		       p.name AS product_name,
		       res.end_date AS end_date
		  FROM reservations res
		  JOIN order_items oi ON oi.id = res.order_item_id
		  JOIN orders o ON o.id = oi.order_id
		  JOIN users u ON u.id = o.user_id
		  JOIN products p ON p.id = res.product_id
		 WHERE res.status = ?
		   AND res.end_date >= ? AND res.end_date < ?
		   AND o.status IN (?, ?)
	`, entity.ReservationReserved, dayStart, dayEnd,
		entity.OrderConfirmed, entity.OrderPickedUp).
		Scan(&rows).Error
	return rows, err
}
