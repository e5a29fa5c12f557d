package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type InvoiceRepository struct{ DB *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository { return &InvoiceRepository{DB: db} }

func (r *InvoiceRepository) CreateInvoice(tx *gorm.DB, inv *entity.Invoice) error {
	return tx.Create(inv).Error
}

func (r *InvoiceRepository) CreatePayment(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *InvoiceRepository) GetByOrderID(orderID uint) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := r.DB.Where("order_id = ?", orderID).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// UpdateStatusGuard mirrors the order transition guard: the invoice
// moves only from the expected status.
func (r *InvoiceRepository) UpdateStatusGuard(tx *gorm.DB, invoiceID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Invoice{}).
		Where("id = ? AND status = ?", invoiceID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *InvoiceRepository) ListPayments(invoiceID uint) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.DB.Where("invoice_id = ?", invoiceID).Order("id").Find(&payments).Error
	return payments, err
}
