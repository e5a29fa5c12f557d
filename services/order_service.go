package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

type OrderService struct {
	DB          *gorm.DB
	Repo        *repository.OrderRepository
	InvoiceRepo *repository.InvoiceRepository
	ProductRepo *repository.ProductRepository
	VendorRepo  *repository.VendorRepository
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	invoiceRepo *repository.InvoiceRepository,
	productRepo *repository.ProductRepository,
	vendorRepo *repository.VendorRepository,
) *OrderService {
	return &OrderService{
		DB:          db,
		Repo:        repo,
		InvoiceRepo: invoiceRepo,
		ProductRepo: productRepo,
		VendorRepo:  vendorRepo,
	}
}

type OrderListOut struct {
	Items []entity.Order `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func (s *OrderService) ListForUser(userID uint, page, limit int) (*OrderListOut, error) {
	items, total, err := s.Repo.ListForUser(userID, page, limit)
	if err != nil {
		return nil, err
	}
	return &OrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

type OrderDetail struct {
	Order    entity.Order       `json:"order"`
	Items    []entity.OrderItem `json:"items"`
	Invoice  *entity.Invoice    `json:"invoice,omitempty"`
	Payments []entity.Payment   `json:"payments,omitempty"`
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "order not found")
		}
		return nil, err
	}
	return s.detail(o)
}

func (s *OrderService) DetailForVendor(vendorUserID, orderID uint) (*OrderDetail, error) {
	vendor, err := s.VendorRepo.FindByUserID(vendorUserID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrForbidden, "not a vendor")
	}
	o, err := s.Repo.GetOrderForVendor(vendor.ID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "order not found")
		}
		return nil, err
	}
	return s.detail(o)
}

func (s *OrderService) detail(o *entity.Order) (*OrderDetail, error) {
	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	out := &OrderDetail{Order: *o, Items: items}

	inv, err := s.InvoiceRepo.GetByOrderID(o.ID)
	if err == nil {
		out.Invoice = inv
		if payments, err := s.InvoiceRepo.ListPayments(inv.ID); err == nil {
			out.Payments = payments
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return out, nil
}

func (s *OrderService) ListForVendor(vendorUserID uint, status string, page, limit int) (*OrderListOut, error) {
	vendor, err := s.VendorRepo.FindByUserID(vendorUserID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrForbidden, "not a vendor")
	}
	items, total, err := s.Repo.ListForVendor(vendor.ID, status, page, limit)
	if err != nil {
		return nil, err
	}
	return &OrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// InvoiceForUser returns the invoice plus payments for one of the
// caller's orders.
func (s *OrderService) InvoiceForUser(userID, orderID uint) (*entity.Invoice, []entity.Payment, error) {
	if _, err := s.Repo.GetOrderForUser(userID, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.Wrap(apperr.ErrNotFound, "order not found")
		}
		return nil, nil, err
	}
	inv, err := s.InvoiceRepo.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.Wrap(apperr.ErrNotFound, "invoice not found")
		}
		return nil, nil, err
	}
	payments, err := s.InvoiceRepo.ListPayments(inv.ID)
	if err != nil {
		return nil, nil, err
	}
	return inv, payments, nil
}
