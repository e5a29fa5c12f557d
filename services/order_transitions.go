package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/apperr"

	"gorm.io/gorm"
)

// The order state machine:
//
//	PENDING_PAYMENT -> CONFIRMED -> PICKED_UP -> RETURNED
//	PENDING_PAYMENT -> CANCELLED
//	CONFIRMED       -> CANCELLED
//
// Every transition is one guarded UPDATE; zero rows affected means the
// order moved underneath the caller and surfaces as Conflict.
// RETURNED and CANCELLED release the reservations and restore the
// inventory pool.

// CustomerCancel cancels the caller's own order while it has not been
// picked up.
func (s *OrderService) CustomerCancel(userID, orderID uint) error {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.ErrNotFound, "order not found")
		}
		return err
	}
	if o.Status != entity.OrderPendingPayment && o.Status != entity.OrderConfirmed {
		return apperr.Wrap(apperr.ErrConflict, "order can no longer be cancelled")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, entity.OrderCancelled)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.Wrap(apperr.ErrConflict, "order changed, try again")
		}
		return s.releaseStock(tx, o.ID)
	})
}

// VendorMarkPickedUp records the handover of the equipment.
func (s *OrderService) VendorMarkPickedUp(vendorUserID, orderID uint) error {
	return s.vendorTransition(vendorUserID, orderID, entity.OrderConfirmed, entity.OrderPickedUp, false)
}

// VendorMarkReturned closes the rental and returns stock to the pool.
func (s *OrderService) VendorMarkReturned(vendorUserID, orderID uint) error {
	return s.vendorTransition(vendorUserID, orderID, entity.OrderPickedUp, entity.OrderReturned, true)
}

func (s *OrderService) vendorTransition(vendorUserID, orderID uint, from, to string, release bool) error {
	vendor, err := s.VendorRepo.FindByUserID(vendorUserID)
	if err != nil {
		return apperr.Wrap(apperr.ErrForbidden, "not a vendor")
	}
	o, err := s.Repo.GetOrderForVendor(vendor.ID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.ErrNotFound, "order not found")
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, from, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.Wrap(apperr.ErrConflict, "invalid transition from current status")
		}
		if release {
			return s.releaseStock(tx, o.ID)
		}
		return nil
	})
}

func (s *OrderService) releaseStock(tx *gorm.DB, orderID uint) error {
	reservations, err := s.Repo.ReleaseReservations(tx, orderID)
	if err != nil {
		return err
	}
	for _, res := range reservations {
		if err := s.ProductRepo.RestoreAvailable(tx, res.ProductID, res.Qty); err != nil {
			return err
		}
	}
	return nil
}
