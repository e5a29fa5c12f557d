package services

import (
	"context"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/queue"
	"backend/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Notifier is the asynchronous notification collaborator. Delivery is
// best effort; a failure never fails or rolls back an order.
type Notifier interface {
	OrderConfirmed(ctx context.Context, ev queue.OrderConfirmedEvent) error
	RentalDue(ctx context.Context, ev queue.RentalDueEvent) error
}

// PaymentService owns the verify-then-finalize step: only a verified
// gateway callback (or an explicit cash-on-pickup choice) moves
// invoices to PAID, creates Payment rows and clears the cart — all in
// one transaction.
type PaymentService struct {
	DB          *gorm.DB
	OrderRepo   *repository.OrderRepository
	InvoiceRepo *repository.InvoiceRepository
	CartRepo    *repository.CartRepository
	UserRepo    *repository.UserRepository
	Gateway     PaymentGateway
	Locker      *CheckoutLocker
	Notifier    Notifier
	Log         zerolog.Logger
}

func NewPaymentService(
	db *gorm.DB,
	orderRepo *repository.OrderRepository,
	invoiceRepo *repository.InvoiceRepository,
	cartRepo *repository.CartRepository,
	userRepo *repository.UserRepository,
	gateway PaymentGateway,
	locker *CheckoutLocker,
	notifier Notifier,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		DB:          db,
		OrderRepo:   orderRepo,
		InvoiceRepo: invoiceRepo,
		CartRepo:    cartRepo,
		UserRepo:    userRepo,
		Gateway:     gateway,
		Locker:      locker,
		Notifier:    notifier,
		Log:         log,
	}
}

type VerifyPaymentReq struct {
	CheckoutRef       string `json:"checkoutRef" binding:"required"`
	GatewayOrderRef   string `json:"gatewayOrderRef" binding:"required"`
	GatewayPaymentRef string `json:"gatewayPaymentRef" binding:"required"`
	Signature         string `json:"signature" binding:"required"`
}

type FinalizeRes struct {
	CheckoutRef string `json:"checkoutRef"`
	OrderIDs    []uint `json:"orderIds"`
	AmountPaid  int64  `json:"amountPaid"`
}

// VerifyAndFinalize checks the gateway signature before anything else;
// a mismatch leaves every invoice DRAFT and the cart untouched.
func (s *PaymentService) VerifyAndFinalize(ctx context.Context, userID uint, in *VerifyPaymentReq) (*FinalizeRes, error) {
	if !s.Gateway.VerifySignature(in.GatewayOrderRef, in.GatewayPaymentRef, in.Signature) {
		s.Log.Warn().Uint("userId", userID).Str("checkoutRef", in.CheckoutRef).Msg("gateway signature mismatch")
		return nil, apperr.ErrPaymentVerification
	}
	return s.finalize(ctx, userID, in.CheckoutRef, entity.PayModeOnline, in.GatewayPaymentRef)
}

// FinalizeCash confirms a cash-on-pickup checkout: orders are
// CONFIRMED and invoiced PAID with a PENDING payment row collected at
// handover.
func (s *PaymentService) FinalizeCash(ctx context.Context, userID uint, checkoutRef string) (*FinalizeRes, error) {
	return s.finalize(ctx, userID, checkoutRef, entity.PayModeCash, "")
}

func (s *PaymentService) finalize(ctx context.Context, userID uint, checkoutRef, mode, gatewayPaymentRef string) (*FinalizeRes, error) {
	release, err := s.Locker.Acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	orders, err := s.OrderRepo.ListByCheckoutRef(checkoutRef)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperr.Wrap(apperr.ErrNotFound, "checkout not found")
	}
	for _, o := range orders {
		if o.UserID != userID {
			return nil, apperr.Wrap(apperr.ErrForbidden, "checkout belongs to another user")
		}
	}

	// replayed webhook/callback: already finalized, report success
	if allConfirmed(orders) {
		return s.buildRes(checkoutRef, orders), nil
	}

	res := &FinalizeRes{CheckoutRef: checkoutRef}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for _, o := range orders {
			affected, err := s.OrderRepo.UpdateStatusGuard(tx, o.ID, entity.OrderPendingPayment, entity.OrderConfirmed)
			if err != nil {
				return err
			}
			if affected == 0 {
				return apperr.Wrap(apperr.ErrConflict, "order is not awaiting payment")
			}

			inv, err := s.InvoiceRepo.GetByOrderID(o.ID)
			if err != nil {
				return err
			}
			affected, err = s.InvoiceRepo.UpdateStatusGuard(tx, inv.ID, entity.InvoiceDraft, entity.InvoicePaid)
			if err != nil {
				return err
			}
			if affected == 0 {
				return apperr.Wrap(apperr.ErrConflict, "invoice already settled")
			}

			payment := entity.Payment{
				Amount:            inv.TotalAmount - o.Discount,
				Mode:              mode,
				Status:            entity.PaymentSuccess,
				InvoiceID:         inv.ID,
				GatewayPaymentRef: gatewayPaymentRef,
			}
			if mode == entity.PayModeCash {
				payment.Status = entity.PaymentPending
			} else {
				payment.PaidAt = &now
			}
			if err := s.InvoiceRepo.CreatePayment(tx, &payment); err != nil {
				return err
			}

			res.OrderIDs = append(res.OrderIDs, o.ID)
			res.AmountPaid += payment.Amount
		}

		// cart reconciler: items go, the cart row stays for reuse
		cart, err := s.CartRepo.GetOrCreate(userID)
		if err != nil {
			return err
		}
		return s.CartRepo.ClearItems(tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info().
		Uint("userId", userID).
		Str("checkoutRef", checkoutRef).
		Str("mode", mode).
		Int64("amount", res.AmountPaid).
		Msg("checkout finalized")

	s.notifyConfirmed(ctx, userID, orders)
	return res, nil
}

func (s *PaymentService) notifyConfirmed(ctx context.Context, userID uint, orders []entity.Order) {
	if s.Notifier == nil {
		return
	}
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		s.Log.Warn().Err(err).Uint("userId", userID).Msg("skip confirmation events, user lookup failed")
		return
	}
	for _, o := range orders {
		ev := queue.OrderConfirmedEvent{
			OrderID:     o.ID,
			CheckoutRef: o.CheckoutRef,
			UserID:      userID,
			Email:       user.Email,
			VendorID:    o.VendorID,
			Amount:      o.Subtotal + GST(o.Subtotal) - o.Discount,
			OccurredAt:  time.Now(),
		}
		if err := s.Notifier.OrderConfirmed(ctx, ev); err != nil {
			s.Log.Warn().Err(err).Uint("orderId", o.ID).Msg("order confirmation event not published")
		}
	}
}

func (s *PaymentService) buildRes(checkoutRef string, orders []entity.Order) *FinalizeRes {
	res := &FinalizeRes{CheckoutRef: checkoutRef}
	for _, o := range orders {
		res.OrderIDs = append(res.OrderIDs, o.ID)
		res.AmountPaid += o.Subtotal + GST(o.Subtotal) - o.Discount
	}
	return res
}

func allConfirmed(orders []entity.Order) bool {
	for _, o := range orders {
		if o.Status == entity.OrderPendingPayment {
			return false
		}
	}
	return true
}
