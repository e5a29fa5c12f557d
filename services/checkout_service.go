package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/pkg/metrics"
	"backend/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// CheckoutService turns the active cart into per-vendor orders:
// partition by vendor, then one transaction creating
// Order/OrderItem/Reservation/Invoice per partition with an atomic
// stock decrement per item and the coupon redemption tied in. Orders
// start in PENDING_PAYMENT with DRAFT invoices; the cart is cleared
// only when payment verification finalizes them.
type CheckoutService struct {
	DB          *gorm.DB
	CartRepo    *repository.CartRepository
	OrderRepo   *repository.OrderRepository
	ProductRepo *repository.ProductRepository
	InvoiceRepo *repository.InvoiceRepository
	Coupons     *CouponService
	Gateway     PaymentGateway
	Locker      *CheckoutLocker
	Redis       *redis.Client
	Metrics     *metrics.ServerMetrics
	Log         zerolog.Logger

	// set by tests to fail the transaction between partitions
	testHookAfterOrder func(tx *gorm.DB, o *entity.Order) error
}

func NewCheckoutService(
	db *gorm.DB,
	cartRepo *repository.CartRepository,
	orderRepo *repository.OrderRepository,
	productRepo *repository.ProductRepository,
	invoiceRepo *repository.InvoiceRepository,
	coupons *CouponService,
	gateway PaymentGateway,
	locker *CheckoutLocker,
	rdb *redis.Client,
	m *metrics.ServerMetrics,
	log zerolog.Logger,
) *CheckoutService {
	return &CheckoutService{
		DB:          db,
		CartRepo:    cartRepo,
		OrderRepo:   orderRepo,
		ProductRepo: productRepo,
		InvoiceRepo: invoiceRepo,
		Coupons:     coupons,
		Gateway:     gateway,
		Locker:      locker,
		Redis:       rdb,
		Metrics:     m,
		Log:         log,
	}
}

type CheckoutReq struct {
	CouponCode  string `json:"couponCode"`
	PaymentMode string `json:"paymentMode" binding:"omitempty,oneof=ONLINE CASH"`

	// from the Idempotency-Key header, set by the controller
	IdempotencyKey string `json:"-"`
}

type CheckoutOrderRes struct {
	OrderID     uint  `json:"orderId"`
	VendorID    uint  `json:"vendorId"`
	Subtotal    int64 `json:"subtotal"`
	GSTAmount   int64 `json:"gstAmount"`
	TotalAmount int64 `json:"totalAmount"`
	Discount    int64 `json:"discount"`
}

type CheckoutRes struct {
	CheckoutRef     string             `json:"checkoutRef"`
	Orders          []CheckoutOrderRes `json:"orders"`
	PayableAmount   int64              `json:"payableAmount"`
	GatewayOrderRef string             `json:"gatewayOrderRef,omitempty"`
}

func (s *CheckoutService) Checkout(ctx context.Context, userID uint, in *CheckoutReq) (*CheckoutRes, error) {
	release, err := s.Locker.Acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	if res, ok := s.replayIdempotent(ctx, userID, in.IdempotencyKey); ok {
		return res, nil
	}

	cart, err := s.CartRepo.GetWithItems(userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		s.countOutcome("empty_cart")
		return nil, apperr.ErrEmptyCart
	}

	resolved, combinedSubtotal, err := s.resolveItems(cart.Items)
	if err != nil {
		s.countOutcome("unavailable")
		return nil, err
	}

	var discount int64
	var couponID uint
	if in.CouponCode != "" {
		quote, err := s.Coupons.Validate(userID, in.CouponCode, combinedSubtotal)
		if err != nil {
			s.countOutcome("coupon_rejected")
			return nil, err
		}
		discount = quote.Discount
		couponID = quote.Coupon.ID
	}

	plan := BuildPlan(resolved, discount)
	checkoutRef := uuid.NewString()

	res := &CheckoutRes{CheckoutRef: checkoutRef}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, part := range plan {
			order, err := s.materializePartition(tx, userID, checkoutRef, part)
			if err != nil {
				return err
			}
			res.Orders = append(res.Orders, CheckoutOrderRes{
				OrderID:     order.ID,
				VendorID:    part.VendorID,
				Subtotal:    part.Subtotal,
				GSTAmount:   part.GSTAmount,
				TotalAmount: part.TotalAmount,
				Discount:    part.Discount,
			})
			if s.testHookAfterOrder != nil {
				if err := s.testHookAfterOrder(tx, order); err != nil {
					return err
				}
			}
		}

		if couponID != 0 {
			if err := s.Coupons.ApplyWithinTx(tx, couponID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.countOutcome("failed")
		res.Orders = nil
		return nil, err
	}

	res.PayableAmount = PayableAmount(plan)
	if in.PaymentMode != entity.PayModeCash {
		gw, err := s.Gateway.CreateOrder(res.PayableAmount, checkoutRef)
		if err != nil {
			// orders stay PENDING_PAYMENT; the client can retry payment
			s.Log.Error().Err(err).Str("checkoutRef", checkoutRef).Msg("gateway order creation failed")
		} else {
			res.GatewayOrderRef = gw.Ref
		}
	}

	s.countOutcome("success")
	if s.Metrics != nil {
		s.Metrics.OrdersPlaced.Add(float64(len(res.Orders)))
	}
	s.Log.Info().
		Uint("userId", userID).
		Str("checkoutRef", checkoutRef).
		Int("orders", len(res.Orders)).
		Int64("payable", res.PayableAmount).
		Msg("checkout created")

	s.storeIdempotent(ctx, userID, in.IdempotencyKey, res)
	return res, nil
}

// resolveItems attaches the owning vendor to every cart line. A line
// whose product no longer exists is a broken precondition and surfaces
// as NotFound; an inactive product or missing stock is
// ProductUnavailable.
func (s *CheckoutService) resolveItems(items []entity.CartItem) ([]ResolvedItem, int64, error) {
	resolved := make([]ResolvedItem, 0, len(items))
	var subtotal int64
	for _, it := range items {
		if it.Product.ID == 0 {
			return nil, 0, apperr.Wrap(apperr.ErrNotFound, fmt.Sprintf("product %d", it.ProductID))
		}
		if !it.Product.IsActive {
			return nil, 0, apperr.Wrap(apperr.ErrProductUnavailable, it.Product.Name)
		}
		resolved = append(resolved, ResolvedItem{Item: it, VendorID: it.Product.VendorID})
		subtotal += it.UnitPrice * int64(it.Qty)
	}
	return resolved, subtotal, nil
}

// materializePartition creates one order with its items, reservations
// and invoice. The conditional inventory decrement is the stock
// re-check at order time: zero rows affected aborts the whole
// transaction.
func (s *CheckoutService) materializePartition(tx *gorm.DB, userID uint, checkoutRef string, part VendorPartition) (*entity.Order, error) {
	order := entity.Order{
		CheckoutRef: checkoutRef,
		Status:      entity.OrderPendingPayment,
		Subtotal:    part.Subtotal,
		Discount:    part.Discount,
		UserID:      userID,
		VendorID:    part.VendorID,
	}
	if err := s.OrderRepo.CreateOrder(tx, &order); err != nil {
		return nil, err
	}

	for _, it := range part.Items {
		affected, err := s.ProductRepo.DecrementAvailable(tx, it.ProductID, it.Qty)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, apperr.Wrap(apperr.ErrProductUnavailable, fmt.Sprintf("product %d", it.ProductID))
		}

		oi := entity.OrderItem{
			OrderID:     order.ID,
			ProductID:   it.ProductID,
			Qty:         it.Qty,
			RentalStart: it.RentalStart,
			RentalEnd:   it.RentalEnd,
			UnitPrice:   it.UnitPrice,
			Total:       it.UnitPrice * int64(it.Qty),
		}
		if err := s.OrderRepo.CreateOrderItem(tx, &oi); err != nil {
			return nil, err
		}

		if err := s.OrderRepo.CreateReservation(tx, &entity.Reservation{
			OrderItemID: oi.ID,
			ProductID:   it.ProductID,
			Qty:         it.Qty,
			StartDate:   it.RentalStart,
			EndDate:     it.RentalEnd,
			Status:      entity.ReservationReserved,
		}); err != nil {
			return nil, err
		}
	}

	if err := s.InvoiceRepo.CreateInvoice(tx, &entity.Invoice{
		InvoiceNumber: newInvoiceNumber(),
		Status:        entity.InvoiceDraft,
		TotalAmount:   part.TotalAmount,
		GSTAmount:     part.GSTAmount,
		OrderID:       order.ID,
	}); err != nil {
		return nil, err
	}

	return &order, nil
}

func newInvoiceNumber() string {
	return fmt.Sprintf("INV-%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.NewString()[:8]))
}

func (s *CheckoutService) countOutcome(outcome string) {
	if s.Metrics != nil {
		s.Metrics.Checkouts.WithLabelValues(outcome).Inc()
	}
}

// ----- idempotency (redis-backed, best effort) -----

func idemKey(userID uint, key string) string {
	return fmt.Sprintf("idem:checkout:%d:%s", userID, key)
}

func (s *CheckoutService) replayIdempotent(ctx context.Context, userID uint, key string) (*CheckoutRes, bool) {
	if key == "" || s.Redis == nil {
		return nil, false
	}
	raw, err := s.Redis.Get(ctx, idemKey(userID, key)).Bytes()
	if err != nil {
		return nil, false
	}
	var res CheckoutRes
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false
	}
	s.Log.Info().Uint("userId", userID).Str("checkoutRef", res.CheckoutRef).Msg("checkout replayed from idempotency key")
	return &res, true
}

func (s *CheckoutService) storeIdempotent(ctx context.Context, userID uint, key string, res *CheckoutRes) {
	if key == "" || s.Redis == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	s.Redis.Set(ctx, idemKey(userID, key), raw, 24*time.Hour)
}
