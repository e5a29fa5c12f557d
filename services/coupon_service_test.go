package services

import (
	"errors"
	"testing"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

type couponFixture struct {
	db      *gorm.DB
	svc     *CouponService
	user    entity.User
	someone entity.User
}

func newCouponFixture(t *testing.T) *couponFixture {
	t.Helper()
	db := newTestDB(t)
	f := &couponFixture{
		db:  db,
		svc: NewCouponService(repository.NewCouponRepository(db), repository.NewUserRepository(db)),
	}
	f.user = entity.User{Email: "u@example.com", Role: entity.RoleCustomer}
	f.someone = entity.User{Email: "other@example.com", Role: entity.RoleCustomer}
	mustCreate(t, db, &f.user, &f.someone)
	return f
}

func (f *couponFixture) create(t *testing.T, c entity.Coupon) entity.Coupon {
	t.Helper()
	mustCreate(t, f.db, &c)
	return c
}

func TestValidateUnknownCode(t *testing.T) {
	f := newCouponFixture(t)
	_, err := f.svc.Validate(f.user.ID, "NOPE", 10000)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestValidateInactive(t *testing.T) {
	f := newCouponFixture(t)
	f.create(t, entity.Coupon{Code: "OLD", DiscountType: entity.CouponPercentage, DiscountValue: 10, IsActive: false})
	_, err := f.svc.Validate(f.user.ID, "OLD", 10000)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestValidateUserScoped(t *testing.T) {
	f := newCouponFixture(t)
	f.create(t, entity.Coupon{
		Code: "MINE", DiscountType: entity.CouponFixedAmount, DiscountValue: 500,
		IsActive: true, UserID: &f.someone.ID,
	})

	if _, err := f.svc.Validate(f.user.ID, "MINE", 10000); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("other user err = %v, want ErrForbidden", err)
	}
	if _, err := f.svc.Validate(0, "MINE", 10000); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("anonymous err = %v, want ErrUnauthorized", err)
	}
	if _, err := f.svc.Validate(f.someone.ID, "MINE", 10000); err != nil {
		t.Fatalf("owner err = %v, want nil", err)
	}
}

func TestValidateWelcomeRequiresFirstOrder(t *testing.T) {
	f := newCouponFixture(t)
	f.create(t, entity.Coupon{
		Code: "WELCOME10", DiscountType: entity.CouponPercentage, DiscountValue: 10,
		IsActive: true, IsWelcomeCoupon: true,
	})

	if _, err := f.svc.Validate(f.user.ID, "WELCOME10", 10000); err != nil {
		t.Fatalf("first order err = %v, want nil", err)
	}

	mustCreate(t, f.db, &entity.Order{CheckoutRef: "prev", Status: entity.OrderReturned, UserID: f.user.ID, VendorID: 1})
	if _, err := f.svc.Validate(f.user.ID, "WELCOME10", 10000); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("repeat order err = %v, want ErrConflict", err)
	}
}

func TestValidateWelcomeIgnoresCancelledOrders(t *testing.T) {
	f := newCouponFixture(t)
	f.create(t, entity.Coupon{
		Code: "WELCOME10", DiscountType: entity.CouponPercentage, DiscountValue: 10,
		IsActive: true, IsWelcomeCoupon: true,
	})
	mustCreate(t, f.db, &entity.Order{CheckoutRef: "prev", Status: entity.OrderCancelled, UserID: f.user.ID, VendorID: 1})

	if _, err := f.svc.Validate(f.user.ID, "WELCOME10", 10000); err != nil {
		t.Fatalf("err = %v, cancelled orders should not count", err)
	}
}

func TestValidateExpired(t *testing.T) {
	f := newCouponFixture(t)
	past := time.Now().Add(-time.Hour)
	f.create(t, entity.Coupon{
		Code: "GONE", DiscountType: entity.CouponPercentage, DiscountValue: 10,
		IsActive: true, ExpiresAt: &past,
	})
	_, err := f.svc.Validate(f.user.ID, "GONE", 10000)
	if !errors.Is(err, apperr.ErrCouponExpired) {
		t.Fatalf("err = %v, want ErrCouponExpired", err)
	}
}

func TestValidateUsageCap(t *testing.T) {
	f := newCouponFixture(t)
	f.create(t, entity.Coupon{
		Code: "CAPPED", DiscountType: entity.CouponPercentage, DiscountValue: 10,
		IsActive: true, MaxUsageCount: 3, CurrentUsageCount: 3,
	})
	_, err := f.svc.Validate(f.user.ID, "CAPPED", 10000)
	if !errors.Is(err, apperr.ErrCouponLimitReached) {
		t.Fatalf("err = %v, want ErrCouponLimitReached", err)
	}
}

func TestValidateMinOrderAmount(t *testing.T) {
	f := newCouponFixture(t)
	f.create(t, entity.Coupon{
		Code: "BIGCART", DiscountType: entity.CouponPercentage, DiscountValue: 10,
		IsActive: true, MinOrderAmount: 50000,
	})
	if _, err := f.svc.Validate(f.user.ID, "BIGCART", 49999); !errors.Is(err, apperr.ErrCouponBelowMin) {
		t.Fatalf("err = %v, want ErrCouponBelowMin", err)
	}
	if _, err := f.svc.Validate(f.user.ID, "BIGCART", 50000); err != nil {
		t.Fatalf("at-threshold err = %v, want nil", err)
	}
}

func TestValidateNormalizesCode(t *testing.T) {
	f := newCouponFixture(t)
	f.create(t, entity.Coupon{Code: "SAVE10", DiscountType: entity.CouponPercentage, DiscountValue: 10, IsActive: true})
	quote, err := f.svc.Validate(f.user.ID, "  save10 ", 10000)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if quote.Discount != 1000 {
		t.Errorf("discount = %d, want 1000", quote.Discount)
	}
}

func TestDiscountMath(t *testing.T) {
	pct := &entity.Coupon{DiscountType: entity.CouponPercentage, DiscountValue: 15}
	if got := Discount(pct, 20000); got != 3000 {
		t.Errorf("percentage discount = %d, want 3000", got)
	}
	fixed := &entity.Coupon{DiscountType: entity.CouponFixedAmount, DiscountValue: 5000}
	if got := Discount(fixed, 20000); got != 5000 {
		t.Errorf("fixed discount = %d, want 5000", got)
	}
	if got := Discount(fixed, 3000); got != 3000 {
		t.Errorf("fixed discount = %d, want cap at order amount 3000", got)
	}
}

func TestApplyWithinTxGuardsTheCap(t *testing.T) {
	f := newCouponFixture(t)
	c := f.create(t, entity.Coupon{
		Code: "LAST1", DiscountType: entity.CouponPercentage, DiscountValue: 10,
		IsActive: true, MaxUsageCount: 1,
	})

	err := f.db.Transaction(func(tx *gorm.DB) error {
		return f.svc.ApplyWithinTx(tx, c.ID)
	})
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}

	err = f.db.Transaction(func(tx *gorm.DB) error {
		return f.svc.ApplyWithinTx(tx, c.ID)
	})
	if !errors.Is(err, apperr.ErrCouponLimitReached) {
		t.Fatalf("second apply err = %v, want ErrCouponLimitReached", err)
	}

	got, _ := f.svc.Repo.FindByCode("LAST1")
	if got.CurrentUsageCount != 1 {
		t.Errorf("usage count = %d, want 1", got.CurrentUsageCount)
	}
}
