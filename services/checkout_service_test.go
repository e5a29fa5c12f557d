package services

import (
	"context"
	"errors"
	"testing"

	"backend/entity"
	"backend/pkg/apperr"

	"gorm.io/gorm"
)

func TestCheckoutSplitsOrdersPerVendor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addCartLine(t, f.p1.ID, 2, 5000)  // vendor1, 10000
	f.addCartLine(t, f.p2.ID, 1, 10000) // vendor1, 10000
	f.addCartLine(t, f.p3.ID, 1, 5000)  // vendor2, 5000

	res, err := f.Checkout.Checkout(ctx, f.customer.ID, &CheckoutReq{})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if len(res.Orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(res.Orders))
	}

	o1 := f.orderByVendor(t, res, f.vendor1.ID)
	if o1.Subtotal != 20000 || o1.GSTAmount != 3600 || o1.TotalAmount != 23600 {
		t.Errorf("vendor1 order = %d/%d/%d, want 20000/3600/23600", o1.Subtotal, o1.GSTAmount, o1.TotalAmount)
	}
	o2 := f.orderByVendor(t, res, f.vendor2.ID)
	if o2.Subtotal != 5000 || o2.GSTAmount != 900 || o2.TotalAmount != 5900 {
		t.Errorf("vendor2 order = %d/%d/%d, want 5000/900/5900", o2.Subtotal, o2.GSTAmount, o2.TotalAmount)
	}
	if res.PayableAmount != 29500 {
		t.Errorf("payable = %d, want 29500", res.PayableAmount)
	}
	if res.GatewayOrderRef == "" {
		t.Error("expected a gateway order ref for online payment")
	}

	orders, err := f.OrderRepo.ListByCheckoutRef(res.CheckoutRef)
	if err != nil || len(orders) != 2 {
		t.Fatalf("orders by ref: %v (%d rows)", err, len(orders))
	}
	for _, o := range orders {
		if o.Status != entity.OrderPendingPayment {
			t.Errorf("order %d status = %s, want PENDING_PAYMENT", o.ID, o.Status)
		}
		inv, err := f.InvoiceRepo.GetByOrderID(o.ID)
		if err != nil {
			t.Fatalf("invoice for order %d: %v", o.ID, err)
		}
		if inv.Status != entity.InvoiceDraft {
			t.Errorf("invoice %s status = %s, want DRAFT", inv.InvoiceNumber, inv.Status)
		}
		if inv.TotalAmount != o.Subtotal+GST(o.Subtotal) {
			t.Errorf("invoice total %d not derived from subtotal %d", inv.TotalAmount, o.Subtotal)
		}
	}

	if n := f.count(t, &entity.Reservation{}, "status = ?", entity.ReservationReserved); n != 3 {
		t.Errorf("got %d reservations, want 3", n)
	}
	if got := f.availableQty(t, f.p1.ID); got != 3 {
		t.Errorf("p1 available = %d, want 3", got)
	}
	if got := f.availableQty(t, f.p2.ID); got != 2 {
		t.Errorf("p2 available = %d, want 2", got)
	}
	if got := f.availableQty(t, f.p3.ID); got != 3 {
		t.Errorf("p3 available = %d, want 3", got)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	_, err := f.Checkout.Checkout(context.Background(), f.customer.ID, &CheckoutReq{})
	if !errors.Is(err, apperr.ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
}

func TestCheckoutRollsBackAllVendorsTogether(t *testing.T) {
	f := newFixture(t)

	f.addCartLine(t, f.p1.ID, 2, 5000)
	f.addCartLine(t, f.p3.ID, 1, 5000)

	boom := errors.New("boom")
	calls := 0
	f.Checkout.testHookAfterOrder = func(tx *gorm.DB, o *entity.Order) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	}

	_, err := f.Checkout.Checkout(context.Background(), f.customer.ID, &CheckoutReq{})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want injected failure", err)
	}

	if n := f.count(t, &entity.Order{}, ""); n != 0 {
		t.Errorf("got %d orders after rollback, want 0", n)
	}
	if n := f.count(t, &entity.Invoice{}, ""); n != 0 {
		t.Errorf("got %d invoices after rollback, want 0", n)
	}
	if n := f.count(t, &entity.Reservation{}, ""); n != 0 {
		t.Errorf("got %d reservations after rollback, want 0", n)
	}
	if got := f.availableQty(t, f.p1.ID); got != 5 {
		t.Errorf("p1 available = %d, want 5 (decrement rolled back)", got)
	}
	if n := f.count(t, &entity.CartItem{}, ""); n != 2 {
		t.Errorf("cart lost %d items on a failed checkout", 2-n)
	}
}

func TestCheckoutInsufficientStock(t *testing.T) {
	f := newFixture(t)
	f.addCartLine(t, f.p1.ID, 10, 5000) // pool only has 5
	f.addCartLine(t, f.p3.ID, 1, 5000)

	_, err := f.Checkout.Checkout(context.Background(), f.customer.ID, &CheckoutReq{})
	if !errors.Is(err, apperr.ErrProductUnavailable) {
		t.Fatalf("err = %v, want ErrProductUnavailable", err)
	}
	if n := f.count(t, &entity.Order{}, ""); n != 0 {
		t.Errorf("got %d orders, want 0", n)
	}
	if got := f.availableQty(t, f.p3.ID); got != 4 {
		t.Errorf("p3 available = %d, want 4 untouched", got)
	}
}

func TestCheckoutInactiveProduct(t *testing.T) {
	f := newFixture(t)
	f.addCartLine(t, f.p3.ID, 1, 5000)
	if err := f.db.Model(&entity.Product{}).Where("id = ?", f.p3.ID).Update("is_active", false).Error; err != nil {
		t.Fatal(err)
	}

	_, err := f.Checkout.Checkout(context.Background(), f.customer.ID, &CheckoutReq{})
	if !errors.Is(err, apperr.ErrProductUnavailable) {
		t.Fatalf("err = %v, want ErrProductUnavailable", err)
	}
}

func TestCheckoutWithCoupon(t *testing.T) {
	f := newFixture(t)
	mustCreate(t, f.db, &entity.Coupon{
		Code: "SAVE10", DiscountType: entity.CouponPercentage, DiscountValue: 10, IsActive: true,
	})

	f.addCartLine(t, f.p1.ID, 2, 5000)
	f.addCartLine(t, f.p2.ID, 1, 10000)
	f.addCartLine(t, f.p3.ID, 1, 5000)

	res, err := f.Checkout.Checkout(context.Background(), f.customer.ID, &CheckoutReq{CouponCode: "SAVE10"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	// 10% of 25000, split 20000:5000 across vendors
	o1 := f.orderByVendor(t, res, f.vendor1.ID)
	o2 := f.orderByVendor(t, res, f.vendor2.ID)
	if o1.Discount != 2000 || o2.Discount != 500 {
		t.Errorf("discounts = %d,%d, want 2000,500", o1.Discount, o2.Discount)
	}
	if res.PayableAmount != 29500-2500 {
		t.Errorf("payable = %d, want 27000", res.PayableAmount)
	}
	// invoice totals stay a pure function of the subtotal
	orders, _ := f.OrderRepo.ListByCheckoutRef(res.CheckoutRef)
	for _, o := range orders {
		inv, err := f.InvoiceRepo.GetByOrderID(o.ID)
		if err != nil {
			t.Fatal(err)
		}
		if inv.TotalAmount != o.Subtotal+GST(o.Subtotal) {
			t.Errorf("invoice total %d includes discount", inv.TotalAmount)
		}
	}

	coupon, err := f.CouponRepo.FindByCode("SAVE10")
	if err != nil {
		t.Fatal(err)
	}
	if coupon.CurrentUsageCount != 1 {
		t.Errorf("usage count = %d, want 1", coupon.CurrentUsageCount)
	}
}

func TestCheckoutRejectedCouponLeavesNothingBehind(t *testing.T) {
	f := newFixture(t)
	mustCreate(t, f.db, &entity.Coupon{
		Code: "BIG50", DiscountType: entity.CouponPercentage, DiscountValue: 50,
		IsActive: true, MinOrderAmount: 100000,
	})
	f.addCartLine(t, f.p1.ID, 1, 5000)

	_, err := f.Checkout.Checkout(context.Background(), f.customer.ID, &CheckoutReq{CouponCode: "BIG50"})
	if !errors.Is(err, apperr.ErrCouponBelowMin) {
		t.Fatalf("err = %v, want ErrCouponBelowMin", err)
	}
	if n := f.count(t, &entity.Order{}, ""); n != 0 {
		t.Errorf("got %d orders, want 0", n)
	}
	coupon, _ := f.CouponRepo.FindByCode("BIG50")
	if coupon.CurrentUsageCount != 0 {
		t.Errorf("usage count = %d, want 0", coupon.CurrentUsageCount)
	}
}
