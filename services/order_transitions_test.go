package services

import (
	"context"
	"errors"
	"testing"

	"backend/entity"
	"backend/pkg/apperr"
)

// confirmedOrders runs a full checkout + cash finalize and returns the
// per-vendor orders in CONFIRMED.
func (f *fixture) confirmedOrders(t *testing.T) []entity.Order {
	t.Helper()
	ctx := context.Background()
	f.addCartLine(t, f.p1.ID, 2, 5000)
	f.addCartLine(t, f.p3.ID, 1, 5000)
	res, err := f.Checkout.Checkout(ctx, f.customer.ID, &CheckoutReq{PaymentMode: entity.PayModeCash})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if _, err := f.Payments.FinalizeCash(ctx, f.customer.ID, res.CheckoutRef); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	orders, err := f.OrderRepo.ListByCheckoutRef(res.CheckoutRef)
	if err != nil {
		t.Fatal(err)
	}
	return orders
}

func (f *fixture) orderOfVendor(t *testing.T, orders []entity.Order, vendorID uint) entity.Order {
	t.Helper()
	for _, o := range orders {
		if o.VendorID == vendorID {
			return o
		}
	}
	t.Fatalf("no order for vendor %d", vendorID)
	return entity.Order{}
}

func TestCustomerCancelRestoresStock(t *testing.T) {
	f := newFixture(t)
	orders := f.confirmedOrders(t)
	o1 := f.orderOfVendor(t, orders, f.vendor1.ID)

	if got := f.availableQty(t, f.p1.ID); got != 3 {
		t.Fatalf("p1 available = %d before cancel, want 3", got)
	}

	if err := f.Orders.CustomerCancel(f.customer.ID, o1.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	got, err := f.OrderRepo.GetOrder(o1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != entity.OrderCancelled {
		t.Errorf("status = %s, want CANCELLED", got.Status)
	}
	if q := f.availableQty(t, f.p1.ID); q != 5 {
		t.Errorf("p1 available = %d after cancel, want 5", q)
	}
	// the other vendor's order is untouched
	if q := f.availableQty(t, f.p3.ID); q != 3 {
		t.Errorf("p3 available = %d, want 3", q)
	}
	if n := f.count(t, &entity.Reservation{}, "status = ?", entity.ReservationReleased); n != 1 {
		t.Errorf("released reservations = %d, want 1", n)
	}
}

func TestCustomerCancelPendingOrder(t *testing.T) {
	f := newFixture(t)
	f.addCartLine(t, f.p1.ID, 1, 5000)
	res, err := f.Checkout.Checkout(context.Background(), f.customer.ID, &CheckoutReq{})
	if err != nil {
		t.Fatal(err)
	}

	if err := f.Orders.CustomerCancel(f.customer.ID, res.Orders[0].OrderID); err != nil {
		t.Fatalf("cancel pending: %v", err)
	}
	if q := f.availableQty(t, f.p1.ID); q != 5 {
		t.Errorf("p1 available = %d, want 5", q)
	}
}

func TestCustomerCannotCancelAfterPickup(t *testing.T) {
	f := newFixture(t)
	orders := f.confirmedOrders(t)
	o1 := f.orderOfVendor(t, orders, f.vendor1.ID)

	if err := f.Orders.VendorMarkPickedUp(f.vendorUser1.ID, o1.ID); err != nil {
		t.Fatalf("pickup: %v", err)
	}
	if err := f.Orders.CustomerCancel(f.customer.ID, o1.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestVendorPickupAndReturn(t *testing.T) {
	f := newFixture(t)
	orders := f.confirmedOrders(t)
	o1 := f.orderOfVendor(t, orders, f.vendor1.ID)

	if err := f.Orders.VendorMarkPickedUp(f.vendorUser1.ID, o1.ID); err != nil {
		t.Fatalf("pickup: %v", err)
	}
	got, _ := f.OrderRepo.GetOrder(o1.ID)
	if got.Status != entity.OrderPickedUp {
		t.Errorf("status = %s, want PICKED_UP", got.Status)
	}
	// stock stays out of the pool while the rental is running
	if q := f.availableQty(t, f.p1.ID); q != 3 {
		t.Errorf("p1 available = %d during rental, want 3", q)
	}

	if err := f.Orders.VendorMarkReturned(f.vendorUser1.ID, o1.ID); err != nil {
		t.Fatalf("return: %v", err)
	}
	got, _ = f.OrderRepo.GetOrder(o1.ID)
	if got.Status != entity.OrderReturned {
		t.Errorf("status = %s, want RETURNED", got.Status)
	}
	if q := f.availableQty(t, f.p1.ID); q != 5 {
		t.Errorf("p1 available = %d after return, want 5", q)
	}
}

func TestVendorCannotSkipPickup(t *testing.T) {
	f := newFixture(t)
	orders := f.confirmedOrders(t)
	o1 := f.orderOfVendor(t, orders, f.vendor1.ID)

	if err := f.Orders.VendorMarkReturned(f.vendorUser1.ID, o1.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict on CONFIRMED -> RETURNED", err)
	}
}

func TestVendorCannotTouchOtherVendorsOrder(t *testing.T) {
	f := newFixture(t)
	orders := f.confirmedOrders(t)
	o1 := f.orderOfVendor(t, orders, f.vendor1.ID)

	if err := f.Orders.VendorMarkPickedUp(f.vendorUser2.ID, o1.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestNonVendorCannotTransition(t *testing.T) {
	f := newFixture(t)
	orders := f.confirmedOrders(t)
	o1 := f.orderOfVendor(t, orders, f.vendor1.ID)

	if err := f.Orders.VendorMarkPickedUp(f.customer.ID, o1.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}
