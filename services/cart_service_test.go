package services

import (
	"errors"
	"testing"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
)

func TestAddSnapshotsUnitPrice(t *testing.T) {
	f := newFixture(t)

	// 2 days at 5000/day
	in := &AddToCartIn{
		ProductID:   f.p1.ID,
		Qty:         2,
		RentalStart: f.rentalStart,
		RentalEnd:   f.rentalEnd,
		Unit:        entity.UnitDay,
	}
	if err := f.Carts.Add(f.customer.ID, in); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := f.Carts.Get(f.customer.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(out.Cart.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(out.Cart.Items))
	}
	line := out.Cart.Items[0]
	if line.UnitPrice != 10000 {
		t.Errorf("unit price = %d, want 10000 (2 days x 5000)", line.UnitPrice)
	}
	if line.Total != 20000 || out.Subtotal != 20000 {
		t.Errorf("total = %d, subtotal = %d, want 20000", line.Total, out.Subtotal)
	}

	// later rate changes never touch lines already in a cart
	if err := f.ProductRepo.SetPricing(f.p1.ID, entity.UnitDay, 9000); err != nil {
		t.Fatalf("set pricing: %v", err)
	}
	out, _ = f.Carts.Get(f.customer.ID)
	if out.Cart.Items[0].UnitPrice != 10000 {
		t.Errorf("snapshot changed to %d after rate update", out.Cart.Items[0].UnitPrice)
	}
}

func TestAddMergesMatchingLines(t *testing.T) {
	f := newFixture(t)
	in := &AddToCartIn{
		ProductID:   f.p1.ID,
		Qty:         1,
		RentalStart: f.rentalStart,
		RentalEnd:   f.rentalEnd,
		Unit:        entity.UnitDay,
	}
	if err := f.Carts.Add(f.customer.ID, in); err != nil {
		t.Fatal(err)
	}
	if err := f.Carts.Add(f.customer.ID, in); err != nil {
		t.Fatal(err)
	}

	out, _ := f.Carts.Get(f.customer.ID)
	if len(out.Cart.Items) != 1 {
		t.Fatalf("got %d lines, want merged single line", len(out.Cart.Items))
	}
	if out.Cart.Items[0].Qty != 2 {
		t.Errorf("qty = %d, want 2", out.Cart.Items[0].Qty)
	}
	if out.Cart.Items[0].Total != 20000 {
		t.Errorf("total = %d, want 20000", out.Cart.Items[0].Total)
	}
}

func TestAddRejectsInsufficientStock(t *testing.T) {
	f := newFixture(t)
	in := &AddToCartIn{
		ProductID:   f.p1.ID,
		Qty:         6, // pool has 5
		RentalStart: f.rentalStart,
		RentalEnd:   f.rentalEnd,
		Unit:        entity.UnitDay,
	}
	if err := f.Carts.Add(f.customer.ID, in); !errors.Is(err, apperr.ErrProductUnavailable) {
		t.Fatalf("err = %v, want ErrProductUnavailable", err)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	f := newFixture(t)
	in := &AddToCartIn{
		ProductID:   9999,
		Qty:         1,
		RentalStart: f.rentalStart,
		RentalEnd:   f.rentalEnd,
		Unit:        entity.UnitDay,
	}
	if err := f.Carts.Add(f.customer.ID, in); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAddNoRateForUnit(t *testing.T) {
	f := newFixture(t)
	in := &AddToCartIn{
		ProductID:   f.p1.ID,
		Qty:         1,
		RentalStart: f.rentalStart,
		RentalEnd:   f.rentalStart.Add(2 * time.Hour),
		Unit:        entity.UnitHour, // only a DAY rate exists
	}
	if err := f.Carts.Add(f.customer.ID, in); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateQtyChecksStock(t *testing.T) {
	f := newFixture(t)
	f.addCartLine(t, f.p1.ID, 1, 5000)

	var line entity.CartItem
	if err := f.db.First(&line).Error; err != nil {
		t.Fatal(err)
	}

	if err := f.Carts.UpdateQty(f.customer.ID, line.ID, 10); !errors.Is(err, apperr.ErrProductUnavailable) {
		t.Fatalf("err = %v, want ErrProductUnavailable", err)
	}
	if err := f.Carts.UpdateQty(f.customer.ID, line.ID, 3); err != nil {
		t.Fatalf("update qty: %v", err)
	}

	out, _ := f.Carts.Get(f.customer.ID)
	if out.Cart.Items[0].Qty != 3 || out.Cart.Items[0].Total != 15000 {
		t.Errorf("line = qty %d total %d, want 3/15000", out.Cart.Items[0].Qty, out.Cart.Items[0].Total)
	}
}

func TestUpdateQtyToZeroRemovesLine(t *testing.T) {
	f := newFixture(t)
	f.addCartLine(t, f.p1.ID, 2, 5000)

	var line entity.CartItem
	if err := f.db.First(&line).Error; err != nil {
		t.Fatal(err)
	}
	if err := f.Carts.UpdateQty(f.customer.ID, line.ID, 0); err != nil {
		t.Fatalf("update qty: %v", err)
	}
	if n := f.count(t, &entity.CartItem{}, ""); n != 0 {
		t.Errorf("got %d lines, want 0", n)
	}
}

func TestClearKeepsCartRow(t *testing.T) {
	f := newFixture(t)
	f.addCartLine(t, f.p1.ID, 1, 5000)
	f.addCartLine(t, f.p3.ID, 1, 5000)

	if err := f.Carts.Clear(f.customer.ID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n := f.count(t, &entity.CartItem{}, ""); n != 0 {
		t.Errorf("got %d lines after clear, want 0", n)
	}
	if n := f.count(t, &entity.Cart{}, "user_id = ?", f.customer.ID); n != 1 {
		t.Errorf("cart row count = %d, want 1", n)
	}
}
