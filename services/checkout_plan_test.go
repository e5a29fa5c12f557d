package services

import (
	"testing"
	"time"

	"backend/entity"
)

func TestGSTRoundsHalfUp(t *testing.T) {
	cases := []struct {
		subtotal int64
		want     int64
	}{
		{0, 0},
		{1, 0},     // 0.18 rounds down
		{3, 1},     // 0.54 rounds up
		{25, 5},    // 4.50 rounds up
		{100, 18},
		{20000, 3600},
		{5000, 900},
	}
	for _, c := range cases {
		if got := GST(c.subtotal); got != c.want {
			t.Errorf("GST(%d) = %d, want %d", c.subtotal, got, c.want)
		}
	}
}

func item(productID uint, qty int, unitPrice int64) entity.CartItem {
	return entity.CartItem{ProductID: productID, Qty: qty, UnitPrice: unitPrice, Total: unitPrice * int64(qty)}
}

func TestPartitionByVendorKeepsFirstAppearanceOrder(t *testing.T) {
	items := []ResolvedItem{
		{Item: item(1, 1, 100), VendorID: 7},
		{Item: item(2, 1, 100), VendorID: 3},
		{Item: item(3, 1, 100), VendorID: 7},
		{Item: item(4, 1, 100), VendorID: 3},
	}
	parts := PartitionByVendor(items)
	if len(parts) != 2 {
		t.Fatalf("got %d partitions, want 2", len(parts))
	}
	if parts[0].VendorID != 7 || parts[1].VendorID != 3 {
		t.Errorf("partition order = %d,%d, want 7,3", parts[0].VendorID, parts[1].VendorID)
	}
	if len(parts[0].Items) != 2 || parts[0].Items[0].ProductID != 1 || parts[0].Items[1].ProductID != 3 {
		t.Errorf("vendor 7 items out of order: %+v", parts[0].Items)
	}
}

func TestBuildPlanMoneyColumns(t *testing.T) {
	items := []ResolvedItem{
		{Item: item(1, 2, 5000), VendorID: 1},  // 10000
		{Item: item(2, 1, 10000), VendorID: 1}, // 10000
		{Item: item(3, 1, 5000), VendorID: 2},  // 5000
	}
	plan := BuildPlan(items, 0)
	if len(plan) != 2 {
		t.Fatalf("got %d partitions, want 2", len(plan))
	}
	if plan[0].Subtotal != 20000 || plan[0].GSTAmount != 3600 || plan[0].TotalAmount != 23600 {
		t.Errorf("vendor 1 money = %d/%d/%d, want 20000/3600/23600",
			plan[0].Subtotal, plan[0].GSTAmount, plan[0].TotalAmount)
	}
	if plan[1].Subtotal != 5000 || plan[1].GSTAmount != 900 || plan[1].TotalAmount != 5900 {
		t.Errorf("vendor 2 money = %d/%d/%d, want 5000/900/5900",
			plan[1].Subtotal, plan[1].GSTAmount, plan[1].TotalAmount)
	}
	if got := PayableAmount(plan); got != 29500 {
		t.Errorf("payable = %d, want 29500", got)
	}
}

func TestBuildPlanDiscountProRata(t *testing.T) {
	items := []ResolvedItem{
		{Item: item(1, 1, 20000), VendorID: 1},
		{Item: item(2, 1, 5000), VendorID: 2},
	}
	plan := BuildPlan(items, 2500)
	if plan[0].Discount != 2000 {
		t.Errorf("vendor 1 discount = %d, want 2000", plan[0].Discount)
	}
	if plan[1].Discount != 500 {
		t.Errorf("vendor 2 discount = %d, want 500", plan[1].Discount)
	}
	if got := PayableAmount(plan); got != 29500-2500 {
		t.Errorf("payable = %d, want %d", got, 29500-2500)
	}
}

func TestBuildPlanDiscountRemainderGoesToLast(t *testing.T) {
	items := []ResolvedItem{
		{Item: item(1, 1, 999), VendorID: 1},
		{Item: item(2, 1, 1), VendorID: 2},
	}
	plan := BuildPlan(items, 100)
	// 100*999/1000 truncates to 99; the last partition absorbs the rest
	if plan[0].Discount != 99 || plan[1].Discount != 1 {
		t.Errorf("discounts = %d,%d, want 99,1", plan[0].Discount, plan[1].Discount)
	}
	if plan[0].Discount+plan[1].Discount != 100 {
		t.Errorf("allocations do not sum to the full discount")
	}
}

func TestBuildPlanDiscountClampedToSubtotal(t *testing.T) {
	items := []ResolvedItem{{Item: item(1, 1, 500), VendorID: 1}}
	plan := BuildPlan(items, 10000)
	if plan[0].Discount != 500 {
		t.Errorf("discount = %d, want clamp to 500", plan[0].Discount)
	}
}

func TestBillableUnits(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		end  time.Time
		unit string
		want int64
	}{
		{start.Add(24 * time.Hour), entity.UnitDay, 1},
		{start.Add(25 * time.Hour), entity.UnitDay, 2},
		{start.Add(90 * time.Minute), entity.UnitHour, 2},
		{start.Add(time.Hour), entity.UnitHour, 1},
		{start.AddDate(0, 0, 8), entity.UnitWeek, 2},
		{start.AddDate(0, 0, 7), entity.UnitWeek, 1},
		{start, entity.UnitDay, 1},                  // zero window still bills
		{start.Add(-time.Hour), entity.UnitDay, 1},  // negative window too
	}
	for _, c := range cases {
		if got := BillableUnits(start, c.end, c.unit); got != c.want {
			t.Errorf("BillableUnits(%s, %v) = %d, want %d", c.unit, c.end.Sub(start), got, c.want)
		}
	}
}
