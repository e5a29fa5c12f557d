package services

import (
	"backend/entity"
)

// ResolvedItem is a cart line resolved to its product's owning vendor.
type ResolvedItem struct {
	Item     entity.CartItem
	VendorID uint
}

// VendorPartition is the slice of a checkout that becomes one order.
type VendorPartition struct {
	VendorID    uint
	Items       []entity.CartItem
	Subtotal    int64
	GSTAmount   int64
	TotalAmount int64
	Discount    int64
}

const gstRatePercent = 18

// GST returns the tax component in minor units, rounded half-up.
func GST(subtotal int64) int64 {
	return (subtotal*gstRatePercent + 50) / 100
}

// PartitionByVendor groups items by owning vendor, preserving in-cart
// item order within each group and ordering groups by first
// appearance. Pure function, no side effects.
func PartitionByVendor(items []ResolvedItem) []VendorPartition {
	index := make(map[uint]int)
	partitions := make([]VendorPartition, 0)
	for _, ri := range items {
		i, ok := index[ri.VendorID]
		if !ok {
			i = len(partitions)
			index[ri.VendorID] = i
			partitions = append(partitions, VendorPartition{VendorID: ri.VendorID})
		}
		partitions[i].Items = append(partitions[i].Items, ri.Item)
	}
	return partitions
}

// BuildPlan partitions the items and fills in the money columns:
// subtotal from the cart's price snapshots, GST and total as pure
// functions of the subtotal, and the coupon discount allocated pro
// rata by subtotal (remainder goes to the last partition so the
// allocations always sum to the full discount).
func BuildPlan(items []ResolvedItem, discount int64) []VendorPartition {
	partitions := PartitionByVendor(items)

	var grand int64
	for i := range partitions {
		var sub int64
		for _, it := range partitions[i].Items {
			sub += it.UnitPrice * int64(it.Qty)
		}
		partitions[i].Subtotal = sub
		partitions[i].GSTAmount = GST(sub)
		partitions[i].TotalAmount = sub + partitions[i].GSTAmount
		grand += sub
	}

	if discount > 0 && grand > 0 {
		if discount > grand {
			discount = grand
		}
		var allocated int64
		for i := range partitions {
			if i == len(partitions)-1 {
				partitions[i].Discount = discount - allocated
				break
			}
			share := discount * partitions[i].Subtotal / grand
			partitions[i].Discount = share
			allocated += share
		}
	}

	return partitions
}

// PayableAmount is what the customer actually pays for the checkout:
// tax-inclusive invoice totals minus the coupon discount.
func PayableAmount(partitions []VendorPartition) int64 {
	var total int64
	for _, p := range partitions {
		total += p.TotalAmount - p.Discount
	}
	return total
}
