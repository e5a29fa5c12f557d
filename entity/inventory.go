package entity

import (
	"gorm.io/gorm"
)

// Inventory is a quantity pool per product. AvailableQty is only ever
// changed by conditional UPDATEs (decrement at reservation, restore at
// return/cancel), never by read-modify-write.
type Inventory struct {
	gorm.Model
	ProductID    uint `gorm:"uniqueIndex" json:"productId"`
	TotalQty     int  `gorm:"not null;default:0" json:"totalQty"`
	AvailableQty int  `gorm:"not null;default:0" json:"availableQty"`
}
