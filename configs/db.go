package configs

import (
	"backend/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	MigrateAll(db)
}

// MigrateAll is shared with the test setup so tests migrate the exact
// production schema.
func MigrateAll(g *gorm.DB) error {
	return g.AutoMigrate(
		&entity.User{}, &entity.Vendor{},
		&entity.Product{}, &entity.Inventory{}, &entity.Pricing{}, &entity.ProductAttribute{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{}, &entity.Reservation{},
		&entity.Invoice{}, &entity.Payment{},
		&entity.Coupon{},
		&entity.Wishlist{}, &entity.WishlistItem{},
		&entity.Review{}, &entity.Address{},
	)
}
