package services

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"backend/configs"
	"backend/entity"
	"backend/repository"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := configs.MigrateAll(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fixture is a two-vendor marketplace: p1 and p2 belong to vendor1,
// p3 to vendor2, each with a quantity pool and a daily rate.
type fixture struct {
	db *gorm.DB

	CartRepo    *repository.CartRepository
	OrderRepo   *repository.OrderRepository
	ProductRepo *repository.ProductRepository
	InvoiceRepo *repository.InvoiceRepository
	CouponRepo  *repository.CouponRepository
	UserRepo    *repository.UserRepository

	Checkout *CheckoutService
	Payments *PaymentService
	Orders   *OrderService
	Coupons  *CouponService
	Carts    *CartService
	Gateway  *HMACGateway

	customer    entity.User
	vendorUser1 entity.User
	vendorUser2 entity.User
	vendor1     entity.Vendor
	vendor2     entity.Vendor
	p1, p2, p3  entity.Product

	rentalStart time.Time
	rentalEnd   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{
		db:          db,
		CartRepo:    repository.NewCartRepository(db),
		OrderRepo:   repository.NewOrderRepository(db),
		ProductRepo: repository.NewProductRepository(db),
		InvoiceRepo: repository.NewInvoiceRepository(db),
		CouponRepo:  repository.NewCouponRepository(db),
		UserRepo:    repository.NewUserRepository(db),
	}

	log := zerolog.Nop()
	f.Gateway = NewHMACGateway("key_test", "secret_test")
	locker := NewCheckoutLocker(nil)
	vendorRepo := repository.NewVendorRepository(db)

	f.Coupons = NewCouponService(f.CouponRepo, f.UserRepo)
	f.Checkout = NewCheckoutService(db, f.CartRepo, f.OrderRepo, f.ProductRepo, f.InvoiceRepo,
		f.Coupons, f.Gateway, locker, nil, nil, log)
	f.Payments = NewPaymentService(db, f.OrderRepo, f.InvoiceRepo, f.CartRepo, f.UserRepo,
		f.Gateway, locker, nil, log)
	f.Orders = NewOrderService(db, f.OrderRepo, f.InvoiceRepo, f.ProductRepo, vendorRepo)
	f.Carts = NewCartService(db, f.CartRepo, f.ProductRepo)

	f.customer = entity.User{Email: "renter@example.com", Role: entity.RoleCustomer}
	f.vendorUser1 = entity.User{Email: "v1@example.com", Role: entity.RoleVendor}
	f.vendorUser2 = entity.User{Email: "v2@example.com", Role: entity.RoleVendor}
	mustCreate(t, db, &f.customer, &f.vendorUser1, &f.vendorUser2)

	f.vendor1 = entity.Vendor{UserID: f.vendorUser1.ID, DisplayName: "Sharma Tools"}
	f.vendor2 = entity.Vendor{UserID: f.vendorUser2.ID, DisplayName: "Patel Machines"}
	mustCreate(t, db, &f.vendor1, &f.vendor2)

	f.p1 = f.newProduct(t, "Angle Grinder", f.vendor1.ID, 5, 5000)
	f.p2 = f.newProduct(t, "Concrete Mixer", f.vendor1.ID, 3, 10000)
	f.p3 = f.newProduct(t, "Scaffolding Set", f.vendor2.ID, 4, 5000)

	f.rentalStart = time.Now().AddDate(0, 0, 1).Truncate(time.Hour)
	f.rentalEnd = f.rentalStart.AddDate(0, 0, 2)
	return f
}

func mustCreate(t *testing.T, db *gorm.DB, rows ...any) {
	t.Helper()
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("create %T: %v", row, err)
		}
	}
}

func (f *fixture) newProduct(t *testing.T, name string, vendorID uint, qty int, dayRate int64) entity.Product {
	t.Helper()
	p := entity.Product{Name: name, Category: "construction", IsActive: true, VendorID: vendorID}
	mustCreate(t, f.db, &p)
	mustCreate(t, f.db,
		&entity.Inventory{ProductID: p.ID, TotalQty: qty, AvailableQty: qty},
		&entity.Pricing{ProductID: p.ID, Unit: entity.UnitDay, Price: dayRate})
	return p
}

// addCartLine seeds a cart line with an explicit price snapshot,
// bypassing the rate card the way an already-filled cart would.
func (f *fixture) addCartLine(t *testing.T, productID uint, qty int, unitPrice int64) {
	t.Helper()
	cart, err := f.CartRepo.GetOrCreate(f.customer.ID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	mustCreate(t, f.db, &entity.CartItem{
		CartID:      cart.ID,
		ProductID:   productID,
		Qty:         qty,
		RentalStart: f.rentalStart,
		RentalEnd:   f.rentalEnd,
		UnitPrice:   unitPrice,
		Total:       unitPrice * int64(qty),
	})
}

func (f *fixture) availableQty(t *testing.T, productID uint) int {
	t.Helper()
	inv, err := f.ProductRepo.GetInventory(productID)
	if err != nil {
		t.Fatalf("get inventory: %v", err)
	}
	return inv.AvailableQty
}

func (f *fixture) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := f.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

func (f *fixture) orderByVendor(t *testing.T, res *CheckoutRes, vendorID uint) CheckoutOrderRes {
	t.Helper()
	for _, o := range res.Orders {
		if o.VendorID == vendorID {
			return o
		}
	}
	t.Fatalf("no order for vendor %d in %+v", vendorID, res.Orders)
	return CheckoutOrderRes{}
}
