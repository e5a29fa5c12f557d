package services

import (
	"errors"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

type CartService struct {
	DB          *gorm.DB
	CartRepo    *repository.CartRepository
	ProductRepo *repository.ProductRepository
}

func NewCartService(db *gorm.DB, cartRepo *repository.CartRepository, productRepo *repository.ProductRepository) *CartService {
	return &CartService{DB: db, CartRepo: cartRepo, ProductRepo: productRepo}
}

type AddToCartIn struct {
	ProductID   uint      `json:"productId" binding:"required"`
	Qty         int       `json:"qty" binding:"min=1"`
	RentalStart time.Time `json:"rentalStart" binding:"required"`
	RentalEnd   time.Time `json:"rentalEnd" binding:"required"`
	Unit        string    `json:"unit" binding:"required,oneof=HOUR DAY WEEK"`
}

type CartOut struct {
	Cart     *entity.Cart `json:"cart"`
	Subtotal int64        `json:"subtotal"`
}

func (s *CartService) Get(userID uint) (*CartOut, error) {
	c, err := s.CartRepo.GetWithItems(userID)
	if err != nil {
		return nil, err
	}
	var subtotal int64
	for _, it := range c.Items {
		subtotal += it.Total
	}
	return &CartOut{Cart: c, Subtotal: subtotal}, nil
}

// Add prices the line from the product's rate card for the chosen
// unit and snapshots it on the cart item. The snapshot is what
// checkout bills — later rate changes do not touch lines already in a
// cart.
func (s *CartService) Add(userID uint, in *AddToCartIn) error {
	if in.Qty <= 0 {
		in.Qty = 1
	}

	p, err := s.ProductRepo.FindByID(in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.ErrNotFound, "product not found")
		}
		return err
	}
	if !p.IsActive {
		return apperr.Wrap(apperr.ErrProductUnavailable, p.Name)
	}

	if p.Inventory == nil || p.Inventory.AvailableQty < in.Qty {
		return apperr.Wrap(apperr.ErrProductUnavailable, "not enough stock")
	}

	var rate *entity.Pricing
	for i := range p.Pricings {
		if p.Pricings[i].Unit == in.Unit {
			rate = &p.Pricings[i]
			break
		}
	}
	if rate == nil {
		return apperr.Wrap(apperr.ErrNotFound, "no rate for requested unit")
	}

	units := BillableUnits(in.RentalStart, in.RentalEnd, in.Unit)
	unitPrice := rate.Price * units

	cart, err := s.CartRepo.GetOrCreate(userID)
	if err != nil {
		return err
	}

	line := &entity.CartItem{
		ProductID:   p.ID,
		Qty:         in.Qty,
		RentalStart: in.RentalStart,
		RentalEnd:   in.RentalEnd,
		UnitPrice:   unitPrice,
		Total:       unitPrice * int64(in.Qty),
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.UpsertItem(tx, cart.ID, line)
	})
}

// BillableUnits counts whole pricing units in the window, rounding
// partial units up; a zero or negative window still bills one unit.
func BillableUnits(start, end time.Time, unit string) int64 {
	var unitDur time.Duration
	switch unit {
	case entity.UnitHour:
		unitDur = time.Hour
	case entity.UnitWeek:
		unitDur = 7 * 24 * time.Hour
	default:
		unitDur = 24 * time.Hour
	}
	d := end.Sub(start)
	if d <= 0 {
		return 1
	}
	units := int64((d + unitDur - 1) / unitDur)
	if units < 1 {
		return 1
	}
	return units
}

// UpdateQty re-checks availability against the inventory pool before
// raising a line's quantity.
func (s *CartService) UpdateQty(userID, itemID uint, qty int) error {
	if qty > 0 {
		item, err := s.CartRepo.GetItemForUser(userID, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Wrap(apperr.ErrNotFound, "cart item not found")
			}
			return err
		}
		inv, err := s.ProductRepo.GetInventory(item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Wrap(apperr.ErrProductUnavailable, "no inventory")
			}
			return err
		}
		if inv.AvailableQty < qty {
			return apperr.Wrap(apperr.ErrProductUnavailable, "not enough stock")
		}
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.UpdateQty(tx, userID, itemID, qty)
	})
}

func (s *CartService) RemoveItem(userID, itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.RemoveItem(tx, userID, itemID)
	})
}

func (s *CartService) Clear(userID uint) error {
	cart, err := s.CartRepo.GetOrCreate(userID)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.ClearItems(tx, cart.ID)
	})
}
