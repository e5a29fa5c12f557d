package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type ProductRepository struct{ DB *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{DB: db} }

func (r *ProductRepository) Create(p *entity.Product) error {
	return r.DB.Create(p).Error
}

func (r *ProductRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Product{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ProductRepository) FindByID(id uint) (*entity.Product, error) {
	var p entity.Product
	err := r.DB.
		Preload("Inventory").
		Preload("Pricings").
		Preload("Attributes").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBasics loads just what cart and checkout need: ownership and
// inventory, no rate card or attributes.
func (r *ProductRepository) GetBasics(id uint) (*entity.Product, error) {
	var p entity.Product
	err := r.DB.Select("id, vendor_id, name, is_active").
		Preload("Inventory").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type ProductFilter struct {
	Category string
	VendorID uint
	Search   string
	Page     int
	Limit    int
}

func (r *ProductRepository) List(f ProductFilter) ([]entity.Product, int64, error) {
	q := r.DB.Model(&entity.Product{}).Where("is_active = ?", true)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.VendorID != 0 {
		q = q.Where("vendor_id = ?", f.VendorID)
	}
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []entity.Product
	err := q.Preload("Inventory").Preload("Pricings").
		Order("id DESC").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Find(&products).Error
	return products, total, err
}

func (r *ProductRepository) ListByVendor(vendorID uint) ([]entity.Product, error) {
	var products []entity.Product
	err := r.DB.Where("vendor_id = ?", vendorID).
		Preload("Inventory").Preload("Pricings").
		Order("id DESC").
		Find(&products).Error
	return products, err
}

// SetInventory upserts the quantity pool for a product. Raising or
// lowering TotalQty shifts AvailableQty by the same delta so live
// reservations keep their claim.
func (r *ProductRepository) SetInventory(productID uint, totalQty int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var inv entity.Inventory
		err := tx.Where("product_id = ?", productID).First(&inv).Error
		if err == gorm.ErrRecordNotFound {
			return tx.Create(&entity.Inventory{
				ProductID:    productID,
				TotalQty:     totalQty,
				AvailableQty: totalQty,
			}).Error
		}
		if err != nil {
			return err
		}
		delta := totalQty - inv.TotalQty
		return tx.Model(&entity.Inventory{}).Where("id = ?", inv.ID).
			Updates(map[string]any{
				"total_qty":     totalQty,
				"available_qty": gorm.Expr("available_qty + ?", delta),
			}).Error
	})
}

func (r *ProductRepository) SetPricing(productID uint, unit string, price int64) error {
	var p entity.Pricing
	err := r.DB.Where("product_id = ? AND unit = ?", productID, unit).First(&p).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(&entity.Pricing{ProductID: productID, Unit: unit, Price: price}).Error
	}
	if err != nil {
		return err
	}
	return r.DB.Model(&entity.Pricing{}).Where("id = ?", p.ID).Update("price", price).Error
}

func (r *ProductRepository) GetInventory(productID uint) (*entity.Inventory, error) {
	var inv entity.Inventory
	if err := r.DB.Where("product_id = ?", productID).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// DecrementAvailable is the atomic conditional decrement at
// reservation time: zero rows affected means insufficient stock and
// the caller must abort its transaction.
func (r *ProductRepository) DecrementAvailable(tx *gorm.DB, productID uint, qty int) (int64, error) {
	res := tx.Exec(`
		UPDATE inventories
		   SET available_qty = available_qty - ?
		 WHERE product_id = ? AND available_qty >= ?
	`, qty, productID, qty)
	return res.RowsAffected, res.Error
}

// RestoreAvailable returns quantity to the pool, capped at TotalQty.
func (r *ProductRepository) RestoreAvailable(tx *gorm.DB, productID uint, qty int) error {
	return tx.Exec(`
		UPDATE inventories
		   SET available_qty = MIN(total_qty, available_qty + ?)
		 WHERE product_id = ?
	`, qty, productID).Error
}
