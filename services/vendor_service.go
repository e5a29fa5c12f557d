package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

// VendorService covers the seller surface: profile creation and
// catalog management, always scoped to the caller's own vendor.
type VendorService struct {
	DB          *gorm.DB
	VendorRepo  *repository.VendorRepository
	ProductRepo *repository.ProductRepository
	UserRepo    *repository.UserRepository
}

func NewVendorService(
	db *gorm.DB,
	vendorRepo *repository.VendorRepository,
	productRepo *repository.ProductRepository,
	userRepo *repository.UserRepository,
) *VendorService {
	return &VendorService{DB: db, VendorRepo: vendorRepo, ProductRepo: productRepo, UserRepo: userRepo}
}

type BecomeVendorIn struct {
	DisplayName string `json:"displayName" binding:"required"`
	Description string `json:"description"`
	GSTIN       string `json:"gstin"`
}

// BecomeVendor creates the vendor profile and promotes the user's
// role, both in one transaction.
func (s *VendorService) BecomeVendor(userID uint, in *BecomeVendorIn) (*entity.Vendor, error) {
	if _, err := s.VendorRepo.FindByUserID(userID); err == nil {
		return nil, apperr.Wrap(apperr.ErrConflict, "vendor profile already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	vendor := &entity.Vendor{
		UserID:      userID,
		DisplayName: in.DisplayName,
		Description: in.Description,
		GSTIN:       in.GSTIN,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vendor).Error; err != nil {
			return err
		}
		return tx.Model(&entity.User{}).Where("id = ?", userID).
			Update("role", entity.RoleVendor).Error
	})
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *VendorService) Profile(userID uint) (*entity.Vendor, error) {
	v, err := s.VendorRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "vendor profile not found")
		}
		return nil, err
	}
	return v, nil
}

type ProductIn struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (s *VendorService) CreateProduct(userID uint, in *ProductIn) (*entity.Product, error) {
	vendor, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}
	p := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		IsActive:    true,
		VendorID:    vendor.ID,
	}
	if err := s.ProductRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *VendorService) UpdateProduct(userID, productID uint, updates map[string]any) error {
	if err := s.ownsProduct(userID, productID); err != nil {
		return err
	}
	return s.ProductRepo.Update(productID, updates)
}

func (s *VendorService) MyProducts(userID uint) ([]entity.Product, error) {
	vendor, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}
	return s.ProductRepo.ListByVendor(vendor.ID)
}

// SetInventory sets the product's total stock pool.
func (s *VendorService) SetInventory(userID, productID uint, totalQty int) error {
	if totalQty < 0 {
		return apperr.Wrap(apperr.ErrConflict, "quantity cannot be negative")
	}
	if err := s.ownsProduct(userID, productID); err != nil {
		return err
	}
	return s.ProductRepo.SetInventory(productID, totalQty)
}

func (s *VendorService) SetPricing(userID, productID uint, unit string, price int64) error {
	if price <= 0 {
		return apperr.Wrap(apperr.ErrConflict, "price must be positive")
	}
	if err := s.ownsProduct(userID, productID); err != nil {
		return err
	}
	return s.ProductRepo.SetPricing(productID, unit, price)
}

func (s *VendorService) ownsProduct(userID, productID uint) error {
	vendor, err := s.Profile(userID)
	if err != nil {
		return err
	}
	p, err := s.ProductRepo.GetBasics(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.ErrNotFound, "product not found")
		}
		return err
	}
	if p.VendorID != vendor.ID {
		return apperr.Wrap(apperr.ErrForbidden, "product belongs to another vendor")
	}
	return nil
}
