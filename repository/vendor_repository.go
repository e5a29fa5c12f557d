package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type VendorRepository struct{ DB *gorm.DB }

func NewVendorRepository(db *gorm.DB) *VendorRepository { return &VendorRepository{DB: db} }

func (r *VendorRepository) Create(v *entity.Vendor) error {
	return r.DB.Create(v).Error
}

func (r *VendorRepository) FindByID(id uint) (*entity.Vendor, error) {
	var v entity.Vendor
	if err := r.DB.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepository) FindByUserID(userID uint) (*entity.Vendor, error) {
	var v entity.Vendor
	if err := r.DB.Where("user_id = ?", userID).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepository) IsOwnedBy(vendorID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Vendor{}).
		Where("id = ? AND user_id = ?", vendorID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *VendorRepository) List(page, limit int) ([]entity.Vendor, int64, error) {
	var vendors []entity.Vendor
	var total int64
	if err := r.DB.Model(&entity.Vendor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.DB.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&vendors).Error
	return vendors, total, err
}
