package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type CouponRepository struct{ DB *gorm.DB }

func NewCouponRepository(db *gorm.DB) *CouponRepository { return &CouponRepository{DB: db} }

func (r *CouponRepository) Create(c *entity.Coupon) error {
	return r.DB.Create(c).Error
}

func (r *CouponRepository) FindByCode(code string) (*entity.Coupon, error) {
	var c entity.Coupon
	if err := r.DB.Where("code = ?", code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) List(page, limit int) ([]entity.Coupon, int64, error) {
	var coupons []entity.Coupon
	var total int64
	if err := r.DB.Model(&entity.Coupon{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.DB.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&coupons).Error
	return coupons, total, err
}

func (r *CouponRepository) Deactivate(id uint) error {
	return r.DB.Model(&entity.Coupon{}).Where("id = ?", id).Update("is_active", false).Error
}

// IncrementUsageGuard bumps the usage counter atomically, respecting
// the cap when one is set. Zero rows affected means the cap was hit by
// a concurrent redemption; the caller aborts its transaction.
func (r *CouponRepository) IncrementUsageGuard(tx *gorm.DB, couponID uint) (int64, error) {
	res := tx.Exec(`
		UPDATE coupons
		   SET current_usage_count = current_usage_count + 1
		 WHERE id = ?
		   AND (max_usage_count = 0 OR current_usage_count < max_usage_count)
	`, couponID)
	return res.RowsAffected, res.Error
}
