package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Updates(updates).Error
}

// CountOrders counts non-cancelled orders; used by the welcome-coupon
// first-order rule.
func (r *UserRepository) CountOrders(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Order{}).
		Where("user_id = ? AND status <> ?", userID, entity.OrderCancelled).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) List(page, limit int) ([]entity.User, int64, error) {
	var users []entity.User
	var total int64
	if err := r.DB.Model(&entity.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.DB.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&users).Error
	return users, total, err
}
