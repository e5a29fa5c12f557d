package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type ReviewRepository struct{ DB *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{DB: db} }

func (r *ReviewRepository) Create(rev *entity.Review) error {
	return r.DB.Create(rev).Error
}

func (r *ReviewRepository) ExistsForUserProduct(userID, productID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Review{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) ListByProduct(productID uint) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.DB.Where("product_id = ?", productID).
		Preload("User").
		Order("id DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) DeleteOwn(userID, reviewID uint) (int64, error) {
	res := r.DB.Where("id = ? AND user_id = ?", reviewID, userID).Delete(&entity.Review{})
	return res.RowsAffected, res.Error
}
