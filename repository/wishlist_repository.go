package repository

import (
	"errors"

	"backend/entity"

	"gorm.io/gorm"
)

type WishlistRepository struct{ DB *gorm.DB }

func NewWishlistRepository(db *gorm.DB) *WishlistRepository { return &WishlistRepository{DB: db} }

func (r *WishlistRepository) GetOrCreate(userID uint) (*entity.Wishlist, error) {
	var w entity.Wishlist
	err := r.DB.Where("user_id = ?", userID).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		w = entity.Wishlist{UserID: userID}
		if err := r.DB.Create(&w).Error; err != nil {
			return nil, err
		}
		return &w, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WishlistRepository) GetWithItems(userID uint) (*entity.Wishlist, error) {
	var w entity.Wishlist
	err := r.DB.Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.Product").
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Wishlist{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WishlistRepository) AddItem(wishlistID, productID uint) error {
	var count int64
	err := r.DB.Model(&entity.WishlistItem{}).
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // already present, idempotent
	}
	return r.DB.Create(&entity.WishlistItem{WishlistID: wishlistID, ProductID: productID}).Error
}

func (r *WishlistRepository) RemoveItem(wishlistID, productID uint) (int64, error) {
	res := r.DB.Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Delete(&entity.WishlistItem{})
	return res.RowsAffected, res.Error
}
