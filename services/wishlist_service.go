package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

type WishlistService struct {
	Repo        *repository.WishlistRepository
	ProductRepo *repository.ProductRepository
}

func NewWishlistService(repo *repository.WishlistRepository, productRepo *repository.ProductRepository) *WishlistService {
	return &WishlistService{Repo: repo, ProductRepo: productRepo}
}

func (s *WishlistService) Get(userID uint) (*entity.Wishlist, error) {
	return s.Repo.GetWithItems(userID)
}

func (s *WishlistService) Add(userID, productID uint) error {
	if _, err := s.ProductRepo.GetBasics(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.ErrNotFound, "product not found")
		}
		return err
	}
	w, err := s.Repo.GetOrCreate(userID)
	if err != nil {
		return err
	}
	return s.Repo.AddItem(w.ID, productID)
}

func (s *WishlistService) Remove(userID, productID uint) error {
	w, err := s.Repo.GetOrCreate(userID)
	if err != nil {
		return err
	}
	affected, err := s.Repo.RemoveItem(w.ID, productID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, "product not in wishlist")
	}
	return nil
}
