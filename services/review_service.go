package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

type ReviewService struct {
	Repo        *repository.ReviewRepository
	ProductRepo *repository.ProductRepository
}

func NewReviewService(repo *repository.ReviewRepository, productRepo *repository.ProductRepository) *ReviewService {
	return &ReviewService{Repo: repo, ProductRepo: productRepo}
}

type CreateReviewIn struct {
	ProductID uint   `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

func (s *ReviewService) Create(userID uint, in *CreateReviewIn) (*entity.Review, error) {
	if _, err := s.ProductRepo.GetBasics(in.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "product not found")
		}
		return nil, err
	}

	exists, err := s.Repo.ExistsForUserProduct(userID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Wrap(apperr.ErrConflict, "you already reviewed this product")
	}

	review := &entity.Review{
		UserID:    userID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	if err := s.Repo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListByProduct(productID uint) ([]entity.Review, error) {
	return s.Repo.ListByProduct(productID)
}

func (s *ReviewService) DeleteOwn(userID, reviewID uint) error {
	affected, err := s.Repo.DeleteOwn(userID, reviewID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, "review not found")
	}
	return nil
}
