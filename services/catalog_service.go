package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

// CatalogService is the public product browse surface.
type CatalogService struct {
	ProductRepo *repository.ProductRepository
	ReviewRepo  *repository.ReviewRepository
}

func NewCatalogService(productRepo *repository.ProductRepository, reviewRepo *repository.ReviewRepository) *CatalogService {
	return &CatalogService{ProductRepo: productRepo, ReviewRepo: reviewRepo}
}

type ProductListOut struct {
	Items []entity.Product `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func (s *CatalogService) List(f repository.ProductFilter) (*ProductListOut, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	items, total, err := s.ProductRepo.List(f)
	if err != nil {
		return nil, err
	}
	return &ProductListOut{Items: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

type ProductDetailOut struct {
	Product *entity.Product `json:"product"`
	Reviews []entity.Review `json:"reviews"`
}

func (s *CatalogService) Detail(productID uint) (*ProductDetailOut, error) {
	p, err := s.ProductRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "product not found")
		}
		return nil, err
	}
	reviews, err := s.ReviewRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	return &ProductDetailOut{Product: p, Reviews: reviews}, nil
}
