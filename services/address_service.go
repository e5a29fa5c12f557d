package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

type AddressService struct {
	Repo *repository.AddressRepository
}

func NewAddressService(repo *repository.AddressRepository) *AddressService {
	return &AddressService{Repo: repo}
}

type AddressIn struct {
	Line1     string `json:"line1" binding:"required"`
	Line2     string `json:"line2"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	IsDefault bool   `json:"isDefault"`
}

func (s *AddressService) Create(userID uint, in *AddressIn) (*entity.Address, error) {
	a := &entity.Address{
		UserID:    userID,
		Line1:     in.Line1,
		Line2:     in.Line2,
		City:      in.City,
		State:     in.State,
		Pincode:   in.Pincode,
		IsDefault: in.IsDefault,
	}
	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AddressService) List(userID uint) ([]entity.Address, error) {
	return s.Repo.ListForUser(userID)
}

func (s *AddressService) Get(userID, addressID uint) (*entity.Address, error) {
	a, err := s.Repo.GetForUser(userID, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "address not found")
		}
		return nil, err
	}
	return a, nil
}

func (s *AddressService) Update(userID, addressID uint, updates map[string]any) error {
	affected, err := s.Repo.Update(userID, addressID, updates)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, "address not found")
	}
	return nil
}

func (s *AddressService) Delete(userID, addressID uint) error {
	affected, err := s.Repo.Delete(userID, addressID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, "address not found")
	}
	return nil
}
