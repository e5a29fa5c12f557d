package services

import (
	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

type AdminService struct {
	DB         *gorm.DB
	UserRepo   *repository.UserRepository
	VendorRepo *repository.VendorRepository
}

func NewAdminService(db *gorm.DB, userRepo *repository.UserRepository, vendorRepo *repository.VendorRepository) *AdminService {
	return &AdminService{DB: db, UserRepo: userRepo, VendorRepo: vendorRepo}
}

type DashboardOut struct {
	Users    int64 `json:"users"`
	Vendors  int64 `json:"vendors"`
	Products int64 `json:"products"`
	Orders   int64 `json:"orders"`
	Revenue  int64 `json:"revenue"`
}

// Dashboard aggregates platform counts; revenue sums successful
// payments.
func (s *AdminService) Dashboard() (*DashboardOut, error) {
	out := &DashboardOut{}
	if err := s.DB.Model(&entity.User{}).Count(&out.Users).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&entity.Vendor{}).Count(&out.Vendors).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&entity.Product{}).Count(&out.Products).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&entity.Order{}).Count(&out.Orders).Error; err != nil {
		return nil, err
	}
	err := s.DB.Model(&entity.Payment{}).
		Where("status = ?", entity.PaymentSuccess).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&out.Revenue).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AdminService) ListUsers(page, limit int) ([]entity.User, int64, error) {
	return s.UserRepo.List(page, limit)
}

func (s *AdminService) ListVendors(page, limit int) ([]entity.Vendor, int64, error) {
	return s.VendorRepo.List(page, limit)
}
