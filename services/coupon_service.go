package services

import (
	"strings"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

type CouponService struct {
	Repo     *repository.CouponRepository
	UserRepo *repository.UserRepository
}

func NewCouponService(repo *repository.CouponRepository, userRepo *repository.UserRepository) *CouponService {
	return &CouponService{Repo: repo, UserRepo: userRepo}
}

// CouponQuote is the result of a successful validation. Validation is
// a pure function of coupon state and order amount: the same inputs
// always quote the same discount.
type CouponQuote struct {
	Coupon   *entity.Coupon `json:"coupon"`
	Discount int64          `json:"discount"`
}

// Validate runs the eligibility chain in order, first failure wins:
// exists, active, user scope, welcome rule, expiry, usage cap,
// minimum order amount. It performs no writes.
func (s *CouponService) Validate(userID uint, code string, orderAmount int64) (*CouponQuote, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	coupon, err := s.Repo.FindByCode(code)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.Wrap(apperr.ErrNotFound, "coupon not found")
		}
		return nil, err
	}

	if !coupon.IsActive {
		return nil, apperr.Wrap(apperr.ErrConflict, "coupon is inactive")
	}

	if coupon.UserID != nil {
		if userID == 0 {
			return nil, apperr.Wrap(apperr.ErrUnauthorized, "coupon requires a signed-in user")
		}
		if *coupon.UserID != userID {
			return nil, apperr.Wrap(apperr.ErrForbidden, "coupon belongs to another user")
		}
	}

	if coupon.IsWelcomeCoupon {
		count, err := s.UserRepo.CountOrders(userID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Wrap(apperr.ErrConflict, "welcome coupon is only valid on your first order")
		}
	}

	if coupon.ExpiresAt != nil && time.Now().After(*coupon.ExpiresAt) {
		return nil, apperr.ErrCouponExpired
	}

	if coupon.MaxUsageCount > 0 && coupon.CurrentUsageCount >= coupon.MaxUsageCount {
		return nil, apperr.ErrCouponLimitReached
	}

	if coupon.MinOrderAmount > 0 && orderAmount < coupon.MinOrderAmount {
		return nil, apperr.ErrCouponBelowMin
	}

	return &CouponQuote{Coupon: coupon, Discount: Discount(coupon, orderAmount)}, nil
}

// Discount computes the coupon's value against an order amount; a
// fixed discount never exceeds the amount itself.
func Discount(c *entity.Coupon, orderAmount int64) int64 {
	switch c.DiscountType {
	case entity.CouponPercentage:
		return orderAmount * c.DiscountValue / 100
	case entity.CouponFixedAmount:
		if c.DiscountValue > orderAmount {
			return orderAmount
		}
		return c.DiscountValue
	default:
		return 0
	}
}

// ApplyWithinTx bumps the usage counter inside the caller's checkout
// transaction, so a failed checkout rolls the increment back with
// everything else. The guard also catches a concurrent redemption
// racing past the cap.
func (s *CouponService) ApplyWithinTx(tx *gorm.DB, couponID uint) error {
	affected, err := s.Repo.IncrementUsageGuard(tx, couponID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrCouponLimitReached
	}
	return nil
}

// ----- admin surface -----

type CreateCouponIn struct {
	Code            string     `json:"code" binding:"required"`
	Description     string     `json:"description"`
	DiscountType    string     `json:"discountType" binding:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	DiscountValue   int64      `json:"discountValue" binding:"required,min=1"`
	MinOrderAmount  int64      `json:"minOrderAmount"`
	MaxUsageCount   int        `json:"maxUsageCount"`
	ExpiresAt       *time.Time `json:"expiresAt"`
	UserID          *uint      `json:"userId"`
	IsWelcomeCoupon bool       `json:"isWelcomeCoupon"`
}

func (s *CouponService) Create(in *CreateCouponIn) (*entity.Coupon, error) {
	coupon := &entity.Coupon{
		Code:            strings.ToUpper(strings.TrimSpace(in.Code)),
		Description:     in.Description,
		DiscountType:    in.DiscountType,
		DiscountValue:   in.DiscountValue,
		IsActive:        true,
		MinOrderAmount:  in.MinOrderAmount,
		MaxUsageCount:   in.MaxUsageCount,
		ExpiresAt:       in.ExpiresAt,
		UserID:          in.UserID,
		IsWelcomeCoupon: in.IsWelcomeCoupon,
	}
	if err := s.Repo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *CouponService) List(page, limit int) ([]entity.Coupon, int64, error) {
	return s.Repo.List(page, limit)
}

func (s *CouponService) Deactivate(id uint) error {
	return s.Repo.Deactivate(id)
}
