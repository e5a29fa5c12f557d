package configs

import (
	"backend/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the platform admin account if it does not exist.
func SeedAdmin() error {
	email := getEnv("ADMIN_EMAIL", "admin@rental.local")

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(getEnv("ADMIN_PASSWORD", "admin1234")), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&entity.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: "Platform",
		LastName:  "Admin",
		Role:      entity.RoleAdmin,
	}).Error
}

// SeedWelcomeCoupon makes sure the first-order coupon exists.
func SeedWelcomeCoupon() error {
	var count int64
	if err := db.Model(&entity.Coupon{}).Where("code = ?", "WELCOME10").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&entity.Coupon{
		Code:            "WELCOME10",
		Description:     "10% off your first rental",
		DiscountType:    entity.CouponPercentage,
		DiscountValue:   10,
		IsActive:        true,
		IsWelcomeCoupon: true,
	}).Error
}
