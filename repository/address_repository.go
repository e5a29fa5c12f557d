package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type AddressRepository struct{ DB *gorm.DB }

func NewAddressRepository(db *gorm.DB) *AddressRepository { return &AddressRepository{DB: db} }

func (r *AddressRepository) Create(a *entity.Address) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if a.IsDefault {
			if err := tx.Model(&entity.Address{}).
				Where("user_id = ?", a.UserID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(a).Error
	})
}

func (r *AddressRepository) ListForUser(userID uint) ([]entity.Address, error) {
	var addresses []entity.Address
	err := r.DB.Where("user_id = ?", userID).Order("is_default DESC, id").Find(&addresses).Error
	return addresses, err
}

func (r *AddressRepository) GetForUser(userID, addressID uint) (*entity.Address, error) {
	var a entity.Address
	err := r.DB.Where("id = ? AND user_id = ?", addressID, userID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AddressRepository) Update(userID, addressID uint, updates map[string]any) (int64, error) {
	res := r.DB.Model(&entity.Address{}).
		Where("id = ? AND user_id = ?", addressID, userID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *AddressRepository) Delete(userID, addressID uint) (int64, error) {
	res := r.DB.Where("id = ? AND user_id = ?", addressID, userID).Delete(&entity.Address{})
	return res.RowsAffected, res.Error
}
