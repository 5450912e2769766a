package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/nhnamdev/food_delivery/internal/models"
)

func (r *GormRepo) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *GormRepo) SaveUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Save(user).Error
}

func (r *GormRepo) ListAddresses(ctx context.Context, userID uint) ([]models.UserAddress, error) {
	var addrs []models.UserAddress
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("is_default DESC, id").Find(&addrs).Error; err != nil {
		return nil, err
	}
	return addrs, nil
}

// CreateAddress inserts an address and, when it is flagged default, demotes
// the user's previous default in the same transaction.
func (r *GormRepo) CreateAddress(ctx context.Context, addr *models.UserAddress) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if addr.IsDefault {
			if err := tx.Model(&models.UserAddress{}).
				Where("user_id = ?", addr.UserID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(addr).Error
	})
}

func (r *GormRepo) DeleteAddress(ctx context.Context, userID, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserAddress{}, id)
	return res.RowsAffected, res.Error
}
