package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/nhnamdev/food_delivery/internal/models"
)

func (r *GormRepo) ListCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListCartByShop(ctx context.Context, userID, shopID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ? AND shop_id = ?", userID, shopID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCartItem(ctx context.Context, id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertCartItem increments quantity for an existing (user, shop, food item)
// triple and creates the row otherwise, in one transaction.
func (r *GormRepo) UpsertCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND shop_id = ? AND food_item_id = ?", item.UserID, item.ShopID, item.FoodItemID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("user_id = ? AND shop_id = ? AND food_item_id = ?", item.UserID, item.ShopID, item.FoodItemID).First(item).Error
		}

		return tx.Create(item).Error
	})
}

func (r *GormRepo) SaveCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.CartItem{}, id).Error
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// DrainShopCart deletes every cart line for the (user, shop) pair and
// reports how many rows went away, so a caller inside a transaction can
// detect losing a race against a concurrent drain.
func (r *GormRepo) DrainShopCart(ctx context.Context, userID, shopID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("user_id = ? AND shop_id = ?", userID, shopID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
