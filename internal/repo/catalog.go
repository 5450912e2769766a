package repo

import (
	"context"

	"github.com/nhnamdev/food_delivery/internal/models"
)

func (r *GormRepo) GetShop(ctx context.Context, id uint) (*models.Shop, error) {
	var shop models.Shop
	if err := r.DB.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *GormRepo) ListShops(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *GormRepo) ListActiveShops(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.DB.WithContext(ctx).Where("status = ?", models.ShopActive).Order("created_at DESC").Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *GormRepo) ListShopsByOwner(ctx context.Context, userID uint) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *GormRepo) ListShopsByCategory(ctx context.Context, categoryID uint) ([]models.Shop, error) {
	var shops []models.Shop
	err := r.DB.WithContext(ctx).
		Joins("JOIN shop_categories ON shop_categories.shop_id = shops.id").
		Where("shop_categories.category_id = ? AND shops.status = ?", categoryID, models.ShopActive).
		Find(&shops).Error
	if err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *GormRepo) ListTopRatedShops(ctx context.Context, limit int) ([]models.Shop, error) {
	var shops []models.Shop
	err := r.DB.WithContext(ctx).
		Where("status = ?", models.ShopActive).
		Order("rating_average DESC, total_reviews DESC").
		Limit(limit).
		Find(&shops).Error
	if err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *GormRepo) CreateShop(ctx context.Context, shop *models.Shop) error {
	return r.DB.WithContext(ctx).Create(shop).Error
}

func (r *GormRepo) SaveShop(ctx context.Context, shop *models.Shop) error {
	return r.DB.WithContext(ctx).Save(shop).Error
}

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := r.DB.WithContext(ctx).Order("category_name").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

func (r *GormRepo) SaveCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Save(cat).Error
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Category{}, id).Error
}

func (r *GormRepo) GetFoodItem(ctx context.Context, id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) ListFoodItems(ctx context.Context) ([]models.FoodItem, error) {
	var items []models.FoodItem
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListFoodItemsByShop(ctx context.Context, shopID uint) ([]models.FoodItem, error) {
	var items []models.FoodItem
	if err := r.DB.WithContext(ctx).Where("shop_id = ?", shopID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListFoodItemsByCategory(ctx context.Context, categoryID uint) ([]models.FoodItem, error) {
	var items []models.FoodItem
	if err := r.DB.WithContext(ctx).Where("category_id = ?", categoryID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateFoodItem(ctx context.Context, item *models.FoodItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) SaveFoodItem(ctx context.Context, item *models.FoodItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeleteFoodItem(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.FoodItem{}, id).Error
}
