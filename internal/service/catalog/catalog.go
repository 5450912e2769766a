package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/nhnamdev/food_delivery/internal/cache"
	"github.com/nhnamdev/food_delivery/internal/es"
	"github.com/nhnamdev/food_delivery/internal/logging"
	"github.com/nhnamdev/food_delivery/internal/models"
	"github.com/nhnamdev/food_delivery/internal/repo"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

const topRatedLimit = 10

type Service struct {
	Repo  *repo.GormRepo
	Cache *cache.Cache
	ES    *elasticsearch.Client
}

func (s *Service) GetShop(ctx context.Context, id uint) (*models.Shop, error) {
	var cached models.Shop
	if hit, err := s.Cache.Get(ctx, cache.ShopKey(id), &cached); err == nil && hit {
		return &cached, nil
	}

	shop, err := s.Repo.GetShop(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "shop %d", id)
	}
	if err := s.Cache.Set(ctx, cache.ShopKey(id), shop); err != nil {
		logging.FromContext(ctx).Warn("shop_cache_set_failed", "error", err)
	}
	return shop, nil
}

func (s *Service) ListShops(ctx context.Context) ([]models.Shop, error) {
	return s.Repo.ListShops(ctx)
}

func (s *Service) ListActiveShops(ctx context.Context) ([]models.Shop, error) {
	return s.Repo.ListActiveShops(ctx)
}

func (s *Service) ListShopsByOwner(ctx context.Context, userID uint) ([]models.Shop, error) {
	return s.Repo.ListShopsByOwner(ctx, userID)
}

func (s *Service) ListShopsByCategory(ctx context.Context, categoryID uint) ([]models.Shop, error) {
	return s.Repo.ListShopsByCategory(ctx, categoryID)
}

func (s *Service) TopRatedShops(ctx context.Context) ([]models.Shop, error) {
	return s.Repo.ListTopRatedShops(ctx, topRatedLimit)
}

func (s *Service) CreateShop(ctx context.Context, shop *models.Shop) error {
	if shop.ShopName == "" {
		return fmt.Errorf("%w: shop_name required", ErrValidation)
	}
	if shop.Address == "" {
		return fmt.Errorf("%w: address required", ErrValidation)
	}
	if _, err := s.Repo.GetUser(ctx, shop.UserID); err != nil {
		return wrapNotFound(err, "user %d", shop.UserID)
	}
	shop.Status = models.ShopPending
	return s.Repo.CreateShop(ctx, shop)
}

func (s *Service) UpdateShop(ctx context.Context, id uint, patch *models.Shop) (*models.Shop, error) {
	shop, err := s.Repo.GetShop(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "shop %d", id)
	}

	if patch.ShopName != "" {
		shop.ShopName = patch.ShopName
	}
	if patch.ShopDescription != "" {
		shop.ShopDescription = patch.ShopDescription
	}
	if patch.CoverImage != "" {
		shop.CoverImage = patch.CoverImage
	}
	if patch.Address != "" {
		shop.Address = patch.Address
	}
	if patch.OpeningTime != "" {
		shop.OpeningTime = patch.OpeningTime
	}
	if patch.ClosingTime != "" {
		shop.ClosingTime = patch.ClosingTime
	}

	if err := s.Repo.SaveShop(ctx, shop); err != nil {
		return nil, err
	}
	if err := s.Cache.Delete(ctx, cache.ShopKey(id)); err != nil {
		logging.FromContext(ctx).Warn("shop_cache_invalidate_failed", "error", err)
	}
	return shop, nil
}

func (s *Service) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "category %d", id)
	}
	return cat, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category_name required", ErrValidation)
	}
	cat := &models.Category{CategoryName: name, CategoryDescription: description}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id uint, name, description string) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "category %d", id)
	}
	if name != "" {
		cat.CategoryName = name
	}
	if description != "" {
		cat.CategoryDescription = description
	}
	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.Repo.GetCategory(ctx, id); err != nil {
		return wrapNotFound(err, "category %d", id)
	}
	return s.Repo.DeleteCategory(ctx, id)
}

func (s *Service) GetFoodItem(ctx context.Context, id uint) (*models.FoodItem, error) {
	var cached models.FoodItem
	if hit, err := s.Cache.Get(ctx, cache.FoodKey(id), &cached); err == nil && hit {
		return &cached, nil
	}

	item, err := s.Repo.GetFoodItem(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "food item %d", id)
	}
	if err := s.Cache.Set(ctx, cache.FoodKey(id), item); err != nil {
		logging.FromContext(ctx).Warn("food_cache_set_failed", "error", err)
	}
	return item, nil
}

func (s *Service) ListFoodItems(ctx context.Context) ([]models.FoodItem, error) {
	return s.Repo.ListFoodItems(ctx)
}

func (s *Service) ListFoodItemsByShop(ctx context.Context, shopID uint) ([]models.FoodItem, error) {
	return s.Repo.ListFoodItemsByShop(ctx, shopID)
}

func (s *Service) ListFoodItemsByCategory(ctx context.Context, categoryID uint) ([]models.FoodItem, error) {
	return s.Repo.ListFoodItemsByCategory(ctx, categoryID)
}

func (s *Service) CreateFoodItem(ctx context.Context, item *models.FoodItem) error {
	if item.FoodName == "" {
		return fmt.Errorf("%w: food_name required", ErrValidation)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if item.DiscountPrice != nil && *item.DiscountPrice < 0 {
		return fmt.Errorf("%w: discount_price must not be negative", ErrValidation)
	}
	if _, err := s.Repo.GetShop(ctx, item.ShopID); err != nil {
		return wrapNotFound(err, "shop %d", item.ShopID)
	}
	if _, err := s.Repo.GetCategory(ctx, item.CategoryID); err != nil {
		return wrapNotFound(err, "category %d", item.CategoryID)
	}

	if err := s.Repo.CreateFoodItem(ctx, item); err != nil {
		return err
	}
	s.reindex(ctx, item)
	return nil
}

func (s *Service) UpdateFoodItem(ctx context.Context, id uint, patch *models.FoodItem) (*models.FoodItem, error) {
	item, err := s.Repo.GetFoodItem(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "food item %d", id)
	}

	if patch.FoodName != "" {
		item.FoodName = patch.FoodName
	}
	if patch.FoodDescription != "" {
		item.FoodDescription = patch.FoodDescription
	}
	if patch.Price > 0 {
		item.Price = patch.Price
	}
	if patch.DiscountPrice != nil {
		if *patch.DiscountPrice < 0 {
			return nil, fmt.Errorf("%w: discount_price must not be negative", ErrValidation)
		}
		item.DiscountPrice = patch.DiscountPrice
	}
	if patch.Image != "" {
		item.Image = patch.Image
	}

	if err := s.Repo.SaveFoodItem(ctx, item); err != nil {
		return nil, err
	}
	if err := s.Cache.Delete(ctx, cache.FoodKey(id)); err != nil {
		logging.FromContext(ctx).Warn("food_cache_invalidate_failed", "error", err)
	}
	s.reindex(ctx, item)
	return item, nil
}

func (s *Service) DeleteFoodItem(ctx context.Context, id uint) error {
	if _, err := s.Repo.GetFoodItem(ctx, id); err != nil {
		return wrapNotFound(err, "food item %d", id)
	}
	if err := s.Repo.DeleteFoodItem(ctx, id); err != nil {
		return err
	}
	if err := s.Cache.Delete(ctx, cache.FoodKey(id)); err != nil {
		logging.FromContext(ctx).Warn("food_cache_invalidate_failed", "error", err)
	}
	if s.ES != nil {
		if err := es.DeleteFood(ctx, s.ES, id); err != nil {
			logging.FromContext(ctx).Warn("food_index_delete_failed", "error", err)
		}
	}
	return nil
}

// SearchFoodItems goes through elasticsearch when configured and falls back
// to a LIKE scan otherwise.
func (s *Service) SearchFoodItems(ctx context.Context, query string, from, size int) (int64, []models.FoodItem, error) {
	if s.ES != nil {
		return es.SearchFood(ctx, s.ES, query, from, size)
	}

	var items []models.FoodItem
	q := "%" + query + "%"
	err := s.Repo.DB.WithContext(ctx).
		Where("food_name LIKE ? OR food_description LIKE ?", q, q).
		Offset(from).Limit(size).
		Find(&items).Error
	if err != nil {
		return 0, nil, err
	}
	return int64(len(items)), items, nil
}

func (s *Service) reindex(ctx context.Context, item *models.FoodItem) {
	if s.ES == nil {
		return
	}
	if err := es.IndexFood(ctx, s.ES, item); err != nil {
		logging.FromContext(ctx).Warn("food_index_failed", "foodItemID", item.ID, "error", err)
	}
}

func wrapNotFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
	}
	return err
}
