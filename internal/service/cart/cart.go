package cart

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nhnamdev/food_delivery/internal/models"
	"github.com/nhnamdev/food_delivery/internal/repo"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

type Service struct {
	Repo *repo.GormRepo
}

func (s *Service) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.Repo.ListCart(ctx, userID)
}

func (s *Service) GetCartByShop(ctx context.Context, userID, shopID uint) ([]models.CartItem, error) {
	return s.Repo.ListCartByShop(ctx, userID, shopID)
}

// AddToCart adds quantity of a food item; an existing (user, shop, food item)
// row is incremented instead of duplicated.
func (s *Service) AddToCart(ctx context.Context, userID, shopID, foodItemID uint, quantity uint) (*models.CartItem, error) {
	if quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if _, err := s.Repo.GetShop(ctx, shopID); err != nil {
		return nil, wrapNotFound(err, "shop %d", shopID)
	}
	food, err := s.Repo.GetFoodItem(ctx, foodItemID)
	if err != nil {
		return nil, wrapNotFound(err, "food item %d", foodItemID)
	}
	if food.ShopID != shopID {
		return nil, fmt.Errorf("%w: food item %d does not belong to shop %d", ErrValidation, foodItemID, shopID)
	}

	item := &models.CartItem{
		UserID:     userID,
		ShopID:     shopID,
		FoodItemID: foodItemID,
		Quantity:   quantity,
	}
	if err := s.Repo.UpsertCartItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity sets an absolute quantity; zero removes the row.
func (s *Service) UpdateQuantity(ctx context.Context, cartID uint, quantity uint) (*models.CartItem, error) {
	item, err := s.Repo.GetCartItem(ctx, cartID)
	if err != nil {
		return nil, wrapNotFound(err, "cart item %d", cartID)
	}

	if quantity == 0 {
		if err := s.Repo.DeleteCartItem(ctx, cartID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	item.Quantity = quantity
	if err := s.Repo.SaveCartItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Remove(ctx context.Context, cartID uint) error {
	if _, err := s.Repo.GetCartItem(ctx, cartID); err != nil {
		return wrapNotFound(err, "cart item %d", cartID)
	}
	return s.Repo.DeleteCartItem(ctx, cartID)
}

func (s *Service) Clear(ctx context.Context, userID uint) error {
	return s.Repo.ClearCart(ctx, userID)
}

func (s *Service) ClearByShop(ctx context.Context, userID, shopID uint) error {
	_, err := s.Repo.DrainShopCart(ctx, userID, shopID)
	return err
}

func wrapNotFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
	}
	return err
}
