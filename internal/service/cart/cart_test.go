package cart

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nhnamdev/food_delivery/internal/models"
	"github.com/nhnamdev/food_delivery/internal/repo"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Shop{}, &models.FoodItem{}, &models.CartItem{},
	))

	return &Service{Repo: &repo.GormRepo{DB: db}}, db
}

func seedShop(t *testing.T, db *gorm.DB) (shopID, foodID uint) {
	t.Helper()

	owner := models.User{Email: "owner@example.com", PasswordHash: "x", FullName: "Owner"}
	require.NoError(t, db.Create(&owner).Error)

	shop := models.Shop{UserID: owner.ID, ShopName: "Pho 24", Address: "24 Hang Bai", Status: models.ShopActive}
	require.NoError(t, db.Create(&shop).Error)

	food := models.FoodItem{ShopID: shop.ID, CategoryID: 1, FoodName: "Pho Bo", Price: 45000}
	require.NoError(t, db.Create(&food).Error)

	return shop.ID, food.ID
}

func TestAddToCart_InsertsThenIncrements(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	shopID, foodID := seedShop(t, db)

	item, err := svc.AddToCart(ctx, 1, shopID, foodID, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(2), item.Quantity)

	// Same triple again must increment the existing row, not duplicate it.
	_, err = svc.AddToCart(ctx, 1, shopID, foodID, 3)
	require.NoError(t, err)

	items, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(5), items[0].Quantity)
}

func TestAddToCart_Validation(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	shopID, foodID := seedShop(t, db)

	_, err := svc.AddToCart(ctx, 1, shopID, foodID, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddToCart(ctx, 1, 9999, foodID, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddToCart(ctx, 1, shopID, 9999, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddToCart_FoodMustBelongToShop(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	shopID, _ := seedShop(t, db)

	other := models.Shop{UserID: 1, ShopName: "Bun Cha 1", Address: "1 Hang Than", Status: models.ShopActive}
	require.NoError(t, db.Create(&other).Error)
	stray := models.FoodItem{ShopID: other.ID, CategoryID: 1, FoodName: "Bun Cha", Price: 40000}
	require.NoError(t, db.Create(&stray).Error)

	_, err := svc.AddToCart(ctx, 1, shopID, stray.ID, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateQuantity(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	shopID, foodID := seedShop(t, db)

	item, err := svc.AddToCart(ctx, 1, shopID, foodID, 2)
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(ctx, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), updated.Quantity)

	// Quantity zero removes the line.
	gone, err := svc.UpdateQuantity(ctx, item.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, gone)

	items, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateQuantity_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateQuantity(context.Background(), 42, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	shopID, foodID := seedShop(t, db)

	item, err := svc.AddToCart(ctx, 1, shopID, foodID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, item.ID))

	err = svc.Remove(ctx, item.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearByShop_LeavesOtherShopsAlone(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	shopID, foodID := seedShop(t, db)

	other := models.Shop{UserID: 1, ShopName: "Banh Mi 3", Address: "3 Ly Thai To", Status: models.ShopActive}
	require.NoError(t, db.Create(&other).Error)
	otherFood := models.FoodItem{ShopID: other.ID, CategoryID: 1, FoodName: "Banh Mi Thit", Price: 25000}
	require.NoError(t, db.Create(&otherFood).Error)

	_, err := svc.AddToCart(ctx, 1, shopID, foodID, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, 1, other.ID, otherFood.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.ClearByShop(ctx, 1, shopID))

	items, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, other.ID, items[0].ShopID)
}
