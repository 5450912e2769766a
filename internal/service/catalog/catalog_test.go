package catalog

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

// Cache and ES stay nil here: a nil cache always misses and a nil ES client
// routes search through the database fallback.
func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Shop{}, &models.Category{},
		&models.ShopCategory{}, &models.FoodItem{},
	))

	return &Service{Repo: &repo.GormRepo{DB: db}}, db
}

func seedOwner(t *testing.T, db *gorm.DB) uint {
	t.Helper()

	owner := models.User{Email: "owner@example.com", PasswordHash: "x", FullName: "Owner", Role: models.RoleShopOwner}
	require.NoError(t, db.Create(&owner).Error)
	return owner.ID
}

func TestCreateShop_StartsPending(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	ownerID := seedOwner(t, db)

	shop := models.Shop{UserID: ownerID, ShopName: "Pho Thin", Address: "13 Lo Duc", Status: models.ShopActive}
	require.NoError(t, svc.CreateShop(ctx, &shop))

	// Whatever the caller sends, a new shop awaits approval.
	assert.Equal(t, models.ShopPending, shop.Status)

	err := svc.CreateShop(ctx, &models.Shop{UserID: ownerID, Address: "no name"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.CreateShop(ctx, &models.Shop{UserID: 9999, ShopName: "Ghost", Address: "nowhere"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateShop_PartialPatch(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	ownerID := seedOwner(t, db)

	shop := models.Shop{UserID: ownerID, ShopName: "Pho Thin", Address: "13 Lo Duc"}
	require.NoError(t, svc.CreateShop(ctx, &shop))

	updated, err := svc.UpdateShop(ctx, shop.ID, &models.Shop{ShopDescription: "pho bac chuan vi"})
	require.NoError(t, err)
	assert.Equal(t, "Pho Thin", updated.ShopName)
	assert.Equal(t, "pho bac chuan vi", updated.ShopDescription)
}

func TestListShopsByCategory(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	ownerID := seedOwner(t, db)

	pho := models.Shop{UserID: ownerID, ShopName: "Pho Thin", Address: "13 Lo Duc"}
	bun := models.Shop{UserID: ownerID, ShopName: "Bun Cha Huong Lien", Address: "24 Le Van Huu"}
	require.NoError(t, svc.CreateShop(ctx, &pho))
	require.NoError(t, svc.CreateShop(ctx, &bun))

	noodles, err := svc.CreateCategory(ctx, "Noodles", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.ShopCategory{ShopID: pho.ID, CategoryID: noodles.ID}).Error)

	shops, err := svc.ListShopsByCategory(ctx, noodles.ID)
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, pho.ID, shops[0].ID)
}

func TestFoodItemLifecycle(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	ownerID := seedOwner(t, db)

	shop := models.Shop{UserID: ownerID, ShopName: "Pho Thin", Address: "13 Lo Duc"}
	require.NoError(t, svc.CreateShop(ctx, &shop))
	noodles, err := svc.CreateCategory(ctx, "Noodles", "")
	require.NoError(t, err)

	item := models.FoodItem{ShopID: shop.ID, CategoryID: noodles.ID, FoodName: "Pho Tai", Price: 55000}
	require.NoError(t, svc.CreateFoodItem(ctx, &item))

	discount := int64(49000)
	updated, err := svc.UpdateFoodItem(ctx, item.ID, &models.FoodItem{DiscountPrice: &discount})
	require.NoError(t, err)
	require.NotNil(t, updated.DiscountPrice)
	assert.Equal(t, int64(49000), *updated.DiscountPrice)
	assert.Equal(t, int64(55000), updated.Price)

	require.NoError(t, svc.DeleteFoodItem(ctx, item.ID))

	_, err = svc.GetFoodItem(ctx, item.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateFoodItem_Validation(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	ownerID := seedOwner(t, db)

	shop := models.Shop{UserID: ownerID, ShopName: "Pho Thin", Address: "13 Lo Duc"}
	require.NoError(t, svc.CreateShop(ctx, &shop))

	err := svc.CreateFoodItem(ctx, &models.FoodItem{ShopID: shop.ID, CategoryID: 1, Price: 1000})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.CreateFoodItem(ctx, &models.FoodItem{ShopID: shop.ID, CategoryID: 1, FoodName: "Pho", Price: -1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.CreateFoodItem(ctx, &models.FoodItem{ShopID: shop.ID, CategoryID: 9999, FoodName: "Pho", Price: 1000})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchFoodItems_DatabaseFallback(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	ownerID := seedOwner(t, db)

	shop := models.Shop{UserID: ownerID, ShopName: "Pho Thin", Address: "13 Lo Duc"}
	require.NoError(t, svc.CreateShop(ctx, &shop))
	noodles, err := svc.CreateCategory(ctx, "Noodles", "")
	require.NoError(t, err)

	for _, name := range []string{"Pho Tai", "Pho Chin", "Bun Cha"} {
		require.NoError(t, svc.CreateFoodItem(ctx, &models.FoodItem{
			ShopID: shop.ID, CategoryID: noodles.ID, FoodName: name, Price: 50000,
		}))
	}

	total, items, err := svc.SearchFoodItems(ctx, "Pho", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	total, items, err = svc.SearchFoodItems(ctx, "Com", 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}
