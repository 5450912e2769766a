package review

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
		&models.User{}, &models.Order{}, &models.OrderItem{}, &models.Review{},
	))

	return &Service{Repo: &repo.GormRepo{DB: db}}, db
}

func seedCompletedOrder(t *testing.T, db *gorm.DB) (orderID, customerID uint) {
	t.Helper()

	customer := models.User{Email: "an@example.com", PasswordHash: "x", FullName: "An"}
	require.NoError(t, db.Create(&customer).Error)

	order := models.Order{
		OrderCode:       "ORD-0A1B2C3D",
		CustomerID:      customer.ID,
		ShopID:          7,
		DeliveryAddress: "12 Nguyen Trai",
		DeliveryPhone:   "0901234567",
		Subtotal:        110000,
		DeliveryFee:     15000,
		TotalAmount:     125000,
		PaymentMethod:   models.PaymentCOD,
		PaymentStatus:   models.PaymentPaid,
		OrderStatus:     models.OrderCompleted,
	}
	require.NoError(t, db.Create(&order).Error)

	return order.ID, customer.ID
}

func TestCreate_TakesShopFromOrder(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	orderID, customerID := seedCompletedOrder(t, db)

	review, err := svc.Create(ctx, orderID, customerID, 5, "ngon lam", "")
	require.NoError(t, err)
	assert.Equal(t, uint(7), review.ShopID)
	assert.Equal(t, 5, review.Rating)
	assert.Nil(t, review.ShopReply)
}

func TestCreate_OneReviewPerOrder(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	orderID, customerID := seedCompletedOrder(t, db)

	_, err := svc.Create(ctx, orderID, customerID, 4, "good", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, orderID, customerID, 5, "even better", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestCreate_RatingBounds(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	orderID, customerID := seedCompletedOrder(t, db)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(ctx, orderID, customerID, rating, "", "")
		require.Error(t, err, "rating %d must be rejected", rating)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestCreate_MissingOrder(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	_, customerID := seedCompletedOrder(t, db)

	_, err := svc.Create(ctx, 9999, customerID, 5, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddShopReply_StampsRepliedAt(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	orderID, customerID := seedCompletedOrder(t, db)

	review, err := svc.Create(ctx, orderID, customerID, 4, "hoi man", "")
	require.NoError(t, err)

	replied, err := svc.AddShopReply(ctx, review.ID, "cam on ban, se rut kinh nghiem")
	require.NoError(t, err)
	require.NotNil(t, replied.ShopReply)
	assert.Equal(t, "cam on ban, se rut kinh nghiem", *replied.ShopReply)
	require.NotNil(t, replied.RepliedAt)

	_, err = svc.AddShopReply(ctx, review.ID, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListByShop(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	orderID, customerID := seedCompletedOrder(t, db)

	_, err := svc.Create(ctx, orderID, customerID, 5, "", "")
	require.NoError(t, err)

	reviews, err := svc.ListByShop(ctx, 7)
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	reviews, err = svc.ListByShop(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
