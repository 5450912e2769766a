package user

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
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserAddress{}))

	return &Service{Repo: &repo.GormRepo{DB: db}}, db
}

func TestRegister_SuccessAndConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "an@example.com", "Secret123", "Nguyen Van An", "0901234567")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.Equal(t, models.UserActive, user.Status)
	assert.NotEqual(t, "Secret123", user.PasswordHash)

	_, err = svc.Register(ctx, "an@example.com", "Other456", "Someone Else", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name            string
		email, password string
		fullName        string
	}{
		{name: "empty email", email: "", password: "secret", fullName: "An"},
		{name: "empty password", email: "an@example.com", password: "", fullName: "An"},
		{name: "empty full name", email: "an@example.com", password: "secret", fullName: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.password, tt.fullName, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestLogin(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "an@example.com", "Secret123", "An", "")
	require.NoError(t, err)

	user, err := svc.Login(ctx, "an@example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Login(ctx, "an@example.com", "WrongPass")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Login(ctx, "nobody@example.com", "Secret123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", registered.ID).Update("status", models.UserBanned).Error)
	_, err = svc.Login(ctx, "an@example.com", "Secret123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "an@example.com", "Secret123", "An", "")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "WrongPass", "NewSecret456")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "Secret123", "NewSecret456"))

	_, err = svc.Login(ctx, "an@example.com", "NewSecret456")
	require.NoError(t, err)
}

func TestAddresses_DefaultDemotion(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "an@example.com", "Secret123", "An", "")
	require.NoError(t, err)

	home, err := svc.AddAddress(ctx, user.ID, "home", "12 Nguyen Trai", true)
	require.NoError(t, err)
	assert.True(t, home.IsDefault)

	work, err := svc.AddAddress(ctx, user.ID, "work", "88 Lang Ha", true)
	require.NoError(t, err)
	assert.True(t, work.IsDefault)

	addrs, err := svc.ListAddresses(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, addrs, 2)
	// New default comes first; the old one was demoted.
	assert.Equal(t, work.ID, addrs[0].ID)
	assert.False(t, addrs[1].IsDefault)

	require.NoError(t, svc.RemoveAddress(ctx, user.ID, home.ID))
	err = svc.RemoveAddress(ctx, user.ID, home.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddAddress(ctx, user.ID, "empty", "", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProfile_KeepsUnsetFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "an@example.com", "Secret123", "An", "0901234567")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, "Nguyen Van An", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Nguyen Van An", updated.FullName)
	assert.Equal(t, "0901234567", updated.Phone)
}
