package user

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nhnamdev/food_delivery/internal/hash"
	"github.com/nhnamdev/food_delivery/internal/models"
	"github.com/nhnamdev/food_delivery/internal/repo"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

type Service struct {
	Repo *repo.GormRepo
}

func (s *Service) Register(ctx context.Context, email, password, fullName, phone string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}
	if fullName == "" {
		return nil, fmt.Errorf("%w: full_name required", ErrValidation)
	}

	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: pwHash,
		FullName:     fullName,
		Phone:        phone,
		Role:         models.RoleCustomer,
		Status:       models.UserActive,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrValidation)
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrValidation)
	}
	if user.Status == models.UserBanned {
		return nil, fmt.Errorf("%w: account is banned", ErrValidation)
	}
	return user, nil
}

func (s *Service) ByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id uint, fullName, phone, avatar string) (*models.User, error) {
	user, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if fullName != "" {
		user.FullName = fullName
	}
	if phone != "" {
		user.Phone = phone
	}
	if avatar != "" {
		user.Avatar = avatar
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) ListAddresses(ctx context.Context, userID uint) ([]models.UserAddress, error) {
	return s.Repo.ListAddresses(ctx, userID)
}

func (s *Service) AddAddress(ctx context.Context, userID uint, label, address string, isDefault bool) (*models.UserAddress, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: address required", ErrValidation)
	}
	if _, err := s.ByID(ctx, userID); err != nil {
		return nil, err
	}

	addr := &models.UserAddress{
		UserID:    userID,
		Label:     label,
		Address:   address,
		IsDefault: isDefault,
	}
	if err := s.Repo.CreateAddress(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *Service) RemoveAddress(ctx context.Context, userID, id uint) error {
	deleted, err := s.Repo.DeleteAddress(ctx, userID, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%w: address %d", ErrNotFound, id)
	}
	return nil
}

func (s *Service) ChangePassword(ctx context.Context, id uint, current, next string) error {
	if next == "" {
		return fmt.Errorf("%w: new password required", ErrValidation)
	}

	user, err := s.ByID(ctx, id)
	if err != nil {
		return err
	}
	if !hash.CheckPassword(user.PasswordHash, current) {
		return fmt.Errorf("%w: current password is incorrect", ErrValidation)
	}

	pwHash, err := hash.HashPassword(next)
	if err != nil {
		return err
	}
	user.PasswordHash = pwHash
	return s.Repo.SaveUser(ctx, user)
}
