package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nhnamdev/food_delivery/internal/events"
	"github.com/nhnamdev/food_delivery/internal/logging"
	"github.com/nhnamdev/food_delivery/internal/models"
	"github.com/nhnamdev/food_delivery/internal/repo"
)

var (
	ErrValidation   = errors.New("validation")
	ErrNotFound     = errors.New("not found")
	ErrPrecondition = errors.New("failed precondition")
)

type Service struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

// Create records the single review an order may receive. The order must be
// persisted first; the shop is taken from the order, never from the caller.
func (s *Service) Create(ctx context.Context, orderID, customerID uint, rating int, comment, images string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	var review *models.Review

	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		order, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}
		if _, err := tx.GetUser(ctx, customerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: customer %d", ErrNotFound, customerID)
			}
			return err
		}

		exists, err := tx.ReviewExistsForOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: review already exists for order %d", ErrPrecondition, orderID)
		}

		review = &models.Review{
			OrderID:    orderID,
			CustomerID: customerID,
			ShopID:     order.ShopID,
			Rating:     rating,
			Comment:    comment,
			Images:     images,
		}
		return tx.CreateReview(ctx, review)
	})
	if err != nil {
		return nil, err
	}

	if err := s.Events.Publish(ctx, events.TopicReviewEvents, fmt.Sprint(review.ID), map[string]interface{}{
		"type":     "review_created",
		"reviewID": review.ID,
		"orderID":  orderID,
		"shopID":   review.ShopID,
		"rating":   rating,
	}); err != nil {
		logging.FromContext(ctx).Warn("review_event_publish_failed", "error", err)
	}

	return review, nil
}

func (s *Service) ByID(ctx context.Context, id uint) (*models.Review, error) {
	review, err := s.Repo.GetReview(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: review %d", ErrNotFound, id)
		}
		return nil, err
	}
	return review, nil
}

func (s *Service) ListByShop(ctx context.Context, shopID uint) ([]models.Review, error) {
	return s.Repo.ListReviewsByShop(ctx, shopID)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID uint) ([]models.Review, error) {
	return s.Repo.ListReviewsByCustomer(ctx, customerID)
}

// AddShopReply sets the shop's one reply and stamps replied_at.
func (s *Service) AddShopReply(ctx context.Context, reviewID uint, reply string) (*models.Review, error) {
	if reply == "" {
		return nil, fmt.Errorf("%w: reply required", ErrValidation)
	}

	review, err := s.ByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	review.ShopReply = &reply
	review.RepliedAt = &now
	if err := s.Repo.SaveReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
