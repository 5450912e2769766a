package order

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
	"github.com/nhnamdev/food_delivery/internal/service/pricing"
)

var (
	ErrValidation   = errors.New("validation")          // 400
	ErrNotFound     = errors.New("not found")           // 404
	ErrPrecondition = errors.New("failed precondition") // 422
	ErrConflict     = errors.New("conflict")            // 409
)

// Engine owns the cart-to-order conversion and the order status machine.
type Engine struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

type CreateParams struct {
	CustomerID      uint
	ShopID          uint
	DeliveryAddress string
	DeliveryPhone   string
	DeliveryNote    string
	PaymentMethod   models.PaymentMethod
}

// CreateFromCart converts the customer's cart for one shop into an immutable
// priced order. The snapshot, the order insert and the cart drain are a
// single transaction: an error at any step leaves no trace.
func (e *Engine) CreateFromCart(ctx context.Context, p CreateParams) (*models.Order, error) {
	if p.DeliveryAddress == "" {
		return nil, fmt.Errorf("%w: delivery_address required", ErrValidation)
	}
	if p.DeliveryPhone == "" {
		return nil, fmt.Errorf("%w: delivery_phone required", ErrValidation)
	}
	if p.PaymentMethod == "" {
		p.PaymentMethod = models.PaymentCOD
	}
	if p.PaymentMethod != models.PaymentCOD && p.PaymentMethod != models.PaymentBanking {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, p.PaymentMethod)
	}

	var order *models.Order

	err := e.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		if _, err := tx.GetUser(ctx, p.CustomerID); err != nil {
			return notFound(err, "customer", p.CustomerID)
		}
		if _, err := tx.GetShop(ctx, p.ShopID); err != nil {
			return notFound(err, "shop", p.ShopID)
		}

		lines, err := tx.ListCartByShop(ctx, p.CustomerID, p.ShopID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return fmt.Errorf("%w: cart is empty", ErrPrecondition)
		}

		items := make([]models.OrderItem, 0, len(lines))
		var subtotal int64
		for _, line := range lines {
			food, err := tx.GetFoodItem(ctx, line.FoodItemID)
			if err != nil {
				return notFound(err, "food item", line.FoodItemID)
			}

			unit := pricing.EffectiveUnitPrice(food.Price, food.DiscountPrice)
			lineSubtotal, err := pricing.LineSubtotal(unit, line.Quantity)
			if err != nil {
				return fmt.Errorf("%w: %v for food item %d", ErrPrecondition, err, food.ID)
			}

			items = append(items, models.OrderItem{
				FoodItemID:   food.ID,
				FoodName:     food.FoodName,
				UnitPrice:    unit,
				Quantity:     line.Quantity,
				LineSubtotal: lineSubtotal,
			})
			subtotal += lineSubtotal
		}

		total, err := pricing.OrderTotal(subtotal, pricing.DeliveryFee, 0)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPrecondition, err)
		}

		code, err := allocateOrderCode(ctx, tx)
		if err != nil {
			return err
		}

		order = &models.Order{
			OrderCode:       code,
			CustomerID:      p.CustomerID,
			ShopID:          p.ShopID,
			DeliveryAddress: p.DeliveryAddress,
			DeliveryPhone:   p.DeliveryPhone,
			DeliveryNote:    p.DeliveryNote,
			Subtotal:        subtotal,
			DeliveryFee:     pricing.DeliveryFee,
			DiscountAmount:  0,
			TotalAmount:     total,
			PaymentMethod:   p.PaymentMethod,
			PaymentStatus:   models.PaymentUnpaid,
			OrderStatus:     models.OrderPending,
			Items:           items,
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		drained, err := tx.DrainShopCart(ctx, p.CustomerID, p.ShopID)
		if err != nil {
			return err
		}
		if drained != int64(len(lines)) {
			// Another checkout drained the cart under us.
			return fmt.Errorf("%w: cart changed during checkout", ErrPrecondition)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	e.publish(ctx, map[string]interface{}{
		"type":       "order_created",
		"orderID":    order.ID,
		"orderCode":  order.OrderCode,
		"customerID": order.CustomerID,
		"shopID":     order.ShopID,
		"total":      order.TotalAmount,
	}, order.OrderCode)

	return order, nil
}

// UpdateStatus moves an order one step along the forward sequence.
// Re-sending the current status is a no-op; confirmed/completed timestamps
// are stamped once and never rewritten.
func (e *Engine) UpdateStatus(ctx context.Context, orderID uint, next models.OrderStatus) (*models.Order, error) {
	if !validStatus(next) {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, next)
	}
	if next == models.OrderCancelled {
		return nil, fmt.Errorf("%w: cancellation must record an actor and a reason", ErrPrecondition)
	}

	var order *models.Order

	err := e.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		var err error
		order, err = tx.GetOrder(ctx, orderID)
		if err != nil {
			return notFound(err, "order", orderID)
		}

		if order.OrderStatus == next {
			return nil
		}
		if !canTransition(order.OrderStatus, next) {
			return fmt.Errorf("%w: cannot move order from %s to %s", ErrPrecondition, order.OrderStatus, next)
		}

		fields := map[string]interface{}{"order_status": next}
		now := time.Now().UTC()
		if next == models.OrderConfirmed && order.ConfirmedAt == nil {
			fields["confirmed_at"] = now
		}
		if next == models.OrderCompleted && order.CompletedAt == nil {
			fields["completed_at"] = now
		}

		if err := tx.UpdateOrderFields(ctx, orderID, fields); err != nil {
			return err
		}
		order, err = tx.GetOrder(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.publish(ctx, map[string]interface{}{
		"type":    "order_status_changed",
		"orderID": order.ID,
		"status":  order.OrderStatus,
	}, order.OrderCode)

	return order, nil
}

// Cancel moves any non-terminal order to cancelled and records who did it
// and why, in one write.
func (e *Engine) Cancel(ctx context.Context, orderID, cancelledByID uint, reason string) (*models.Order, error) {
	var order *models.Order

	err := e.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		var err error
		order, err = tx.GetOrder(ctx, orderID)
		if err != nil {
			return notFound(err, "order", orderID)
		}
		if _, err := tx.GetUser(ctx, cancelledByID); err != nil {
			return notFound(err, "user", cancelledByID)
		}
		if isTerminal(order.OrderStatus) {
			return fmt.Errorf("%w: order is already %s", ErrPrecondition, order.OrderStatus)
		}

		fields := map[string]interface{}{
			"order_status":  models.OrderCancelled,
			"cancelled_by":  cancelledByID,
			"cancel_reason": reason,
		}
		if err := tx.UpdateOrderFields(ctx, orderID, fields); err != nil {
			return err
		}
		order, err = tx.GetOrder(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.publish(ctx, map[string]interface{}{
		"type":    "order_cancelled",
		"orderID": order.ID,
		"by":      cancelledByID,
		"reason":  reason,
	}, order.OrderCode)

	return order, nil
}

// ByID returns the order with its line snapshots plus whether a review
// already exists, so the review gate never needs its own copy of order state.
func (e *Engine) ByID(ctx context.Context, orderID uint) (*models.Order, bool, error) {
	order, err := e.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, false, notFound(err, "order", orderID)
	}
	hasReview, err := e.Repo.ReviewExistsForOrder(ctx, orderID)
	if err != nil {
		return nil, false, err
	}
	return order, hasReview, nil
}

func (e *Engine) ByCode(ctx context.Context, code string) (*models.Order, error) {
	order, err := e.Repo.GetOrderByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, code)
		}
		return nil, err
	}
	return order, nil
}

func (e *Engine) ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]models.Order, error) {
	return e.Repo.ListOrdersByCustomer(ctx, customerID, limit, offset)
}

func (e *Engine) ListByShop(ctx context.Context, shopID uint, limit, offset int) ([]models.Order, error) {
	return e.Repo.ListOrdersByShop(ctx, shopID, limit, offset)
}

func (e *Engine) publish(ctx context.Context, event map[string]interface{}, key string) {
	if err := e.Events.Publish(ctx, events.TopicOrderEvents, key, event); err != nil {
		logging.FromContext(ctx).Warn("order_event_publish_failed", "error", err)
	}
}

func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
	}
	return err
}
