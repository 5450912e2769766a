package order

import (
	"github.com/nhnamdev/food_delivery/internal/models"
)

// transitions is the full forward sequence, one adjacent step at a time.
// cancelled is reachable from every non-terminal state but only through
// Cancel, which records who cancelled and why.
var transitions = map[models.OrderStatus]models.OrderStatus{
	models.OrderPending:    models.OrderConfirmed,
	models.OrderConfirmed:  models.OrderPreparing,
	models.OrderPreparing:  models.OrderReady,
	models.OrderReady:      models.OrderDelivering,
	models.OrderDelivering: models.OrderCompleted,
}

func validStatus(s models.OrderStatus) bool {
	switch s {
	case models.OrderPending, models.OrderConfirmed, models.OrderPreparing,
		models.OrderReady, models.OrderDelivering, models.OrderCompleted,
		models.OrderCancelled:
		return true
	}
	return false
}

func isTerminal(s models.OrderStatus) bool {
	return s == models.OrderCompleted || s == models.OrderCancelled
}

// canTransition reports whether current may move to next via UpdateStatus.
// Re-entering the current status is allowed as an idempotent no-op.
func canTransition(current, next models.OrderStatus) bool {
	if current == next {
		return !isTerminal(current)
	}
	return transitions[current] == next
}
