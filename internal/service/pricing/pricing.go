package pricing

import (
	"errors"
	"fmt"
)

// DeliveryFee is charged once per order.
const DeliveryFee int64 = 15000

var (
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
	ErrNegativeTotal       = errors.New("total amount must not be negative")
)

// EffectiveUnitPrice is the discount price when one is set, else the base price.
func EffectiveUnitPrice(price int64, discountPrice *int64) int64 {
	if discountPrice != nil {
		return *discountPrice
	}
	return price
}

func LineSubtotal(unitPrice int64, quantity uint) (int64, error) {
	if quantity == 0 {
		return 0, ErrNonPositiveQuantity
	}
	return unitPrice * int64(quantity), nil
}

// OrderTotal computes subtotal + deliveryFee - discountAmount and rejects a
// negative result instead of clamping it.
func OrderTotal(subtotal, deliveryFee, discountAmount int64) (int64, error) {
	total := subtotal + deliveryFee - discountAmount
	if total < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrNegativeTotal, total)
	}
	return total, nil
}
