package order

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nhnamdev/food_delivery/internal/repo"
)

const (
	orderCodePrefix  = "ORD-"
	codeMaxAttempts  = 5
	codeSuffixLength = 4 // bytes of uuid entropy, 8 hex chars on the wire
)

func newOrderCode() string {
	id := uuid.New()
	return orderCodePrefix + strings.ToUpper(hex.EncodeToString(id[:codeSuffixLength]))
}

// allocateOrderCode generates a code and re-rolls on collision. The check
// runs inside the caller's transaction; the unique index on order_code is
// the backstop for codes allocated concurrently.
func allocateOrderCode(ctx context.Context, tx *repo.GormRepo) (string, error) {
	for attempt := 0; attempt < codeMaxAttempts; attempt++ {
		code := newOrderCode()
		exists, err := tx.OrderCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: order code space exhausted after %d attempts", ErrConflict, codeMaxAttempts)
}
