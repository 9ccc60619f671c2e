// Package queries contains read-only operations on the order book.
// Implements the Query side of the CQRS architecture: handlers never mutate
// state and enrich raw aggregates with directory data before returning them.
package queries

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ErrQueryForbidden is returned when the requesting user may not see the
// requested data.
var ErrQueryForbidden = errors.New("requester is not allowed to read this data")

// OrderReader is the read-side slice of the order repository.
// Query handlers depend on it instead of the full repository so reads stay
// mockable and visibly side-effect free.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetAllInStatusCreatedAfter(ctx context.Context, status order.Status, cutoff time.Time) ([]*order.Order, error)
	GetAllByCourier(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error)
	GetAllByCourierInStatus(ctx context.Context, courierID kernel.UUID, status order.Status) ([]*order.Order, error)
	GetAllByStore(ctx context.Context, storeID kernel.UUID) ([]*order.Order, error)
	GetAllByStoreCreatedAfter(ctx context.Context, storeID kernel.UUID, cutoff time.Time) ([]*order.Order, error)
}
