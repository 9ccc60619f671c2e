// Package ports defines repository and gateway interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, claiming, and querying order
// entities based on their status, ownership, and assignment state.
//
// All list queries return orders sorted by updated time, newest first.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no order exists with that id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order aggregate from storage.
	// Returns errs.ObjectNotFoundError when no order exists with that id.
	Delete(ctx context.Context, id kernel.UUID) error

	// AssignCourier atomically claims an unassigned order for a courier,
	// moving it to the given status. The claim only succeeds when the stored
	// order has no courier yet; a concurrent claim that lost the race gets
	// order.ErrAlreadyAssigned. Storage must enforce this as one conditional
	// write, not a read-then-write.
	AssignCourier(ctx context.Context, orderID kernel.UUID, courierID kernel.UUID, status order.Status) error

	// GetAllInStatusCreatedAfter retrieves orders in the given status created
	// at or after the cutoff. Used for broadcasting open orders to couriers.
	GetAllInStatusCreatedAfter(ctx context.Context, status order.Status, cutoff time.Time) ([]*order.Order, error)

	// GetAllByCourier retrieves all orders assigned to the given courier.
	GetAllByCourier(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error)

	// GetAllByCourierInStatus retrieves the courier's orders in one status.
	GetAllByCourierInStatus(ctx context.Context, courierID kernel.UUID, status order.Status) ([]*order.Order, error)

	// GetAllByStore retrieves all orders placed by the given store.
	GetAllByStore(ctx context.Context, storeID kernel.UUID) ([]*order.Order, error)

	// GetAllByStoreCreatedAfter retrieves the store's orders created at or
	// after the cutoff.
	GetAllByStoreCreatedAfter(ctx context.Context, storeID kernel.UUID, cutoff time.Time) ([]*order.Order, error)
}
