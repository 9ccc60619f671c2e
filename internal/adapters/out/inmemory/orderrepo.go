// Package inmemory provides map-backed implementations of the outbound ports.
// Used for local development and tests that need real repository semantics,
// the single-claim guarantee included, without a database.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// OrderRepository is a mutex-guarded in-memory order store. The mutex plays
// the role the conditional UPDATE plays in postgres: claim checks and writes
// happen under one critical section, so concurrent claims serialize and
// exactly one wins.
type OrderRepository struct {
	mu     sync.Mutex
	orders map[kernel.UUID]*order.Order
}

// NewOrderRepository creates an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[kernel.UUID]*order.Order),
	}
}

// clone deep-copies an aggregate so callers never share mutable state with
// the store.
func clone(aggregate *order.Order) (*order.Order, error) {
	var courierID *kernel.UUID
	if id := aggregate.Courier(); id != nil {
		copied := *id
		courierID = &copied
	}

	return order.RestoreOrder(
		aggregate.ID(), aggregate.StoreID(), courierID,
		aggregate.CustomerName(), aggregate.CustomerPhone(), aggregate.CustomerAddress(),
		aggregate.Amount(), aggregate.DeliveryFee(),
		aggregate.Status(), aggregate.CreatedAt(), aggregate.UpdatedAt(),
	)
}

// Add stores a new order.
func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	stored, err := clone(aggregate)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[aggregate.ID()]; exists {
		return errs.NewValueIsInvalidError("orderID")
	}
	r.orders[aggregate.ID()] = stored
	return nil
}

// Update replaces a stored order.
func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	stored, err := clone(aggregate)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[aggregate.ID()]; !exists {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	r.orders[aggregate.ID()] = stored
	return nil
}

// Get retrieves an order by ID.
func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored, exists := r.orders[id]
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return clone(stored)
}

// Delete removes an order by ID.
func (r *OrderRepository) Delete(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[id]; !exists {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	delete(r.orders, id)
	return nil
}

// AssignCourier claims an order for a courier. The check and the write share
// the critical section, matching the atomicity of the SQL implementation.
func (r *OrderRepository) AssignCourier(
	_ context.Context,
	orderID kernel.UUID,
	courierID kernel.UUID,
	status order.Status,
) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.orders[orderID]
	if !exists {
		return errs.NewObjectNotFoundError("order", orderID.String())
	}

	return stored.Assign(courierID, status)
}

// GetAllInStatusCreatedAfter lists orders in a status created at or after the
// cutoff, most recently updated first.
func (r *OrderRepository) GetAllInStatusCreatedAfter(
	_ context.Context,
	status order.Status,
	cutoff time.Time,
) ([]*order.Order, error) {
	return r.list(func(o *order.Order) bool {
		return o.Status() == status && !o.CreatedAt().Before(cutoff)
	})
}

// GetAllByCourier lists all orders assigned to a courier.
func (r *OrderRepository) GetAllByCourier(_ context.Context, courierID kernel.UUID) ([]*order.Order, error) {
	return r.list(func(o *order.Order) bool {
		return o.Courier() != nil && o.Courier().IsEqual(courierID)
	})
}

// GetAllByCourierInStatus lists a courier's orders in one status.
func (r *OrderRepository) GetAllByCourierInStatus(
	_ context.Context,
	courierID kernel.UUID,
	status order.Status,
) ([]*order.Order, error) {
	return r.list(func(o *order.Order) bool {
		return o.Courier() != nil && o.Courier().IsEqual(courierID) && o.Status() == status
	})
}

// GetAllByStore lists all orders placed by a store.
func (r *OrderRepository) GetAllByStore(_ context.Context, storeID kernel.UUID) ([]*order.Order, error) {
	return r.list(func(o *order.Order) bool {
		return o.StoreID().IsEqual(storeID)
	})
}

// GetAllByStoreCreatedAfter lists a store's orders created at or after the cutoff.
func (r *OrderRepository) GetAllByStoreCreatedAfter(
	_ context.Context,
	storeID kernel.UUID,
	cutoff time.Time,
) ([]*order.Order, error) {
	return r.list(func(o *order.Order) bool {
		return o.StoreID().IsEqual(storeID) && !o.CreatedAt().Before(cutoff)
	})
}

func (r *OrderRepository) list(keep func(*order.Order) bool) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*order.Order, 0)
	for _, stored := range r.orders {
		if !keep(stored) {
			continue
		}
		copied, err := clone(stored)
		if err != nil {
			return nil, err
		}
		matched = append(matched, copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UpdatedAt().After(matched[j].UpdatedAt())
	})
	return matched, nil
}
