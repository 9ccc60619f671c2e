package queries

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// NearbyOrderView is an OrderView plus the great-circle distance from the
// courier to the order's store.
type NearbyOrderView struct {
	OrderView
	DistanceKm float64
}

// GetNearbyOrdersQueryHandler finds open orders around a courier.
//
// Distance is measured courier to store, not courier to customer: a courier
// accepts work by driving to the store first. Orders whose store has no
// coordinates on file are skipped, and a courier without coordinates simply
// sees an empty list rather than an error.
type GetNearbyOrdersQueryHandler struct {
	orders        OrderReader
	userDirectory ports.UserDirectory
	builder       orderViewBuilder
}

// NewGetNearbyOrdersQueryHandler creates a handler for proximity searches.
func NewGetNearbyOrdersQueryHandler(
	orders OrderReader,
	userDirectory ports.UserDirectory,
) GetNearbyOrdersQueryHandler {
	return GetNearbyOrdersQueryHandler{
		orders:        orders,
		userDirectory: userDirectory,
		builder:       newOrderViewBuilder(userDirectory),
	}
}

// Handle executes the proximity search. Only admins and the courier
// themselves may run it.
func (h GetNearbyOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetNearbyOrdersQuery,
) ([]NearbyOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.RequesterRole() != directory.Admin && !query.RequesterID().IsEqual(query.CourierID()) {
		return nil, ErrQueryForbidden
	}

	courier, err := h.userDirectory.Get(ctx, query.CourierID())
	if err != nil {
		return nil, err
	}

	views := make([]NearbyOrderView, 0)
	if !courier.HasLocation() {
		return views, nil
	}
	courierLocation := *courier.Location()

	cutoff := time.Now().UTC().Add(-query.Window())
	open, err := h.orders.GetAllInStatusCreatedAfter(ctx, order.Created, cutoff)
	if err != nil {
		return nil, err
	}

	// Stores repeat across orders; one lookup each is enough. An order whose
	// store record vanished is dropped from the feed instead of failing the
	// whole search.
	storeCache := make(map[kernel.UUID]directory.Entry)
	for _, aggregate := range open {
		store, ok := storeCache[aggregate.StoreID()]
		if !ok {
			var lookupErr error
			store, lookupErr = h.userDirectory.Get(ctx, aggregate.StoreID())
			if lookupErr != nil {
				var notFoundErr *errs.ObjectNotFoundError
				if errors.As(lookupErr, &notFoundErr) {
					continue
				}
				return nil, lookupErr
			}
			storeCache[aggregate.StoreID()] = store
		}

		if !store.HasLocation() {
			continue
		}

		distance, distErr := courierLocation.DistanceTo(*store.Location())
		if distErr != nil {
			return nil, distErr
		}
		if distance > query.MaxDistanceKm() {
			continue
		}

		view, buildErr := h.builder.Build(ctx, aggregate)
		if buildErr != nil {
			return nil, buildErr
		}
		views = append(views, NearbyOrderView{OrderView: view, DistanceKm: distance})
	}

	return views, nil
}
