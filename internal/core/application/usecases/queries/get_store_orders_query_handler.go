package queries

import (
	"context"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// GetStoreOrdersQueryHandler lists a store's orders, newest activity first.
type GetStoreOrdersQueryHandler struct {
	orders  OrderReader
	builder orderViewBuilder
}

// NewGetStoreOrdersQueryHandler creates a handler for store order listings.
func NewGetStoreOrdersQueryHandler(orders OrderReader, userDirectory ports.UserDirectory) GetStoreOrdersQueryHandler {
	return GetStoreOrdersQueryHandler{
		orders:  orders,
		builder: newOrderViewBuilder(userDirectory),
	}
}

// Handle executes the listing. Only admins and the store itself may read a
// store's order history.
func (h GetStoreOrdersQueryHandler) Handle(ctx context.Context, query GetStoreOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.RequesterRole() != directory.Admin && !query.RequesterID().IsEqual(query.StoreID()) {
		return nil, ErrQueryForbidden
	}

	var (
		aggregates []*order.Order
		err        error
	)
	if since := query.Since(); since != nil {
		aggregates, err = h.orders.GetAllByStoreCreatedAfter(ctx, query.StoreID(), *since)
	} else {
		aggregates, err = h.orders.GetAllByStore(ctx, query.StoreID())
	}
	if err != nil {
		return nil, err
	}

	return h.builder.BuildAll(ctx, aggregates)
}
