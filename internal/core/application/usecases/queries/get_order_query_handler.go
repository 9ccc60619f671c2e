package queries

import (
	"context"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// GetOrderQueryHandler fetches one order and enriches it from the directory.
type GetOrderQueryHandler struct {
	orders  OrderReader
	builder orderViewBuilder
}

// NewGetOrderQueryHandler creates a handler for single-order lookups.
func NewGetOrderQueryHandler(orders OrderReader, userDirectory ports.UserDirectory) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		orders:  orders,
		builder: newOrderViewBuilder(userDirectory),
	}
}

// Handle executes the lookup.
//
// Visibility: admins see every order, a store sees its own orders, a courier
// sees orders assigned to them plus open ones still up for claiming.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	aggregate, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	if err = h.authorize(query, aggregate); err != nil {
		return OrderView{}, err
	}

	return h.builder.Build(ctx, aggregate)
}

func (h GetOrderQueryHandler) authorize(query GetOrderQuery, aggregate *order.Order) error {
	switch query.RequesterRole() {
	case directory.Admin:
		return nil
	case directory.Store:
		if query.RequesterID().IsEqual(aggregate.StoreID()) {
			return nil
		}
	case directory.Courier:
		if aggregate.Status() == order.Created {
			return nil
		}
		if aggregate.Courier() != nil && query.RequesterID().IsEqual(*aggregate.Courier()) {
			return nil
		}
	case directory.UnknownRole:
	}
	return ErrQueryForbidden
}
