package queries

import (
	"context"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// GetCourierOrdersQueryHandler lists the orders bound to one courier.
type GetCourierOrdersQueryHandler struct {
	orders  OrderReader
	builder orderViewBuilder
}

// NewGetCourierOrdersQueryHandler creates a handler for courier order listings.
func NewGetCourierOrdersQueryHandler(
	orders OrderReader,
	userDirectory ports.UserDirectory,
) GetCourierOrdersQueryHandler {
	return GetCourierOrdersQueryHandler{
		orders:  orders,
		builder: newOrderViewBuilder(userDirectory),
	}
}

// Handle executes the listing. Only admins and the courier themselves may
// read a courier's order history.
func (h GetCourierOrdersQueryHandler) Handle(ctx context.Context, query GetCourierOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.RequesterRole() != directory.Admin && !query.RequesterID().IsEqual(query.CourierID()) {
		return nil, ErrQueryForbidden
	}

	var (
		aggregates []*order.Order
		err        error
	)
	if status := query.Status(); status != nil {
		aggregates, err = h.orders.GetAllByCourierInStatus(ctx, query.CourierID(), *status)
	} else {
		aggregates, err = h.orders.GetAllByCourier(ctx, query.CourierID())
	}
	if err != nil {
		return nil, err
	}

	return h.builder.BuildAll(ctx, aggregates)
}
