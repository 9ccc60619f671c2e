package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetCourierOrdersQueryIsNotConstructed = errors.New(
	"GetCourierOrdersQuery must be created via NewGetCourierOrdersQuery constructor",
)

// GetCourierOrdersQuery retrieves the orders a courier carries or has
// carried, optionally limited to one status.
type GetCourierOrdersQuery struct { //nolint:recvcheck //using for validation
	requesterID   kernel.UUID
	requesterRole directory.Role
	courierID     kernel.UUID
	status        *order.Status

	guard guard.ConstructorGuard
}

// NewGetCourierOrdersQuery creates a query for a courier's orders.
// Status may be nil to fetch orders in every status.
func NewGetCourierOrdersQuery(
	requesterID kernel.UUID,
	requesterRole directory.Role,
	courierID kernel.UUID,
	status *order.Status,
) (GetCourierOrdersQuery, error) {
	courierQuery := GetCourierOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requesterID.Validate(),
		requesterRole.Validate(),
		courierID.Validate(),
	); err != nil {
		return GetCourierOrdersQuery{}, err
	}

	if status != nil {
		if err := status.Validate(); err != nil {
			return GetCourierOrdersQuery{}, err
		}
	}

	courierQuery.requesterID = requesterID
	courierQuery.requesterRole = requesterRole
	courierQuery.courierID = courierID
	courierQuery.status = status
	return courierQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierOrdersQueryIsNotConstructed)
}

// RequesterID returns the requesting user's identifier.
func (q GetCourierOrdersQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// RequesterRole returns the requesting user's role.
func (q GetCourierOrdersQuery) RequesterRole() directory.Role {
	return q.requesterRole
}

// CourierID returns the courier whose orders are requested.
func (q GetCourierOrdersQuery) CourierID() kernel.UUID {
	return q.courierID
}

// Status returns the optional status filter, nil for all statuses.
func (q GetCourierOrdersQuery) Status() *order.Status {
	return q.status
}
