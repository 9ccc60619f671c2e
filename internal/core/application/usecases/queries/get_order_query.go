package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order by id, enriched with store and
// courier display data.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	requesterID   kernel.UUID
	requesterRole directory.Role
	orderID       kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order on behalf of a requester.
func NewGetOrderQuery(
	requesterID kernel.UUID,
	requesterRole directory.Role,
	orderID kernel.UUID,
) (GetOrderQuery, error) {
	orderQuery := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requesterID.Validate(),
		requesterRole.Validate(),
		orderID.Validate(),
	); err != nil {
		return GetOrderQuery{}, err
	}

	orderQuery.requesterID = requesterID
	orderQuery.requesterRole = requesterRole
	orderQuery.orderID = orderID
	return orderQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// RequesterID returns the requesting user's identifier.
func (q GetOrderQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// RequesterRole returns the requesting user's role.
func (q GetOrderQuery) RequesterRole() directory.Role {
	return q.requesterRole
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}
