package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetStoreOrdersQueryIsNotConstructed = errors.New(
	"GetStoreOrdersQuery must be created via NewGetStoreOrdersQuery constructor",
)

// GetStoreOrdersQuery retrieves a store's order history, optionally limited
// to orders created at or after a cutoff time.
type GetStoreOrdersQuery struct { //nolint:recvcheck //using for validation
	requesterID   kernel.UUID
	requesterRole directory.Role
	storeID       kernel.UUID
	since         *time.Time

	guard guard.ConstructorGuard
}

// NewGetStoreOrdersQuery creates a query for a store's orders.
// Since may be nil to fetch the full history.
func NewGetStoreOrdersQuery(
	requesterID kernel.UUID,
	requesterRole directory.Role,
	storeID kernel.UUID,
	since *time.Time,
) (GetStoreOrdersQuery, error) {
	storeQuery := GetStoreOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requesterID.Validate(),
		requesterRole.Validate(),
		storeID.Validate(),
	); err != nil {
		return GetStoreOrdersQuery{}, err
	}

	storeQuery.requesterID = requesterID
	storeQuery.requesterRole = requesterRole
	storeQuery.storeID = storeID
	storeQuery.since = since
	return storeQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStoreOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStoreOrdersQueryIsNotConstructed)
}

// RequesterID returns the requesting user's identifier.
func (q GetStoreOrdersQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// RequesterRole returns the requesting user's role.
func (q GetStoreOrdersQuery) RequesterRole() directory.Role {
	return q.requesterRole
}

// StoreID returns the store whose orders are requested.
func (q GetStoreOrdersQuery) StoreID() kernel.UUID {
	return q.storeID
}

// Since returns the optional creation-time cutoff, nil for no limit.
func (q GetStoreOrdersQuery) Since() *time.Time {
	return q.since
}
