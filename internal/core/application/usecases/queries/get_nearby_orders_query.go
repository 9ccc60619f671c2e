package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetNearbyOrdersQueryIsNotConstructed = errors.New(
	"GetNearbyOrdersQuery must be created via NewGetNearbyOrdersQuery constructor",
)

// GetNearbyOrdersQuery retrieves open orders whose store sits within a
// distance of the courier's last known position. This is the pull side of
// dispatch: couriers poll it to discover work they can claim.
type GetNearbyOrdersQuery struct { //nolint:recvcheck //using for validation
	requesterID   kernel.UUID
	requesterRole directory.Role
	courierID     kernel.UUID
	maxDistanceKm float64
	window        time.Duration

	guard guard.ConstructorGuard
}

// NewGetNearbyOrdersQuery creates a proximity query for one courier.
// MaxDistanceKm bounds the store distance and window bounds the order age;
// both must be positive.
func NewGetNearbyOrdersQuery(
	requesterID kernel.UUID,
	requesterRole directory.Role,
	courierID kernel.UUID,
	maxDistanceKm float64,
	window time.Duration,
) (GetNearbyOrdersQuery, error) {
	nearbyQuery := GetNearbyOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requesterID.Validate(),
		requesterRole.Validate(),
		courierID.Validate(),
	); err != nil {
		return GetNearbyOrdersQuery{}, err
	}

	if maxDistanceKm <= 0 {
		return GetNearbyOrdersQuery{}, errs.NewValueIsInvalidError("maxDistanceKm")
	}
	if window <= 0 {
		return GetNearbyOrdersQuery{}, errs.NewValueIsInvalidError("window")
	}

	nearbyQuery.requesterID = requesterID
	nearbyQuery.requesterRole = requesterRole
	nearbyQuery.courierID = courierID
	nearbyQuery.maxDistanceKm = maxDistanceKm
	nearbyQuery.window = window
	return nearbyQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNearbyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetNearbyOrdersQueryIsNotConstructed)
}

// RequesterID returns the requesting user's identifier.
func (q GetNearbyOrdersQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// RequesterRole returns the requesting user's role.
func (q GetNearbyOrdersQuery) RequesterRole() directory.Role {
	return q.requesterRole
}

// CourierID returns the courier the proximity search centers on.
func (q GetNearbyOrdersQuery) CourierID() kernel.UUID {
	return q.courierID
}

// MaxDistanceKm returns the store distance bound in kilometers.
func (q GetNearbyOrdersQuery) MaxDistanceKm() float64 {
	return q.maxDistanceKm
}

// Window returns the look-back window bounding order age.
func (q GetNearbyOrdersQuery) Window() time.Duration {
	return q.window
}
