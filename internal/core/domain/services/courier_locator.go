package services

import (
	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierLocator is a domain service that narrows a set of directory entries
// down to the couriers a new order should be offered to.
//
// Eligibility rules:
//   - The entry carries the COURIER role
//   - The entry has both known coordinates and a push notification address
//   - The great-circle distance from the origin is within the radius
//
// Entries without coordinates or without a push address are silently skipped;
// an unreachable courier is an expected directory state, not an error. The
// caller is responsible for the silent no-op when the origin itself is
// unknown (a store without coordinates simply triggers no fan-out).
//
// Example usage:
//
//	locator := services.NewCourierLocator()
//	eligible, err := locator.FindEligible(storeLocation, 20, candidates)
//	if err != nil {
//	    // origin was not a constructed location
//	}
//	for _, courier := range eligible {
//	    // offer the order
//	}
type CourierLocator struct{}

// NewCourierLocator creates a new CourierLocator instance.
func NewCourierLocator() CourierLocator {
	return CourierLocator{}
}

// FindEligible returns the candidates that are reachable couriers within
// maxDistanceKm of origin. The order of the result follows the input order.
//
// Parameters:
//   - origin: the store's location (must be a constructed Location)
//   - maxDistanceKm: the search radius in kilometers
//   - candidates: directory entries to filter, any roles
//
// Returns:
//   - []directory.Entry: eligible couriers, possibly empty
//   - error: validation error if origin or a candidate entry is malformed
func (l CourierLocator) FindEligible(
	origin kernel.Location,
	maxDistanceKm float64,
	candidates []directory.Entry,
) ([]directory.Entry, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	eligible := make([]directory.Entry, 0, len(candidates))
	for _, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}

		if candidate.Role() != directory.Courier || !candidate.CanReceivePush() {
			continue
		}

		distance, err := origin.DistanceTo(*candidate.Location())
		if err != nil {
			return nil, err
		}

		if distance <= maxDistanceKm {
			eligible = append(eligible, candidate)
		}
	}

	return eligible, nil
}
