package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinLatitude is the southernmost valid latitude in decimal degrees.
	MinLatitude float64 = -90
	// MaxLatitude is the northernmost valid latitude in decimal degrees.
	MaxLatitude float64 = 90
	// MinLongitude is the westernmost valid longitude in decimal degrees.
	MinLongitude float64 = -180
	// MaxLongitude is the easternmost valid longitude in decimal degrees.
	MaxLongitude float64 = 180

	// earthRadiusKm is the mean earth radius used by the spherical distance approximation.
	earthRadiusKm = 6371.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly
// initialized Location. Locations must be created via the NewLocation constructor
// to ensure their coordinates were validated.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is an immutable geographic position expressed as a latitude/longitude
// pair in decimal degrees. The zero value of Location is invalid and will fail
// validation - use the constructor to create instances.
//
// Example:
//
//	loc, err := kernel.NewLocation(36.75, 3.04)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Store position: %s", loc)
type Location struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation creates a Location from latitude and longitude in decimal degrees.
// Latitude must be within [MinLatitude..MaxLatitude] and longitude within
// [MinLongitude..MaxLongitude] inclusive.
//
// Returns:
//   - Location: A valid location instance
//   - error: Validation error if either coordinate is out of bounds
func NewLocation(latitude float64, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks if the Location was properly constructed using the constructor.
// The zero value of Location fails with ErrLocationIsNotConstructed.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in decimal degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// String returns a human-readable representation in the format "Location(lat,lon)".
// This method implements the fmt.Stringer interface.
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.latitude, l.longitude)
}

// IsEqual compares two locations for coordinate equality.
// Both locations must be properly constructed for the comparison to succeed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.latitude == other.latitude && l.longitude == other.longitude, nil
}

// DistanceTo calculates the great-circle distance in kilometers between two
// locations using the haversine formula on a spherical earth of radius 6371 km.
// The result is symmetric and zero for identical coordinates. Both locations
// must be properly constructed for the calculation to succeed.
//
// Example:
//
//	algiers, _ := kernel.NewLocation(36.75, 3.04)
//	oran, _ := kernel.NewLocation(35.70, -0.63)
//
//	km, err := algiers.DistanceTo(oran)
//	// km ~ 350, err = nil
func (l Location) DistanceTo(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	latDiff := toRadians(other.latitude - l.latitude)
	lonDiff := toRadians(other.longitude - l.longitude)

	a := math.Sin(latDiff/2)*math.Sin(latDiff/2) +
		math.Cos(toRadians(l.latitude))*math.Cos(toRadians(other.latitude))*
			math.Sin(lonDiff/2)*math.Sin(lonDiff/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c, nil
}

// setLatitude sets the latitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use value receivers.
// Although mixing receiver types is generally not recommended, in this case we use pointer
// receivers for these private setters to enable self-encapsulated validation of business
// requirements during object construction.
func (l *Location) setLatitude(latitude float64) error {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	l.latitude = latitude
	return nil
}

// setLongitude sets the longitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use value receivers.
// Although mixing receiver types is generally not recommended, in this case we use pointer
// receivers for these private setters to enable self-encapsulated validation of business
// requirements during object construction.
func (l *Location) setLongitude(longitude float64) error {
	if longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	l.longitude = longitude
	return nil
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
