package directory

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Role identifies what kind of account a directory entry represents.
// The dispatch core only reads role information; account management
// lives outside this service.
type Role int

const (
	// UnknownRole represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	UnknownRole Role = iota

	// Admin accounts may manage any order.
	Admin

	// Store accounts originate orders and receive status notifications.
	Store

	// Courier accounts claim and deliver orders.
	Courier
)

// getRoleStrings returns a map of Role values to their wire representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "UNKNOWN",
		Admin:       "ADMIN",
		Store:       "STORE",
		Courier:     "COURIER",
	}
}

// getValidRoleStrings returns a map of only valid Role values.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // UnknownRole is intentionally excluded as it's invalid
	return map[Role]string{
		Admin:   "ADMIN",
		Store:   "STORE",
		Courier: "COURIER",
	}
}

// Validate checks if the Role value is valid.
// Valid roles are: Admin, Store, Courier.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the upper-case wire name of the role.
// This method implements the fmt.Stringer interface and is safe
// to call on any Role value, including invalid ones.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// RoleFromString parses a wire role name, case-insensitively.
// Returns an error for names outside the closed set.
func RoleFromString(s string) (Role, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for role, str := range getValidRoleStrings() {
		if str == upper {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%q is not a valid role", s))
}
