package order

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel error for all InvalidTransitionError
// instances. Use errors.Is to classify state machine rejections.
var ErrInvalidTransition = errors.New("order status transition is not allowed")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct dispatch workflow.
//
// State transitions:
//
//	Created ──┬──> Assigned ──┬──> Delivered
//	          │               └──> Returned
//	          └──> Cancelled
//
// Delivered, Returned and Cancelled are terminal. Unassigning an order in
// Assigned returns it to Created (see Order.Unassign); no other move back
// along the graph is possible, and self-transitions are rejected.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first registered.
	// Orders in this status are visible to nearby couriers and can be claimed.
	Created

	// Assigned indicates the order has been claimed by exactly one courier.
	Assigned

	// Delivered indicates the courier handed the order to the customer.
	// This is a final state.
	Delivered

	// Returned indicates the courier brought the order back to the store.
	// This is a final state; the originating store may delete such orders.
	Returned

	// Cancelled indicates the order was withdrawn before any courier claimed it.
	// This is a final state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Created:   "CREATED",
		Assigned:  "ASSIGNED",
		Delivered: "DELIVERED",
		Returned:  "RETURNED",
		Cancelled: "CANCELLED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "CREATED",
		Assigned:  "ASSIGNED",
		Delivered: "DELIVERED",
		Returned:  "RETURNED",
		Cancelled: "CANCELLED",
	}
}

// getTransitions returns the directed transition graph. A status that is
// absent or maps to an empty slice is terminal.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Created:  {Assigned, Cancelled},
		Assigned: {Delivered, Returned},
	}
}

// InvalidTransitionError reports a status change rejected by the transition
// graph. It unwraps to ErrInvalidTransition.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given pair.
func NewInvalidTransitionError(from Status, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Created, Assigned, Delivered, Returned, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-case wire name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a wire status name, case-insensitively.
// Returns an error for names outside the closed set.
func StatusFromString(s string) (Status, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getValidStatusStrings() {
		if str == upper {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// CanTransitionTo validates a move along the transition graph.
//
// Exactly the pairs in the graph are accepted. Everything else, including
// self-transitions and any move out of a terminal status, fails with an
// InvalidTransitionError.
//
// Example:
//
//	if err := current.CanTransitionTo(order.Delivered); err != nil {
//	    // rejected: errors.Is(err, order.ErrInvalidTransition) == true
//	}
func (s Status) CanTransitionTo(next Status) error {
	if err := errors.Join(s.Validate(), next.Validate()); err != nil {
		return err
	}

	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return nil
		}
	}
	return NewInvalidTransitionError(s, next)
}

// IsTerminal reports whether no further transitions are possible from s.
func (s Status) IsTerminal() bool {
	return len(getTransitions()[s]) == 0
}

// IsDeletableByStore reports whether the originating store may delete an
// order in this status. Only unclaimed (Created) and bounced-back (Returned)
// orders qualify; everything in-flight or archived is protected.
func (s Status) IsDeletableByStore() bool {
	return s == Created || s == Returned
}
