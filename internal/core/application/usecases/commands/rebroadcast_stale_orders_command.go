package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRebroadcastStaleOrdersCommandIsNotConstructed = errors.New(
	"RebroadcastStaleOrdersCommand must be created via NewRebroadcastStaleOrdersCommand constructor",
)

// RebroadcastStaleOrdersCommand represents a periodic sweep re-announcing
// orders that are still open some time after creation. Couriers who were out
// of range or offline at creation time get another chance to claim them.
type RebroadcastStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	window time.Duration

	guard guard.ConstructorGuard
}

// NewRebroadcastStaleOrdersCommand creates a sweep command covering orders
// created within the given look-back window.
func NewRebroadcastStaleOrdersCommand(window time.Duration) (RebroadcastStaleOrdersCommand, error) {
	sweepCommand := RebroadcastStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := sweepCommand.setWindow(window); err != nil {
		return RebroadcastStaleOrdersCommand{}, err
	}

	return sweepCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RebroadcastStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRebroadcastStaleOrdersCommandIsNotConstructed)
}

// Window returns the look-back window for the sweep.
func (c RebroadcastStaleOrdersCommand) Window() time.Duration {
	return c.window
}

func (c *RebroadcastStaleOrdersCommand) setWindow(window time.Duration) error {
	if window <= 0 {
		return errs.NewValueIsInvalidError("window")
	}

	c.window = window
	return nil
}
