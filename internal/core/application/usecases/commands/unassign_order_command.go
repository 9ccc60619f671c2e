package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUnassignOrderCommandIsNotConstructed = errors.New(
	"UnassignOrderCommand must be created via NewUnassignOrderCommand constructor",
)

// UnassignOrderCommand represents a request to release a claimed order back
// to the open pool, clearing its courier and returning it to Created.
type UnassignOrderCommand struct { //nolint:recvcheck //using for validation
	actor   Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnassignOrderCommand creates a command releasing an order's claim.
func NewUnassignOrderCommand(actor Actor, orderID kernel.UUID) (UnassignOrderCommand, error) {
	unassignCommand := UnassignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		unassignCommand.setActor(actor),
		unassignCommand.setOrderID(orderID),
	); err != nil {
		return UnassignOrderCommand{}, err
	}

	return unassignCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UnassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrUnassignOrderCommandIsNotConstructed)
}

// Actor returns the acting user.
func (c UnassignOrderCommand) Actor() Actor {
	return c.actor
}

// OrderID returns the identifier of the order to release.
func (c UnassignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *UnassignOrderCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UnassignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
