package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new order for dispatch.
// Encapsulates the originating store, the recipient details, and the money
// fields; the order always starts in the Created status.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(actor, orderID, storeID,
//	    "Amine B.", "+213555000111", "12 Rue Didouche", 2500, 300)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, userDirectory, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor           Actor
	orderID         kernel.UUID
	storeID         kernel.UUID
	customerName    string
	customerPhone   string
	customerAddress string
	amount          float64
	deliveryFee     float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates the identifiers and requires a non-empty customer name.
func NewCreateOrderCommand(
	actor Actor,
	orderID kernel.UUID,
	storeID kernel.UUID,
	customerName string,
	customerPhone string,
	customerAddress string,
	amount float64,
	deliveryFee float64,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setActor(actor),
		orderCommand.setOrderID(orderID),
		orderCommand.setStoreID(storeID),
		orderCommand.setCustomerName(customerName),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	orderCommand.customerPhone = customerPhone
	orderCommand.customerAddress = customerAddress
	orderCommand.amount = amount
	orderCommand.deliveryFee = deliveryFee
	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Actor returns the acting user.
func (c CreateOrderCommand) Actor() Actor {
	return c.actor
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StoreID returns the originating store's identifier.
func (c CreateOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

// CustomerName returns the recipient's display name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerPhone returns the recipient's phone number.
func (c CreateOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

// CustomerAddress returns the recipient's delivery address.
func (c CreateOrderCommand) CustomerAddress() string {
	return c.customerAddress
}

// Amount returns the order total.
func (c CreateOrderCommand) Amount() float64 {
	return c.amount
}

// DeliveryFee returns the courier fee.
func (c CreateOrderCommand) DeliveryFee() float64 {
	return c.deliveryFee
}

func (c *CreateOrderCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}

	c.storeID = storeID
	return nil
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}

	c.customerName = customerName
	return nil
}
