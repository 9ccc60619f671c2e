package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents a full-field update of an existing order.
// Every mutable field is replaced; a status that differs from the stored one
// must be a legal transition or the whole update is rejected.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	actor           Actor
	orderID         kernel.UUID
	storeID         kernel.UUID
	courierID       *kernel.UUID
	customerName    string
	customerPhone   string
	customerAddress string
	status          order.Status
	amount          float64
	deliveryFee     float64

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to replace an order's mutable fields.
// CourierID may be nil for an unassigned target state.
func NewUpdateOrderCommand(
	actor Actor,
	orderID kernel.UUID,
	storeID kernel.UUID,
	courierID *kernel.UUID,
	customerName string,
	customerPhone string,
	customerAddress string,
	status order.Status,
	amount float64,
	deliveryFee float64,
) (UpdateOrderCommand, error) {
	orderCommand := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setActor(actor),
		orderCommand.setOrderID(orderID),
		orderCommand.setStoreID(storeID),
		orderCommand.setCourierID(courierID),
		orderCommand.setCustomerName(customerName),
		orderCommand.setStatus(status),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	orderCommand.customerPhone = customerPhone
	orderCommand.customerAddress = customerAddress
	orderCommand.amount = amount
	orderCommand.deliveryFee = deliveryFee
	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// Actor returns the acting user.
func (c UpdateOrderCommand) Actor() Actor {
	return c.actor
}

// OrderID returns the identifier of the order to update.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Patch returns the replacement field values as a domain patch.
func (c UpdateOrderCommand) Patch() order.Patch {
	return order.Patch{
		StoreID:         c.storeID,
		CourierID:       c.courierID,
		CustomerName:    c.customerName,
		CustomerPhone:   c.customerPhone,
		CustomerAddress: c.customerAddress,
		Status:          c.status,
		Amount:          c.amount,
		DeliveryFee:     c.deliveryFee,
	}
}

func (c *UpdateOrderCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}

	c.storeID = storeID
	return nil
}

func (c *UpdateOrderCommand) setCourierID(courierID *kernel.UUID) error {
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
	}

	c.courierID = courierID
	return nil
}

func (c *UpdateOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}

	c.customerName = customerName
	return nil
}

func (c *UpdateOrderCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
