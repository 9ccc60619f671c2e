package commands

import (
	"context"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/order"
)

// DeleteOrderCommandHandler handles order removal.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for order deletion operations.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deletion command.
//
// Existence is checked before authorization so a missing order reports not
// found rather than forbidden. Admins delete unconditionally; a store may
// delete its own orders only while no courier is involved, that is in the
// Created or Returned status. Couriers never delete orders.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.authorize(cmd.Actor(), aggregate); err != nil {
		return err
	}

	if err = orderRepo.Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *DeleteOrderCommandHandler) authorize(actor Actor, aggregate *order.Order) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.Role() == directory.Store &&
		actor.ID().IsEqual(aggregate.StoreID()) && aggregate.Status().IsDeletableByStore():
		return nil
	default:
		return ErrForbidden
	}
}
