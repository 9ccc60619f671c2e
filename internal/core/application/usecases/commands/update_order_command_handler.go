package commands

import (
	"context"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/order"
)

// UpdateOrderCommandHandler handles full-field order updates.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   OrderNotifier
}

// NewUpdateOrderCommandHandler creates a handler for order update operations.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory, notifier OrderNotifier) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the order update command.
//
// Admins may update any order; a store may only update its own orders, judged
// against the stored owner, not the one the patch claims. When the update
// changed the status the store is notified after commit.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
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

	statusBefore := aggregate.Status()
	if err = aggregate.ApplyPatch(cmd.Patch()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if aggregate.Status() != statusBefore {
		h.notifier.OrderStatusChanged(aggregate)
	}
	return nil
}

func (h *UpdateOrderCommandHandler) authorize(actor Actor, aggregate *order.Order) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.Role() == directory.Store && actor.ID().IsEqual(aggregate.StoreID()):
		return nil
	default:
		return ErrForbidden
	}
}
