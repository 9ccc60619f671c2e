package commands

import (
	"context"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler handles order lifecycle moves that do not
// bind a courier: delivery confirmation, returns, and cancellation.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   OrderNotifier
}

// NewChangeOrderStatusCommandHandler creates a handler for status change operations.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier OrderNotifier,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the status change command.
//
// Authorization: admins move any order, the owning store moves its own orders
// (cancellation), the assigned courier moves the orders it carries (delivery
// and returns). The transition table decides legality of the move itself; the
// store is notified after commit.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	if err = aggregate.ChangeStatus(cmd.Status()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.OrderStatusChanged(aggregate)
	return nil
}

func (h *ChangeOrderStatusCommandHandler) authorize(actor Actor, aggregate *order.Order) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.Role() == directory.Store && actor.ID().IsEqual(aggregate.StoreID()):
		return nil
	case actor.Role() == directory.Courier &&
		aggregate.Courier() != nil && actor.ID().IsEqual(*aggregate.Courier()):
		return nil
	default:
		return ErrForbidden
	}
}
