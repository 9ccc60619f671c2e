package commands

import (
	"context"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/order"
)

// UnassignOrderCommandHandler handles releasing a claimed order back to the
// open pool. The released order becomes claimable again by any courier.
type UnassignOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   OrderNotifier
}

// NewUnassignOrderCommandHandler creates a handler for claim release operations.
func NewUnassignOrderCommandHandler(uowFactory OrderUoWFactory, notifier OrderNotifier) UnassignOrderCommandHandler {
	return UnassignOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the release command.
//
// Admins release any order; a courier may only release a claim they hold.
// Releasing an order that is not currently assigned fails with
// order.ErrNotAssigned. Nearby couriers are re-notified after commit since
// the order is open again.
func (h *UnassignOrderCommandHandler) Handle(ctx context.Context, cmd UnassignOrderCommand) error {
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

	if err = aggregate.Unassign(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.OrderCreated(aggregate)
	return nil
}

func (h *UnassignOrderCommandHandler) authorize(actor Actor, aggregate *order.Order) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.Role() == directory.Courier &&
		aggregate.Courier() != nil && actor.ID().IsEqual(*aggregate.Courier()):
		return nil
	default:
		return ErrForbidden
	}
}
