package commands

import (
	"context"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/order"
)

// AssignOrderCommandHandler handles courier claims on open orders.
//
// The claim is enforced twice: the aggregate rejects a second assignment
// in memory, and the repository performs the write as a single conditional
// update so two couriers racing for the same order cannot both win. The
// handler relies on the repository for the authoritative decision.
type AssignOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   OrderNotifier
}

// NewAssignOrderCommandHandler creates a handler for order claim operations.
func NewAssignOrderCommandHandler(uowFactory OrderUoWFactory, notifier OrderNotifier) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the claim command.
//
// A courier may only claim for themselves; admins may claim on behalf of any
// courier. The store is notified of the assignment after commit.
func (h *AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.authorize(cmd); err != nil {
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

	// Runs the full domain validation (already-assigned check included)
	// before the conditional claim hits storage.
	if err = aggregate.Assign(cmd.CourierID(), order.Assigned); err != nil {
		return err
	}

	if err = orderRepo.AssignCourier(ctx, cmd.OrderID(), cmd.CourierID(), order.Assigned); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.OrderStatusChanged(aggregate)
	return nil
}

func (h *AssignOrderCommandHandler) authorize(cmd AssignOrderCommand) error {
	actor := cmd.Actor()
	switch {
	case actor.IsAdmin():
		return nil
	case actor.Role() == directory.Courier && actor.ID().IsEqual(cmd.CourierID()):
		return nil
	default:
		return ErrForbidden
	}
}
