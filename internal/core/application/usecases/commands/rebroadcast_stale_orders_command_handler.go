package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
)

// RebroadcastStaleOrdersCommandHandler re-announces open orders to nearby
// couriers. Run on a schedule, it covers the gap left by the best-effort
// creation fan-out: a notification lost at creation time does not strand
// the order forever.
type RebroadcastStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   OrderNotifier
}

// NewRebroadcastStaleOrdersCommandHandler creates a handler for the sweep.
func NewRebroadcastStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier OrderNotifier,
) RebroadcastStaleOrdersCommandHandler {
	return RebroadcastStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle re-announces every order still in Created that was created within
// the command's look-back window. The sweep only reads; notifications fire
// after the transaction ends.
func (h *RebroadcastStaleOrdersCommandHandler) Handle(ctx context.Context, cmd RebroadcastStaleOrdersCommand) error {
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

	cutoff := time.Now().UTC().Add(-cmd.Window())
	open, err := uow.OrderRepository().GetAllInStatusCreatedAfter(ctx, order.Created, cutoff)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, aggregate := range open {
		h.notifier.OrderCreated(aggregate)
	}
	return nil
}
