package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Persists the order in the Created status and announces it to nearby couriers
// once the transaction has committed.
type CreateOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	userDirectory ports.UserDirectory
	notifier      OrderNotifier
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence, a UserDirectory to
// validate the target store, and an OrderNotifier for the post-commit courier
// fan-out.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	userDirectory ports.UserDirectory,
	notifier OrderNotifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		userDirectory: userDirectory,
		notifier:      notifier,
	}
}

// Handle processes the order creation command.
//
// A store may only create orders for itself; admins may create orders for any
// store, couriers for none. The target store must exist in the directory with
// the Store role, or the command fails with directory.ErrStoreNotFound before
// anything is persisted. The notification is fired only after a successful
// commit so couriers never learn about orders that were rolled back.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.authorize(cmd); err != nil {
		return err
	}

	if err := h.resolveStore(ctx, cmd); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.StoreID(),
		cmd.CustomerName(),
		cmd.CustomerPhone(),
		cmd.CustomerAddress(),
		cmd.Amount(),
		cmd.DeliveryFee(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.OrderCreated(aggregate)
	return nil
}

func (h *CreateOrderCommandHandler) authorize(cmd CreateOrderCommand) error {
	actor := cmd.Actor()
	switch {
	case actor.IsAdmin():
		return nil
	case actor.Role() == directory.Store && actor.ID().IsEqual(cmd.StoreID()):
		return nil
	default:
		return ErrForbidden
	}
}

// resolveStore checks that the order's store exists in the directory and
// actually carries the Store role. A directory entry under a different role is
// treated the same as a missing one.
func (h *CreateOrderCommandHandler) resolveStore(ctx context.Context, cmd CreateOrderCommand) error {
	entry, err := h.userDirectory.Get(ctx, cmd.StoreID())
	if err != nil {
		var notFoundErr *errs.ObjectNotFoundError
		if errors.As(err, &notFoundErr) {
			return directory.ErrStoreNotFound
		}
		return err
	}

	if entry.Role() != directory.Store {
		return directory.ErrStoreNotFound
	}
	return nil
}
