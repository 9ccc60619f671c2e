package commands_test

import (
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedOrder(t *testing.T, storeID kernel.UUID, courierID *kernel.UUID, status order.Status) *order.Order {
	t.Helper()

	now := time.Now().UTC()
	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), storeID, courierID,
		"Amine B.", "+213555000111", "12 Rue Didouche",
		2500, 300, status, now.Add(-time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)
	return aggregate
}

func updateCommandFor(t *testing.T, actor commands.Actor, aggregate *order.Order) commands.UpdateOrderCommand {
	t.Helper()

	cmd, err := commands.NewUpdateOrderCommand(
		actor, aggregate.ID(), aggregate.StoreID(), aggregate.Courier(),
		"Updated Name", aggregate.CustomerPhone(), aggregate.CustomerAddress(),
		aggregate.Status(), 3000, 350)
	require.NoError(t, err)
	return cmd
}

func TestUpdateOrderCommandHandler_Handle_StoreUpdatesOwnOrder(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	aggregate := storedOrder(t, storeID, nil, order.Created)
	cmd := updateCommandFor(t, roleActor(t, storeID, directory.Store), aggregate)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockOrderNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, "Updated Name", aggregate.CustomerName())
	notifier.AssertNotCalled(t, "OrderStatusChanged", mock.Anything)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_ForeignStoreForbidden(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t, kernel.NewUUID(), nil, order.Created)
	cmd := updateCommandFor(t, roleActor(t, kernel.NewUUID(), directory.Store), aggregate)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, new(MockOrderNotifier))
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	aggregate := storedOrder(t, kernel.NewUUID(), nil, order.Created)
	cmd := updateCommandFor(t, adminActor(t), aggregate)

	notFound := errs.NewObjectNotFoundError("orderID", orderID)
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(nil, notFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, new(MockOrderNotifier))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	var targetErr *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &targetErr)
}

func TestUpdateOrderCommandHandler_Handle_IllegalStatusJumpRejected(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	aggregate := storedOrder(t, storeID, nil, order.Created)

	courierID := kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderCommand(
		adminActor(t), aggregate.ID(), storeID, &courierID,
		"Amine B.", "", "", order.Delivered, 2500, 300)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, new(MockOrderNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_StatusChangeNotifiesStore(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	aggregate := storedOrder(t, storeID, &courierID, order.Assigned)

	cmd, err := commands.NewUpdateOrderCommand(
		adminActor(t), aggregate.ID(), storeID, &courierID,
		"Amine B.", "", "", order.Delivered, 2500, 300)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockOrderNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("OrderStatusChanged", aggregate).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.Delivered, aggregate.Status())
	notifier.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	aggregate := storedOrder(t, storeID, nil, order.Created)
	cmd := updateCommandFor(t, adminActor(t), aggregate)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(errors.New("update error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, new(MockOrderNotifier))
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}
