package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) AssignCourier(
	ctx context.Context, orderID kernel.UUID, courierID kernel.UUID, status order.Status,
) error {
	args := m.Called(ctx, orderID, courierID, status)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAllInStatusCreatedAfter(
	ctx context.Context, status order.Status, cutoff time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, status, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllByCourier(_ context.Context, _ kernel.UUID) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetAllByCourierInStatus(
	_ context.Context, _ kernel.UUID, _ order.Status,
) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetAllByStore(_ context.Context, _ kernel.UUID) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetAllByStoreCreatedAfter(
	_ context.Context, _ kernel.UUID, _ time.Time,
) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) Get(ctx context.Context, id kernel.UUID) (directory.Entry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(directory.Entry), args.Error(1)
}

func (m *MockUserDirectory) GetAllByRole(ctx context.Context, role directory.Role) ([]directory.Entry, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.Entry), args.Error(1)
}

type MockOrderNotifier struct{ mock.Mock }

func (m *MockOrderNotifier) OrderCreated(o *order.Order) {
	m.Called(o)
}

func (m *MockOrderNotifier) OrderStatusChanged(o *order.Order) {
	m.Called(o)
}

func adminActor(t *testing.T) commands.Actor {
	t.Helper()

	actor, err := commands.NewActor(kernel.NewUUID(), directory.Admin)
	require.NoError(t, err)
	return actor
}

func roleActor(t *testing.T, id kernel.UUID, role directory.Role) commands.Actor {
	t.Helper()

	actor, err := commands.NewActor(id, role)
	require.NoError(t, err)
	return actor
}

func validCreateOrderCommand(t *testing.T, actor commands.Actor, storeID kernel.UUID) commands.CreateOrderCommand {
	t.Helper()

	cmd, err := commands.NewCreateOrderCommand(
		actor, kernel.NewUUID(), storeID, "Amine B.", "+213555000111", "12 Rue Didouche", 2500, 300)
	require.NoError(t, err)
	return cmd
}

// storeDirectory resolves storeID as a registered store entry.
func storeDirectory(t *testing.T, storeID kernel.UUID) *MockUserDirectory {
	t.Helper()

	entry, err := directory.NewEntry(storeID, directory.Store, "Pizzeria Roma", "5 Rue Larbi Ben M'hidi", nil, "")
	require.NoError(t, err)
	users := new(MockUserDirectory)
	users.On("Get", mock.Anything, storeID).Return(entry, nil)
	return users
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cmd := validCreateOrderCommand(t, roleActor(t, storeID, directory.Store), storeID)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockOrderNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("OrderCreated", mock.AnythingOfType("*order.Order")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, storeDirectory(t, storeID), notifier)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, new(MockUserDirectory), new(MockOrderNotifier))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_StoreCannotCreateForOtherStore(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateOrderCommand(t, roleActor(t, kernel.NewUUID(), directory.Store), kernel.NewUUID())

	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, new(MockUserDirectory), new(MockOrderNotifier))
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_CourierForbidden(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	cmd := validCreateOrderCommand(t, roleActor(t, courierID, directory.Courier), kernel.NewUUID())

	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, new(MockUserDirectory), new(MockOrderNotifier))
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrForbidden)
}

func TestCreateOrderCommandHandler_Handle_AdminCreatesForAnyStore(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cmd := validCreateOrderCommand(t, adminActor(t), storeID)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockOrderNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("OrderCreated", mock.AnythingOfType("*order.Order")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, storeDirectory(t, storeID), notifier)
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownStoreRejected(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cmd := validCreateOrderCommand(t, adminActor(t), storeID)

	users := new(MockUserDirectory)
	users.On("Get", mock.Anything, storeID).
		Return(directory.Entry{}, errs.NewObjectNotFoundError("user", storeID.String()))

	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, users, new(MockOrderNotifier))
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, directory.ErrStoreNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_NonStoreEntryRejected(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cmd := validCreateOrderCommand(t, adminActor(t), storeID)

	// The id resolves, but to a courier account, not a store.
	entry, err := directory.NewEntry(storeID, directory.Courier, "Karim", "", nil, "courier-token")
	require.NoError(t, err)
	users := new(MockUserDirectory)
	users.On("Get", mock.Anything, storeID).Return(entry, nil)

	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, users, new(MockOrderNotifier))
	handleErr := h.Handle(ctx, cmd)
	require.ErrorIs(t, handleErr, directory.ErrStoreNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_DirectoryLookupErrorPropagates(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cmd := validCreateOrderCommand(t, adminActor(t), storeID)

	users := new(MockUserDirectory)
	users.On("Get", mock.Anything, storeID).Return(directory.Entry{}, errors.New("directory unavailable"))

	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, users, new(MockOrderNotifier))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.NotErrorIs(t, err, directory.ErrStoreNotFound)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cmd := validCreateOrderCommand(t, adminActor(t), storeID)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockOrderNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, storeDirectory(t, storeID), notifier)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	notifier.AssertNotCalled(t, "OrderCreated", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError_NoNotification(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	cmd := validCreateOrderCommand(t, adminActor(t), storeID)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockOrderNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, storeDirectory(t, storeID), notifier)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	notifier.AssertNotCalled(t, "OrderCreated", mock.Anything)
}
