package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetCourierOrdersQueryHandler_Handle_CourierListsOwnOrders(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	storeID := kernel.NewUUID()
	aggregate := restoredOrder(t, storeID, &courierID, order.Assigned)

	reader := new(MockOrderReader)
	dir := new(MockUserDirectory)
	reader.On("GetAllByCourier", mock.Anything, courierID).
		Return([]*order.Order{aggregate}, nil).Once()
	dir.On("Get", mock.Anything, storeID).
		Return(storeEntry(t, storeID, "Pizzeria Roma", nil), nil)
	dir.On("Get", mock.Anything, courierID).
		Return(courierEntry(t, courierID, "Karim", nil), nil)

	query, err := queries.NewGetCourierOrdersQuery(courierID, directory.Courier, courierID, nil)
	require.NoError(t, err)

	h := queries.NewGetCourierOrdersQueryHandler(reader, dir)
	views, err := h.Handle(ctx, query)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "Karim", views[0].CourierName)
}

func TestGetCourierOrdersQueryHandler_Handle_StatusFilterUsesNarrowQuery(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	status := order.Delivered

	reader := new(MockOrderReader)
	reader.On("GetAllByCourierInStatus", mock.Anything, courierID, status).
		Return([]*order.Order{}, nil).Once()

	query, err := queries.NewGetCourierOrdersQuery(courierID, directory.Courier, courierID, &status)
	require.NoError(t, err)

	h := queries.NewGetCourierOrdersQueryHandler(reader, new(MockUserDirectory))
	views, err := h.Handle(ctx, query)
	require.NoError(t, err)
	require.Empty(t, views)
	reader.AssertNotCalled(t, "GetAllByCourier", mock.Anything, mock.Anything)
}

func TestGetCourierOrdersQueryHandler_Handle_OtherCourierForbidden(t *testing.T) {
	ctx := t.Context()
	query, err := queries.NewGetCourierOrdersQuery(
		kernel.NewUUID(), directory.Courier, kernel.NewUUID(), nil)
	require.NoError(t, err)

	h := queries.NewGetCourierOrdersQueryHandler(new(MockOrderReader), new(MockUserDirectory))
	_, err = h.Handle(ctx, query)
	require.ErrorIs(t, err, queries.ErrQueryForbidden)
}

func TestNewGetCourierOrdersQuery_UnknownStatusRejected(t *testing.T) {
	id := kernel.NewUUID()
	bad := order.Unknown
	_, err := queries.NewGetCourierOrdersQuery(id, directory.Courier, id, &bad)
	require.Error(t, err)
}
