package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Amine",
		"+213550000000",
		"12 Rue Didouche Mourad",
		2500,
		300,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates order in Created status without courier", func(t *testing.T) {
		id := kernel.NewUUID()
		storeID := kernel.NewUUID()

		o, err := order.NewOrder(id, storeID, "Amine", "+213550000000", "12 Rue Didouche Mourad", 2500, 300)

		require.NoError(t, err)
		assert.Equal(t, id, o.ID())
		assert.Equal(t, storeID, o.StoreID())
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.Courier())
		assert.Equal(t, "Amine", o.CustomerName())
		assert.InDelta(t, 2500, o.Amount(), 0)
		assert.InDelta(t, 300, o.DeliveryFee(), 0)
		assert.False(t, o.CreatedAt().IsZero())
		assert.Equal(t, o.CreatedAt(), o.UpdatedAt())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name  string
			build func() (*order.Order, error)
		}{
			{
				name: "zero order id",
				build: func() (*order.Order, error) {
					return order.NewOrder(kernel.UUID{}, kernel.NewUUID(), "Amine", "", "", 100, 10)
				},
			},
			{
				name: "zero store id",
				build: func() (*order.Order, error) {
					return order.NewOrder(kernel.NewUUID(), kernel.UUID{}, "Amine", "", "", 100, 10)
				},
			},
			{
				name: "empty customer name",
				build: func() (*order.Order, error) {
					return order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "", "", "", 100, 10)
				},
			},
			{
				name: "negative amount",
				build: func() (*order.Order, error) {
					return order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Amine", "", "", -1, 10)
				},
			},
			{
				name: "negative delivery fee",
				build: func() (*order.Order, error) {
					return order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Amine", "", "", 100, -10)
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := tt.build()
				require.Error(t, err)
			})
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	updatedAt := createdAt.Add(time.Hour)

	t.Run("restores assigned order with courier", func(t *testing.T) {
		courierID := kernel.NewUUID()

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), &courierID,
			"Amine", "", "", 2500, 300,
			order.Assigned, createdAt, updatedAt,
		)

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.Courier())
		assert.True(t, courierID.IsEqual(*o.Courier()))
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Equal(t, updatedAt, o.UpdatedAt())
	})

	t.Run("rejects created order carrying a courier", func(t *testing.T) {
		courierID := kernel.NewUUID()

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), &courierID,
			"Amine", "", "", 2500, 300,
			order.Created, createdAt, updatedAt,
		)

		require.Error(t, err)
	})

	t.Run("rejects assigned order without a courier", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			"Amine", "", "", 2500, 300,
			order.Assigned, createdAt, updatedAt,
		)

		require.Error(t, err)
	})
}

func TestOrder_Assign(t *testing.T) {
	t.Run("claims an unassigned order", func(t *testing.T) {
		o := newTestOrder(t)
		courierID := kernel.NewUUID()
		before := o.UpdatedAt()

		err := o.Assign(courierID, order.Assigned)

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.Courier())
		assert.True(t, courierID.IsEqual(*o.Courier()))
		assert.False(t, o.UpdatedAt().Before(before))
	})

	t.Run("second claim fails with ErrAlreadyAssigned", func(t *testing.T) {
		o := newTestOrder(t)
		first := kernel.NewUUID()
		second := kernel.NewUUID()
		require.NoError(t, o.Assign(first, order.Assigned))

		err := o.Assign(second, order.Assigned)

		require.ErrorIs(t, err, order.ErrAlreadyAssigned)
		assert.True(t, first.IsEqual(*o.Courier()), "loser must not overwrite the winner")
	})

	t.Run("rejects invalid courier id", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Assign(kernel.UUID{}, order.Assigned)

		require.Error(t, err)
		assert.Nil(t, o.Courier())
		assert.Equal(t, order.Created, o.Status())
	})

	t.Run("rejects a target status outside the transition table", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Assign(kernel.NewUUID(), order.Delivered)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Nil(t, o.Courier())
	})
}

func TestOrder_Unassign(t *testing.T) {
	t.Run("releases an assigned order back to Created", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), order.Assigned))

		err := o.Unassign()

		require.NoError(t, err)
		assert.Nil(t, o.Courier())
		assert.Equal(t, order.Created, o.Status())

		// The order is claimable again.
		require.NoError(t, o.Assign(kernel.NewUUID(), order.Assigned))
	})

	t.Run("fails with ErrNotAssigned on a Created order", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Unassign()

		require.ErrorIs(t, err, order.ErrNotAssigned)
	})

	t.Run("fails with ErrNotAssigned on a terminal order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), order.Assigned))
		require.NoError(t, o.ChangeStatus(order.Delivered))

		err := o.Unassign()

		require.ErrorIs(t, err, order.ErrNotAssigned)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("walks the happy path", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), order.Assigned))

		require.NoError(t, o.ChangeStatus(order.Delivered))
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("cancels an unclaimed order", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.ChangeStatus(order.Cancelled))
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("invalid transition leaves status unchanged", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.Delivered)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Created, o.Status())
	})
}

func TestOrder_ApplyPatch(t *testing.T) {
	t.Run("replaces mutable fields", func(t *testing.T) {
		o := newTestOrder(t)
		newStore := kernel.NewUUID()

		err := o.ApplyPatch(order.Patch{
			StoreID:         newStore,
			CourierID:       nil,
			CustomerName:    "Karim",
			CustomerPhone:   "+213660000000",
			CustomerAddress: "Hydra",
			Status:          order.Created,
			Amount:          1800,
			DeliveryFee:     250,
		})

		require.NoError(t, err)
		assert.Equal(t, newStore, o.StoreID())
		assert.Equal(t, "Karim", o.CustomerName())
		assert.InDelta(t, 1800, o.Amount(), 0)
	})

	t.Run("status change inside a patch honors the transition table", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ApplyPatch(order.Patch{
			StoreID:      o.StoreID(),
			CustomerName: o.CustomerName(),
			Status:       order.Delivered,
			Amount:       o.Amount(),
			DeliveryFee:  o.DeliveryFee(),
		})

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Created, o.Status())
	})

	t.Run("patch cannot pair Created with a courier", func(t *testing.T) {
		o := newTestOrder(t)
		courierID := kernel.NewUUID()

		err := o.ApplyPatch(order.Patch{
			StoreID:      o.StoreID(),
			CourierID:    &courierID,
			CustomerName: o.CustomerName(),
			Status:       order.Created,
			Amount:       o.Amount(),
			DeliveryFee:  o.DeliveryFee(),
		})

		require.Error(t, err)
		assert.Nil(t, o.Courier())
	})
}
