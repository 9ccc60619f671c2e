package order_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Created))
		assert.Equal(t, 2, int(order.Assigned))
		assert.Equal(t, 3, int(order.Delivered))
		assert.Equal(t, 4, int(order.Returned))
		assert.Equal(t, 5, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Created,
			order.Assigned,
			order.Delivered,
			order.Returned,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "status is invalid")
	})

	t.Run("should reject out of range values", func(t *testing.T) {
		for _, status := range []order.Status{order.Status(-1), order.Status(6), order.Status(100)} {
			require.Error(t, status.Validate())
		}
	})
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status order.Status
		want   string
	}{
		{order.Unknown, "UNKNOWN"},
		{order.Created, "CREATED"},
		{order.Assigned, "ASSIGNED"},
		{order.Delivered, "DELIVERED"},
		{order.Returned, "RETURNED"},
		{order.Cancelled, "CANCELLED"},
		{order.Status(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("parses wire names case-insensitively", func(t *testing.T) {
		tests := []struct {
			input string
			want  order.Status
		}{
			{"CREATED", order.Created},
			{"created", order.Created},
			{"Assigned", order.Assigned},
			{"DELIVERED", order.Delivered},
			{" returned ", order.Returned},
			{"CANCELLED", order.Cancelled},
		}

		for _, tt := range tests {
			status, err := order.StatusFromString(tt.input)
			require.NoError(t, err, tt.input)
			assert.Equal(t, tt.want, status, tt.input)
		}
	})

	t.Run("rejects names outside the closed set", func(t *testing.T) {
		for _, input := range []string{"", "SHIPPED", "UNKNOWN", "DONE"} {
			_, err := order.StatusFromString(input)
			require.Error(t, err, input)
		}
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	allStatuses := []order.Status{
		order.Created,
		order.Assigned,
		order.Delivered,
		order.Returned,
		order.Cancelled,
	}

	allowed := map[order.Status]map[order.Status]bool{
		order.Created:  {order.Assigned: true, order.Cancelled: true},
		order.Assigned: {order.Delivered: true, order.Returned: true},
	}

	t.Run("accepts exactly the pairs in the transition table", func(t *testing.T) {
		for _, from := range allStatuses {
			for _, to := range allStatuses {
				err := from.CanTransitionTo(to)

				if allowed[from][to] {
					require.NoError(t, err, "%s -> %s must be allowed", from, to)
				} else {
					require.Error(t, err, "%s -> %s must be rejected", from, to)
					require.ErrorIs(t, err, order.ErrInvalidTransition)
				}
			}
		}
	})

	t.Run("rejects identity transitions", func(t *testing.T) {
		for _, status := range allStatuses {
			err := status.CanTransitionTo(status)

			require.Error(t, err, "%s -> %s must be rejected", status, status)
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})

	t.Run("rejects unknown statuses before consulting the table", func(t *testing.T) {
		require.Error(t, order.Unknown.CanTransitionTo(order.Assigned))
		require.Error(t, order.Created.CanTransitionTo(order.Unknown))
	})

	t.Run("error carries the offending pair", func(t *testing.T) {
		err := order.Created.CanTransitionTo(order.Delivered)

		require.Error(t, err)
		var transitionErr *order.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.Created, transitionErr.From)
		assert.Equal(t, order.Delivered, transitionErr.To)
		assert.Contains(t, err.Error(), "CREATED -> DELIVERED")
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Created.IsTerminal())
	assert.False(t, order.Assigned.IsTerminal())
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Returned.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
}

func TestStatus_IsDeletableByStore(t *testing.T) {
	assert.True(t, order.Created.IsDeletableByStore())
	assert.True(t, order.Returned.IsDeletableByStore())
	assert.False(t, order.Assigned.IsDeletableByStore())
	assert.False(t, order.Delivered.IsDeletableByStore())
	assert.False(t, order.Cancelled.IsDeletableByStore())
}
