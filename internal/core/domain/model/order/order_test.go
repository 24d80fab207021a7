package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeliveryOrder(t *testing.T) {
	t.Run("should create order with valid parameters", func(t *testing.T) {
		o, err := order.NewDeliveryOrder("o1", "pizza", 2*time.Second)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, "o1", o.ID())
		assert.Equal(t, "pizza", o.Name())
		assert.Equal(t, 2*time.Second, o.PrepTime())
	})

	t.Run("should accept zero preparation time", func(t *testing.T) {
		o, err := order.NewDeliveryOrder("o2", "salad", 0)

		require.NoError(t, err)
		assert.Zero(t, o.PrepTime())
	})

	t.Run("should reject invalid parameters", func(t *testing.T) {
		testCases := []struct {
			name     string
			id       string
			dish     string
			prepTime time.Duration
			wantErr  error
		}{
			{"empty id", "", "pizza", time.Second, errs.ErrValueIsRequired},
			{"blank name", "o1", "   ", time.Second, errs.ErrValueIsRequired},
			{"negative prep time", "o1", "pizza", -time.Second, errs.ErrValueIsOutOfRange},
			{"prep time above limit", "o1", "pizza", order.MaxPrepTime + time.Second, errs.ErrValueIsOutOfRange},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				o, err := order.NewDeliveryOrder(tc.id, tc.dish, tc.prepTime)

				require.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, order.DeliveryOrder{}, o)
			})
		}
	})

	t.Run("should aggregate all violations", func(t *testing.T) {
		_, err := order.NewDeliveryOrder("", "", -1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "id")
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "prepTime")
	})
}

func TestDeliveryOrder_IsEqual(t *testing.T) {
	a, _ := order.NewDeliveryOrder("o1", "pizza", time.Second)
	b, _ := order.NewDeliveryOrder("o1", "pasta", 3*time.Second)
	c, _ := order.NewDeliveryOrder("o2", "pizza", time.Second)

	assert.True(t, a.IsEqual(b), "equality is by id")
	assert.False(t, a.IsEqual(c))
}

func TestDeliveryOrder_ZeroValueIsInvalid(t *testing.T) {
	var o order.DeliveryOrder

	assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
}
