package event_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_String(t *testing.T) {
	testCases := []struct {
		typ  event.Type
		want string
	}{
		{event.TypeOrderReceived, "ORDER_RECEIVED"},
		{event.TypeCourierDispatched, "COURIER_DISPATCHED"},
		{event.TypeOrderPrepared, "ORDER_PREPARED"},
		{event.TypeCourierArrived, "COURIER_ARRIVED"},
		{event.TypeOrderPickedUp, "ORDER_PICKED_UP"},
		{event.TypeOrderDelivered, "ORDER_DELIVERED"},
		{event.TypeNoPendingOrders, "NO_PENDING_ORDERS"},
		{event.Type(99), "UNKNOWN"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, tc.typ.String())
	}
}

func TestEvents_CarryTheirFields(t *testing.T) {
	before := time.Now()
	o, err := order.NewDeliveryOrder("o1", "pizza", 2*time.Second)
	require.NoError(t, err)

	received := event.NewOrderReceived(o)
	assert.Equal(t, event.TypeOrderReceived, received.Type())
	assert.True(t, received.Order().IsEqual(o))
	assert.False(t, received.CreatedAt().Before(before))

	dispatched := event.NewCourierDispatched(3, 11, time.Second)
	assert.Equal(t, 3, dispatched.CourierID())
	assert.Equal(t, int64(11), dispatched.ReservationID())
	assert.Equal(t, time.Second, dispatched.ETA())

	ready := time.Now()
	prepared := event.NewOrderPrepared(11, "o1", ready)
	assert.Equal(t, int64(11), prepared.ReservationID())
	assert.Equal(t, "o1", prepared.OrderID())
	assert.Equal(t, ready, prepared.ReadySince())

	arrived := event.NewCourierArrived(3, ready, ready.Add(time.Millisecond))
	assert.Equal(t, 3, arrived.CourierID())
	assert.Equal(t, ready, arrived.ExpectedAt())
	assert.Equal(t, ready.Add(time.Millisecond), arrived.ArrivedAt())

	picked := event.NewOrderPickedUp(3, 11, 5*time.Millisecond, 7*time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, picked.FoodWait())
	assert.Equal(t, 7*time.Millisecond, picked.CourierWait())

	delivered := event.NewOrderDelivered(3, 11)
	assert.Equal(t, event.TypeOrderDelivered, delivered.Type())
	assert.Equal(t, 3, delivered.CourierID())

	assert.Equal(t, event.TypeNoPendingOrders, event.NewNoPendingOrders().Type())
}
