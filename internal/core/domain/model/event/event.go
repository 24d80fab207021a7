package event

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// Type identifies an event variant.
type Type int

const (
	TypeUnknown Type = iota
	TypeOrderReceived
	TypeCourierDispatched
	TypeOrderPrepared
	TypeCourierArrived
	TypeOrderPickedUp
	TypeOrderDelivered
	TypeNoPendingOrders
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:           "UNKNOWN",
		TypeOrderReceived:     "ORDER_RECEIVED",
		TypeCourierDispatched: "COURIER_DISPATCHED",
		TypeOrderPrepared:     "ORDER_PREPARED",
		TypeCourierArrived:    "COURIER_ARRIVED",
		TypeOrderPickedUp:     "ORDER_PICKED_UP",
		TypeOrderDelivered:    "ORDER_DELIVERED",
		TypeNoPendingOrders:   "NO_PENDING_ORDERS",
	}
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// Event is implemented by every variant.
type Event interface {
	Type() Type
	CreatedAt() time.Time
}

type base struct {
	createdAt time.Time
}

func newBase() base {
	return base{createdAt: time.Now()}
}

func (b base) CreatedAt() time.Time {
	return b.createdAt
}

// OrderReceived is enqueued when an order passed boundary validation.
type OrderReceived struct {
	base
	order order.DeliveryOrder
}

func NewOrderReceived(o order.DeliveryOrder) OrderReceived {
	return OrderReceived{base: newBase(), order: o}
}

func (OrderReceived) Type() Type                  { return TypeOrderReceived }
func (e OrderReceived) Order() order.DeliveryOrder { return e.order }

// CourierDispatched records which courier was sent for which reservation.
type CourierDispatched struct {
	base
	courierID     int
	reservationID int64
	eta           time.Duration
}

func NewCourierDispatched(courierID int, reservationID int64, eta time.Duration) CourierDispatched {
	return CourierDispatched{
		base:          newBase(),
		courierID:     courierID,
		reservationID: reservationID,
		eta:           eta,
	}
}

func (CourierDispatched) Type() Type            { return TypeCourierDispatched }
func (e CourierDispatched) CourierID() int       { return e.courierID }
func (e CourierDispatched) ReservationID() int64 { return e.reservationID }
func (e CourierDispatched) ETA() time.Duration   { return e.eta }

// OrderPrepared is published by the kitchen once a meal is ready for pickup.
type OrderPrepared struct {
	base
	reservationID int64
	orderID       string
	readySince    time.Time
}

func NewOrderPrepared(reservationID int64, orderID string, readySince time.Time) OrderPrepared {
	return OrderPrepared{
		base:          newBase(),
		reservationID: reservationID,
		orderID:       orderID,
		readySince:    readySince,
	}
}

func (OrderPrepared) Type() Type             { return TypeOrderPrepared }
func (e OrderPrepared) ReservationID() int64  { return e.reservationID }
func (e OrderPrepared) OrderID() string       { return e.orderID }
func (e OrderPrepared) ReadySince() time.Time { return e.readySince }

// CourierArrived is published when a courier reaches the kitchen. ExpectedAt is the
// arrival time promised at dispatch, ArrivedAt the moment the arrival was observed.
type CourierArrived struct {
	base
	courierID  int
	expectedAt time.Time
	arrivedAt  time.Time
}

func NewCourierArrived(courierID int, expectedAt, arrivedAt time.Time) CourierArrived {
	return CourierArrived{
		base:       newBase(),
		courierID:  courierID,
		expectedAt: expectedAt,
		arrivedAt:  arrivedAt,
	}
}

func (CourierArrived) Type() Type            { return TypeCourierArrived }
func (e CourierArrived) CourierID() int       { return e.courierID }
func (e CourierArrived) ExpectedAt() time.Time { return e.expectedAt }
func (e CourierArrived) ArrivedAt() time.Time  { return e.arrivedAt }

// OrderPickedUp is published by a matcher when a ready meal met an arrived courier.
type OrderPickedUp struct {
	base
	courierID     int
	reservationID int64
	foodWait      time.Duration
	courierWait   time.Duration
}

func NewOrderPickedUp(courierID int, reservationID int64, foodWait, courierWait time.Duration) OrderPickedUp {
	return OrderPickedUp{
		base:          newBase(),
		courierID:     courierID,
		reservationID: reservationID,
		foodWait:      foodWait,
		courierWait:   courierWait,
	}
}

func (OrderPickedUp) Type() Type                 { return TypeOrderPickedUp }
func (e OrderPickedUp) CourierID() int            { return e.courierID }
func (e OrderPickedUp) ReservationID() int64      { return e.reservationID }
func (e OrderPickedUp) FoodWait() time.Duration   { return e.foodWait }
func (e OrderPickedUp) CourierWait() time.Duration { return e.courierWait }

// OrderDelivered follows a pickup immediately; transit is not simulated.
type OrderDelivered struct {
	base
	courierID     int
	reservationID int64
}

func NewOrderDelivered(courierID int, reservationID int64) OrderDelivered {
	return OrderDelivered{
		base:          newBase(),
		courierID:     courierID,
		reservationID: reservationID,
	}
}

func (OrderDelivered) Type() Type            { return TypeOrderDelivered }
func (e OrderDelivered) CourierID() int       { return e.courierID }
func (e OrderDelivered) ReservationID() int64 { return e.reservationID }

// NoPendingOrders is published once by the idle monitor and triggers shutdown.
type NoPendingOrders struct {
	base
}

func NewNoPendingOrders() NoPendingOrders {
	return NoPendingOrders{base: newBase()}
}

func (NoPendingOrders) Type() Type { return TypeNoPendingOrders }
