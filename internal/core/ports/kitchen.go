package ports

import "fulfillment/internal/core/domain/model/order"

// Kitchen books meal slots and cooks them.
type Kitchen interface {
	EventPublisher

	// Reserve books a slot for o and returns its reservation id. Nothing is cooked yet.
	Reserve(o order.DeliveryOrder) (int64, error)

	// Cancel drops a booking and reports whether one was removed.
	Cancel(reservationID int64) bool

	// PrepareMeal starts cooking a booked order; ORDER_PREPARED follows after its prep time.
	PrepareMeal(reservationID int64) error

	// IsIdle reports whether no meal is currently cooking.
	IsIdle() bool

	// Stop refuses new reservations. Meals already cooking still complete.
	Stop()
}
