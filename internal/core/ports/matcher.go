package ports

import "fulfillment/internal/core/domain/model/event"

// Matcher pairs ready meals with arrived couriers and publishes ORDER_PICKED_UP for
// each pairing. Implementations must tolerate concurrent calls.
type Matcher interface {
	EventPublisher

	// AcceptCourierDispatched lets a strategy learn which courier serves which reservation.
	AcceptCourierDispatched(e event.CourierDispatched) (bool, error)

	// AcceptMealPrepared reports whether the meal was matched right away.
	AcceptMealPrepared(e event.OrderPrepared) (bool, error)

	// AcceptCourierArrived reports whether the courier was matched right away.
	AcceptCourierArrived(e event.CourierArrived) (bool, error)
}
