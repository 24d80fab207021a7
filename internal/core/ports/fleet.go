package ports

import (
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/order"
)

// Fleet owns the couriers and their AVAILABLE/DISPATCHED state.
type Fleet interface {
	EventPublisher

	// Dispatch sends any available courier toward the kitchen for o. When no courier is
	// available the result carries no courier id and nothing is scheduled.
	Dispatch(o order.DeliveryOrder) (courier.DispatchResult, error)

	// Release returns a dispatched courier to the available pool. Unknown or
	// non-dispatched ids yield an errs.ObjectNotFoundError.
	Release(courierID int) error

	// ReportArrival publishes COURIER_ARRIVED for a courier reported by an external courier
	// service. Only the first arrival of a dispatch counts, whether it comes from the
	// simulated trip or from a report; a courier that is not DISPATCHED or has already
	// arrived yields an errs.ObjectNotFoundError.
	ReportArrival(courierID int, expectedAt time.Time) error

	// Stop refuses further dispatches. Couriers already en route still arrive.
	Stop()
}
