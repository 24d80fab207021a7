// Package commands contains the boundary operations that feed the fulfillment pipeline.
// Every command validates its payload in its constructor, so a malformed request never
// becomes an event; handlers translate a valid command into a queue submission.
package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

var (
	ErrOrderRejected   = errors.New("order was not accepted by the pipeline")
	ErrArrivalRejected = errors.New("courier arrival was not accepted by the pipeline")
)

// The pipeline entry points used by the handlers. The order processor implements both.
type (
	// OrderSubmitter enqueues ORDER_RECEIVED.
	OrderSubmitter interface {
		Submit(o order.DeliveryOrder) bool
	}

	// ArrivalReporter enqueues COURIER_ARRIVED reported by an external courier service.
	// Couriers that are not on their way yield an errs.ObjectNotFoundError.
	ArrivalReporter interface {
		ReportArrival(courierID int, expectedAt time.Time) error
	}
)
