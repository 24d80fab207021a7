package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
)

// DeliveryLedger keeps the record of completed pickups for reporting.
type DeliveryLedger interface {
	// Record appends one completed delivery.
	Record(ctx context.Context, record delivery.Record) error

	// List returns every recorded delivery, oldest first.
	List(ctx context.Context) ([]delivery.Record, error)
}
