package queries

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetDeliveriesQueryIsNotConstructed = errors.New(
		"GetDeliveriesQuery must be created via NewGetDeliveriesQuery constructor",
	)
)

// GetDeliveriesQuery reads the delivery ledger.
type GetDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDeliveriesQuery() GetDeliveriesQuery {
	return GetDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesQueryIsNotConstructed)
}

// GetDeliveriesQueryResponse is one completed pickup.
type GetDeliveriesQueryResponse struct {
	CourierID     int
	ReservationID int64
	FoodWait      time.Duration
	CourierWait   time.Duration
	DeliveredAt   time.Time
}
