package services

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/pkg/errs"
)

// Strategy selects a matching algorithm.
type Strategy string

const (
	StrategyFIFO    Strategy = "fifo"
	StrategyMatched Strategy = "matched"
)

var ErrPickupNotPublished = errors.New("pickup event was not published")

// ParseStrategy accepts the configuration selector for a matcher.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyFIFO, StrategyMatched:
		return Strategy(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"strategy",
			fmt.Errorf("%q is not one of %q, %q", s, StrategyFIFO, StrategyMatched),
		)
	}
}

// publishPickup announces a pairing. Both waits are measured against the same instant.
func publishPickup(n *event.Notifier, meal event.OrderPrepared, arrival event.CourierArrived) error {
	now := time.Now()
	pickup := event.NewOrderPickedUp(
		arrival.CourierID(),
		meal.ReservationID(),
		now.Sub(meal.ReadySince()),
		now.Sub(arrival.ArrivedAt()),
	)
	if !n.Publish(pickup) {
		return fmt.Errorf("courier %d, reservation %d: %w",
			arrival.CourierID(), meal.ReservationID(), ErrPickupNotPublished)
	}
	return nil
}
