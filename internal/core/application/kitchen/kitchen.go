// Package kitchen books meal slots for orders and simulates cooking them.
package kitchen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var (
	ErrKitchenClosed  = errors.New("kitchen is closed")
	ErrSchedulerIsNil = errs.NewValueIsRequiredError("scheduler")
)

var _ ports.Kitchen = (*Kitchen)(nil)

// Kitchen owns the reservation map and the count of meals currently cooking.
type Kitchen struct {
	*event.Notifier

	scheduler ports.Scheduler
	logger    *slog.Logger

	mu           sync.Mutex
	nextID       int64
	reservations map[int64]order.DeliveryOrder
	inFlight     int
	closed       bool
}

func New(scheduler ports.Scheduler, logger *slog.Logger, publishTimeout time.Duration) (*Kitchen, error) {
	if scheduler == nil {
		return nil, ErrSchedulerIsNil
	}
	logger = logger.With("component", "kitchen")
	return &Kitchen{
		Notifier:     event.NewNotifier(logger, publishTimeout),
		scheduler:    scheduler,
		logger:       logger,
		reservations: make(map[int64]order.DeliveryOrder),
	}, nil
}

// Reserve books a slot for o. Nothing is cooked until PrepareMeal.
func (k *Kitchen) Reserve(o order.DeliveryOrder) (int64, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return 0, ErrKitchenClosed
	}
	k.nextID++
	id := k.nextID
	k.reservations[id] = o

	k.logger.Debug("Reservation created", "reservation_id", id, "order_id", o.ID())
	return id, nil
}

// Cancel drops a booking and reports whether there was one.
func (k *Kitchen) Cancel(reservationID int64) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	if _, ok := k.reservations[reservationID]; !ok {
		return false
	}
	delete(k.reservations, reservationID)
	k.logger.Debug("Reservation cancelled", "reservation_id", reservationID)
	return true
}

// PrepareMeal starts cooking a booked order. ORDER_PREPARED is published once the order's
// prep time has elapsed; the reservation is consumed and the in-flight count drops
// whether or not the event made it onto the queue.
func (k *Kitchen) PrepareMeal(reservationID int64) error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return ErrKitchenClosed
	}
	o, ok := k.reservations[reservationID]
	if !ok {
		k.mu.Unlock()
		return errs.NewObjectNotFoundError("reservationId", strconv.FormatInt(reservationID, 10))
	}
	k.inFlight++
	k.mu.Unlock()

	name := fmt.Sprintf("reservation-%d-prepare", reservationID)
	k.scheduler.ScheduleOnce(name, func(context.Context) error {
		defer k.finish(reservationID)

		if !k.Publish(event.NewOrderPrepared(reservationID, o.ID(), time.Now())) {
			return fmt.Errorf("meal for reservation %d was not published", reservationID)
		}
		return nil
	}, o.PrepTime())

	k.logger.Info("Cooking started", "reservation_id", reservationID, "order_id", o.ID(), "prep_time", o.PrepTime())
	return nil
}

// IsIdle reports whether no meal is cooking.
func (k *Kitchen) IsIdle() bool {
	return k.InFlight() == 0
}

func (k *Kitchen) InFlight() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return k.inFlight
}

// Reservations counts bookings not yet cancelled or cooked.
func (k *Kitchen) Reservations() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.reservations)
}

// Stop refuses new reservations and cooking requests. Meals already cooking still complete.
func (k *Kitchen) Stop() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return
	}
	k.closed = true
	k.logger.Info("Kitchen closed", "in_flight", k.inFlight, "reservations", len(k.reservations))
}

func (k *Kitchen) finish(reservationID int64) {
	k.mu.Lock()
	defer k.mu.Unlock()

	delete(k.reservations, reservationID)
	k.inFlight--
}
