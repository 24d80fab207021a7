package services

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/pkg/errs"
)

// AffinityMatcher pairs each courier with the reservation it was dispatched for. The
// affinity is learned from COURIER_DISPATCHED; whichever of the meal or the courier comes
// second completes the match and clears every entry of the pair under one lock, so a pair
// completes at most once.
type AffinityMatcher struct {
	*event.Notifier

	mu                   sync.Mutex
	courierByReservation map[int64]int
	reservationByCourier map[int]int64
	waitingMeals         map[int64]event.OrderPrepared
	waitingCouriers      map[int]event.CourierArrived
	logger               *slog.Logger
}

func NewAffinityMatcher(logger *slog.Logger, publishTimeout time.Duration) *AffinityMatcher {
	logger = logger.With("component", "affinity_matcher")
	return &AffinityMatcher{
		Notifier:             event.NewNotifier(logger, publishTimeout),
		courierByReservation: make(map[int64]int),
		reservationByCourier: make(map[int]int64),
		waitingMeals:         make(map[int64]event.OrderPrepared),
		waitingCouriers:      make(map[int]event.CourierArrived),
		logger:               logger,
	}
}

// AcceptCourierDispatched records that e's courier serves e's reservation.
func (m *AffinityMatcher) AcceptCourierDispatched(e event.CourierDispatched) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.courierByReservation[e.ReservationID()] = e.CourierID()
	m.reservationByCourier[e.CourierID()] = e.ReservationID()
	return true, nil
}

func (m *AffinityMatcher) AcceptMealPrepared(e event.OrderPrepared) (bool, error) {
	m.mu.Lock()
	courierID, known := m.courierByReservation[e.ReservationID()]
	if !known {
		m.mu.Unlock()
		return false, errs.NewObjectNotFoundError("reservationId", strconv.FormatInt(e.ReservationID(), 10))
	}

	arrival, arrived := m.waitingCouriers[courierID]
	if !arrived {
		m.waitingMeals[e.ReservationID()] = e
		m.mu.Unlock()
		return false, nil
	}
	m.clearPairLocked(e.ReservationID(), courierID)
	m.mu.Unlock()

	return m.complete(e, arrival)
}

func (m *AffinityMatcher) AcceptCourierArrived(e event.CourierArrived) (bool, error) {
	m.mu.Lock()
	reservationID, known := m.reservationByCourier[e.CourierID()]
	if !known {
		m.mu.Unlock()
		return false, errs.NewObjectNotFoundError("courierId", strconv.Itoa(e.CourierID()))
	}

	meal, ready := m.waitingMeals[reservationID]
	if !ready {
		m.waitingCouriers[e.CourierID()] = e
		m.mu.Unlock()
		return false, nil
	}
	m.clearPairLocked(reservationID, e.CourierID())
	m.mu.Unlock()

	return m.complete(meal, e)
}

// Pending returns how many meals and couriers are parked waiting for their partner.
func (m *AffinityMatcher) Pending() (meals int, couriers int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.waitingMeals), len(m.waitingCouriers)
}

func (m *AffinityMatcher) clearPairLocked(reservationID int64, courierID int) {
	delete(m.waitingMeals, reservationID)
	delete(m.waitingCouriers, courierID)
	delete(m.courierByReservation, reservationID)
	delete(m.reservationByCourier, courierID)
}

func (m *AffinityMatcher) complete(meal event.OrderPrepared, arrival event.CourierArrived) (bool, error) {
	m.logger.Debug("Meal matched with its courier",
		"reservation_id", meal.ReservationID(),
		"order_id", meal.OrderID(),
		"courier_id", arrival.CourierID())
	return true, publishPickup(m.Notifier, meal, arrival)
}
