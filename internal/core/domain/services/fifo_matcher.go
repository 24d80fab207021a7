package services

import (
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/event"
)

// FIFOMatcher pairs the oldest ready meal with the oldest waiting courier, regardless of
// which order the courier was dispatched for. Every meal eventually meets some courier.
type FIFOMatcher struct {
	*event.Notifier

	mu       sync.Mutex
	meals    []event.OrderPrepared
	couriers []event.CourierArrived
	logger   *slog.Logger
}

func NewFIFOMatcher(logger *slog.Logger, publishTimeout time.Duration) *FIFOMatcher {
	logger = logger.With("component", "fifo_matcher")
	return &FIFOMatcher{
		Notifier: event.NewNotifier(logger, publishTimeout),
		logger:   logger,
	}
}

// AcceptCourierDispatched is a no-op: FIFO matching has no affinity.
func (m *FIFOMatcher) AcceptCourierDispatched(event.CourierDispatched) (bool, error) {
	return false, nil
}

func (m *FIFOMatcher) AcceptMealPrepared(e event.OrderPrepared) (bool, error) {
	m.mu.Lock()
	m.meals = append(m.meals, e)
	meal, arrival, ok := m.popPairLocked()
	m.mu.Unlock()

	return m.complete(meal, arrival, ok)
}

func (m *FIFOMatcher) AcceptCourierArrived(e event.CourierArrived) (bool, error) {
	m.mu.Lock()
	m.couriers = append(m.couriers, e)
	meal, arrival, ok := m.popPairLocked()
	m.mu.Unlock()

	return m.complete(meal, arrival, ok)
}

// Pending returns how many meals and couriers are still waiting for a partner.
func (m *FIFOMatcher) Pending() (meals int, couriers int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.meals), len(m.couriers)
}

func (m *FIFOMatcher) popPairLocked() (event.OrderPrepared, event.CourierArrived, bool) {
	if len(m.meals) == 0 || len(m.couriers) == 0 {
		return event.OrderPrepared{}, event.CourierArrived{}, false
	}

	meal, arrival := m.meals[0], m.couriers[0]
	m.meals = m.meals[1:]
	m.couriers = m.couriers[1:]
	return meal, arrival, true
}

func (m *FIFOMatcher) complete(meal event.OrderPrepared, arrival event.CourierArrived, ok bool) (bool, error) {
	if !ok {
		return false, nil
	}

	m.logger.Debug("Meal matched",
		"reservation_id", meal.ReservationID(),
		"order_id", meal.OrderID(),
		"courier_id", arrival.CourierID())
	return true, publishPickup(m.Notifier, meal, arrival)
}
