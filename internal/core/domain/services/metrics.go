package services

import (
	"log/slog"
	"sync"
	"time"
)

// MetricsSnapshot is a point-in-time copy of the pipeline metrics.
type MetricsSnapshot struct {
	OrdersReceived     int64         `json:"ordersReceived"`
	PrepareRequested   int64         `json:"prepareRequested"`
	MealsPrepared      int64         `json:"mealsPrepared"`
	OrdersCancelled    int64         `json:"ordersCancelled"`
	OrdersPickedUp     int64         `json:"ordersPickedUp"`
	OrdersDelivered    int64         `json:"ordersDelivered"`
	FoodWaitSamples    int64         `json:"foodWaitSamples"`
	AvgFoodWait        time.Duration `json:"avgFoodWaitNanos"`
	CourierWaitSamples int64         `json:"courierWaitSamples"`
	AvgCourierWait     time.Duration `json:"avgCourierWaitNanos"`
}

// LogValue renders the snapshot as a slog group.
func (s MetricsSnapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("received", s.OrdersReceived),
		slog.Int64("prepare_requested", s.PrepareRequested),
		slog.Int64("prepared", s.MealsPrepared),
		slog.Int64("cancelled", s.OrdersCancelled),
		slog.Int64("picked_up", s.OrdersPickedUp),
		slog.Int64("delivered", s.OrdersDelivered),
		slog.Duration("avg_food_wait", s.AvgFoodWait),
		slog.Duration("avg_courier_wait", s.AvgCourierWait),
	)
}

type runningAverage struct {
	count int64
	total time.Duration
}

func (a *runningAverage) add(sample time.Duration) {
	a.count++
	a.total += sample
}

func (a runningAverage) average() time.Duration {
	if a.count == 0 {
		return 0
	}
	return a.total / time.Duration(a.count)
}

// Metrics collects pipeline counters. Only the order processor writes to it; readers
// (the HTTP boundary, the idle monitor) go through Snapshot and PendingDeliveries.
type Metrics struct {
	mu               sync.Mutex
	received         int64
	prepareRequested int64
	prepared         int64
	cancelled        int64
	pickedUp         int64
	delivered        int64
	foodWait         runningAverage
	courierWait      runningAverage
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) AcceptOrderReceived() {
	m.mu.Lock()
	m.received++
	m.mu.Unlock()
}

func (m *Metrics) AcceptPrepareRequested() {
	m.mu.Lock()
	m.prepareRequested++
	m.mu.Unlock()
}

func (m *Metrics) AcceptMealPrepared() {
	m.mu.Lock()
	m.prepared++
	m.mu.Unlock()
}

func (m *Metrics) AcceptOrderCancelled() {
	m.mu.Lock()
	m.cancelled++
	m.mu.Unlock()
}

// AcceptPickup records one pairing and its two wait samples.
func (m *Metrics) AcceptPickup(foodWait, courierWait time.Duration) {
	m.mu.Lock()
	m.pickedUp++
	m.foodWait.add(foodWait)
	m.courierWait.add(courierWait)
	m.mu.Unlock()
}

func (m *Metrics) AcceptOrderDelivered() {
	m.mu.Lock()
	m.delivered++
	m.mu.Unlock()
}

// PendingDeliveries counts meals sent to the kitchen that have not been delivered yet.
func (m *Metrics) PendingDeliveries() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.prepareRequested - m.delivered
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return MetricsSnapshot{
		OrdersReceived:     m.received,
		PrepareRequested:   m.prepareRequested,
		MealsPrepared:      m.prepared,
		OrdersCancelled:    m.cancelled,
		OrdersPickedUp:     m.pickedUp,
		OrdersDelivered:    m.delivered,
		FoodWaitSamples:    m.foodWait.count,
		AvgFoodWait:        m.foodWait.average(),
		CourierWaitSamples: m.courierWait.count,
		AvgCourierWait:     m.courierWait.average(),
	}
}
