// Package fleet owns the couriers of the pipeline: which are AVAILABLE, which are
// DISPATCHED, and the simulated trip of a dispatched courier to the kitchen.
package fleet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const (
	DefaultETAMin = 3 * time.Second
	DefaultETAMax = 15 * time.Second
)

var (
	ErrFleetStopped     = errors.New("fleet is stopped")
	ErrSchedulerIsNil   = errs.NewValueIsRequiredError("scheduler")
	ErrDuplicateCourier = errors.New("courier id is used twice")
	ErrAlreadyArrived   = errors.New("courier already arrived for this dispatch")
	ErrArrivalNotQueued = errors.New("courier arrival was not queued")
)

var _ ports.Fleet = (*Fleet)(nil)

// Config bounds the simulated travel time of a courier.
type Config struct {
	ETAMin         time.Duration
	ETAMax         time.Duration
	PublishTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.ETAMin <= 0 && c.ETAMax <= 0 {
		c.ETAMin, c.ETAMax = DefaultETAMin, DefaultETAMax
	}
	if c.ETAMin < 0 {
		c.ETAMin = 0
	}
	if c.ETAMax < c.ETAMin {
		c.ETAMax = c.ETAMin
	}
	return c
}

// Fleet dispatches couriers and releases them once their order is delivered.
type Fleet struct {
	*event.Notifier

	cfg       Config
	scheduler ports.Scheduler
	logger    *slog.Logger

	mu         sync.Mutex
	available  []*courier.Courier
	dispatched map[int]*trip
	stopped    bool
}

// trip is one dispatch of a courier. Its arrival is published at most once, by the
// simulated timer or by an external report, whichever comes first.
type trip struct {
	courier    *courier.Courier
	expectedAt time.Time

	mu      sync.Mutex
	arrived bool
	queued  bool
}

// New builds a fleet whose couriers all start AVAILABLE.
func New(couriers []*courier.Courier, cfg Config, scheduler ports.Scheduler, logger *slog.Logger) (*Fleet, error) {
	if scheduler == nil {
		return nil, ErrSchedulerIsNil
	}

	seen := make(map[int]struct{}, len(couriers))
	available := make([]*courier.Courier, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[c.ID()]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateCourier, c.ID())
		}
		seen[c.ID()] = struct{}{}
		if !c.IsAvailable() {
			if err := c.Release(); err != nil {
				return nil, err
			}
		}
		available = append(available, c)
	}

	cfg = cfg.withDefaults()
	logger = logger.With("component", "fleet")
	return &Fleet{
		Notifier:   event.NewNotifier(logger, cfg.PublishTimeout),
		cfg:        cfg,
		scheduler:  scheduler,
		logger:     logger,
		available:  available,
		dispatched: make(map[int]*trip),
	}, nil
}

// Dispatch sends the first AVAILABLE courier toward the kitchen for o and schedules its
// arrival after a uniformly sampled ETA.
func (f *Fleet) Dispatch(o order.DeliveryOrder) (courier.DispatchResult, error) {
	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return courier.NoCourierAvailable(), ErrFleetStopped
	}
	if len(f.available) == 0 {
		f.mu.Unlock()
		f.logger.Info("No courier available", "order_id", o.ID())
		return courier.NoCourierAvailable(), nil
	}

	c := f.available[0]
	if err := c.Dispatch(); err != nil {
		f.mu.Unlock()
		return courier.NoCourierAvailable(), err
	}
	f.available[0] = nil
	f.available = f.available[1:]

	eta := f.sampleETA()
	t := &trip{courier: c, expectedAt: time.Now().Add(eta)}
	f.dispatched[c.ID()] = t
	f.mu.Unlock()

	published := make(chan bool, 1)
	courierID := c.ID()

	f.scheduler.ScheduleOnce(fmt.Sprintf("courier-%d-arrival", courierID), func(context.Context) error {
		first, queued := f.arrive(t, t.expectedAt)
		published <- queued
		if first && !queued {
			return fmt.Errorf("courier %d: %w", courierID, ErrArrivalNotQueued)
		}
		return nil
	}, eta)

	f.logger.Info("Courier dispatched", "courier_id", courierID, "order_id", o.ID(), "eta", eta)
	return courier.NewDispatchResult(courierID, eta, published), nil
}

// ReportArrival publishes COURIER_ARRIVED for a courier whose arrival comes from outside
// the simulation. The courier must be DISPATCHED and not yet arrived for its current
// trip; otherwise an errs.ObjectNotFoundError is returned. The trip's own timer then
// publishes nothing.
func (f *Fleet) ReportArrival(courierID int, expectedAt time.Time) error {
	f.mu.Lock()
	t, ok := f.dispatched[courierID]
	f.mu.Unlock()
	if !ok {
		return errs.NewObjectNotFoundError("courierId", strconv.Itoa(courierID))
	}

	first, queued := f.arrive(t, expectedAt)
	if !first {
		return errs.NewObjectNotFoundErrorWithCause("courierId", strconv.Itoa(courierID), ErrAlreadyArrived)
	}
	if !queued {
		return fmt.Errorf("courier %d: %w", courierID, ErrArrivalNotQueued)
	}
	return nil
}

// arrive publishes the arrival of t unless it already happened. It reports whether this
// call was the first arrival and whether the trip's arrival reached the queue.
func (f *Fleet) arrive(t *trip, expectedAt time.Time) (first, queued bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.arrived {
		return false, t.queued
	}
	t.arrived = true
	t.queued = f.Publish(event.NewCourierArrived(t.courier.ID(), expectedAt, time.Now()))
	return true, t.queued
}

// Release returns a DISPATCHED courier to the end of the available pool.
func (f *Fleet) Release(courierID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.dispatched[courierID]
	if !ok {
		return errs.NewObjectNotFoundError("courierId", strconv.Itoa(courierID))
	}
	c := t.courier
	if err := c.Release(); err != nil {
		return errs.NewObjectNotFoundErrorWithCause("courierId", strconv.Itoa(courierID), err)
	}
	delete(f.dispatched, courierID)
	f.available = append(f.available, c)

	f.logger.Debug("Courier released", "courier_id", courierID)
	return nil
}

// Stop refuses further dispatches. Couriers already en route still arrive.
func (f *Fleet) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return
	}
	f.stopped = true
	f.logger.Info("Fleet stopped", "available", len(f.available), "dispatched", len(f.dispatched))
}

// Snapshot describes one courier at the time Couriers was called.
type Snapshot struct {
	ID     int
	Name   string
	Status courier.Status
}

// Couriers lists every courier, available ones first.
func (f *Fleet) Couriers() []Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Snapshot, 0, len(f.available)+len(f.dispatched))
	for _, c := range f.available {
		out = append(out, Snapshot{ID: c.ID(), Name: c.Name(), Status: c.Status()})
	}
	for _, t := range f.dispatched {
		c := t.courier
		out = append(out, Snapshot{ID: c.ID(), Name: c.Name(), Status: c.Status()})
	}
	return out
}

func (f *Fleet) AvailableCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.available)
}

func (f *Fleet) sampleETA() time.Duration {
	spread := f.cfg.ETAMax - f.cfg.ETAMin
	if spread <= 0 {
		return f.cfg.ETAMin
	}
	return f.cfg.ETAMin + rand.N(spread+1)
}
