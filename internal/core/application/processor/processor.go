package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const (
	JobDispatchLoop = "dispatch-loop"
	JobIdleMonitor  = "idle-monitor"
)

const (
	DefaultPollPeriod     = 10 * time.Millisecond
	MaxPollPeriod         = time.Second
	DefaultIdlePeriod     = time.Second
	DefaultIdleMaxTokens  = 3
	DefaultIdleWarmUp     = 2 * time.Second
	DefaultQueueCapacity  = 1024
	DefaultPublishTimeout = event.DefaultPublishTimeout
)

var (
	ErrUnknownEvent     = errors.New("unknown event type")
	ErrAlreadyStarted   = errors.New("processor is already started")
	ErrProcessorStopped = errors.New("processor is stopped")
)

// Config holds the timing of the two recurring jobs and the queue size.
// Zero fields take their Default* value, except IdleWarmUp.
type Config struct {
	PollPeriod     time.Duration
	IdlePeriod     time.Duration
	IdleMaxTokens  int
	// IdleWarmUp delays the first idle check. Zero checks right away and is not
	// replaced by DefaultIdleWarmUp; callers wanting the default set it themselves.
	IdleWarmUp     time.Duration
	QueueCapacity  int
	PublishTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.PollPeriod <= 0 {
		c.PollPeriod = DefaultPollPeriod
	}
	c.PollPeriod = min(c.PollPeriod, MaxPollPeriod)
	if c.IdlePeriod <= 0 {
		c.IdlePeriod = DefaultIdlePeriod
	}
	if c.IdleMaxTokens <= 0 {
		c.IdleMaxTokens = DefaultIdleMaxTokens
	}
	if c.IdleWarmUp < 0 {
		c.IdleWarmUp = 0
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = DefaultQueueCapacity
	}
	if c.PublishTimeout <= 0 {
		c.PublishTimeout = DefaultPublishTimeout
	}
	return c
}

// Dependencies are the collaborators the processor drives. Ledger and OnExit are optional.
type Dependencies struct {
	Scheduler ports.Scheduler
	Fleet     ports.Fleet
	Kitchen   ports.Kitchen
	Matcher   ports.Matcher
	Metrics   *services.Metrics
	Ledger    ports.DeliveryLedger

	// OnExit runs once after shutdown with the reason the pipeline stopped.
	OnExit func(error)
}

func (d Dependencies) validate() error {
	var missing []error
	if d.Scheduler == nil {
		missing = append(missing, errs.NewValueIsRequiredError("scheduler"))
	}
	if d.Fleet == nil {
		missing = append(missing, errs.NewValueIsRequiredError("fleet"))
	}
	if d.Kitchen == nil {
		missing = append(missing, errs.NewValueIsRequiredError("kitchen"))
	}
	if d.Matcher == nil {
		missing = append(missing, errs.NewValueIsRequiredError("matcher"))
	}
	if d.Metrics == nil {
		missing = append(missing, errs.NewValueIsRequiredError("metrics"))
	}
	return errors.Join(missing...)
}

// Processor runs the dispatch loop and the idle monitor over one event queue.
type Processor struct {
	*event.Notifier

	cfg    Config
	deps   Dependencies
	queue  chan event.Event
	budget *services.RetryBudget
	logger *slog.Logger

	mu         sync.Mutex
	started    bool
	cancelIdle ports.CancelFunc

	idleFired atomic.Bool
	finished  atomic.Bool
	finish    sync.Once
	done      chan struct{}
	err       error
}

// New wires the queue into every producer. Nothing runs until Start.
func New(cfg Config, deps Dependencies, logger *slog.Logger) (*Processor, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	budget, err := services.NewRetryBudget(cfg.IdleMaxTokens)
	if err != nil {
		return nil, err
	}

	logger = logger.With("component", "processor")
	p := &Processor{
		Notifier: event.NewNotifier(logger, cfg.PublishTimeout),
		cfg:      cfg,
		deps:     deps,
		queue:    make(chan event.Event, cfg.QueueCapacity),
		budget:   budget,
		logger:   logger,
		done:     make(chan struct{}),
	}

	p.RegisterChannel(p.queue)
	deps.Fleet.RegisterChannel(p.queue)
	deps.Kitchen.RegisterChannel(p.queue)
	deps.Matcher.RegisterChannel(p.queue)

	return p, nil
}

// Start registers the dispatch loop and the idle monitor with the scheduler.
func (p *Processor) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrAlreadyStarted
	}
	if p.finished.Load() {
		return ErrProcessorStopped
	}

	cancelLoop, err := p.deps.Scheduler.ScheduleAtFixedRate(JobDispatchLoop, p.poll, 0, p.cfg.PollPeriod)
	if err != nil {
		return fmt.Errorf("start %s: %w", JobDispatchLoop, err)
	}
	cancelIdle, err := p.deps.Scheduler.ScheduleAtFixedRate(
		JobIdleMonitor, p.checkIdle, p.cfg.IdleWarmUp, p.cfg.IdlePeriod,
	)
	if err != nil {
		cancelLoop()
		return fmt.Errorf("start %s: %w", JobIdleMonitor, err)
	}
	p.cancelIdle = cancelIdle
	p.started = true

	p.logger.Info("Processor started",
		"poll_period", p.cfg.PollPeriod,
		"idle_period", p.cfg.IdlePeriod,
		"idle_max_tokens", p.cfg.IdleMaxTokens,
		"idle_warm_up", p.cfg.IdleWarmUp)
	return nil
}

// Submit enqueues ORDER_RECEIVED for o and reports whether the queue accepted it.
func (p *Processor) Submit(o order.DeliveryOrder) bool {
	if p.finished.Load() {
		p.logger.Warn("Order rejected: processor is stopped", "order_id", o.ID())
		return false
	}
	return p.Publish(event.NewOrderReceived(o))
}

// ReportArrival hands an arrival reported by an external courier service to the fleet,
// which publishes COURIER_ARRIVED only for the first arrival of the courier's current
// dispatch.
func (p *Processor) ReportArrival(courierID int, expectedAt time.Time) error {
	if p.finished.Load() {
		p.logger.Warn("Arrival rejected: processor is stopped", "courier_id", courierID)
		return ErrProcessorStopped
	}
	if err := p.deps.Fleet.ReportArrival(courierID, expectedAt); err != nil {
		p.logger.Warn("Arrival rejected", "courier_id", courierID, "error", err)
		return err
	}
	return nil
}

// Done is closed when the pipeline has shut down.
func (p *Processor) Done() <-chan struct{} {
	return p.done
}

// Err is nil after a normal shutdown. It must be read after Done is closed.
func (p *Processor) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

func (p *Processor) Metrics() services.MetricsSnapshot {
	return p.deps.Metrics.Snapshot()
}

// QueueLen is the number of events waiting for the dispatch loop.
func (p *Processor) QueueLen() int {
	return len(p.queue)
}

// Shutdown stops the pipeline without waiting for the idle monitor.
func (p *Processor) Shutdown() {
	p.shutdown(nil)
}

func (p *Processor) poll(ctx context.Context) error {
	if p.finished.Load() {
		return nil
	}

	var e event.Event
	select {
	case e = <-p.queue:
	default:
		return nil
	}

	if err := p.handle(ctx, e); err != nil {
		if errors.Is(err, ErrUnknownEvent) {
			p.logger.ErrorContext(ctx, "Fatal event, shutting down", "event", e.Type().String(), "error", err)
			p.shutdown(err)
			return nil
		}
		p.logger.ErrorContext(ctx, "Event handling failed", "event", e.Type().String(), "error", err)
	}
	return nil
}

func (p *Processor) handle(ctx context.Context, e event.Event) error {
	switch e := e.(type) {
	case event.OrderReceived:
		return p.onOrderReceived(ctx, e)
	case event.CourierDispatched:
		p.logger.DebugContext(ctx, "Courier on its way",
			"courier_id", e.CourierID(), "reservation_id", e.ReservationID(), "eta", e.ETA())
		return nil
	case event.OrderPrepared:
		p.deps.Metrics.AcceptMealPrepared()
		if _, err := p.deps.Matcher.AcceptMealPrepared(e); err != nil {
			return fmt.Errorf("reservation %d: %w", e.ReservationID(), err)
		}
		return nil
	case event.CourierArrived:
		if _, err := p.deps.Matcher.AcceptCourierArrived(e); err != nil {
			return fmt.Errorf("courier %d: %w", e.CourierID(), err)
		}
		return nil
	case event.OrderPickedUp:
		return p.onOrderPickedUp(ctx, e)
	case event.OrderDelivered:
		if err := p.deps.Fleet.Release(e.CourierID()); err != nil {
			return fmt.Errorf("release courier %d: %w", e.CourierID(), err)
		}
		p.deps.Metrics.AcceptOrderDelivered()
		p.logger.InfoContext(ctx, "Order delivered",
			"courier_id", e.CourierID(), "reservation_id", e.ReservationID())
		return nil
	case event.NoPendingOrders:
		p.logger.InfoContext(ctx, "No pending orders", "metrics", p.deps.Metrics.Snapshot())
		p.shutdown(nil)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownEvent, e.Type())
	}
}

func (p *Processor) onOrderReceived(ctx context.Context, e event.OrderReceived) error {
	o := e.Order()
	p.deps.Metrics.AcceptOrderReceived()

	reservationID, err := p.deps.Kitchen.Reserve(o)
	if err != nil {
		return fmt.Errorf("reserve order %s: %w", o.ID(), err)
	}

	result, err := p.deps.Fleet.Dispatch(o)
	if err != nil {
		p.deps.Kitchen.Cancel(reservationID)
		return fmt.Errorf("dispatch order %s: %w", o.ID(), err)
	}

	courierID, found := result.CourierID()
	if !found {
		p.deps.Kitchen.Cancel(reservationID)
		p.deps.Metrics.AcceptOrderCancelled()
		p.logger.InfoContext(ctx, "Order cancelled: no courier available",
			"order_id", o.ID(), "reservation_id", reservationID)
		return nil
	}

	// The matcher learns the affinity before any later event can reach it.
	dispatched := event.NewCourierDispatched(courierID, reservationID, result.ETA())
	if _, err = p.deps.Matcher.AcceptCourierDispatched(dispatched); err != nil {
		p.logger.ErrorContext(ctx, "Matcher rejected dispatch",
			"courier_id", courierID, "reservation_id", reservationID, "error", err)
	}
	p.Publish(dispatched)
	if published := result.Published(); published != nil {
		go p.watchArrival(courierID, reservationID, published)
	}

	p.deps.Metrics.AcceptPrepareRequested()
	if err = p.deps.Kitchen.PrepareMeal(reservationID); err != nil {
		return fmt.Errorf("prepare order %s: %w", o.ID(), err)
	}
	return nil
}

// watchArrival waits for the outcome of a courier's trip. An arrival that never reached
// the queue leaves its meal unmatched, so it is reported at error level.
func (p *Processor) watchArrival(courierID int, reservationID int64, published <-chan bool) {
	if !<-published {
		p.logger.Error("Courier arrival was not queued",
			"courier_id", courierID, "reservation_id", reservationID)
	}
}

func (p *Processor) onOrderPickedUp(ctx context.Context, e event.OrderPickedUp) error {
	p.deps.Metrics.AcceptPickup(e.FoodWait(), e.CourierWait())
	p.logger.InfoContext(ctx, "Order picked up",
		"courier_id", e.CourierID(),
		"reservation_id", e.ReservationID(),
		"food_wait", e.FoodWait(),
		"courier_wait", e.CourierWait())

	if p.deps.Ledger != nil {
		record := delivery.Record{
			CourierID:     e.CourierID(),
			ReservationID: e.ReservationID(),
			FoodWait:      e.FoodWait(),
			CourierWait:   e.CourierWait(),
			DeliveredAt:   time.Now(),
		}
		if err := p.deps.Ledger.Record(ctx, record); err != nil {
			p.logger.WarnContext(ctx, "Delivery not recorded", "reservation_id", e.ReservationID(), "error", err)
		}
	}

	if !p.Publish(event.NewOrderDelivered(e.CourierID(), e.ReservationID())) {
		return fmt.Errorf("delivery of reservation %d was not published", e.ReservationID())
	}
	return nil
}

// shutdown runs once: it stops the timers, the fleet and the kitchen, then completes the
// handle. Tasks already scheduled (couriers en route, meals cooking) still finish; their
// events stay in the queue unread.
func (p *Processor) shutdown(cause error) {
	p.finish.Do(func() {
		p.finished.Store(true)

		p.deps.Scheduler.Shutdown()
		p.deps.Fleet.Stop()
		p.deps.Kitchen.Stop()

		p.err = cause
		close(p.done)

		if cause != nil {
			p.logger.Error("Pipeline stopped", "error", cause, "metrics", p.deps.Metrics.Snapshot())
		} else {
			p.logger.Info("Pipeline stopped", "metrics", p.deps.Metrics.Snapshot())
		}

		if p.deps.OnExit != nil {
			p.deps.OnExit(cause)
		}
	})
}
