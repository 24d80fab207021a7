package processor_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// logBuffer collects log output written from any goroutine.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type recurring struct {
	task         ports.Task
	initialDelay time.Duration
	period       time.Duration
	cancelled    int
}

// manualScheduler lets a test drive the recurring jobs tick by tick.
type manualScheduler struct {
	mu        sync.Mutex
	recurring map[string]*recurring
	shutdowns int
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{recurring: make(map[string]*recurring)}
}

func (s *manualScheduler) ScheduleAtFixedRate(
	name string, task ports.Task, initialDelay, period time.Duration,
) (ports.CancelFunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &recurring{task: task, initialDelay: initialDelay, period: period}
	s.recurring[name] = r
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		r.cancelled++
	}, nil
}

func (s *manualScheduler) ScheduleOnce(string, ports.Task, time.Duration) {}

func (s *manualScheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdowns++
}

func (s *manualScheduler) job(name string) *recurring {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recurring[name]
}

func (s *manualScheduler) tick(name string) error {
	return s.job(name).task(context.Background())
}

type fleetMock struct {
	mock.Mock
	*event.Notifier
}

func newFleetMock() *fleetMock {
	return &fleetMock{Notifier: event.NewNotifier(discardLogger(), 0)}
}

func (m *fleetMock) Dispatch(o order.DeliveryOrder) (courier.DispatchResult, error) {
	args := m.Called(o)
	return args.Get(0).(courier.DispatchResult), args.Error(1)
}

func (m *fleetMock) Release(courierID int) error {
	return m.Called(courierID).Error(0)
}

func (m *fleetMock) ReportArrival(courierID int, expectedAt time.Time) error {
	return m.Called(courierID, expectedAt).Error(0)
}

func (m *fleetMock) Stop() {
	m.Called()
}

type kitchenMock struct {
	mock.Mock
	*event.Notifier
}

func newKitchenMock() *kitchenMock {
	return &kitchenMock{Notifier: event.NewNotifier(discardLogger(), 0)}
}

func (m *kitchenMock) Reserve(o order.DeliveryOrder) (int64, error) {
	args := m.Called(o)
	return args.Get(0).(int64), args.Error(1)
}

func (m *kitchenMock) Cancel(reservationID int64) bool {
	return m.Called(reservationID).Bool(0)
}

func (m *kitchenMock) PrepareMeal(reservationID int64) error {
	return m.Called(reservationID).Error(0)
}

func (m *kitchenMock) IsIdle() bool {
	return m.Called().Bool(0)
}

func (m *kitchenMock) Stop() {
	m.Called()
}

type matcherMock struct {
	mock.Mock
	*event.Notifier
}

func newMatcherMock() *matcherMock {
	return &matcherMock{Notifier: event.NewNotifier(discardLogger(), 0)}
}

func (m *matcherMock) AcceptCourierDispatched(e event.CourierDispatched) (bool, error) {
	args := m.Called(e)
	return args.Bool(0), args.Error(1)
}

func (m *matcherMock) AcceptMealPrepared(e event.OrderPrepared) (bool, error) {
	args := m.Called(e)
	return args.Bool(0), args.Error(1)
}

func (m *matcherMock) AcceptCourierArrived(e event.CourierArrived) (bool, error) {
	args := m.Called(e)
	return args.Bool(0), args.Error(1)
}

type ledgerMock struct {
	mock.Mock
}

func (m *ledgerMock) Record(ctx context.Context, record delivery.Record) error {
	return m.Called(ctx, record).Error(0)
}

func (m *ledgerMock) List(ctx context.Context) ([]delivery.Record, error) {
	args := m.Called(ctx)
	return args.Get(0).([]delivery.Record), args.Error(1)
}
