package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

var ErrSchedulerStopped = errors.New("scheduler is stopped")

var _ ports.Scheduler = (*Scheduler)(nil)

// Scheduler submits timed tasks into a bounded worker pool.
type Scheduler struct {
	cron   *cron.Cron
	pool   *errgroup.Group
	logger *slog.Logger
	clog   cronLogger

	mu      sync.Mutex
	stopped bool
}

// NewScheduler starts a scheduler whose pool runs at most workers tasks at a time.
func NewScheduler(workers int, logger *slog.Logger) *Scheduler {
	if workers <= 0 {
		workers = 1
	}
	logger = logger.With("component", "scheduler")
	clog := cronLogger{logger: logger}

	pool := new(errgroup.Group)
	pool.SetLimit(workers)

	c := cron.New(
		cron.WithLogger(clog),
		cron.WithChain(cron.Recover(clog)),
	)
	c.Start()

	return &Scheduler{
		cron:   c,
		pool:   pool,
		logger: logger,
		clog:   clog,
	}
}

// ScheduleAtFixedRate registers a recurring task. A tick is skipped while the previous
// execution of the same task is still running.
func (s *Scheduler) ScheduleAtFixedRate(
	name string,
	task ports.Task,
	initialDelay, period time.Duration,
) (ports.CancelFunc, error) {
	if period <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("period", period, time.Nanosecond, "unbounded")
	}
	if initialDelay < 0 {
		initialDelay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil, fmt.Errorf("schedule %s: %w", name, ErrSchedulerStopped)
	}

	job := cron.NewChain(cron.SkipIfStillRunning(s.clog)).Then(cron.FuncJob(func() {
		s.runAndWait(name, task)
	}))
	id := s.cron.Schedule(newFixedRateSchedule(time.Now().Add(initialDelay), period), job)
	s.logger.Debug("Recurring task scheduled", "task", name, "initial_delay", initialDelay, "period", period)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.cron.Remove(id)
			s.logger.Debug("Recurring task cancelled", "task", name)
		})
	}, nil
}

// ScheduleOnce runs task after delay. One-shot tasks survive Shutdown.
func (s *Scheduler) ScheduleOnce(name string, task ports.Task, delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	time.AfterFunc(delay, func() {
		s.submit(name, task, nil)
	})
}

// Shutdown stops all recurring timers without waiting for running tasks.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	// Not awaited: Shutdown is usually called from inside a running task.
	_ = s.cron.Stop()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) runAndWait(name string, task ports.Task) {
	done := make(chan struct{})
	s.submit(name, task, done)
	<-done
}

func (s *Scheduler) submit(name string, task ports.Task, done chan struct{}) {
	s.pool.Go(func() error {
		if done != nil {
			defer close(done)
		}
		s.safeRun(name, task)
		return nil
	})
}

func (s *Scheduler) safeRun(name string, task ports.Task) {
	ctx := context.Background()
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "Task panicked", "task", name, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	if err := task(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Task failed", "task", name, "error", err)
	}
}
