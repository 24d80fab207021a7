// Package ports defines the contracts between the core of the fulfillment pipeline and
// the infrastructure around it.
package ports

import (
	"context"
	"time"
)

// Task is a unit of work executed on the scheduler's worker pool. A returned error is
// logged by the scheduler and never stops a recurring schedule.
type Task func(ctx context.Context) error

// CancelFunc removes a recurring task from the scheduler. It is safe to call more than once.
type CancelFunc func()

// Scheduler runs tasks on a bounded worker pool, either periodically or once after a delay.
type Scheduler interface {
	// ScheduleAtFixedRate runs task every period, the first time after initialDelay.
	ScheduleAtFixedRate(name string, task Task, initialDelay, period time.Duration) (CancelFunc, error)

	// ScheduleOnce runs task a single time after delay.
	ScheduleOnce(name string, task Task, delay time.Duration)

	// Shutdown stops every timer. Tasks already running are left to finish.
	Shutdown()
}
