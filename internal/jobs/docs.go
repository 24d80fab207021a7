// Package jobs runs the background work of the fulfillment pipeline.
//
// Scheduler combines two pieces:
//
//   - github.com/robfig/cron/v3 as the timer source. Recurring tasks are registered with a
//     fixed-rate cron.Schedule so periods below one second work.
//   - a bounded worker pool (golang.org/x/sync/errgroup with SetLimit) where every task
//     actually executes, recurring or one-shot.
//
// # Usage
//
//	scheduler := jobs.NewScheduler(4, logger)
//	cancel, err := scheduler.ScheduleAtFixedRate("dispatch-loop", poll, 0, 10*time.Millisecond)
//	scheduler.ScheduleOnce("courier-arrival", arrive, eta)
//	defer scheduler.Shutdown()
//
// # Error Handling
//
// Every execution is wrapped: a returned error is logged, a panic is recovered and
// logged, and neither ever cancels future executions of a recurring task. Recurring tasks
// also skip a tick when the previous execution is still running.
//
// # Shutdown
//
// Shutdown stops the cron timers and refuses new recurring tasks. It does not wait for
// running tasks and does not cancel pending one-shot timers: a courier already en route
// or a meal already cooking still completes and publishes its event.
package jobs
