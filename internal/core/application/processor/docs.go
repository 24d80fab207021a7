// Package processor is the root of the fulfillment pipeline.
//
// Processor owns the event queue. Every producer (the fleet, the kitchen, the matcher and
// the processor itself) publishes onto it, and a single dispatch loop consumes it: a
// recurring job that removes at most one event per tick without blocking and hands it
// to the state machine:
//
//	ORDER_RECEIVED     reserve a kitchen slot, dispatch a courier, start cooking
//	                   (or cancel the slot when no courier is available)
//	COURIER_DISPATCHED informational
//	ORDER_PREPARED     offer the meal to the matcher
//	COURIER_ARRIVED    offer the courier to the matcher
//	ORDER_PICKED_UP    record waits, write the ledger, publish ORDER_DELIVERED
//	ORDER_DELIVERED    release the courier
//	NO_PENDING_ORDERS  log final metrics and shut the pipeline down
//
// A second recurring job, the idle monitor, spends a RetryBudget while it finds no
// pending work and publishes NO_PENDING_ORDERS exactly once when the budget runs out.
//
// # Completion
//
// Done is closed once the pipeline has shut down; Err tells why. An event of an unknown
// type is fatal and finishes the pipeline with ErrUnknownEvent.
package processor
