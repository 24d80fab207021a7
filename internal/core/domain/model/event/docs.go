// Package event defines the messages exchanged between the asynchronous producers of the
// pipeline (fleet timers, kitchen timers, matchers, the HTTP boundary) and the single
// consumer, the order processor.
//
// The set of variants is closed: OrderReceived, CourierDispatched, OrderPrepared,
// CourierArrived, OrderPickedUp, OrderDelivered and NoPendingOrders. Every variant is an
// immutable value carrying its creation time. Events travel through one buffered Go
// channel and are consumed in enqueue order; CreatedAt is informational and never used
// to reorder.
//
// Producers embed a *Notifier to publish onto the channel registered with them.
package event
