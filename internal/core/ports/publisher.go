package ports

import "fulfillment/internal/core/domain/model/event"

// EventPublisher is the publication contract shared by every event producer.
type EventPublisher interface {
	// RegisterChannel sets the queue that subsequent publications go to.
	RegisterChannel(ch chan<- event.Event)

	// Publish enqueues e without blocking indefinitely and reports whether it landed.
	Publish(e event.Event) bool
}
