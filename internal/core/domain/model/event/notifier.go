package event

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultPublishTimeout bounds how long Publish waits for room in a full queue.
const DefaultPublishTimeout = 100 * time.Millisecond

// Notifier publishes events onto a registered channel. It is meant to be embedded by
// every producer so they share one publication contract:
//
//	type Kitchen struct {
//	    *event.Notifier
//	    ...
//	}
//
//	k.RegisterChannel(queue)
//	k.Publish(event.NewOrderPrepared(id, orderID, time.Now()))
//
// Publish never panics and never blocks longer than the configured timeout; a failed
// publication is logged and reported as false.
type Notifier struct {
	mu      sync.RWMutex
	ch      chan<- Event
	timeout time.Duration
	logger  *slog.Logger
}

func NewNotifier(logger *slog.Logger, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		timeout: timeout,
		logger:  logger,
	}
}

// RegisterChannel sets the destination of subsequent publications.
func (n *Notifier) RegisterChannel(ch chan<- Event) {
	n.mu.Lock()
	n.ch = ch
	n.mu.Unlock()
}

// Publish enqueues e and reports whether it landed.
func (n *Notifier) Publish(e Event) (published bool) {
	n.mu.RLock()
	ch := n.ch
	n.mu.RUnlock()

	if ch == nil {
		n.logger.Warn("Event dropped: no channel registered", "event", e.Type().String())
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("Event dropped: publish failed", "event", e.Type().String(), "error", fmt.Sprint(r))
			published = false
		}
	}()

	timer := time.NewTimer(n.timeout)
	defer timer.Stop()

	select {
	case ch <- e:
		return true
	case <-timer.C:
		n.logger.Warn("Event dropped: queue is full", "event", e.Type().String(), "timeout", n.timeout)
		return false
	}
}
