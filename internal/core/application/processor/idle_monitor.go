package processor

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/services"
)

// checkIdle is one tick of the idle monitor. Pending work refunds the budget, an idle
// tick spends it; an empty budget publishes NO_PENDING_ORDERS once and stops the monitor.
func (p *Processor) checkIdle(ctx context.Context) error {
	if p.idleFired.Load() || p.finished.Load() {
		return nil
	}

	if p.budget.HasTokens() {
		if p.hasPendingWork() {
			p.budget.Success()
			return nil
		}
		if err := p.budget.Spend(); err != nil && !errors.Is(err, services.ErrRetryBudgetExhausted) {
			return err
		}
		p.logger.DebugContext(ctx, "Nothing pending", "tokens", p.budget.Tokens())
	}
	if p.budget.HasTokens() {
		return nil
	}

	if !p.idleFired.CompareAndSwap(false, true) {
		return nil
	}
	p.stopIdleMonitor()

	p.logger.InfoContext(ctx, "Retry budget exhausted, no pending orders")
	if !p.Publish(event.NewNoPendingOrders()) {
		p.logger.ErrorContext(ctx, "NO_PENDING_ORDERS was not queued, shutting down directly")
		p.shutdown(nil)
	}
	return nil
}

// hasPendingWork is true while a meal is cooking, a prepared order is not yet delivered
// or an event is still waiting in the queue.
func (p *Processor) hasPendingWork() bool {
	return p.deps.Metrics.PendingDeliveries() > 0 ||
		!p.deps.Kitchen.IsIdle() ||
		len(p.queue) > 0
}

func (p *Processor) stopIdleMonitor() {
	p.mu.Lock()
	cancel := p.cancelIdle
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
