// Package memory keeps the delivery ledger in process memory. It is the default ledger
// when no database is configured.
package memory

import (
	"context"
	"sync"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/ports"
)

var _ ports.DeliveryLedger = (*DeliveryLedger)(nil)

type DeliveryLedger struct {
	mu      sync.RWMutex
	records []delivery.Record
}

func NewDeliveryLedger() *DeliveryLedger {
	return &DeliveryLedger{}
}

func (l *DeliveryLedger) Record(ctx context.Context, record delivery.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
	return nil
}

func (l *DeliveryLedger) List(ctx context.Context) ([]delivery.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]delivery.Record, len(l.records))
	copy(out, l.records)
	return out, nil
}
