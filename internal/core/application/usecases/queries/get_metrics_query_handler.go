package queries

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// MetricsReader is implemented by the order processor.
type MetricsReader interface {
	Metrics() services.MetricsSnapshot
}

type GetMetricsQueryHandler struct {
	reader MetricsReader
}

func NewGetMetricsQueryHandler(reader MetricsReader) GetMetricsQueryHandler {
	return GetMetricsQueryHandler{reader: reader}
}

func (h GetMetricsQueryHandler) Handle(ctx context.Context, query GetMetricsQuery) (services.MetricsSnapshot, error) {
	if err := query.Validate(); err != nil {
		return services.MetricsSnapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		return services.MetricsSnapshot{}, err
	}

	return h.reader.Metrics(), nil
}
