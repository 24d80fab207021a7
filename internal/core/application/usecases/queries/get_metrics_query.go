package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetMetricsQueryIsNotConstructed = errors.New(
		"GetMetricsQuery must be created via NewGetMetricsQuery constructor",
	)
)

// GetMetricsQuery reads the pipeline counters and average waits.
type GetMetricsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetMetricsQuery() GetMetricsQuery {
	return GetMetricsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetMetricsQueryIsNotConstructed)
}
