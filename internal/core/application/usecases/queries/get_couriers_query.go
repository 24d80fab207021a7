// Package queries contains read operations over the running pipeline.
// Queries return small read models shaped for the HTTP boundary.
package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetCouriersQueryIsNotConstructed = errors.New(
		"GetCouriersQuery must be created via NewGetCouriersQuery constructor",
	)
)

// GetCouriersQuery lists every courier of the fleet with its current status.
//
// Example:
//
//	query := NewGetCouriersQuery()
//	handler := NewGetCouriersQueryHandler(fleet)
//
//	couriers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list couriers: %w", err)
//	}
//
//	for _, c := range couriers {
//	    fmt.Printf("Courier %d (%s) is %s\n", c.ID, c.Name, c.Status)
//	}
type GetCouriersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetCouriersQuery() GetCouriersQuery {
	return GetCouriersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetCouriersQueryIsNotConstructed)
}

// GetCouriersQueryResponse is one courier in the read model.
type GetCouriersQueryResponse struct {
	ID     int
	Name   string
	Status string
}
