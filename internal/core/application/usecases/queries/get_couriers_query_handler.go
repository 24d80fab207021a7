package queries

import (
	"context"
	"sort"

	"fulfillment/internal/core/application/fleet"
)

// CourierLister is the part of the fleet the query reads.
type CourierLister interface {
	Couriers() []fleet.Snapshot
}

type GetCouriersQueryHandler struct {
	couriers CourierLister
}

func NewGetCouriersQueryHandler(couriers CourierLister) GetCouriersQueryHandler {
	return GetCouriersQueryHandler{couriers: couriers}
}

// Handle returns the couriers sorted by id.
func (h GetCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetCouriersQuery,
) ([]GetCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshots := h.couriers.Couriers()
	response := make([]GetCouriersQueryResponse, 0, len(snapshots))
	for _, c := range snapshots {
		response = append(response, GetCouriersQueryResponse{
			ID:     c.ID,
			Name:   c.Name,
			Status: c.Status.String(),
		})
	}
	sort.Slice(response, func(i, j int) bool {
		return response[i].ID < response[j].ID
	})

	return response, nil
}
