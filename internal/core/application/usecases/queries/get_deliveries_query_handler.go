package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// GetDeliveriesQueryHandler lists completed pickups, oldest first.
//
// Example:
//
//	handler := NewGetDeliveriesQueryHandler(ledger)
//	deliveries, err := handler.Handle(ctx, NewGetDeliveriesQuery())
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d orders delivered\n", len(deliveries))
type GetDeliveriesQueryHandler struct {
	ledger ports.DeliveryLedger
}

func NewGetDeliveriesQueryHandler(ledger ports.DeliveryLedger) GetDeliveriesQueryHandler {
	return GetDeliveriesQueryHandler{ledger: ledger}
}

func (h GetDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveriesQuery,
) ([]GetDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records, err := h.ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]GetDeliveriesQueryResponse, 0, len(records))
	for _, r := range records {
		response = append(response, GetDeliveriesQueryResponse{
			CourierID:     r.CourierID,
			ReservationID: r.ReservationID,
			FoodWait:      r.FoodWait,
			CourierWait:   r.CourierWait,
			DeliveredAt:   r.DeliveredAt,
		})
	}

	return response, nil
}
