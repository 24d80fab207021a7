package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
)

// SubmitOrderCommandHandler turns a SubmitOrderCommand into ORDER_RECEIVED.
type SubmitOrderCommandHandler struct {
	submitter OrderSubmitter
}

func NewSubmitOrderCommandHandler(submitter OrderSubmitter) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		submitter: submitter,
	}
}

// Handle returns ErrOrderRejected when the queue is full or the pipeline has stopped.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	o, err := order.NewDeliveryOrder(cmd.ID(), cmd.Name(), cmd.PrepTime())
	if err != nil {
		return err
	}

	if !h.submitter.Submit(o) {
		return fmt.Errorf("order %s: %w", o.ID(), ErrOrderRejected)
	}

	return nil
}
