package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ReportCourierArrivalCommandHandler turns a reported arrival into COURIER_ARRIVED, the
// same event the fleet publishes when it simulates the trip itself. Unknown or already
// arrived couriers come back as errs.ObjectNotFoundError; any other failure wraps
// ErrArrivalRejected.
type ReportCourierArrivalCommandHandler struct {
	reporter ArrivalReporter
}

func NewReportCourierArrivalCommandHandler(reporter ArrivalReporter) ReportCourierArrivalCommandHandler {
	return ReportCourierArrivalCommandHandler{
		reporter: reporter,
	}
}

func (h *ReportCourierArrivalCommandHandler) Handle(ctx context.Context, cmd ReportCourierArrivalCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := h.reporter.ReportArrival(cmd.CourierID(), cmd.ETA()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return fmt.Errorf("courier %d: %w", cmd.CourierID(), err)
		}
		return fmt.Errorf("courier %d: %w: %w", cmd.CourierID(), ErrArrivalRejected, err)
	}

	return nil
}
