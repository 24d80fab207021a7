package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrReportCourierArrivalCommandIsNotConstructed = errors.New(
		"ReportCourierArrivalCommand must be created via NewReportCourierArrivalCommand constructor",
	)
	ErrETAIsRequired = errs.NewValueIsRequiredError("eta")
)

// ReportCourierArrivalCommand carries the callback of an external courier service: the
// courier has reached the kitchen, having been expected at ETA.
type ReportCourierArrivalCommand struct { //nolint:recvcheck //using for validation
	courierID int
	eta       time.Time

	guard guard.ConstructorGuard
}

func NewReportCourierArrivalCommand(courierID int, eta time.Time) (ReportCourierArrivalCommand, error) {
	cmd := ReportCourierArrivalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setETA(eta),
	); err != nil {
		return ReportCourierArrivalCommand{}, err
	}

	return cmd, nil
}

func (c ReportCourierArrivalCommand) Validate() error {
	return c.guard.Validate(ErrReportCourierArrivalCommandIsNotConstructed)
}

func (c ReportCourierArrivalCommand) CourierID() int {
	return c.courierID
}

func (c ReportCourierArrivalCommand) ETA() time.Time {
	return c.eta
}

func (c *ReportCourierArrivalCommand) setCourierID(courierID int) error {
	if courierID <= 0 {
		return errs.NewValueIsOutOfRangeError("courierId", courierID, 1, "unbounded")
	}

	c.courierID = courierID
	return nil
}

func (c *ReportCourierArrivalCommand) setETA(eta time.Time) error {
	if eta.IsZero() {
		return ErrETAIsRequired
	}

	c.eta = eta
	return nil
}
