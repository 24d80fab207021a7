package courier

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the courier lifecycle state.
type Status int

const (
	// Unknown is the zero value and never a valid state.
	Unknown Status = iota

	// Available couriers can be picked by the fleet for a new order.
	Available

	// Dispatched couriers are en route or waiting for their meal.
	Dispatched
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Available:  "AVAILABLE",
		Dispatched: "DISPATCHED",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if s != Available && s != Dispatched {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Dispatch returns the state after sending the courier out.
func (s Status) Dispatch() (Status, error) {
	if s != Available {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to dispatch", s),
		)
	}
	return Dispatched, nil
}

// Release returns the state after the courier finished a delivery.
func (s Status) Release() (Status, error) {
	if s != Dispatched {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to release", s),
		)
	}
	return Available, nil
}
