package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
	ErrOrderIDIsRequired   = errs.NewValueIsRequiredError("id")
	ErrOrderNameIsRequired = errs.NewValueIsRequiredError("name")
)

// SubmitOrderCommand asks the pipeline to fulfil one order.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand("o1", "pizza", 2*time.Second)
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//
//	handler := NewSubmitOrderCommandHandler(processor)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("submit order: %w", err)
//	}
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	id       string
	name     string
	prepTime time.Duration

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand validates that id and name are present and that the prep time
// is within [0, order.MaxPrepTime]. Every violation is reported.
func NewSubmitOrderCommand(id string, name string, prepTime time.Duration) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setID(id),
		cmd.setName(name),
		cmd.setPrepTime(prepTime),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) ID() string {
	return c.id
}

func (c SubmitOrderCommand) Name() string {
	return c.name
}

func (c SubmitOrderCommand) PrepTime() time.Duration {
	return c.prepTime
}

func (c *SubmitOrderCommand) setID(id string) error {
	if id == "" {
		return ErrOrderIDIsRequired
	}

	c.id = id
	return nil
}

func (c *SubmitOrderCommand) setName(name string) error {
	if name == "" {
		return ErrOrderNameIsRequired
	}

	c.name = name
	return nil
}

func (c *SubmitOrderCommand) setPrepTime(prepTime time.Duration) error {
	if prepTime < 0 || prepTime > order.MaxPrepTime {
		return errs.NewValueIsOutOfRangeError("prepTime", prepTime, time.Duration(0), order.MaxPrepTime)
	}

	c.prepTime = prepTime
	return nil
}
