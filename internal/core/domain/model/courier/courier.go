package courier

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier is a member of the fleet. It is not safe for concurrent use; the fleet
// serialises every access under its own lock.
type Courier struct {
	id     int
	name   string
	status Status
	guard  guard.ConstructorGuard
}

// NewCourier creates an AVAILABLE courier. Ids must be positive.
func NewCourier(id int, name string) (*Courier, error) {
	c := &Courier{
		status: Available,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() int {
	return c.id
}

func (c *Courier) Name() string {
	return c.name
}

func (c *Courier) Status() Status {
	return c.status
}

func (c *Courier) IsAvailable() bool {
	return c.status == Available
}

func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id == other.id
}

// Dispatch moves the courier from AVAILABLE to DISPATCHED.
func (c *Courier) Dispatch() error {
	next, err := c.status.Dispatch()
	if err != nil {
		return fmt.Errorf("courier %d: %w", c.id, err)
	}
	c.status = next
	return nil
}

// Release moves the courier from DISPATCHED back to AVAILABLE.
func (c *Courier) Release() error {
	next, err := c.status.Release()
	if err != nil {
		return fmt.Errorf("courier %d: %w", c.id, err)
	}
	c.status = next
	return nil
}

func (c *Courier) String() string {
	return fmt.Sprintf("Courier(%d, %s, %s)", c.id, c.name, c.status)
}

func (c *Courier) setID(id int) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}
