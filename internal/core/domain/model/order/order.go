package order

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// MaxPrepTime bounds the preparation duration accepted for a single order.
const MaxPrepTime = time.Hour

var (
	ErrIDIsRequired          = errs.NewValueIsRequiredError("id")
	ErrNameIsRequired        = errs.NewValueIsRequiredError("name")
	ErrOrderIsNotConstructed = errors.New("DeliveryOrder must be created via NewDeliveryOrder constructor")
)

// DeliveryOrder is an immutable order accepted into the pipeline.
type DeliveryOrder struct { //nolint:recvcheck // setters are pointer receivers used only during construction
	id       string
	name     string
	prepTime time.Duration
	guard    guard.ConstructorGuard
}

// NewDeliveryOrder validates all fields and reports every violation at once.
func NewDeliveryOrder(id string, name string, prepTime time.Duration) (DeliveryOrder, error) {
	o := DeliveryOrder{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setName(name),
		o.setPrepTime(prepTime),
	); err != nil {
		return DeliveryOrder{}, err
	}

	return o, nil
}

func (o DeliveryOrder) Validate() error {
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o DeliveryOrder) ID() string {
	return o.id
}

func (o DeliveryOrder) Name() string {
	return o.name
}

func (o DeliveryOrder) PrepTime() time.Duration {
	return o.prepTime
}

// IsEqual compares orders by identity only.
func (o DeliveryOrder) IsEqual(other DeliveryOrder) bool {
	return o.id == other.id
}

func (o DeliveryOrder) String() string {
	return "DeliveryOrder(" + o.id + ", " + o.name + ", " + o.prepTime.String() + ")"
}

func (o *DeliveryOrder) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrIDIsRequired
	}
	o.id = id
	return nil
}

func (o *DeliveryOrder) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	o.name = name
	return nil
}

func (o *DeliveryOrder) setPrepTime(prepTime time.Duration) error {
	if prepTime < 0 || prepTime > MaxPrepTime {
		return errs.NewValueIsOutOfRangeError("prepTime", prepTime, time.Duration(0), MaxPrepTime)
	}
	o.prepTime = prepTime
	return nil
}
