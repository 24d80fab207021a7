package guard_test

import (
	"errors"
	"sync"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_given_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("courier must be created via NewCourier")

		// When
		err := g.Validate(expected)

		// Then
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type ticket struct {
		number int
		guard  guard.ConstructorGuard
	}
	errTicketNotConstructed := errors.New("ticket must be created via newTicket")
	newTicket := func(number int) ticket {
		return ticket{number: number, guard: guard.NewConstructorGuard()}
	}

	assert.NoError(t, newTicket(1).guard.Validate(errTicketNotConstructed))
	assert.Equal(t, errTicketNotConstructed, ticket{}.guard.Validate(errTicketNotConstructed))

	copied := newTicket(2)
	assert.NoError(t, copied.guard.Validate(errTicketNotConstructed))
}

func TestConstructorGuard_Concurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.NoError(t, g.Validate(nil))
			}
		}()
	}
	wg.Wait()
}
