package courier_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createValidCourier(t *testing.T) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(1, "Alice")
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func TestNewCourier(t *testing.T) {
	t.Run("should create available courier", func(t *testing.T) {
		c, err := courier.NewCourier(7, "Bob")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, 7, c.ID())
		assert.Equal(t, "Bob", c.Name())
		assert.Equal(t, courier.Available, c.Status())
		assert.True(t, c.IsAvailable())
	})

	t.Run("should reject invalid parameters", func(t *testing.T) {
		testCases := []struct {
			name string
			id   int
			who  string
		}{
			{"zero id", 0, "Bob"},
			{"negative id", -3, "Bob"},
			{"empty name", 1, ""},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				c, err := courier.NewCourier(tc.id, tc.who)

				require.Error(t, err)
				assert.Nil(t, c)
			})
		}
	})

	t.Run("should aggregate errors", func(t *testing.T) {
		_, err := courier.NewCourier(0, "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestCourier_Lifecycle(t *testing.T) {
	t.Run("dispatch then release returns to available", func(t *testing.T) {
		c := createValidCourier(t)

		require.NoError(t, c.Dispatch())
		assert.Equal(t, courier.Dispatched, c.Status())

		require.NoError(t, c.Release())
		assert.Equal(t, courier.Available, c.Status())
	})

	t.Run("double dispatch fails and keeps state", func(t *testing.T) {
		c := createValidCourier(t)
		require.NoError(t, c.Dispatch())

		err := c.Dispatch()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "courier 1")
		assert.Equal(t, courier.Dispatched, c.Status())
	})

	t.Run("release of available courier fails", func(t *testing.T) {
		c := createValidCourier(t)

		err := c.Release()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, courier.Available, c.Status())
	})
}

func TestCourier_Validate(t *testing.T) {
	var nilCourier *courier.Courier
	assert.Equal(t, courier.ErrCourierIsNotConstructed, nilCourier.Validate())
	assert.Equal(t, courier.ErrCourierIsNotConstructed, (&courier.Courier{}).Validate())
}

func TestCourier_IsEqual(t *testing.T) {
	a, _ := courier.NewCourier(1, "Alice")
	b, _ := courier.NewCourier(1, "Alicia")
	c, _ := courier.NewCourier(2, "Alice")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(nil))
}
