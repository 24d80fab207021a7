package postgres_test

import (
	"strings"
	"testing"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DSN(t *testing.T) {
	cfg := postgres.Config{
		Host:     "db",
		Port:     "5432",
		User:     "app",
		Password: "secret",
		Name:     "fulfillment",
	}

	assert.True(t, cfg.Enabled())
	assert.Equal(t, "host=db dbname=fulfillment port=5432 user=app password=secret sslmode=disable", cfg.DSN())

	cfg.SslMode = "require"
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}

func TestConfig_DSN_QuotesValues(t *testing.T) {
	tests := map[string]struct {
		password string
		expected string
	}{
		"space":     {password: "two words", expected: `password='two words'`},
		"quote":     {password: "it's", expected: `password='it\'s'`},
		"backslash": {password: `a\b`, expected: `password='a\\b'`},
		"key-like":  {password: "x host=evil", expected: `password='x host=evil'`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := postgres.Config{Host: "db", Name: "fulfillment", Password: tt.password}

			dsn := cfg.DSN()

			assert.Contains(t, dsn, " "+tt.expected+" ")
			assert.True(t, strings.HasPrefix(dsn, "host=db dbname=fulfillment "))
			assert.True(t, strings.HasSuffix(dsn, " sslmode=disable"))
		})
	}
}

func TestOpen_RequiresHostAndName(t *testing.T) {
	_, err := postgres.Open(postgres.Config{Host: "db"})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.False(t, postgres.Config{}.Enabled())
}
