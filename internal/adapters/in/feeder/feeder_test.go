package feeder_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/in/feeder"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu     sync.Mutex
	reject map[string]bool
	cmds   []commands.SubmitOrderCommand
}

func (h *recordingHandler) Handle(_ context.Context, cmd commands.SubmitOrderCommand) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.reject[cmd.ID()] {
		return commands.ErrOrderRejected
	}
	h.cmds = append(h.cmds, cmd)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadOrders(t *testing.T) {
	orders, err := feeder.LoadOrders(strings.NewReader(
		`[{"id":"o1","name":"pizza","prepTime":2},{"name":"salad","prepTime":0.5}]`,
	))

	require.NoError(t, err)
	assert.Equal(t, []feeder.OrderSpec{
		{ID: "o1", Name: "pizza", PrepTime: 2},
		{Name: "salad", PrepTime: 0.5},
	}, orders)
}

func TestLoadOrders_Malformed(t *testing.T) {
	_, err := feeder.LoadOrders(strings.NewReader(`{"id":"o1"}`))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestLoadOrdersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"o1","name":"pizza","prepTime":2}]`), 0o600))

	orders, err := feeder.LoadOrdersFile(path)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	_, err = feeder.LoadOrdersFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestFeeder_Run(t *testing.T) {
	// Given
	handler := &recordingHandler{reject: map[string]bool{"o3": true}}
	f := feeder.New(handler, 0, discardLogger())
	orders := []feeder.OrderSpec{
		{ID: "o1", Name: "pizza", PrepTime: 2},
		{Name: "salad", PrepTime: 0.25},
		{ID: "o3", Name: "soup", PrepTime: 1},
		{ID: "o4", Name: "", PrepTime: 1},
	}

	// When
	result, err := f.Run(context.Background(), orders)

	// Then
	require.NoError(t, err)
	assert.Equal(t, feeder.Result{Submitted: 2, Rejected: 1, Invalid: 1}, result)
	require.Len(t, handler.cmds, 2)
	assert.Equal(t, "o1", handler.cmds[0].ID())
	assert.Equal(t, 2*time.Second, handler.cmds[0].PrepTime())
	_, parseErr := uuid.Parse(handler.cmds[1].ID())
	require.NoError(t, parseErr, "orders without id get a UUID")
	assert.Equal(t, 250*time.Millisecond, handler.cmds[1].PrepTime())
}

func TestFeeder_RunIsPaced(t *testing.T) {
	handler := &recordingHandler{}
	f := feeder.New(handler, 20, discardLogger())
	orders := []feeder.OrderSpec{
		{ID: "o1", Name: "a"}, {ID: "o2", Name: "b"}, {ID: "o3", Name: "c"},
	}

	start := time.Now()
	result, err := f.Run(context.Background(), orders)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Submitted)
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestFeeder_RunStopsOnCancel(t *testing.T) {
	handler := &recordingHandler{}
	f := feeder.New(handler, 1, discardLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result, err := f.Run(ctx, []feeder.OrderSpec{{ID: "o1", Name: "a"}, {ID: "o2", Name: "b"}})

	require.Error(t, err)
	assert.Equal(t, 1, result.Submitted)
}
