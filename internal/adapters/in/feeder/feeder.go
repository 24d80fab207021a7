// Package feeder replays a list of orders into the pipeline at a fixed rate, the way a
// load-testing client would.
package feeder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// OrderSpec is one entry of an orders file. PrepTime is in seconds; an empty ID is
// replaced by a random UUID.
type OrderSpec struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	PrepTime float64 `json:"prepTime"`
}

// LoadOrders decodes a JSON array of orders.
func LoadOrders(r io.Reader) ([]OrderSpec, error) {
	var orders []OrderSpec
	if err := json.NewDecoder(r).Decode(&orders); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("orders", err)
	}
	return orders, nil
}

func LoadOrdersFile(path string) ([]OrderSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open orders file: %w", err)
	}
	defer f.Close()

	return LoadOrders(f)
}

// OrderHandler is satisfied by *commands.SubmitOrderCommandHandler.
type OrderHandler interface {
	Handle(ctx context.Context, cmd commands.SubmitOrderCommand) error
}

// Result counts what happened to each order of a run.
type Result struct {
	Submitted int
	Rejected  int
	Invalid   int
}

type Feeder struct {
	handler OrderHandler
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New paces submissions at ordersPerSecond. A non-positive rate submits as fast as the
// handler accepts.
func New(handler OrderHandler, ordersPerSecond float64, logger *slog.Logger) *Feeder {
	limit := rate.Inf
	if ordersPerSecond > 0 {
		limit = rate.Limit(ordersPerSecond)
	}
	return &Feeder{
		handler: handler,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.With("component", "feeder"),
	}
}

// Run submits every order in turn. Invalid and rejected orders are counted and skipped;
// only a cancelled context stops the run early.
func (f *Feeder) Run(ctx context.Context, orders []OrderSpec) (Result, error) {
	var result Result
	for _, spec := range orders {
		if err := f.limiter.Wait(ctx); err != nil {
			return result, err
		}

		id := spec.ID
		if id == "" {
			id = uuid.NewString()
		}
		prepTime := time.Duration(spec.PrepTime * float64(time.Second))

		cmd, err := commands.NewSubmitOrderCommand(id, spec.Name, prepTime)
		if err != nil {
			result.Invalid++
			f.logger.WarnContext(ctx, "Order skipped", "order_id", id, "error", err)
			continue
		}

		if err = f.handler.Handle(ctx, cmd); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			result.Rejected++
			level := slog.LevelWarn
			if !errors.Is(err, commands.ErrOrderRejected) {
				level = slog.LevelError
			}
			f.logger.Log(ctx, level, "Order not submitted", "order_id", id, "error", err)
			continue
		}

		result.Submitted++
		f.logger.DebugContext(ctx, "Order submitted", "order_id", id, "name", spec.Name, "prep_time", prepTime)
	}

	f.logger.InfoContext(ctx, "All orders fed",
		"submitted", result.Submitted, "rejected", result.Rejected, "invalid", result.Invalid)
	return result, nil
}
