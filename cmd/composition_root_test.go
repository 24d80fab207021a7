package cmd_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/core/application/fleet"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, strategy services.Strategy) cmd.Config {
	t.Helper()
	cfg, err := cmd.ParseConfig(func(key string) string {
		return map[string]string{
			"POLL_PERIOD_MS":     "5",
			"IDLE_PERIOD_MS":     "50",
			"IDLE_MAX_TOKENS":    "2",
			"IDLE_WARMUP_MS":     "300",
			"COURIER_ETA_MIN_MS": "10",
			"COURIER_ETA_MAX_MS": "30",
			"MATCH_STRATEGY":     string(strategy),
		}[key]
	})
	require.NoError(t, err)
	return cfg
}

func testCouriers(t *testing.T) []*courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(1, "Ana")
	require.NoError(t, err)
	return []*courier.Courier{c}
}

func do(e http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCompositionRoot_OrderThroughHTTP(t *testing.T) {
	for _, strategy := range []services.Strategy{services.StrategyFIFO, services.StrategyMatched} {
		t.Run(string(strategy), func(t *testing.T) {
			// Given
			var exitCause error
			exited := make(chan struct{})
			root, err := cmd.NewCompositionRoot(testConfig(t, strategy), testCouriers(t), slog.New(slog.DiscardHandler),
				func(cause error) {
					exitCause = cause
					close(exited)
				})
			require.NoError(t, err)
			t.Cleanup(func() { _ = root.Close() })
			require.NoError(t, root.Start())
			e := root.NewHTTPServer()

			// When
			rec := do(e, http.MethodPost, "/api/v1/orders", `{"id":"o1","name":"Pizza","prepTime":0.05}`)
			require.Equal(t, http.StatusCreated, rec.Code)

			// Then
			select {
			case <-root.Processor().Done():
			case <-time.After(5 * time.Second):
				t.Fatal("pipeline did not go idle")
			}
			<-exited
			require.NoError(t, root.Processor().Err())
			require.NoError(t, exitCause)

			rec = do(e, http.MethodGet, "/api/v1/deliveries", "")
			require.Equal(t, http.StatusOK, rec.Code)
			var deliveries []httpin.Delivery
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deliveries))
			require.Len(t, deliveries, 1)
			assert.Equal(t, 1, deliveries[0].CourierID)

			rec = do(e, http.MethodGet, "/api/v1/couriers", "")
			require.Equal(t, http.StatusOK, rec.Code)
			var couriers []httpin.Courier
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &couriers))
			require.Len(t, couriers, 1)
			assert.Equal(t, courier.Available.String(), couriers[0].Status)

			rec = do(e, http.MethodPost, "/api/v1/orders", `{"id":"o2","name":"Late","prepTime":0}`)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

			snapshot := root.Processor().Metrics()
			assert.Equal(t, int64(1), snapshot.OrdersDelivered)
		})
	}
}

func TestNewCompositionRoot_RejectsDuplicateCouriers(t *testing.T) {
	couriers := append(testCouriers(t), testCouriers(t)...)

	_, err := cmd.NewCompositionRoot(testConfig(t, services.StrategyFIFO), couriers, slog.New(slog.DiscardHandler), nil)

	require.ErrorIs(t, err, fleet.ErrDuplicateCourier)
}
