package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/fleet"
	"fulfillment/internal/core/application/processor"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded when present; a missing default file is not an error.
const DefaultEnvFile = ".env"

type Config struct {
	HTTPPort string
	LogLevel slog.Level

	WorkerPoolSize int
	PollPeriod     time.Duration
	IdlePeriod     time.Duration
	IdleMaxTokens  int
	IdleWarmUp     time.Duration
	QueueCapacity  int
	PublishTimeout time.Duration

	CourierETAMin time.Duration
	CourierETAMax time.Duration
	MatchStrategy services.Strategy

	FleetFile       string
	OrdersFile      string
	OrdersPerSecond float64

	DB postgres.Config
}

// LoadConfig reads envFile into the process environment (variables already set win)
// and parses the configuration from it.
func LoadConfig(envFile string) (Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		if envFile != DefaultEnvFile || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return ParseConfig(os.Getenv)
}

// ParseConfig builds a Config from getenv, applying defaults to unset keys. Every
// malformed value is reported.
func ParseConfig(getenv func(string) string) (Config, error) {
	p := envParser{getenv: getenv}

	cfg := Config{
		HTTPPort:        p.str("HTTP_PORT", "8080"),
		LogLevel:        p.level("LOG_LEVEL", slog.LevelInfo),
		WorkerPoolSize:  p.integer("WORKER_POOL_SIZE", 4),
		PollPeriod:      p.millis("POLL_PERIOD_MS", processor.DefaultPollPeriod),
		IdlePeriod:      p.millis("IDLE_PERIOD_MS", processor.DefaultIdlePeriod),
		IdleMaxTokens:   p.integer("IDLE_MAX_TOKENS", processor.DefaultIdleMaxTokens),
		IdleWarmUp:      p.millis("IDLE_WARMUP_MS", processor.DefaultIdleWarmUp),
		QueueCapacity:   p.integer("QUEUE_CAPACITY", processor.DefaultQueueCapacity),
		PublishTimeout:  p.millis("PUBLISH_TIMEOUT_MS", processor.DefaultPublishTimeout),
		CourierETAMin:   p.millis("COURIER_ETA_MIN_MS", fleet.DefaultETAMin),
		CourierETAMax:   p.millis("COURIER_ETA_MAX_MS", fleet.DefaultETAMax),
		MatchStrategy:   p.strategy("MATCH_STRATEGY", services.StrategyFIFO),
		FleetFile:       p.str("FLEET_FILE", "fleet.json"),
		OrdersFile:      p.str("ORDERS_FILE", "orders.json"),
		OrdersPerSecond: p.float("ORDERS_PER_SECOND", 2),
		DB: postgres.Config{
			Host:     p.str("DB_HOST", ""),
			Port:     p.str("DB_PORT", "5432"),
			User:     p.str("DB_USER", ""),
			Password: p.str("DB_PASSWORD", ""),
			Name:     p.str("DB_NAME", ""),
			SslMode:  p.str("DB_SSLMODE", "disable"),
		},
	}

	if cfg.WorkerPoolSize <= 0 {
		p.fail(errs.NewValueIsOutOfRangeError("WORKER_POOL_SIZE", cfg.WorkerPoolSize, 1, "unbounded"))
	}
	if cfg.PollPeriod <= 0 {
		p.fail(errs.NewValueIsOutOfRangeError("POLL_PERIOD_MS", cfg.PollPeriod, time.Millisecond, processor.MaxPollPeriod))
	}
	if cfg.IdlePeriod <= 0 {
		p.fail(errs.NewValueIsOutOfRangeError("IDLE_PERIOD_MS", cfg.IdlePeriod, time.Millisecond, "unbounded"))
	}
	if cfg.IdleMaxTokens <= 0 {
		p.fail(errs.NewValueIsOutOfRangeError("IDLE_MAX_TOKENS", cfg.IdleMaxTokens, 1, "unbounded"))
	}
	if cfg.CourierETAMin < 0 || cfg.CourierETAMax < cfg.CourierETAMin {
		p.fail(errs.NewValueIsOutOfRangeError("COURIER_ETA_MAX_MS", cfg.CourierETAMax, cfg.CourierETAMin, "unbounded"))
	}

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type envParser struct {
	getenv func(string) string
	errs   []error
}

func (p *envParser) fail(err error) {
	p.errs = append(p.errs, err)
}

func (p *envParser) lookup(key string) (string, bool) {
	v := strings.TrimSpace(p.getenv(key))
	return v, v != ""
}

func (p *envParser) str(key, def string) string {
	if v, ok := p.lookup(key); ok {
		return v
	}
	return def
}

func (p *envParser) integer(key string, def int) int {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return n
}

func (p *envParser) float(key string, def float64) float64 {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return f
}

func (p *envParser) millis(key string, def time.Duration) time.Duration {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func (p *envParser) strategy(key string, def services.Strategy) services.Strategy {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	s, err := services.ParseStrategy(strings.ToLower(v))
	if err != nil {
		p.fail(err)
		return def
	}
	return s
}

func (p *envParser) level(key string, def slog.Level) slog.Level {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		p.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return level
}
