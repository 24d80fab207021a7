package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/adapters/in/feeder"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/core/application/fleet"
	"fulfillment/internal/core/application/kitchen"
	"fulfillment/internal/core/application/processor"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	gormDB    *gorm.DB
	scheduler *jobs.Scheduler
	fleet     *fleet.Fleet
	kitchen   *kitchen.Kitchen
	ledger    ports.DeliveryLedger
	processor *processor.Processor
}

// NewCompositionRoot builds the whole pipeline without starting it. The ledger lives in
// Postgres when DB settings are present, in memory otherwise.
func NewCompositionRoot(
	cfg Config,
	couriers []*courier.Courier,
	logger *slog.Logger,
	onExit func(error),
) (*CompositionRoot, error) {
	root := &CompositionRoot{cfg: cfg, logger: logger}

	ledger, err := root.openLedger()
	if err != nil {
		return nil, err
	}
	root.ledger = ledger

	root.scheduler = jobs.NewScheduler(cfg.WorkerPoolSize, logger)

	root.fleet, err = fleet.New(couriers, fleet.Config{
		ETAMin:         cfg.CourierETAMin,
		ETAMax:         cfg.CourierETAMax,
		PublishTimeout: cfg.PublishTimeout,
	}, root.scheduler, logger)
	if err != nil {
		return nil, root.abort(fmt.Errorf("build fleet: %w", err))
	}

	root.kitchen, err = kitchen.New(root.scheduler, logger, cfg.PublishTimeout)
	if err != nil {
		return nil, root.abort(fmt.Errorf("build kitchen: %w", err))
	}

	root.processor, err = processor.New(processor.Config{
		PollPeriod:     cfg.PollPeriod,
		IdlePeriod:     cfg.IdlePeriod,
		IdleMaxTokens:  cfg.IdleMaxTokens,
		IdleWarmUp:     cfg.IdleWarmUp,
		QueueCapacity:  cfg.QueueCapacity,
		PublishTimeout: cfg.PublishTimeout,
	}, processor.Dependencies{
		Scheduler: root.scheduler,
		Fleet:     root.fleet,
		Kitchen:   root.kitchen,
		Matcher:   root.newMatcher(),
		Metrics:   services.NewMetrics(),
		Ledger:    ledger,
		OnExit:    onExit,
	}, logger)
	if err != nil {
		return nil, root.abort(fmt.Errorf("build processor: %w", err))
	}

	return root, nil
}

func (c *CompositionRoot) openLedger() (ports.DeliveryLedger, error) {
	if !c.cfg.DB.Enabled() {
		c.logger.Info("Delivery ledger kept in memory")
		return memory.NewDeliveryLedger(), nil
	}

	db, err := postgres.Open(c.cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(db); err != nil {
		return nil, errors.Join(err, closeDB(db))
	}
	c.gormDB = db
	runID := uuid.NewString()
	c.logger.Info("Delivery ledger stored in postgres",
		"host", c.cfg.DB.Host, "database", c.cfg.DB.Name, "run_id", runID)
	return deliveryrepo.NewGormDeliveryRepository(db, runID), nil
}

func (c *CompositionRoot) newMatcher() ports.Matcher {
	if c.cfg.MatchStrategy == services.StrategyMatched {
		return services.NewAffinityMatcher(c.logger, c.cfg.PublishTimeout)
	}
	return services.NewFIFOMatcher(c.logger, c.cfg.PublishTimeout)
}

func (c *CompositionRoot) abort(err error) error {
	if c.scheduler != nil {
		c.scheduler.Shutdown()
	}
	return errors.Join(err, c.Close())
}

// Start registers the dispatch loop and the idle monitor.
func (c *CompositionRoot) Start() error {
	c.logger.Info("Pipeline starting",
		"strategy", c.cfg.MatchStrategy,
		"couriers", c.fleet.AvailableCount(),
		"workers", c.cfg.WorkerPoolSize,
	)
	return c.processor.Start()
}

func (c *CompositionRoot) Processor() *processor.Processor {
	return c.processor
}

// Close releases the database connection, if any. The pipeline must be finished.
func (c *CompositionRoot) Close() error {
	if c.gormDB == nil {
		return nil
	}
	err := closeDB(c.gormDB)
	c.gormDB = nil
	return err
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.processor)
}

func (c *CompositionRoot) CreateReportCourierArrivalCommandHandler() commands.ReportCourierArrivalCommandHandler {
	return commands.NewReportCourierArrivalCommandHandler(c.processor)
}

func (c *CompositionRoot) CreateGetCouriersQueryHandler() queries.GetCouriersQueryHandler {
	return queries.NewGetCouriersQueryHandler(c.fleet)
}

func (c *CompositionRoot) CreateGetDeliveriesQueryHandler() queries.GetDeliveriesQueryHandler {
	return queries.NewGetDeliveriesQueryHandler(c.ledger)
}

func (c *CompositionRoot) CreateGetMetricsQueryHandler() queries.GetMetricsQueryHandler {
	return queries.NewGetMetricsQueryHandler(c.processor)
}

// NewHTTPServer returns an echo instance with every route mounted.
func (c *CompositionRoot) NewHTTPServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	httpin.NewServer(
		c.CreateSubmitOrderCommandHandler(),
		c.CreateReportCourierArrivalCommandHandler(),
		c.CreateGetCouriersQueryHandler(),
		c.CreateGetDeliveriesQueryHandler(),
		c.CreateGetMetricsQueryHandler(),
	).Register(e)

	return e
}

// NewFeeder paces submissions through the submit-order handler.
func (c *CompositionRoot) NewFeeder(ordersPerSecond float64) *feeder.Feeder {
	handler := c.CreateSubmitOrderCommandHandler()
	return feeder.New(&handler, ordersPerSecond, c.logger)
}
