package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/internal/adapters/in/feeder"
	"fulfillment/internal/adapters/out/fleetfile"

	"github.com/spf13/cobra"
)

const httpShutdownTimeout = 5 * time.Second

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile   string
	FleetFile string
	Verbose   bool
}

// NewRootCommand creates the root command of the fulfillment CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fulfillment",
		Short: "Meal-delivery fulfillment pipeline",
		Long: `Runs the kitchen, the courier fleet and the matcher behind one event queue.

Configuration comes from the environment (optionally a .env file); flags override
the file paths.`,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", DefaultEnvFile, "dotenv file to load")
	cmd.PersistentFlags().StringVar(&opts.FleetFile, "fleet", "", "courier fleet JSON file (overrides FLEET_FILE)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSimulateCommand(opts))

	return cmd
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Accept orders and courier arrivals over HTTP",
		Long: `Starts the pipeline behind the HTTP API and runs until the pipeline goes idle,
stops on a fatal event, or the process is interrupted.

Example:
  fulfillment serve --fleet ./fleet.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), rootOpts, cmd.OutOrStdout())
		},
	}
}

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	OrdersFile      string
	OrdersPerSecond float64
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Feed an orders file through the pipeline",
		Long: `Submits every order of a JSON file at a fixed rate, waits until the pipeline
goes idle and prints the final metrics as JSON.

Example:
  fulfillment simulate --orders ./orders.json --rate 2`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd.Context(), opts, cmd.Flags().Changed("rate"), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.OrdersFile, "orders", "", "orders JSON file (overrides ORDERS_FILE)")
	cmd.Flags().Float64Var(&opts.OrdersPerSecond, "rate", 0, "orders per second (overrides ORDERS_PER_SECOND)")

	return cmd
}

func bootstrap(opts *RootOptions, onExit func(error)) (*CompositionRoot, Config, *slog.Logger, error) {
	cfg, err := LoadConfig(opts.EnvFile)
	if err != nil {
		return nil, Config{}, nil, err
	}
	if opts.FleetFile != "" {
		cfg.FleetFile = opts.FleetFile
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	couriers, err := fleetfile.LoadFile(cfg.FleetFile)
	if err != nil {
		return nil, cfg, logger, fmt.Errorf("load fleet: %w", err)
	}

	root, err := NewCompositionRoot(cfg, couriers, logger, onExit)
	if err != nil {
		return nil, cfg, logger, err
	}
	return root, cfg, logger, nil
}

func runServe(ctx context.Context, opts *RootOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, cfg, logger, err := bootstrap(opts, func(error) { stop() })
	if err != nil {
		return err
	}
	defer root.Close()

	if err := root.Start(); err != nil {
		return err
	}
	proc := root.Processor()

	e := root.NewHTTPServer()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- e.Start(":" + cfg.HTTPPort)
	}()
	logger.Info("HTTP server listening", "port", cfg.HTTPPort)

	var httpErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			httpErr = fmt.Errorf("http server: %w", err)
		}
	}

	proc.Shutdown()
	<-proc.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server did not stop cleanly", "error", err)
	}

	return errors.Join(httpErr, proc.Err(), writeMetrics(out, root))
}

func runSimulate(ctx context.Context, opts *SimulateOptions, rateSet bool, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, cfg, logger, err := bootstrap(opts.RootOptions, func(error) { stop() })
	if err != nil {
		return err
	}
	defer root.Close()

	path := cfg.OrdersFile
	if opts.OrdersFile != "" {
		path = opts.OrdersFile
	}
	rate := cfg.OrdersPerSecond
	if rateSet {
		rate = opts.OrdersPerSecond
	}

	orders, err := feeder.LoadOrdersFile(path)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}

	if err := root.Start(); err != nil {
		return err
	}
	proc := root.Processor()

	result, err := root.NewFeeder(rate).Run(ctx, orders)
	logger.Info("Feeding finished",
		"submitted", result.Submitted,
		"rejected", result.Rejected,
		"invalid", result.Invalid,
		"rate", rate)
	if err != nil && !errors.Is(err, context.Canceled) {
		proc.Shutdown()
		<-proc.Done()
		return fmt.Errorf("feed orders: %w", err)
	}

	select {
	case <-proc.Done():
	case <-ctx.Done():
		proc.Shutdown()
		<-proc.Done()
	}

	return errors.Join(proc.Err(), writeMetrics(out, root))
}

func writeMetrics(out io.Writer, root *CompositionRoot) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(root.Processor().Metrics())
}
