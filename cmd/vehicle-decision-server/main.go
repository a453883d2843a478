package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/vehicle-decision/internal/config"
	"github.com/iwvelando/vehicle-decision/internal/engine"
	"github.com/iwvelando/vehicle-decision/internal/logging"
	"github.com/iwvelando/vehicle-decision/internal/server"
	"github.com/iwvelando/vehicle-decision/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	address     string
	ratesFile   string
	maxBodySize string
	logLevel    string
}

func parseFlags(args []string) (options, error) {
	var opts options
	flags := flag.NewFlagSet("vehicle-decision-server", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.StringVar(&opts.configPath, "config", constants.DefaultServerConfigFile, "path to the server configuration file")
	flags.StringVar(&opts.address, "address", "", "listen address override")
	flags.StringVar(&opts.ratesFile, "rates", "", "rate table configuration override")
	flags.StringVar(&opts.maxBodySize, "max-body-size", "", "request body limit override, e.g. 64K")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

// loadServerConfig applies flag overrides on top of the configuration file.
func loadServerConfig(opts options) (*server.Config, error) {
	cfg, err := server.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.address != "" {
		cfg.Address = opts.address
	}
	if opts.ratesFile != "" {
		cfg.RatesFile = opts.ratesFile
	}
	if opts.maxBodySize != "" {
		size, err := server.ParseSize(opts.maxBodySize)
		if err != nil {
			return nil, fmt.Errorf("invalid -max-body-size: %w", err)
		}
		cfg.SetBodySizeBytes(size)
	}
	return cfg, nil
}

func run(ctx context.Context, args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadServerConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	rates, err := config.LoadConfiguration(cfg.RatesFile)
	if err != nil {
		return fmt.Errorf("failed to load rate tables at %s: %w", cfg.RatesFile, err)
	}
	for _, warning := range rates.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	cache, err := server.NewCache(cfg.Cache)
	if err != nil {
		return err
	}
	if closer, ok := cache.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	eng := engine.New(logger, rates)
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, cfg, eng, cache, version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting decision API",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("cache", cfg.Cache.Backend),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down decision API", zap.String("op", "main"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	logger.Info("decision API stopped", zap.String("op", "main"))
	return nil
}
