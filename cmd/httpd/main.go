package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/habitloop/curator/internal/api"
	"github.com/habitloop/curator/internal/classifier"
	"github.com/habitloop/curator/internal/config"
	"github.com/habitloop/curator/internal/curation"
	"github.com/habitloop/curator/internal/domain"
	"github.com/habitloop/curator/internal/library"
	"github.com/habitloop/curator/internal/logging"
	"github.com/habitloop/curator/internal/telemetry"
	"github.com/habitloop/curator/internal/youtube"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "", "path to yaml config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "curator: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting curator",
		logging.String("version", cfg.Service.Version),
		logging.Int("port", cfg.Service.Port))

	provider := telemetry.NewProvider()

	gateway, err := buildGateway(cfg, logger)
	if err != nil {
		return err
	}

	store, err := library.Open(cfg.Library.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	cls := classifier.New(logger)
	searcher := curation.NewSearcher(gateway, cls,
		cfg.Search.OverfetchMultiplier, logger, provider.Metrics)
	workflow := curation.NewWorkflow(gateway, cls, logger, provider.Metrics)

	handler := api.NewHandler(gateway, searcher, workflow, store,
		cfg.Search.MaxResults, logger, provider.Handler())
	server := api.NewServer(handler, cfg, logger)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		logger.Info("server stopped gracefully")
	}
	return nil
}

// buildGateway returns the real platform gateway, or the unconfigured
// stub when no credential is present so the service still starts and
// every platform-touching request reports the remediation hint.
func buildGateway(cfg *config.Config, logger logging.Logger) (youtube.Gateway, error) {
	gw, err := youtube.NewDataAPIGateway(context.Background(), youtube.Config{
		APIKey:            cfg.YouTube.APIKey,
		TranscriptBaseURL: cfg.YouTube.TranscriptBaseURL,
		RequestsPerSecond: cfg.YouTube.RequestsPerSecond,
	}, logger)
	if err == nil {
		return gw, nil
	}

	var ce *domain.ConfigurationError
	if errors.As(err, &ce) {
		logger.Warn("starting without platform credential",
			logging.String("hint", ce.Hint))
		return &youtube.Unconfigured{}, nil
	}
	return nil, err
}
