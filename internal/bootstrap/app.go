// Package bootstrap handles application initialization and lifecycle management
// for the careermaps service.
package bootstrap

import (
	"context"
	"fmt"

	infralogger "github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/Odelf18/career-maps/infrastructure/profiling"
	"github.com/Odelf18/career-maps/infrastructure/sse"
	"github.com/Odelf18/career-maps/internal/telemetry"
)

const version = "dev"

// Start initializes and starts the careermaps application.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: Profiling (if enabled)
	profiling.StartPprofServer(log)
	profiler, err := profiling.StartPyroscope(cfg.Service.Name)
	if err != nil {
		log.Warn("Continuous profiling disabled", infralogger.Error(err))
	}
	defer func() { _ = profiler.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := telemetry.New()
	broker := sse.NewBroker(log)
	defer broker.Close()

	// Phase 3: Load the dataset
	ds, err := SetupDataset(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to set up dataset: %w", err)
	}
	defer ds.Close()

	WireReloadEvents(ds.Store, metrics, broker)
	if err = LoadDataset(ctx, ds.Store, log); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	StartWatcher(ctx, cfg, ds.Store, log)

	// Phase 4: Session store
	sess, err := SetupSessions(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to set up sessions: %w", err)
	}
	defer sess.Close()

	// Phase 5: Setup and run HTTP server
	app := SetupHTTPServer(ctx, cfg, ServerDeps{
		Dataset:  ds,
		Sessions: sess,
		Metrics:  metrics,
		Broker:   broker,
	}, log)

	log.Info("Starting HTTP server",
		infralogger.Int("port", cfg.Service.Port),
		infralogger.String("dataset_source", ds.Store.Source()),
		infralogger.String("session_store", cfg.Session.Store),
	)

	if runErr := app.RunContext(ctx); runErr != nil {
		log.Error("Server error", infralogger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
