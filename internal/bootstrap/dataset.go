package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Odelf18/career-maps/infrastructure/circuitbreaker"
	infracontext "github.com/Odelf18/career-maps/infrastructure/context"
	infrahttp "github.com/Odelf18/career-maps/infrastructure/http"
	infralogger "github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/Odelf18/career-maps/infrastructure/sse"
	"github.com/Odelf18/career-maps/internal/config"
	"github.com/Odelf18/career-maps/internal/dataset"
	"github.com/Odelf18/career-maps/internal/telemetry"
)

// Dataset is the store plus whatever its loader holds open.
type Dataset struct {
	Store *dataset.Store
	db    *sql.DB
	log   infralogger.Logger
}

// Close releases the loader's connection, if any.
func (d *Dataset) Close() {
	if d.db == nil {
		return
	}
	if err := d.db.Close(); err != nil {
		d.log.Error("Failed to close database", infralogger.Error(err))
	}
}

// SetupDataset builds the loader selected by dataset.source. The store is
// empty until LoadDataset runs.
func SetupDataset(ctx context.Context, cfg *config.Config, log infralogger.Logger) (*Dataset, error) {
	ds := &Dataset{log: log}

	loader, err := newLoader(ctx, cfg, ds, log)
	if err != nil {
		return nil, err
	}
	ds.Store = dataset.NewStore(loader, log)
	return ds, nil
}

func newLoader(ctx context.Context, cfg *config.Config, ds *Dataset, log infralogger.Logger) (dataset.Loader, error) {
	dc := cfg.Dataset

	switch dc.Source {
	case config.SourceFile:
		return dataset.NewFileLoader(dc.Path), nil
	case config.SourceXLSX:
		return dataset.NewXLSXLoader(dc.Path, dc.Sheet), nil
	case config.SourceHTTP:
		loader := dataset.NewHTTPLoader(dc.URL, infrahttp.NewClient(&infrahttp.ClientConfig{Timeout: dc.HTTPTimeout}))
		breakerCfg := circuitbreaker.DefaultConfig()
		breakerCfg.OnStateChange = func(from, to circuitbreaker.State) {
			log.Warn("Dataset upstream circuit changed",
				infralogger.String("from", from.String()),
				infralogger.String("to", to.String()),
			)
		}
		loader.Breaker = circuitbreaker.New(breakerCfg)
		return loader, nil
	case config.SourcePostgres:
		pingCtx, cancel := infracontext.WithLoadTimeout(ctx)
		defer cancel()

		db, err := dataset.OpenPostgres(pingCtx, dc.DSN)
		if err != nil {
			return nil, fmt.Errorf("database connection: %w", err)
		}
		ds.db = db
		return dataset.NewPostgresLoader(db), nil
	default:
		return nil, fmt.Errorf("unknown dataset source %q", dc.Source)
	}
}

// LoadDataset performs the initial load. A dataset that fails validation
// is reported issue by issue before the error is returned.
func LoadDataset(ctx context.Context, store *dataset.Store, log infralogger.Logger) error {
	start := time.Now()
	loadCtx, cancel := infracontext.WithLoadTimeout(ctx)
	defer cancel()

	snap, err := store.Reload(loadCtx)
	if err != nil {
		var verr *dataset.ValidationError
		if errors.As(err, &verr) {
			for _, issue := range verr.Issues {
				log.Error("Invalid employer record", infralogger.String("issue", issue.String()))
			}
		}
		return err
	}

	log.Info("Initial dataset load finished",
		infralogger.Uint64("version", snap.Version),
		infralogger.Duration("duration", time.Since(start)),
	)
	return nil
}

// WireReloadEvents records every load in metrics and tells connected
// browsers about successful ones.
func WireReloadEvents(store *dataset.Store, metrics *telemetry.Metrics, broker *sse.Broker) {
	store.OnReload(func(snap *dataset.Snapshot, err error) {
		if err != nil {
			metrics.ObserveReload(err, 0, 0)
			return
		}
		metrics.ObserveReload(nil, snap.Version, snap.Len())
		if broker != nil {
			broker.Publish(sse.NewDatasetReloadedEvent(snap.Version, snap.Len()))
		}
	})
}

// StartWatcher reloads file-backed datasets when the file changes.
func StartWatcher(ctx context.Context, cfg *config.Config, store *dataset.Store, log infralogger.Logger) {
	dc := cfg.Dataset
	if !dc.Watch {
		return
	}
	if dc.Source != config.SourceFile && dc.Source != config.SourceXLSX {
		log.Warn("Dataset watch ignored for non-file source", infralogger.String("source", dc.Source))
		return
	}

	watcher := dataset.NewWatcher(dc.Path, dc.WatchDebounce, store, log)
	go func() {
		if err := watcher.Run(ctx); err != nil {
			log.Error("Dataset watcher stopped", infralogger.Error(err))
		}
	}()
}
