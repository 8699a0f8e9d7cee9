package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a Store when its dataset file changes. The parent
// directory is watched so atomic rename-over saves are seen.
type Watcher struct {
	path     string
	debounce time.Duration
	reload   func(context.Context)
	log      logger.Logger
}

// NewWatcher returns a watcher for path that calls store.Reload.
func NewWatcher(path string, debounce time.Duration, store *Store, log logger.Logger) *Watcher {
	return NewWatcherFunc(path, debounce, func(ctx context.Context) {
		_, _ = store.Reload(ctx)
	}, log)
}

// NewWatcherFunc returns a watcher for path that calls reload.
func NewWatcherFunc(path string, debounce time.Duration, reload func(context.Context), log logger.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{path: filepath.Clean(path), debounce: debounce, reload: reload, log: log}
}

// Run watches until ctx is cancelled. It returns an error only if the
// watch cannot be set up.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err = fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	w.log.Info("Watching dataset file",
		logger.String("path", w.path),
		logger.Duration("debounce", w.debounce),
	)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)
		case werr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("Dataset watcher error", logger.Error(werr))
		case <-timer.C:
			w.log.Info("Dataset file changed, reloading", logger.String("path", w.path))
			w.reload(ctx)
		}
	}
}
