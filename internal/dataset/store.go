package dataset

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/Odelf18/career-maps/internal/domain"
)

// Snapshot is one validated load of the dataset. It is never modified
// after it is published; a reload publishes a new Snapshot.
type Snapshot struct {
	Employers []domain.Employer
	Version   uint64
	LoadedAt  time.Time
	Source    string
	Warnings  []Issue
}

// Len returns the number of employers.
func (s *Snapshot) Len() int { return len(s.Employers) }

// ReloadHook is called after a snapshot is published, or with a nil
// snapshot and the error when a reload fails.
type ReloadHook func(snap *Snapshot, err error)

// Store holds the current Snapshot. Readers never block; a failed reload
// keeps the previous snapshot in place.
type Store struct {
	loader Loader
	log    logger.Logger

	current atomic.Pointer[Snapshot]
	version atomic.Uint64

	reloadMu sync.Mutex
	hooksMu  sync.RWMutex
	hooks    []ReloadHook
}

// NewStore returns an empty Store. Call Reload before serving.
func NewStore(loader Loader, log logger.Logger) *Store {
	return &Store{loader: loader, log: log}
}

// NewStaticStore publishes employers as version 1 without a loader
// round trip. Reload on such a store re-publishes the same records.
func NewStaticStore(employers []domain.Employer, log logger.Logger) (*Store, error) {
	s := NewStore(LoaderFunc(func(context.Context) ([]domain.Employer, error) {
		return employers, nil
	}), log)
	if _, err := s.Reload(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// OnReload registers hook for every later reload attempt.
func (s *Store) OnReload(hook ReloadHook) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Current returns the published snapshot, or nil before the first load.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Ready reports whether a snapshot has been published.
func (s *Store) Ready() bool {
	return s.current.Load() != nil
}

// Source describes the loader.
func (s *Store) Source() string {
	return s.loader.Source()
}

// Reload loads, validates and publishes a new snapshot. Concurrent calls
// are serialized.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		s.log.Error("Dataset reload failed",
			logger.String("source", s.loader.Source()),
			logger.Error(err),
		)
		s.notify(nil, err)
		return nil, err
	}

	s.current.Store(snap)
	s.log.Info("Dataset loaded",
		logger.String("source", snap.Source),
		logger.Uint64("version", snap.Version),
		logger.Int("employers", snap.Len()),
		logger.Int("warnings", len(snap.Warnings)),
	)
	for _, w := range snap.Warnings {
		s.log.Warn("Dataset record warning",
			logger.Employer(w.ID),
			logger.Int("index", w.Index),
			logger.String("field", w.Field),
			logger.String("message", w.Message),
		)
	}
	s.notify(snap, nil)
	return snap, nil
}

func (s *Store) load(ctx context.Context) (*Snapshot, error) {
	employers, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	warnings, err := Validate(employers)
	if err != nil {
		return nil, err
	}
	if employers == nil {
		employers = []domain.Employer{}
	}
	return &Snapshot{
		Employers: employers,
		Version:   s.version.Add(1),
		LoadedAt:  time.Now().UTC(),
		Source:    s.loader.Source(),
		Warnings:  warnings,
	}, nil
}

func (s *Store) notify(snap *Snapshot, err error) {
	s.hooksMu.RLock()
	hooks := append([]ReloadHook(nil), s.hooks...)
	s.hooksMu.RUnlock()

	for _, hook := range hooks {
		hook(snap, err)
	}
}
