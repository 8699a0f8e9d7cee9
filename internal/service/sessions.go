package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/Odelf18/career-maps/internal/filter"
	"github.com/Odelf18/career-maps/internal/session"
	"github.com/Odelf18/career-maps/internal/telemetry"
)

// Sessions applies filter operations to stored sessions and derives their
// views. Each call builds its own controller from the stored state and
// writes the whole state back while holding the session's lock.
type Sessions struct {
	dir     *Directory
	store   session.Store
	metrics *telemetry.Metrics
	log     logger.Logger
	locks   sessionLocks
}

// NewSessions returns a Sessions over store.
func NewSessions(dir *Directory, store session.Store, metrics *telemetry.Metrics, log logger.Logger) *Sessions {
	if log == nil {
		log = logger.NewNop()
	}
	return &Sessions{dir: dir, store: store, metrics: metrics, log: log}
}

// Create starts a session with the default state.
func (s *Sessions) Create(ctx context.Context) (*session.Session, error) {
	sess := session.New(s.dir.InitialViewport())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.log.Debug("Session created", logger.Session(sess.ID))
	s.refreshGauge(ctx)
	return sess, nil
}

// Get returns the session or session.ErrNotFound.
func (s *Sessions) Get(ctx context.Context, id string) (*session.Session, error) {
	if !session.ValidID(id) {
		return nil, session.ErrNotFound
	}
	return s.store.Get(ctx, id)
}

// Resume returns the session for id, or a new one when id is empty,
// malformed or expired. created reports which.
func (s *Sessions) Resume(ctx context.Context, id string) (sess *session.Session, created bool, err error) {
	sess, err = s.Get(ctx, id)
	if err == nil {
		return sess, false, nil
	}
	if !errors.Is(err, session.ErrNotFound) {
		return nil, false, err
	}
	sess, err = s.Create(ctx)
	return sess, err == nil, err
}

// Delete ends a session.
func (s *Sessions) Delete(ctx context.Context, id string) error {
	if !session.ValidID(id) {
		return session.ErrNotFound
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Debug("Session deleted", logger.Session(id))
	s.refreshGauge(ctx)
	return nil
}

// View derives the session's directory and stores the resulting viewport,
// which also refreshes the session TTL. sess is refreshed from the store
// first so a change applied since it was read is not overwritten.
func (s *Sessions) View(ctx context.Context, sess *session.Session) (*DirectoryView, error) {
	unlock := s.locks.lock(sess.ID)
	defer unlock()

	stored, err := s.store.Get(ctx, sess.ID)
	switch {
	case err == nil:
		*sess = *stored
	case !errors.Is(err, session.ErrNotFound):
		return nil, err
	}
	return s.view(ctx, sess)
}

func (s *Sessions) view(ctx context.Context, sess *session.Session) (*DirectoryView, error) {
	view, err := s.dir.View(sess.State, sess.Viewport)
	if err != nil {
		return nil, err
	}
	sess.Viewport = view.Viewport
	sess.UpdatedAt = time.Now().UTC()
	if err = s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return view, nil
}

// Apply runs one controller operation on the session and returns the
// updated session and its view.
func (s *Sessions) Apply(
	ctx context.Context, id string, op filter.Operation, arg string,
) (*session.Session, *DirectoryView, error) {
	if !session.ValidID(id) {
		return nil, nil, session.ErrNotFound
	}
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	ctrl := filter.NewControllerFrom(sess.State)
	if !ctrl.Dispatch(op, arg) {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}
	sess.State = ctrl.State()

	if s.metrics != nil {
		s.metrics.StateOperations.WithLabelValues(string(op)).Inc()
	}
	s.log.Debug("Filter state changed",
		logger.Session(sess.ID),
		logger.String("op", string(op)),
		logger.String("industry", sess.State.SelectedIndustry),
		logger.Strings("tags", sess.State.ActiveTags),
	)

	view, err := s.view(ctx, sess)
	if err != nil {
		return nil, nil, err
	}
	return sess, view, nil
}

func (s *Sessions) refreshGauge(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	n, err := s.store.Count(ctx)
	if err != nil {
		s.log.Warn("Failed to count sessions", logger.Error(err))
		return
	}
	s.metrics.SessionsActive.Set(float64(n))
}
