// Package session keeps each visitor's filter state and last map viewport
// between requests. State lives only as long as the session TTL.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/Odelf18/career-maps/internal/domain"
	"github.com/Odelf18/career-maps/internal/viewsync"
	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Session is one visitor's state.
type Session struct {
	ID        string             `json:"id"`
	State     domain.FilterState `json:"state"`
	Viewport  viewsync.Viewport  `json:"viewport"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// New returns a session with default filter state and the given initial
// viewport.
func New(viewport viewsync.Viewport) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		State:     domain.DefaultFilterState(),
		Viewport:  viewport,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	c.State = s.State.Clone()
	if s.Viewport.Bounds != nil {
		b := *s.Viewport.Bounds
		c.Viewport.Bounds = &b
	}
	return &c
}

// ValidID reports whether id looks like a session id. Cookies with other
// values are ignored rather than looked up.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

// Store persists sessions. Save replaces the whole record and refreshes
// its TTL.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
