// Package context provides bounded background contexts for startup and
// health-check calls made outside a request.
package context

import (
	"context"
	"time"
)

// Timeouts for background operations.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultLoadTimeout = 60 * time.Second
	DefaultPingTimeout = 5 * time.Second
)

// WithTimeout derives a context from Background with d.
func WithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

// WithPingTimeout bounds a health ping.
func WithPingTimeout() (context.Context, context.CancelFunc) {
	return WithTimeout(DefaultPingTimeout)
}

// WithLoadTimeout bounds a dataset load at startup or reload.
func WithLoadTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, DefaultLoadTimeout)
}
