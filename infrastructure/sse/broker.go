package sse

import (
	"context"
	"errors"
	"sync"

	"github.com/Odelf18/career-maps/infrastructure/logger"
)

// Defaults.
const (
	DefaultClientBufferSize = 16
	DefaultMaxClients       = 1000
)

// ErrTooManyClients is returned by Subscribe when the broker is full.
var ErrTooManyClients = errors.New("too many sse clients")

// ErrClosed is returned by Subscribe after Close.
var ErrClosed = errors.New("sse broker closed")

// Broker fans published events out to subscribed clients. Slow clients
// whose buffer is full miss the event rather than block the publisher.
type Broker struct {
	log        logger.Logger
	bufferSize int
	maxClients int

	mu      sync.Mutex
	nextID  uint64
	clients map[uint64]chan Event
	closed  bool
}

// Option configures a Broker.
type Option func(*Broker)

// WithClientBufferSize sets the per-client event buffer.
func WithClientBufferSize(size int) Option {
	return func(b *Broker) {
		if size > 0 {
			b.bufferSize = size
		}
	}
}

// WithMaxClients caps concurrent subscriptions. Zero means unlimited.
func WithMaxClients(n int) Option {
	return func(b *Broker) {
		if n >= 0 {
			b.maxClients = n
		}
	}
}

// NewBroker creates a Broker.
func NewBroker(log logger.Logger, opts ...Option) *Broker {
	b := &Broker{
		log:        log,
		bufferSize: DefaultClientBufferSize,
		maxClients: DefaultMaxClients,
		clients:    make(map[uint64]chan Event),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a client. The returned channel is closed when ctx
// ends, the cleanup func runs, or the broker closes.
func (b *Broker) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, nil, ErrClosed
	}
	if b.maxClients > 0 && len(b.clients) >= b.maxClients {
		b.mu.Unlock()
		b.log.Warn("SSE client rejected", logger.Int("max_clients", b.maxClients))
		return nil, nil, ErrTooManyClients
	}
	b.nextID++
	id := b.nextID
	ch := make(chan Event, b.bufferSize)
	b.clients[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cleanup := func() { once.Do(func() { b.remove(id) }) }

	go func() {
		<-ctx.Done()
		cleanup()
	}()

	return ch, cleanup, nil
}

func (b *Broker) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.clients[id]; ok {
		delete(b.clients, id)
		close(ch)
	}
}

// Publish delivers event to every client with buffer room and returns
// how many received it.
func (b *Broker) Publish(event Event) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for _, ch := range b.clients {
		select {
		case ch <- event:
			delivered++
		default:
		}
	}

	if dropped := len(b.clients) - delivered; dropped > 0 {
		b.log.Debug("SSE event dropped for slow clients",
			logger.String("event_type", event.Type),
			logger.Int("dropped", dropped),
		)
	}
	return delivered
}

// ClientCount returns the number of subscribed clients.
func (b *Broker) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Close disconnects every client and rejects new subscriptions.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.clients {
		delete(b.clients, id)
		close(ch)
	}
}
