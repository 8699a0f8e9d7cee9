package sse

import (
	"errors"
	"net/http"
	"time"

	"github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/gin-gonic/gin"
)

// DefaultHeartbeatInterval is how often an idle stream gets a comment line.
const DefaultHeartbeatInterval = 15 * time.Second

const sseContentType = "text/event-stream"

// Handler streams broker events to the requesting client until it
// disconnects or the broker closes.
func Handler(broker *Broker, log logger.Logger, heartbeat time.Duration) gin.HandlerFunc {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeatInterval
	}

	return func(c *gin.Context) {
		events, cleanup, err := broker.Subscribe(c.Request.Context())
		if err != nil {
			status := http.StatusServiceUnavailable
			if !errors.Is(err, ErrTooManyClients) && !errors.Is(err, ErrClosed) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		defer cleanup()

		// Streams outlive the server's write timeout.
		if err = http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{}); err != nil {
			log.Debug("SSE write deadline not cleared", logger.Error(err))
		}

		h := c.Writer.Header()
		h.Set("Content-Type", sseContentType)
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)

		connected := Event{
			Type: EventTypeConnected,
			Data: map[string]string{"timestamp": time.Now().UTC().Format(time.RFC3339)},
		}
		if err = WriteEvent(c.Writer, connected); err != nil {
			log.Debug("SSE connect write failed", logger.Error(err))
			return
		}
		c.Writer.Flush()

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				if err = WriteEvent(c.Writer, event); err != nil {
					log.Debug("SSE write failed", logger.Error(err), logger.String("event_type", event.Type))
					return
				}
				c.Writer.Flush()
			case <-ticker.C:
				if _, err = c.Writer.WriteString(": heartbeat\n\n"); err != nil {
					return
				}
				c.Writer.Flush()
			case <-c.Request.Context().Done():
				return
			}
		}
	}
}
