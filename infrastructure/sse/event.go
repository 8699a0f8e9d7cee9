// Package sse streams server-sent events to browser clients.
package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Event types.
const (
	EventTypeConnected       = "connected"
	EventTypeDatasetReloaded = "dataset:reloaded"
)

// Event is one server-sent event. Data is written as JSON.
type Event struct {
	Type  string
	ID    string
	Data  any
	Retry int
}

// DatasetReloadedData is the payload of a dataset:reloaded event.
type DatasetReloadedData struct {
	Version   uint64 `json:"version"`
	Employers int    `json:"employers"`
	Timestamp string `json:"timestamp"`
}

// NewDatasetReloadedEvent builds a dataset:reloaded event.
func NewDatasetReloadedEvent(version uint64, employers int) Event {
	return Event{
		Type: EventTypeDatasetReloaded,
		ID:   fmt.Sprintf("%d", version),
		Data: DatasetReloadedData{
			Version:   version,
			Employers: employers,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// WriteEvent writes event in text/event-stream framing.
func WriteEvent(w io.Writer, event Event) error {
	if event.Type != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", event.Type); err != nil {
			return fmt.Errorf("write event type: %w", err)
		}
	}
	if event.ID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", event.ID); err != nil {
			return fmt.Errorf("write event id: %w", err)
		}
	}
	if event.Retry > 0 {
		if _, err := fmt.Fprintf(w, "retry: %d\n", event.Retry); err != nil {
			return fmt.Errorf("write retry: %w", err)
		}
	}

	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}
	if _, err = fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("write event data: %w", err)
	}
	return nil
}
