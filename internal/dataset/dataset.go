// Package dataset loads, validates and publishes the employer dataset.
//
// A Loader reads employers from one source (a JSON or YAML file, an XLSX
// workbook, an HTTP endpoint or Postgres). The Store validates what a
// loader returns and publishes it as an immutable Snapshot.
package dataset

import (
	"context"
	"errors"

	"github.com/Odelf18/career-maps/internal/domain"
)

// Sentinel errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrDuplicateID       = errors.New("duplicate employer id")
	ErrMissingID         = errors.New("employer id is required")
	ErrMissingName       = errors.New("employer name is required")
	ErrNotLoaded         = errors.New("dataset not loaded")
)

// Loader reads the full employer list from a source.
type Loader interface {
	Load(ctx context.Context) ([]domain.Employer, error)
	// Source describes where employers come from, for logs and /ready.
	Source() string
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) ([]domain.Employer, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) ([]domain.Employer, error) { return f(ctx) }

// Source returns "func".
func (LoaderFunc) Source() string { return "func" }
