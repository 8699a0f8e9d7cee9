package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	infraerrors "github.com/Odelf18/career-maps/infrastructure/errors"
	"github.com/Odelf18/career-maps/internal/domain"
	"gopkg.in/yaml.v3"
)

// Formats understood by Decode.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXLSX = "xlsx"
)

// FormatFromPath maps a file extension to a format.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode reads a JSON or YAML array of employers from r. A record without
// lat or lng decodes with NaN coordinates.
func Decode(r io.Reader, format string) ([]domain.Employer, error) {
	var records []record

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return toEmployers(records), nil
}

// FileLoader reads a JSON or YAML dataset file.
type FileLoader struct {
	Path string
}

// NewFileLoader returns a loader for path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

// Source returns the file path.
func (l *FileLoader) Source() string { return "file:" + l.Path }

// Load reads and decodes the file.
func (l *FileLoader) Load(_ context.Context) ([]domain.Employer, error) {
	format, err := FormatFromPath(l.Path)
	if err != nil {
		return nil, err
	}
	if format == FormatXLSX {
		return nil, fmt.Errorf("%w: use the xlsx source for %s", ErrUnsupportedFormat, l.Path)
	}

	f, err := os.Open(l.Path)
	if err != nil {
		return nil, infraerrors.WrapWithContext(err, "open dataset")
	}
	defer func() { _ = f.Close() }()

	employers, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.Path, err)
	}
	return employers, nil
}
