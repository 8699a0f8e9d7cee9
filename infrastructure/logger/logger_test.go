package logger_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.log")
	log, err := logger.New(logger.Config{Level: "debug", OutputPaths: []string{path}})
	require.NoError(t, err)

	log.With(logger.Session("s-1")).Info("filter applied",
		logger.Int("results", 3),
		logger.Strings("tags", []string{"Remote"}),
		logger.Error(errors.New("boom")),
	)
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"filter applied"`)
	assert.Contains(t, string(data), `"session_id":"s-1"`)
	assert.Contains(t, string(data), `"results":3`)
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.log")
	log, err := logger.New(logger.Config{Level: "warn", OutputPaths: []string{path}})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Warn("shown", logger.Employer("acme"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"employer_id":"acme"`)
}

func TestContext_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.log")
	log, err := logger.New(logger.Config{OutputPaths: []string{path}})
	require.NoError(t, err)

	ctx := logger.WithContext(context.Background(), log)
	assert.Same(t, log, logger.FromContext(ctx))
}

func TestFromContext_FallbackIsUsable(t *testing.T) {
	t.Parallel()

	fb := logger.FromContext(context.Background())
	require.NotNil(t, fb)
	fb.Debug("debug")
	fb.Warn("warn", logger.String("k", "v"))
}

func TestNop(t *testing.T) {
	t.Parallel()

	n := logger.NewNop()
	n.Fatal("does not exit")
	assert.NoError(t, n.With(logger.Bool("x", true)).Sync())
}
