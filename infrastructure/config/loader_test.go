package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Odelf18/career-maps/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string        `yaml:"name"`
	Port    int           `env:"CM_TEST_PORT"    yaml:"port"`
	Timeout time.Duration `env:"CM_TEST_TIMEOUT" yaml:"timeout"`
	Watch   bool          `env:"CM_TEST_WATCH"   yaml:"watch"`
	Nested  struct {
		Origins []string `env:"CM_TEST_ORIGINS" yaml:"origins"`
		Zoom    float64  `env:"CM_TEST_ZOOM"    yaml:"zoom"`
	} `yaml:"nested"`
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := writeYAML(t, "name: careermaps\nport: 8080\ntimeout: 5s\nnested:\n  origins: [a, b]\n")

	cfg, err := config.Load[testConfig](path)
	require.NoError(t, err)
	assert.Equal(t, "careermaps", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"a", "b"}, cfg.Nested.Origins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CM_TEST_PORT", "9090")
	t.Setenv("CM_TEST_TIMEOUT", "250ms")
	t.Setenv("CM_TEST_WATCH", "yes")
	t.Setenv("CM_TEST_ORIGINS", "http://a, http://b")
	t.Setenv("CM_TEST_ZOOM", "12.5")

	cfg, err := config.Load[testConfig](writeYAML(t, "port: 8080\n"))
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.True(t, cfg.Watch)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.Nested.Origins)
	assert.InDelta(t, 12.5, cfg.Nested.Zoom, 1e-9)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load[testConfig](filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestLoadWithDefaults_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CM_TEST_PORT", "7000")

	cfg, err := config.LoadWithDefaults[testConfig](filepath.Join(t.TempDir(), "nope.yml"), func(c *testConfig) {
		if c.Name == "" {
			c.Name = "default"
		}
		c.Port = 1
	})
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Name)
	// Environment wins over defaults.
	assert.Equal(t, 7000, cfg.Port)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := config.Load[testConfig](writeYAML(t, "port: [unclosed\n"))
	require.Error(t, err)
}

func TestGetConfigPath(t *testing.T) {
	assert.Equal(t, "config.yml", config.GetConfigPath("config.yml"))

	t.Setenv("CONFIG_PATH", "/etc/careermaps.yml")
	assert.Equal(t, "/etc/careermaps.yml", config.GetConfigPath("config.yml"))
}

func TestValidators(t *testing.T) {
	t.Parallel()

	var vErr *config.ValidationError

	require.ErrorAs(t, config.ValidatePort("service.port", 0), &vErr)
	assert.Equal(t, "service.port", vErr.Field)
	assert.NoError(t, config.ValidatePort("service.port", 8080))

	assert.NoError(t, config.ValidateLogLevel("debug"))
	assert.Error(t, config.ValidateLogLevel("verbose"))
	assert.NoError(t, config.ValidateLogFormat("json"))

	err := config.ValidateOneOf("dataset.source", "ftp", "file", "http")
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Message, "file, http")

	assert.Error(t, config.ValidateRequired("dataset.path", "  "))
}
