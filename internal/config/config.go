// Package config loads the careermaps service configuration.
package config

import (
	"time"

	infraconfig "github.com/Odelf18/career-maps/infrastructure/config"
	infralogger "github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/Odelf18/career-maps/infrastructure/redis"
)

// Dataset sources.
const (
	SourceFile     = "file"
	SourceXLSX     = "xlsx"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// Session stores.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Default configuration values.
const (
	defaultServiceName   = "careermaps"
	defaultServicePort   = 8080
	defaultVersion       = "0.1.0"
	defaultDatasetPath   = "data/employers.json"
	defaultSheet         = "Employers"
	defaultWatchDebounce = 500 * time.Millisecond
	defaultHTTPTimeout   = 10 * time.Second
	defaultSessionTTL    = 24 * time.Hour
	defaultSweepInterval = 5 * time.Minute
	defaultCookieName    = "cm_session"
	defaultRedisPrefix   = "careermaps:session:"
	defaultMemoSize      = 256
	defaultRequestsPerS  = 10
	defaultBurst         = 20
	defaultLoggingLevel  = "info"
	defaultLoggingFmt    = "json"
)

// Config holds the application configuration.
type Config struct {
	Service   ServiceConfig      `yaml:"service"`
	Dataset   DatasetConfig      `yaml:"dataset"`
	Map       MapConfig          `yaml:"map"`
	Session   SessionConfig      `yaml:"session"`
	Redis     redis.Config       `yaml:"redis"`
	RateLimit RateLimitConfig    `yaml:"rate_limit"`
	Logging   infralogger.Config `yaml:"logging"`
	CORS      CORSConfig         `yaml:"cors"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	Port     int    `env:"CAREERMAPS_PORT" yaml:"port"`
	Debug    bool   `env:"APP_DEBUG"       yaml:"debug"`
	MemoSize int    `yaml:"memo_size"`
}

// DatasetConfig selects and configures the employer dataset source.
type DatasetConfig struct {
	Source        string        `env:"DATASET_SOURCE"       yaml:"source"`
	Path          string        `env:"DATASET_PATH"         yaml:"path"`
	Sheet         string        `yaml:"sheet"`
	URL           string        `env:"DATASET_URL"          yaml:"url"`
	DSN           string        `env:"DATASET_DSN"          yaml:"dsn"`
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
	Watch         bool          `env:"DATASET_WATCH"        yaml:"watch"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`
	AllowReload   bool          `env:"DATASET_ALLOW_RELOAD" yaml:"allow_reload"`
}

// MapConfig overrides map widget defaults. Zero values keep the defaults.
type MapConfig struct {
	TileURL     string  `yaml:"tile_url"`
	Attribution string  `yaml:"attribution"`
	CenterLat   float64 `yaml:"center_lat"`
	CenterLng   float64 `yaml:"center_lng"`
	Zoom        int     `yaml:"zoom"`
}

// SessionConfig configures per-visitor filter state.
type SessionConfig struct {
	Store         string        `env:"SESSION_STORE" yaml:"store"`
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	CookieName    string        `yaml:"cookie_name"`
	CookieSecure  bool          `env:"SESSION_COOKIE_SECURE" yaml:"cookie_secure"`
	RedisPrefix   string        `yaml:"redis_prefix"`
}

// RateLimitConfig limits state-changing requests per client IP.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// CORSConfig holds CORS settings for the JSON API.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `env:"CORS_ORIGINS" yaml:"allowed_origins"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return infraconfig.LoadWithDefaults[Config](path, setDefaults)
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatasetDefaults(&cfg.Dataset)
	setSessionDefaults(&cfg.Session)
	setRateLimitDefaults(&cfg.RateLimit)

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultLoggingFmt
	}
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
	if svc.MemoSize == 0 {
		svc.MemoSize = defaultMemoSize
	}
}

func setDatasetDefaults(ds *DatasetConfig) {
	if ds.Source == "" {
		ds.Source = SourceFile
	}
	if ds.Path == "" && (ds.Source == SourceFile || ds.Source == SourceXLSX) {
		ds.Path = defaultDatasetPath
	}
	if ds.Sheet == "" {
		ds.Sheet = defaultSheet
	}
	if ds.HTTPTimeout == 0 {
		ds.HTTPTimeout = defaultHTTPTimeout
	}
	if ds.WatchDebounce == 0 {
		ds.WatchDebounce = defaultWatchDebounce
	}
}

func setSessionDefaults(s *SessionConfig) {
	if s.Store == "" {
		s.Store = StoreMemory
	}
	if s.TTL == 0 {
		s.TTL = defaultSessionTTL
	}
	if s.SweepInterval == 0 {
		s.SweepInterval = defaultSweepInterval
	}
	if s.CookieName == "" {
		s.CookieName = defaultCookieName
	}
	if s.RedisPrefix == "" {
		s.RedisPrefix = defaultRedisPrefix
	}
}

func setRateLimitDefaults(rl *RateLimitConfig) {
	if rl.RequestsPerSecond == 0 {
		rl.RequestsPerSecond = defaultRequestsPerS
	}
	if rl.Burst == 0 {
		rl.Burst = defaultBurst
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := infraconfig.ValidateOneOf("dataset.source", c.Dataset.Source,
		SourceFile, SourceXLSX, SourceHTTP, SourcePostgres); err != nil {
		return err
	}
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := infraconfig.ValidateOneOf("session.store", c.Session.Store, StoreMemory, StoreRedis); err != nil {
		return err
	}
	if c.Session.Store == StoreRedis {
		if err := infraconfig.ValidateRequired("redis.address", c.Redis.Address); err != nil {
			return err
		}
	}
	if err := infraconfig.ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	return infraconfig.ValidateLogFormat(c.Logging.Format)
}

func (c *Config) validateDataset() error {
	switch c.Dataset.Source {
	case SourceHTTP:
		return infraconfig.ValidateRequired("dataset.url", c.Dataset.URL)
	case SourcePostgres:
		return infraconfig.ValidateRequired("dataset.dsn", c.Dataset.DSN)
	default:
		return infraconfig.ValidateRequired("dataset.path", c.Dataset.Path)
	}
}
