package api

import (
	"fmt"
	"time"

	infragin "github.com/Odelf18/career-maps/infrastructure/gin"
	"github.com/Odelf18/career-maps/internal/config"
	"github.com/gin-gonic/gin"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// ServerOptions carries what NewServer needs beyond the API dependencies.
type ServerOptions struct {
	// RedisPing, when set, adds a redis check to /health.
	RedisPing func() error
	// Routes registers extra routes such as the HTML pages.
	Routes []func(*gin.Engine)
}

// NewServer creates the HTTP server.
func NewServer(cfg *config.Config, deps Dependencies, opts ServerOptions) *infragin.Server {
	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(deps.Logger).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithTimeouts(defaultReadTimeout, defaultWriteTimeout, defaultIdleTimeout).
		WithCORS(infragin.CORSConfig{
			Enabled:        cfg.CORS.Enabled,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		}).
		WithHealthCheck("dataset", datasetChecker(deps)).
		WithRoutes(func(router *gin.Engine) {
			SetupRoutes(router, deps)
			for _, register := range opts.Routes {
				register(router)
			}
		})

	if deps.Broker != nil {
		// Closing the broker ends open event streams so Shutdown can drain.
		builder = builder.WithShutdownHook(deps.Broker.Close)
	}
	if opts.RedisPing != nil {
		builder = builder.WithRedisHealthCheck(opts.RedisPing)
	}
	return builder.Build()
}

// datasetChecker reports the dataset as unhealthy until the first snapshot
// is published.
func datasetChecker(deps Dependencies) infragin.HealthChecker {
	return func() infragin.CheckResult {
		snap := deps.Store.Current()
		if snap == nil {
			return infragin.CheckResult{Status: infragin.HealthStatusUnhealthy, Message: "dataset not loaded"}
		}
		return infragin.CheckResult{
			Status:  infragin.HealthStatusHealthy,
			Message: fmt.Sprintf("version %d, %d employers", snap.Version, snap.Len()),
		}
	}
}
