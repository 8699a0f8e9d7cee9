package bootstrap

import (
	"context"
	"time"

	infragin "github.com/Odelf18/career-maps/infrastructure/gin"
	infralogger "github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/Odelf18/career-maps/infrastructure/sse"
	"github.com/Odelf18/career-maps/internal/api"
	"github.com/Odelf18/career-maps/internal/config"
	"github.com/Odelf18/career-maps/internal/domain"
	"github.com/Odelf18/career-maps/internal/service"
	"github.com/Odelf18/career-maps/internal/telemetry"
	"github.com/Odelf18/career-maps/internal/viewsync"
	"github.com/Odelf18/career-maps/internal/web"
	"github.com/gin-gonic/gin"
)

// gaugeInterval is how often point-in-time gauges are sampled.
const gaugeInterval = 15 * time.Second

const eventsPath = "/api/v1/events"

// ServerDeps are the components built in earlier phases.
type ServerDeps struct {
	Dataset  *Dataset
	Sessions *Sessions
	Metrics  *telemetry.Metrics
	Broker   *sse.Broker
}

// SetupHTTPServer creates and configures the HTTP server. Background
// upkeep (limiter pruning, gauge sampling) stops with ctx.
func SetupHTTPServer(ctx context.Context, cfg *config.Config, deps ServerDeps, log infralogger.Logger) *infragin.Server {
	dir := service.NewDirectory(deps.Dataset.Store, viewsync.NewMapInit(MapSettings(cfg)), service.Options{
		MemoSize: cfg.Service.MemoSize,
		Metrics:  deps.Metrics,
		Logger:   log,
	})
	sessions := service.NewSessions(dir, deps.Sessions.Store, deps.Metrics, log)

	var limiter *api.RateLimiter
	var mutating []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		limiter = api.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		mutating = append(mutating, limiter.Middleware())
		go limiter.Run(ctx, time.Minute)
	}

	go sampleGauges(ctx, deps)

	pages := web.NewHandler(web.Options{
		Sessions:     sessions,
		Directory:    dir,
		CookieName:   cfg.Session.CookieName,
		CookieSecure: cfg.Session.CookieSecure,
		CookieMaxAge: cfg.Session.TTL,
		EventsPath:   eventsPath,
		Logger:       log,
	})

	return api.NewServer(cfg, api.Dependencies{
		Directory:   dir,
		Sessions:    sessions,
		Store:       deps.Dataset.Store,
		Broker:      deps.Broker,
		Metrics:     deps.Metrics,
		RateLimiter: limiter,
		AllowReload: cfg.Dataset.AllowReload,
		Logger:      log,
	}, api.ServerOptions{
		RedisPing: deps.Sessions.RedisPing,
		Routes: []func(*gin.Engine){
			func(router *gin.Engine) { pages.RegisterRoutes(router, mutating...) },
		},
	})
}

// MapSettings turns the map config section into widget overrides. Zero
// values fall back to the widget defaults.
func MapSettings(cfg *config.Config) viewsync.MapSettings {
	settings := viewsync.MapSettings{
		TileURL:     cfg.Map.TileURL,
		Attribution: cfg.Map.Attribution,
		Zoom:        cfg.Map.Zoom,
	}
	if cfg.Map.CenterLat != 0 || cfg.Map.CenterLng != 0 {
		settings.Center = domain.LatLng{Lat: cfg.Map.CenterLat, Lng: cfg.Map.CenterLng}
	}
	return settings
}

func sampleGauges(ctx context.Context, deps ServerDeps) {
	ticker := time.NewTicker(gaugeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deps.Metrics.EventClients.Set(float64(deps.Broker.ClientCount()))
			if n, err := deps.Sessions.Store.Count(ctx); err == nil {
				deps.Metrics.SessionsActive.Set(float64(n))
			}
		}
	}
}
