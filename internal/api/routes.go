package api

import (
	"github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/Odelf18/career-maps/infrastructure/sse"
	"github.com/Odelf18/career-maps/internal/dataset"
	"github.com/Odelf18/career-maps/internal/service"
	"github.com/Odelf18/career-maps/internal/telemetry"
	"github.com/gin-gonic/gin"
)

// Dependencies are the components the API routes are served from.
// Broker, Metrics and RateLimiter are optional.
type Dependencies struct {
	Directory   *service.Directory
	Sessions    *service.Sessions
	Store       *dataset.Store
	Broker      *sse.Broker
	Metrics     *telemetry.Metrics
	RateLimiter *RateLimiter
	AllowReload bool
	Logger      logger.Logger
}

// SetupRoutes registers the JSON API, readiness, metrics and event routes.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	handler := NewHandler(deps.Directory, deps.Store, deps.Logger)
	sessions := NewSessionHandler(deps.Sessions, deps.Logger)

	router.GET("/ready", handler.Ready)

	v1 := router.Group("/api/v1")
	v1.GET("/employers", handler.ListEmployers)
	v1.GET("/industries", handler.ListIndustries)
	v1.GET("/map/settings", handler.MapSettings)

	if deps.Broker != nil {
		v1.GET("/events", sse.Handler(deps.Broker, deps.Logger, sse.DefaultHeartbeatInterval))
	}

	mutating := v1.Group("")
	if deps.RateLimiter != nil {
		mutating.Use(deps.RateLimiter.Middleware())
	}

	mutating.POST("/sessions", sessions.Create)
	v1.GET("/sessions/:id", sessions.Get)
	mutating.DELETE("/sessions/:id", sessions.Delete)
	mutating.PUT("/sessions/:id/query", sessions.SetQuery)
	mutating.PUT("/sessions/:id/industry", sessions.SetIndustry)
	mutating.POST("/sessions/:id/tags/toggle", sessions.ToggleTag)
	mutating.DELETE("/sessions/:id/tags/:tag", sessions.RemoveTag)
	mutating.POST("/sessions/:id/clear", sessions.Clear)

	if deps.AllowReload {
		mutating.POST("/dataset/reload", handler.ReloadDataset)
	}
}
