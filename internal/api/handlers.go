package api

import (
	"net/http"
	"strings"

	"github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/Odelf18/career-maps/internal/dataset"
	"github.com/Odelf18/career-maps/internal/domain"
	"github.com/Odelf18/career-maps/internal/facets"
	"github.com/Odelf18/career-maps/internal/service"
	"github.com/gin-gonic/gin"
)

// Handler serves the stateless JSON API.
type Handler struct {
	dir    *service.Directory
	store  *dataset.Store
	logger logger.Logger
}

// NewHandler creates a Handler.
func NewHandler(dir *service.Directory, store *dataset.Store, log logger.Logger) *Handler {
	return &Handler{dir: dir, store: store, logger: log}
}

// ListEmployers handles GET /api/v1/employers?q=&industry=&tags=a,b.
// tags may also be repeated. The result is framed from the initial
// viewport since there is no previous one.
func (h *Handler) ListEmployers(c *gin.Context) {
	state := domain.DefaultFilterState()
	state.SearchQuery = c.Query("q")
	if industry := c.Query("industry"); industry != "" {
		state.SelectedIndustry = industry
	}
	state.ActiveTags = parseTags(c.QueryArray("tags"))

	view, err := h.dir.View(state, h.dir.InitialViewport())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// parseTags splits comma-separated values and drops blanks and exact
// repeats, keeping first-seen order.
func parseTags(values []string) []string {
	tags := []string{}
	seen := make(map[string]struct{})
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

// IndustriesResponse is the body of GET /api/v1/industries.
type IndustriesResponse struct {
	Industries []string        `json:"industries"`
	Options    []facets.Option `json:"options"`
}

// ListIndustries handles GET /api/v1/industries. selected marks an option.
func (h *Handler) ListIndustries(c *gin.Context) {
	industries, err := h.dir.Industries()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	selected := c.DefaultQuery("selected", domain.AllIndustries)
	c.JSON(http.StatusOK, IndustriesResponse{
		Industries: industries,
		Options:    facets.IndustryOptions(industries, selected),
	})
}

// MapSettings handles GET /api/v1/map/settings.
func (h *Handler) MapSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.dir.MapSettings())
}

// ReloadResponse is the body of a successful dataset reload.
type ReloadResponse struct {
	Version   uint64          `json:"version"`
	Employers int             `json:"employers"`
	Source    string          `json:"source"`
	Warnings  []dataset.Issue `json:"warnings"`
}

// ReloadDataset handles POST /api/v1/dataset/reload. A failed reload
// leaves the current dataset in place.
func (h *Handler) ReloadDataset(c *gin.Context) {
	snap, err := h.store.Reload(c.Request.Context())
	if err != nil {
		if dataset.IsValidationError(err) {
			respondError(c, http.StatusUnprocessableEntity, CodeDatasetInvalid, err.Error())
			return
		}
		respondError(c, http.StatusBadGateway, CodeDatasetLoadFailed, err.Error())
		return
	}

	warnings := snap.Warnings
	if warnings == nil {
		warnings = []dataset.Issue{}
	}
	c.JSON(http.StatusOK, ReloadResponse{
		Version:   snap.Version,
		Employers: snap.Len(),
		Source:    snap.Source,
		Warnings:  warnings,
	})
}

// Ready handles GET /ready: 200 once a dataset snapshot is published.
func (h *Handler) Ready(c *gin.Context) {
	snap := h.store.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "source": h.store.Source()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"source":    snap.Source,
		"version":   snap.Version,
		"employers": snap.Len(),
		"loaded_at": snap.LoadedAt,
	})
}
