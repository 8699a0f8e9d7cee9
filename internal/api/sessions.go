package api

import (
	"net/http"

	"github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/Odelf18/career-maps/internal/filter"
	"github.com/Odelf18/career-maps/internal/service"
	"github.com/Odelf18/career-maps/internal/session"
	"github.com/gin-gonic/gin"
)

// SessionResponse is a session's state together with its derived view.
type SessionResponse struct {
	ID   string                 `json:"id"`
	View *service.DirectoryView `json:"view"`
}

type queryRequest struct {
	Query *string `json:"query" binding:"required"`
}

type industryRequest struct {
	Industry string `json:"industry" binding:"required"`
}

type tagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

// SessionHandler serves the session-scoped filter API.
type SessionHandler struct {
	sessions *service.Sessions
	logger   logger.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessions *service.Sessions, log logger.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: log}
}

// Create handles POST /api/v1/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	sess, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.respondView(c, http.StatusCreated, sess)
}

// Get handles GET /api/v1/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	sess, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.respondView(c, http.StatusOK, sess)
}

// Delete handles DELETE /api/v1/sessions/:id.
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetQuery handles PUT /api/v1/sessions/:id/query. An empty query is
// allowed and clears the search.
func (h *SessionHandler) SetQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}
	h.apply(c, filter.OpSetSearchQuery, *req.Query)
}

// SetIndustry handles PUT /api/v1/sessions/:id/industry.
func (h *SessionHandler) SetIndustry(c *gin.Context) {
	var req industryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}
	h.apply(c, filter.OpSetIndustry, req.Industry)
}

// ToggleTag handles POST /api/v1/sessions/:id/tags/toggle.
func (h *SessionHandler) ToggleTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}
	h.apply(c, filter.OpToggleTag, req.Tag)
}

// RemoveTag handles DELETE /api/v1/sessions/:id/tags/:tag.
func (h *SessionHandler) RemoveTag(c *gin.Context) {
	h.apply(c, filter.OpRemoveTag, c.Param("tag"))
}

// Clear handles POST /api/v1/sessions/:id/clear.
func (h *SessionHandler) Clear(c *gin.Context) {
	h.apply(c, filter.OpClearAll, "")
}

func (h *SessionHandler) apply(c *gin.Context, op filter.Operation, arg string) {
	sess, view, err := h.sessions.Apply(c.Request.Context(), c.Param("id"), op, arg)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{ID: sess.ID, View: view})
}

func (h *SessionHandler) respondView(c *gin.Context, status int, sess *session.Session) {
	view, err := h.sessions.View(c.Request.Context(), sess)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(status, SessionResponse{ID: sess.ID, View: view})
}
