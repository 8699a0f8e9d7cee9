package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/Odelf18/career-maps/internal/dataset"
	"github.com/Odelf18/career-maps/internal/service"
	"github.com/Odelf18/career-maps/internal/session"
	"github.com/gin-gonic/gin"
)

// Error codes.
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeSessionNotFound   = "SESSION_NOT_FOUND"
	CodeDatasetNotLoaded  = "DATASET_NOT_LOADED"
	CodeDatasetInvalid    = "DATASET_INVALID"
	CodeDatasetLoadFailed = "DATASET_LOAD_FAILED"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInternal          = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

func respondError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     msg,
		Code:      code,
		Timestamp: time.Now().UTC(),
	})
}

// respondServiceError maps service and store errors to responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		respondError(c, http.StatusNotFound, CodeSessionNotFound, "session not found")
	case errors.Is(err, dataset.ErrNotLoaded):
		respondError(c, http.StatusServiceUnavailable, CodeDatasetNotLoaded, "dataset not loaded")
	case errors.Is(err, service.ErrUnknownOperation):
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
	default:
		logger.FromContext(c.Request.Context()).Error("Request failed",
			logger.String("path", c.FullPath()),
			logger.Error(err),
		)
		respondError(c, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}
