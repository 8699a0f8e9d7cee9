// Package web serves the server-rendered directory page and its form
// actions. Filter changes are POSTed, applied to the visitor's session and
// answered with a redirect back to the page.
package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/Odelf18/career-maps/internal/dataset"
	"github.com/Odelf18/career-maps/internal/filter"
	"github.com/Odelf18/career-maps/internal/service"
	"github.com/Odelf18/career-maps/internal/session"
	"github.com/gin-gonic/gin"
)

// DefaultCookieName is the session cookie used when none is configured.
const DefaultCookieName = "cm_session"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplate = template.Must(template.New("index.html").ParseFS(templateFS, "templates/index.html"))

// Options configures the page handler.
type Options struct {
	Sessions     *service.Sessions
	Directory    *service.Directory
	CookieName   string
	CookieSecure bool
	CookieMaxAge time.Duration
	// EventsPath, when set, lets the page reload itself after a dataset
	// reload.
	EventsPath string
	Logger     logger.Logger
}

// Handler serves the HTML page and form actions.
type Handler struct {
	sessions *service.Sessions
	dir      *service.Directory
	cookie   cookieSettings
	events   string
	log      logger.Logger
}

type cookieSettings struct {
	name   string
	secure bool
	maxAge int
}

// NewHandler creates a Handler.
func NewHandler(opts Options) *Handler {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	return &Handler{
		sessions: opts.Sessions,
		dir:      opts.Directory,
		cookie: cookieSettings{
			name:   opts.CookieName,
			secure: opts.CookieSecure,
			maxAge: int(opts.CookieMaxAge / time.Second),
		},
		events: opts.EventsPath,
		log:    opts.Logger,
	}
}

// RegisterRoutes adds the page, its form actions and static assets.
// mutating middleware, such as a rate limiter, wraps the form actions.
func (h *Handler) RegisterRoutes(router *gin.Engine, mutating ...gin.HandlerFunc) {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	router.StaticFS("/static", http.FS(static))

	router.GET("/", h.Index)

	actions := router.Group("/", mutating...)
	actions.POST("/search", h.action(filter.OpSetSearchQuery, "q"))
	actions.POST("/industry", h.action(filter.OpSetIndustry, "industry"))
	actions.POST("/tags/toggle", h.action(filter.OpToggleTag, "tag"))
	actions.POST("/tags/remove", h.action(filter.OpRemoveTag, "tag"))
	actions.POST("/clear", h.action(filter.OpClearAll, ""))
}

// Index renders the directory for the visitor's session.
func (h *Handler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	sess, err := h.session(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	view, err := h.sessions.View(ctx, sess)
	if err != nil {
		h.fail(c, err)
		return
	}

	data := newPageData(view, h.dir.MapSettings(), h.events)
	var buf bytes.Buffer
	if err = pageTemplate.Execute(&buf, data); err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// action applies op with the named form field and redirects to the page.
// The industry field falls back to "all" when it is missing.
func (h *Handler) action(op filter.Operation, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := h.session(c)
		if err != nil {
			h.fail(c, err)
			return
		}

		arg := ""
		if field != "" {
			arg = c.PostForm(field)
		}
		if op == filter.OpSetIndustry && arg == "" {
			c.Redirect(http.StatusSeeOther, "/")
			return
		}

		if _, _, err = h.sessions.Apply(c.Request.Context(), sess.ID, op, arg); err != nil {
			h.fail(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// session resumes the visitor's session, starting one when the cookie is
// missing or stale, and refreshes the cookie.
func (h *Handler) session(c *gin.Context) (*session.Session, error) {
	id, _ := c.Cookie(h.cookie.name)

	sess, created, err := h.sessions.Resume(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if created {
		h.log.Debug("Started session", logger.Session(sess.ID))
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.name, sess.ID, h.cookie.maxAge, "/", "", h.cookie.secure, true)
	return sess, nil
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, dataset.ErrNotLoaded) {
		c.Header("Retry-After", "5")
		c.String(http.StatusServiceUnavailable, "The employer directory is loading. Try again in a moment.")
		return
	}
	h.log.Error("Page request failed", logger.String("path", c.Request.URL.Path), logger.Error(err))
	c.String(http.StatusInternalServerError, "Something went wrong.")
}
