// Package web serves the portfolio over HTTP and exports it as static files.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hybridzdynamics/portfolio/internal/analytics"
	"github.com/hybridzdynamics/portfolio/internal/contact"
	"github.com/hybridzdynamics/portfolio/internal/content"
)

// Options wires the router's collaborators. Analytics and Admin are optional.
type Options struct {
	Site      *content.Site
	Sender    contact.Sender
	Analytics *analytics.Store
	Logger    *slog.Logger
	ImagesDir string
	BaseURL   string
	Admin     AdminOptions
}

type handlers struct {
	site   *content.Site
	sender contact.Sender
	stats  *analytics.Store
	log    *slog.Logger
	base   string
	now    func() time.Time
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(opts Options) (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	h := &handlers{
		site:   opts.Site,
		sender: opts.Sender,
		stats:  opts.Analytics,
		log:    opts.Logger,
		base:   opts.BaseURL,
		now:    time.Now,
	}

	r := gin.New()
	r.Use(requestID(), requestLogger(opts.Logger), gin.Recovery())
	if opts.Analytics != nil {
		r.Use(opts.Analytics.Middleware(opts.Logger))
	}
	r.SetHTMLTemplate(tmpl)

	r.StaticFS("/static", http.FS(StaticFS()))
	if opts.ImagesDir != "" {
		r.Static("/images", opts.ImagesDir)
	}

	r.GET("/", h.home)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/contact", h.submitContact)
	r.POST("/api/contact", h.apiContact)

	if opts.Admin.Enabled() {
		mountAdmin(r, h, opts.Admin)
	}

	return r, nil
}

func (h *handlers) home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.page(ContactView{Action: "/contact", HTMX: true}))
}

func (h *handlers) page(form ContactView) Page {
	page := NewPage(h.site, form, h.now())
	page.BaseURL = h.base
	return page
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
