// Package site is the BrainBridge marketing site server. It serves the blog
// from a directory of front-matter documents, accepts demo requests and
// forwards them to HubSpot, and emits the sitemap, RSS feed and SEO
// metadata.
package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/brainbridge/site/analytics"
	"github.com/brainbridge/site/content"
	"github.com/brainbridge/site/lead"
	"github.com/brainbridge/site/metrics"
	"github.com/brainbridge/site/views"
)

// App wires together the content service, lead pipeline, handlers and
// middleware.
type App struct {
	Config    SiteConfig
	Echo      *echo.Echo
	Content   *content.Service
	Submitter lead.Submitter
	Tracker   analytics.Tracker
	Logger    *zap.SugaredLogger
	Metrics   *metrics.Recorder
	Clock     func() time.Time

	repo          content.Repository
	submitLimiter *SubmitLimiter
	customRoutes  []func(*App)
	staticDir     string
}

// New builds the App with its middleware and routes registered.
func New(cfg SiteConfig, opts ...Option) (*App, error) {
	cfg.setDefaults()
	if cfg.SessionSecret == "" {
		return nil, errors.New("site: SessionSecret is required")
	}

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Clock:     time.Now,
		staticDir: "public",
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.Logger == nil {
		a.Logger = zap.NewNop().Sugar()
	}
	if a.repo == nil {
		a.repo = content.NewFileRepository(cfg.ContentDir, a.Logger.Named("content"))
	}
	a.Content = content.NewService(a.repo)
	if a.Submitter == nil {
		a.Submitter = lead.NewSubmitter(cfg.HubSpot, a.Logger.Named("lead"))
	}
	if a.Tracker == nil {
		a.Tracker = analytics.New(cfg.Analytics, nil, a.Logger.Named("analytics"))
	}
	a.submitLimiter = NewSubmitLimiter(cfg.SubmitLimit, cfg.SubmitWindow)

	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a, nil
}

// Start listens on Config.Addr until the server is shut down.
func (a *App) Start() error {
	a.Logger.Infow("site listening", "addr", a.Config.Addr, "url", a.Config.URL)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("site: serve: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close releases the limiter and the content repository.
func (a *App) Close() error {
	a.submitLimiter.Stop()
	if c, ok := a.repo.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", handleHealth)

	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlogIndex)
	e.GET("/blog/category/:category/", a.handleCategory)
	e.GET("/blog/tag/:tag/", a.handleTag)
	e.GET("/blog/:slug/", a.handlePost)

	a.setupMarketingRoutes()

	e.GET("/contact/", a.handleContact)
	e.POST("/contact/", a.handleContactSubmit)

	api := e.Group("/api")
	api.GET("/blog", a.handleAPIList)
	api.GET("/blog/:slug", a.handleAPIGet)
	api.GET("/blog/:slug/related", a.handleAPIRelated)
	api.GET("/categories", a.handleAPICategories)
	api.GET("/tags", a.handleAPITags)
	api.POST("/demo-request", a.handleAPIDemoRequest)
}

// site returns the values every page template needs.
func (a *App) site() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Year:        a.Clock().Year(),
		GAID:        a.Config.Analytics.MeasurementID,
	}
}
