package site

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brainbridge/site/analytics"
	"github.com/brainbridge/site/content"
	"github.com/brainbridge/site/lead"
	"github.com/brainbridge/site/metrics"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string // Site name (default "BrainBridge")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	OGImage     string // Default og:image path (default "/og-image.png")

	Addr       string // Listen address (default ":3000")
	ContentDir string // Blog corpus directory (default "content/blog")

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	HubSpot   lead.Config      // Demo request CRM; empty ids select local mode
	Analytics analytics.Config // GA4 Measurement Protocol; empty disables tracking

	SubmitLimit  int           // Demo requests per IP per window (default 5)
	SubmitWindow time.Duration // Rate limit window (default 10min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "BrainBridge"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	if c.Description == "" {
		c.Description = "AI-powered attendance intelligence for schools."
	}
	if c.OGImage == "" {
		c.OGImage = "/og-image.png"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/blog"
	}
	if c.SubmitLimit <= 0 {
		c.SubmitLimit = 5
	}
	if c.SubmitWindow <= 0 {
		c.SubmitWindow = 10 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithClock overrides the time source used for sitemap dates and the footer.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.Clock = now
	}
}

// WithRepository replaces the filesystem repository built from ContentDir.
func WithRepository(repo content.Repository) Option {
	return func(a *App) {
		a.repo = repo
	}
}

// WithSubmitter replaces the submitter chosen from the HubSpot config.
func WithSubmitter(s lead.Submitter) Option {
	return func(a *App) {
		a.Submitter = s
	}
}

// WithTracker replaces the tracker chosen from the analytics config.
func WithTracker(t analytics.Tracker) Option {
	return func(a *App) {
		a.Tracker = t
	}
}

// WithMetrics enables request, lead and content counters.
func WithMetrics(m *metrics.Recorder) Option {
	return func(a *App) {
		a.Metrics = m
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory served under /public (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
