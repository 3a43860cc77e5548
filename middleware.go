package site

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline' https://www.googletagmanager.com; " +
	"style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; " +
	"connect-src 'self' https://www.google-analytics.com https://*.google-analytics.com"

func isStatic(path string) bool { return strings.HasPrefix(path, "/public/") }

func isAPI(path string) bool { return strings.HasPrefix(path, "/api/") }

// isArtifact reports whether path is a generated machine-readable file.
func isArtifact(path string) bool {
	switch path {
	case "/sitemap.xml", "/feed.xml", "/robots.txt":
		return true
	}
	return false
}

// isPrivate reports whether responses for path carry per-visitor state.
func isPrivate(path string) bool {
	return strings.HasPrefix(path, "/contact") || path == "/api/demo-request" || path == "/healthz"
}

func (a *App) setupMiddleware() {
	e := a.Echo
	e.HTTPErrorHandler = a.httpErrorHandler
	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.Pre(middleware.NonWWWRedirect())

	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogMethod:     true,
			LogURI:        true,
			LogStatus:     true,
			LogLatency:    true,
			LogRequestID:  true,
			LogRoutePath:  true,
			LogValuesFunc: a.logRequest,
		}),
		middleware.Recover(),
		middleware.BodyLimit("64K"),
		middleware.GzipWithConfig(middleware.GzipConfig{
			Level:   5,
			Skipper: func(c echo.Context) bool { return isStatic(c.Request().URL.Path) },
		}),
		middleware.SecureWithConfig(middleware.SecureConfig{
			XSSProtection:         "1; mode=block",
			ContentTypeNosniff:    "nosniff",
			XFrameOptions:         "DENY",
			ReferrerPolicy:        "strict-origin-when-cross-origin",
			ContentSecurityPolicy: contentSecurityPolicy,
			HSTSMaxAge:            31536000,
		}),
		session.Middleware(a.newSessionStore()),
		middleware.CSRFWithConfig(middleware.CSRFConfig{
			TokenLookup:    "header:X-CSRF-Token,form:_csrf",
			CookieName:     "_csrf",
			CookiePath:     "/",
			CookieSameSite: http.SameSiteLaxMode,
			CookieSecure:   a.Config.CookieSecure,
			Skipper:        func(c echo.Context) bool { return isAPI(c.Request().URL.Path) },
			ErrorHandler: func(err error, c echo.Context) error {
				return c.String(http.StatusForbidden, "Forbidden")
			},
		}),
		middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
			RedirectCode: http.StatusMovedPermanently,
			Skipper: func(c echo.Context) bool {
				p := c.Request().URL.Path
				return isStatic(p) || isAPI(p) || isArtifact(p) || p == "/healthz" || p == "/public"
			},
		}),
		cacheControl,
	)
}

func (a *App) logRequest(c echo.Context, v middleware.RequestLoggerValues) error {
	a.Logger.Infow("request",
		"method", v.Method,
		"uri", v.URI,
		"status", v.Status,
		"latency", v.Latency,
		"request_id", v.RequestID,
	)
	a.Metrics.Request(c.Request().Context(), v.RoutePath, v.Status, v.Latency)
	return nil
}

func cacheControl(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := c.Request().URL.Path
		value := "public, max-age=3600"
		switch {
		case isStatic(p):
			value = "public, max-age=31536000, immutable"
		case isArtifact(p):
			value = "public, max-age=86400"
		case isPrivate(p):
			value = "no-store"
		}
		c.Response().Header().Set("Cache-Control", value)
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   60 * 60,
		HttpOnly: true,
		Secure:   a.Config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// CsrfToken returns the token the CSRF middleware stored for this request.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}
