package site

import (
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/brainbridge/site/views"
)

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// renderPage wraps body in the site layout.
func (a *App) renderPage(c echo.Context, code int, meta views.PageMeta, body templ.Component) error {
	return RenderStatus(c, code, views.Page(a.site(), meta, body))
}
