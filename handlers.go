package site

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/brainbridge/site/content"
	"github.com/brainbridge/site/views"
)

const blogDescription = "Insights on chronic absenteeism, student engagement and family outreach from the BrainBridge team."

func (a *App) blogIndexData() (views.BlogIndexData, error) {
	var (
		data views.BlogIndexData
		err  error
	)
	if data.Posts, err = a.Content.ListAll(); err != nil {
		return data, err
	}
	if data.Featured, err = a.Content.ListFeatured(content.DefaultFeaturedLimit); err != nil {
		return data, err
	}
	if data.Categories, err = a.Content.ListCategories(); err != nil {
		return data, err
	}
	if data.Tags, err = a.Content.ListTags(); err != nil {
		return data, err
	}
	return data, nil
}

func (a *App) handleHome(c echo.Context) error {
	a.Metrics.ContentQuery(c.Request().Context(), "index")
	data, err := a.blogIndexData()
	if err != nil {
		return err
	}
	meta := a.PageMeta(a.Config.Name+" | AI-Powered Attendance Intelligence for Schools", a.Config.Description)
	meta.JSONLD = []string{OrganizationJSONLD(a.Config), WebsiteJSONLD(a.Config)}
	return a.renderPage(c, http.StatusOK, meta, views.BlogIndex(data))
}

func (a *App) handleBlogIndex(c echo.Context) error {
	a.Metrics.ContentQuery(c.Request().Context(), "index")
	data, err := a.blogIndexData()
	if err != nil {
		return err
	}
	meta := a.PageMeta("Blog", blogDescription, "blog")
	return a.renderPage(c, http.StatusOK, meta, views.BlogIndex(data))
}

func (a *App) handleCategory(c echo.Context) error {
	category := c.Param("category")
	a.Metrics.ContentQuery(c.Request().Context(), "category")
	posts, err := a.Content.ListByCategory(category)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return echo.ErrNotFound
	}
	// listing pages show the category as written in the posts
	heading := posts[0].Category
	meta := a.PageMeta(heading, "Posts in "+heading+".", "blog", "category", category)
	return a.renderPage(c, http.StatusOK, meta, views.BlogListing(heading, posts))
}

func (a *App) handleTag(c echo.Context) error {
	tag := c.Param("tag")
	a.Metrics.ContentQuery(c.Request().Context(), "tag")
	posts, err := a.Content.ListByTag(tag)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return echo.ErrNotFound
	}
	heading := "#" + tag
	meta := a.PageMeta(heading, "Posts tagged "+tag+".", "blog", "tag", tag)
	return a.renderPage(c, http.StatusOK, meta, views.BlogListing(heading, posts))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	a.Metrics.ContentQuery(c.Request().Context(), "get")
	doc, err := a.Content.Get(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	related, err := a.Content.ListRelated(slug, content.DefaultRelatedLimit)
	if err != nil {
		return err
	}
	return a.renderPage(c, http.StatusOK, a.PostMeta(doc), views.BlogPost(doc, related))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Content.ListAll()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Content.ListAll()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\nDisallow: /api/\n\n")
	b.WriteString("Sitemap: " + a.Config.URL + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Errorw("server error", "error", err, "uri", c.Request().RequestURI)
	}
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		_ = c.JSON(code, map[string]string{"error": strings.ToLower(http.StatusText(code))})
		return
	}
	switch {
	case code == http.StatusNotFound:
		meta := a.PageMeta("Page not found", "", "404")
		meta.NoIndex = true
		_ = a.renderPage(c, code, meta, views.NotFound())
	case code >= 500:
		meta := a.PageMeta("Something went wrong", "", "500")
		meta.NoIndex = true
		_ = a.renderPage(c, code, meta, views.ServerError())
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}
