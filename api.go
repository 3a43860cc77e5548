package site

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/brainbridge/site/content"
	"github.com/brainbridge/site/lead"
)

// DemoResponse is the JSON reply to POST /api/demo-request.
type DemoResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	Errors  lead.FieldErrors `json:"errors,omitempty"`
}

// MsgRateLimited is returned when an IP submits too often.
const MsgRateLimited = "Too many requests. Please try again later."

func queryLimit(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// handleAPIList serves post metadata. Filters are exclusive and checked in
// the order featured, category, tag; limit applies to whichever ran.
func (a *App) handleAPIList(c echo.Context) error {
	limit := queryLimit(c)
	var (
		posts []content.Meta
		err   error
	)
	switch featured, _ := strconv.ParseBool(c.QueryParam("featured")); {
	case featured:
		a.Metrics.ContentQuery(c.Request().Context(), "featured")
		posts, err = a.Content.ListFeatured(limit)
	case c.QueryParam("category") != "":
		a.Metrics.ContentQuery(c.Request().Context(), "category")
		posts, err = a.Content.ListByCategory(c.QueryParam("category"))
	case c.QueryParam("tag") != "":
		a.Metrics.ContentQuery(c.Request().Context(), "tag")
		posts, err = a.Content.ListByTag(c.QueryParam("tag"))
	default:
		a.Metrics.ContentQuery(c.Request().Context(), "list")
		posts, err = a.Content.ListAll()
	}
	if err != nil {
		return err
	}
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return c.JSON(http.StatusOK, posts)
}

func (a *App) handleAPIGet(c echo.Context) error {
	a.Metrics.ContentQuery(c.Request().Context(), "get")
	doc, err := a.Content.Get(c.Param("slug"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

func (a *App) handleAPIRelated(c echo.Context) error {
	a.Metrics.ContentQuery(c.Request().Context(), "related")
	limit := queryLimit(c)
	if limit == 0 {
		limit = content.DefaultRelatedLimit
	}
	related, err := a.Content.ListRelated(c.Param("slug"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, related)
}

func (a *App) handleAPICategories(c echo.Context) error {
	a.Metrics.ContentQuery(c.Request().Context(), "categories")
	categories, err := a.Content.ListCategories()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

func (a *App) handleAPITags(c echo.Context) error {
	a.Metrics.ContentQuery(c.Request().Context(), "tags")
	tags, err := a.Content.ListTags()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

func (a *App) handleAPIDemoRequest(c echo.Context) error {
	var req lead.DemoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, DemoResponse{Error: "Invalid request body."})
	}
	if !a.allowSubmit(c, req) {
		return c.JSON(http.StatusTooManyRequests, DemoResponse{Error: MsgRateLimited})
	}

	res, err := a.submitDemo(c, req)
	var fe lead.FieldErrors
	switch {
	case errors.As(err, &fe):
		return c.JSON(http.StatusUnprocessableEntity, DemoResponse{Errors: fe})
	case err != nil:
		return err
	case !res.Success:
		return c.JSON(http.StatusBadGateway, DemoResponse{Error: res.Error})
	}
	return c.JSON(http.StatusOK, DemoResponse{Success: true})
}
