package site

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/brainbridge/site/analytics"
	"github.com/brainbridge/site/lead"
	"github.com/brainbridge/site/metrics"
	"github.com/brainbridge/site/views"
)

const (
	contactSession = "contact_session"
	flashKey       = "contact_flash"
	gaCookie       = "_ga"
)

// contactFlash carries the form state across the post/redirect/get cycle.
type contactFlash struct {
	Sent        bool             `json:"sent,omitempty"`
	Values      lead.DemoRequest `json:"values"`
	Errors      lead.FieldErrors `json:"errors,omitempty"`
	SubmitError string           `json:"submitError,omitempty"`
}

// submitDemo runs one demo request through a fresh form and records the
// outcome.
func (a *App) submitDemo(c echo.Context, req lead.DemoRequest) (lead.Result, error) {
	ctx := c.Request().Context()
	page := lead.PageContext{PageURI: BuildURL(a.Config.URL, "contact")}
	if ck, err := c.Cookie(lead.TrackingCookie); err == nil {
		page.TrackingCookie = ck.Value
	}
	var clientID string
	if ck, err := c.Cookie(gaCookie); err == nil {
		clientID = analytics.ClientIDFromCookie(ck.Value)
	}

	form := lead.NewForm(a.Submitter, a.Tracker, a.Logger.Named("lead"))
	form.Set(req)
	res, err := form.Submit(ctx, page, clientID)

	var fe lead.FieldErrors
	switch {
	case errors.As(err, &fe):
		a.Metrics.LeadSubmitted(ctx, metrics.OutcomeInvalid)
	case err != nil:
		return res, err
	case res.Success:
		a.Metrics.LeadSubmitted(ctx, metrics.OutcomeSuccess)
	default:
		a.Metrics.LeadSubmitted(ctx, metrics.OutcomeFailed)
	}
	return res, err
}

func (a *App) handleContact(c echo.Context) error {
	flash, err := a.popFlash(c)
	if err != nil {
		a.Logger.Warnw("contact flash unreadable", "error", err)
	}
	if flash.Sent {
		meta := a.PageMeta("Thank You", "Your demo request has been received.", "contact")
		meta.NoIndex = true
		return a.renderPage(c, http.StatusOK, meta, views.ContactThanks())
	}
	meta := a.PageMeta("Request a Demo", "See how BrainBridge helps schools prevent chronic absenteeism. Request a personalized demo.", "contact")
	return a.renderPage(c, http.StatusOK, meta, views.ContactForm(views.ContactFormData{
		Values:      flash.Values,
		Errors:      flash.Errors,
		SubmitError: flash.SubmitError,
		CSRFToken:   CsrfToken(c),
	}))
}

// allowSubmit charges the caller's quota only for requests that will reach
// the submitter. Invalid input is answered with field errors for free.
func (a *App) allowSubmit(c echo.Context, req lead.DemoRequest) bool {
	if len(lead.Validate(req)) > 0 {
		return true
	}
	return a.submitLimiter.Allow(c.RealIP())
}

func (a *App) handleContactSubmit(c echo.Context) error {
	var req lead.DemoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	flash := contactFlash{Values: req}
	if !a.allowSubmit(c, req) {
		flash.SubmitError = MsgRateLimited
	} else {
		res, err := a.submitDemo(c, req)
		var fe lead.FieldErrors
		switch {
		case errors.As(err, &fe):
			flash.Errors = fe
		case err != nil:
			return err
		case res.Success:
			flash = contactFlash{Sent: true}
		default:
			flash.SubmitError = res.Error
		}
	}

	if err := a.setFlash(c, flash); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/contact/")
}

func (a *App) setFlash(c echo.Context, f contactFlash) error {
	sess, err := session.Get(contactSession, c)
	if err != nil {
		return err
	}
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	sess.Values[flashKey] = string(b)
	return sess.Save(c.Request(), c.Response())
}

// popFlash returns and clears the stored form state. A missing flash is
// the zero value.
func (a *App) popFlash(c echo.Context) (contactFlash, error) {
	var f contactFlash
	sess, err := session.Get(contactSession, c)
	if err != nil {
		return f, err
	}
	raw, ok := sess.Values[flashKey].(string)
	if !ok {
		return f, nil
	}
	delete(sess.Values, flashKey)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return f, err
	}
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return contactFlash{}, err
	}
	return f, nil
}
