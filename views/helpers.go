package views

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/brainbridge/site/content"
)

// writer accumulates the first write error so components can emit markup
// without checking every call.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *writer {
	return &writer{ctx: ctx, w: w}
}

// raw writes trusted markup.
func (w *writer) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// text writes escaped text. It is also safe inside quoted attributes.
func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) number(n int) {
	w.raw(strconv.Itoa(n))
}

func (w *writer) render(c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(w.ctx, w.w)
}

// PathEscape wraps url.PathEscape for use in links.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// CategoryPath returns the listing URL for a category.
func CategoryPath(category string) string {
	return "/blog/category/" + PathEscape(category) + "/"
}

// TagPath returns the listing URL for a tag.
func TagPath(tag string) string {
	return "/blog/tag/" + PathEscape(tag) + "/"
}

// PostPath returns the detail URL for a post.
func PostPath(m content.Meta) string {
	return m.Link() + "/"
}

// FormatDate renders a publish date as "January 2, 2006". Unparseable
// dates are shown as written.
func FormatDate(s string) string {
	t := (content.Meta{PublishedAt: s}).PublishedTime()
	if t.IsZero() {
		return s
	}
	return t.Format("January 2, 2006")
}

// ReadingTimeLabel formats minutes as "5 min read".
func ReadingTimeLabel(minutes int) string {
	return strconv.Itoa(minutes) + " min read"
}
