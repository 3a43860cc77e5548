package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// NotFound is the 404 page body.
func NotFound() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<section class="error-page"><h1>Page not found</h1>`)
		w.raw(`<p>The page you're looking for doesn't exist or has moved.</p>`)
		w.raw(`<p><a href="/">Go home</a> or <a href="/blog/">browse the blog</a>.</p></section>`)
		return w.err
	})
}

// ServerError is the 5xx page body.
func ServerError() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<section class="error-page"><h1>Something went wrong</h1>`)
		w.raw(`<p>We hit an unexpected error. Please try again in a moment.</p></section>`)
		return w.err
	})
}
