package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Section is one titled block of a marketing page.
type Section struct {
	Title string
	Body  string
}

// MarketingPageData is the copy of a static marketing page.
type MarketingPageData struct {
	Heading  string
	Intro    string
	Sections []Section
	// CTA adds the demo request call to action below the sections.
	CTA bool
}

// MarketingPage renders a static page: a hero followed by its sections.
func MarketingPage(data MarketingPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<section class="page-hero"><h1>`)
		w.text(data.Heading)
		w.raw(`</h1>`)
		if data.Intro != "" {
			w.raw(`<p class="lead">`)
			w.text(data.Intro)
			w.raw(`</p>`)
		}
		w.raw(`</section>`)
		for _, s := range data.Sections {
			w.raw(`<section class="page-section"><h2>`)
			w.text(s.Title)
			w.raw(`</h2><p>`)
			w.text(s.Body)
			w.raw(`</p></section>`)
		}
		if data.CTA {
			w.raw(`<section class="cta"><h2>See BrainBridge in action</h2>`)
			w.raw(`<a class="button" href="/contact/">Request a Demo</a></section>`)
		}
		return w.err
	})
}
