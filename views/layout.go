package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Page wraps body in the site chrome: head metadata, header navigation and
// footer.
func Page(site SiteConfig, meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		w.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.raw(`<title>`)
		w.text(meta.Title)
		w.raw(`</title>`)
		if meta.Description != "" {
			w.raw(`<meta name="description" content="`)
			w.text(meta.Description)
			w.raw(`">`)
		}
		if meta.NoIndex {
			w.raw(`<meta name="robots" content="noindex, nofollow">`)
		}
		if meta.URL != "" {
			w.raw(`<link rel="canonical" href="`)
			w.text(meta.URL)
			w.raw(`"><meta property="og:url" content="`)
			w.text(meta.URL)
			w.raw(`">`)
		}
		w.raw(`<meta property="og:site_name" content="`)
		w.text(site.Name)
		w.raw(`"><meta property="og:title" content="`)
		w.text(meta.Title)
		w.raw(`"><meta property="og:type" content="`)
		w.text(ogType(meta))
		w.raw(`">`)
		if meta.Description != "" {
			w.raw(`<meta property="og:description" content="`)
			w.text(meta.Description)
			w.raw(`">`)
		}
		if meta.Image != "" {
			w.raw(`<meta property="og:image" content="`)
			w.text(meta.Image)
			w.raw(`"><meta name="twitter:card" content="summary_large_image"><meta name="twitter:image" content="`)
			w.text(meta.Image)
			w.raw(`">`)
		}
		w.raw(`<link rel="alternate" type="application/rss+xml" title="`)
		w.text(site.Name)
		w.raw(`" href="/feed.xml"><link rel="stylesheet" href="/public/site.css">`)
		for _, ld := range meta.JSONLD {
			w.raw(`<script type="application/ld+json">`)
			w.raw(ld)
			w.raw(`</script>`)
		}
		if site.GAID != "" {
			w.raw(`<script async src="https://www.googletagmanager.com/gtag/js?id=`)
			w.text(site.GAID)
			w.raw(`"></script><script>window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}gtag('js',new Date());gtag('config','`)
			w.text(site.GAID)
			w.raw(`');</script>`)
		}
		w.raw(`</head><body>`)

		w.raw(`<header class="site-header"><a class="brand" href="/">`)
		w.text(site.Name)
		w.raw(`</a><nav>`)
		for _, item := range Nav {
			w.raw(`<a href="`)
			w.text(item.Href)
			w.raw(`">`)
			w.text(item.Label)
			w.raw(`</a>`)
		}
		w.raw(`<a class="button" href="/contact/">Request a Demo</a></nav></header>`)

		w.raw(`<main>`)
		w.render(body)
		w.raw(`</main>`)

		w.raw(`<footer class="site-footer"><p>&copy; `)
		w.number(site.Year)
		w.raw(` `)
		w.text(site.Name)
		w.raw(`. All rights reserved.</p><p><a href="/privacy/">Privacy</a> <a href="/terms/">Terms</a> <a href="/feed.xml">RSS</a></p></footer>`)
		w.raw(`</body></html>`)
		return w.err
	})
}

func ogType(meta PageMeta) string {
	if meta.OGType == "" {
		return "website"
	}
	return meta.OGType
}
