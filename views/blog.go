package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/brainbridge/site/content"
	"github.com/brainbridge/site/markdown"
)

// BlogIndexData is everything the blog index shows.
type BlogIndexData struct {
	Posts      []content.Meta
	Featured   []content.Meta
	Categories []string
	Tags       []string
}

// BlogIndex renders the blog landing page.
func BlogIndex(data BlogIndexData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<section class="blog-hero"><h1>BrainBridge Blog</h1>`)
		w.raw(`<p>Insights on chronic absenteeism, student engagement and family outreach.</p></section>`)

		if len(data.Featured) > 0 {
			w.raw(`<section class="featured"><h2>Featured</h2><div class="post-grid">`)
			for _, p := range data.Featured {
				postCard(w, p)
			}
			w.raw(`</div></section>`)
		}

		taxonomy(w, data.Categories, data.Tags)

		w.raw(`<section class="posts"><h2>All posts</h2>`)
		postGrid(w, data.Posts)
		w.raw(`</section>`)
		return w.err
	})
}

// BlogListing renders a filtered list of posts under heading.
func BlogListing(heading string, posts []content.Meta) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<section class="posts"><p><a href="/blog/">&larr; All posts</a></p><h1>`)
		w.text(heading)
		w.raw(`</h1>`)
		postGrid(w, posts)
		w.raw(`</section>`)
		return w.err
	})
}

// BlogPost renders one post with its related posts.
func BlogPost(doc content.Document, related []content.Meta) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<article class="post"><header><p class="post-category"><a href="`)
		w.text(CategoryPath(doc.Category))
		w.raw(`">`)
		w.text(doc.Category)
		w.raw(`</a></p><h1>`)
		w.text(doc.Title)
		w.raw(`</h1>`)
		if doc.Description != "" {
			w.raw(`<p class="post-description">`)
			w.text(doc.Description)
			w.raw(`</p>`)
		}
		w.raw(`<p class="post-meta">By `)
		w.text(doc.Author)
		if doc.PublishedAt != "" {
			w.raw(` &middot; <time datetime="`)
			w.text(doc.PublishedAt)
			w.raw(`">`)
			w.text(FormatDate(doc.PublishedAt))
			w.raw(`</time>`)
		}
		w.raw(` &middot; `)
		w.text(ReadingTimeLabel(doc.ReadingTime))
		w.raw(`</p>`)
		if doc.Image != "" {
			w.raw(`<img class="post-image" src="`)
			w.text(doc.Image)
			w.raw(`" alt="`)
			w.text(doc.Title)
			w.raw(`">`)
		}
		w.raw(`</header><div class="prose">`)
		w.render(markdown.Markdown(doc.Body))
		w.raw(`</div>`)
		if len(doc.Tags) > 0 {
			w.raw(`<footer class="post-tags">`)
			tagPills(w, doc.Tags)
			w.raw(`</footer>`)
		}
		w.raw(`</article>`)

		if len(related) > 0 {
			w.raw(`<aside class="related"><h2>Related posts</h2><div class="post-grid">`)
			for _, p := range related {
				postCard(w, p)
			}
			w.raw(`</div></aside>`)
		}
		w.raw(`<section class="cta"><h2>See BrainBridge in action</h2><a class="button" href="/contact/">Request a Demo</a></section>`)
		return w.err
	})
}

func postGrid(w *writer, posts []content.Meta) {
	if len(posts) == 0 {
		w.raw(`<p class="empty">No posts yet.</p>`)
		return
	}
	w.raw(`<div class="post-grid">`)
	for _, p := range posts {
		postCard(w, p)
	}
	w.raw(`</div>`)
}

func postCard(w *writer, p content.Meta) {
	w.raw(`<article class="post-card"><a href="`)
	w.text(PostPath(p))
	w.raw(`"><img src="`)
	w.text(p.Image)
	w.raw(`" alt="" loading="lazy"><p class="post-category">`)
	w.text(p.Category)
	w.raw(`</p><h3>`)
	w.text(p.Title)
	w.raw(`</h3>`)
	if p.Description != "" {
		w.raw(`<p>`)
		w.text(p.Description)
		w.raw(`</p>`)
	}
	w.raw(`<p class="post-meta">`)
	w.text(FormatDate(p.PublishedAt))
	w.raw(` &middot; `)
	w.text(ReadingTimeLabel(p.ReadingTime))
	w.raw(`</p></a></article>`)
}

func taxonomy(w *writer, categories, tags []string) {
	if len(categories) == 0 && len(tags) == 0 {
		return
	}
	w.raw(`<nav class="taxonomy">`)
	if len(categories) > 0 {
		w.raw(`<ul class="categories">`)
		for _, c := range categories {
			w.raw(`<li><a href="`)
			w.text(CategoryPath(c))
			w.raw(`">`)
			w.text(c)
			w.raw(`</a></li>`)
		}
		w.raw(`</ul>`)
	}
	if len(tags) > 0 {
		w.raw(`<div class="tags">`)
		tagPills(w, tags)
		w.raw(`</div>`)
	}
	w.raw(`</nav>`)
}

func tagPills(w *writer, tags []string) {
	for _, t := range tags {
		w.raw(`<a class="tag" href="`)
		w.text(TagPath(t))
		w.raw(`">#`)
		w.text(t)
		w.raw(`</a>`)
	}
}
