package site

import (
	"encoding/xml"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/brainbridge/site/content"
)

// SitemapURLSet is the <urlset> root of sitemap.xml.
type SitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapURL is one <url> entry.
type SitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// StaticPage is a marketing page listed in the sitemap.
type StaticPage struct {
	Path       string
	ChangeFreq string
	Priority   string
}

// StaticPages are listed ahead of the blog posts.
var StaticPages = []StaticPage{
	{"", "weekly", "1.0"},
	{"features", "monthly", "0.9"},
	{"solutions/k12-schools", "monthly", "0.9"},
	{"solutions/districts", "monthly", "0.9"},
	{"solutions/community-organizations", "monthly", "0.9"},
	{"pricing", "monthly", "0.8"},
	{"about", "monthly", "0.7"},
	{"contact", "monthly", "0.8"},
	{"blog", "weekly", "0.8"},
	{"privacy", "yearly", "0.3"},
	{"terms", "yearly", "0.3"},
}

// BuildSitemap lists the static pages, stamped with now, followed by every
// post. A post's lastmod is its publish date and is left out when the date
// does not parse.
func BuildSitemap(base string, posts []content.Meta, now time.Time) SitemapURLSet {
	stamp := now.UTC().Format(time.RFC3339)
	urls := make([]SitemapURL, 0, len(StaticPages)+len(posts))
	for _, p := range StaticPages {
		loc := BuildURL(base)
		if p.Path != "" {
			loc = BuildURL(base, strings.Split(p.Path, "/")...)
		}
		urls = append(urls, SitemapURL{
			Loc:        loc,
			LastMod:    stamp,
			ChangeFreq: p.ChangeFreq,
			Priority:   p.Priority,
		})
	}
	for _, p := range posts {
		lastMod := ""
		if t := p.PublishedTime(); !t.IsZero() {
			lastMod = t.UTC().Format(time.RFC3339)
		}
		urls = append(urls, SitemapURL{
			Loc:        BuildURL(base, "blog", p.Slug),
			LastMod:    lastMod,
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}
	return SitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

// WriteSitemap encodes set as an XML document.
func WriteSitemap(w io.Writer, set SitemapURLSet) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(set)
}

func (a *App) renderSitemap(c echo.Context, posts []content.Meta) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteSitemap(c.Response(), BuildSitemap(a.Config.URL, posts, a.Clock()))
}
