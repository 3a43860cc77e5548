package site

import (
	"encoding/json"

	"github.com/brainbridge/site/content"
	"github.com/brainbridge/site/views"
)

// Crumb is one step of a breadcrumb trail.
type Crumb struct {
	Name string
	URL  string
}

// PageMeta builds the head metadata for a page. An empty segment list means
// the home page, whose title is used as is; every other title gets the
// " | <site name>" suffix.
func (a *App) PageMeta(title, description string, segments ...string) views.PageMeta {
	full := title
	if len(segments) > 0 {
		full = title + " | " + a.Config.Name
	}
	return views.PageMeta{
		Title:       full,
		Description: description,
		URL:         BuildURL(a.Config.URL, segments...),
		Image:       AbsoluteURL(a.Config.URL, a.Config.OGImage),
		OGType:      "website",
	}
}

// PostMeta builds the head metadata for a post, including its Article and
// breadcrumb structured data.
func (a *App) PostMeta(doc content.Document) views.PageMeta {
	meta := a.PageMeta(doc.Title, doc.Description, "blog", doc.Slug)
	meta.OGType = "article"
	if doc.Image != "" {
		meta.Image = AbsoluteURL(a.Config.URL, doc.Image)
	}
	meta.JSONLD = []string{
		ArticleJSONLD(a.Config, doc),
		BreadcrumbJSONLD([]Crumb{
			{Name: "Home", URL: BuildURL(a.Config.URL)},
			{Name: "Blog", URL: BuildURL(a.Config.URL, "blog")},
			{Name: doc.Title, URL: meta.URL},
		}),
	}
	return meta
}

func organizationID(cfg SiteConfig) string {
	return BuildURL(cfg.URL) + "/#organization"
}

func marshalLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// OrganizationJSONLD returns a JSON-LD string for the Organization schema.
func OrganizationJSONLD(cfg SiteConfig) string {
	return marshalLD(map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "Organization",
		"@id":         organizationID(cfg),
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
		"logo": map[string]interface{}{
			"@type":  "ImageObject",
			"url":    AbsoluteURL(cfg.URL, "/logo.png"),
			"width":  512,
			"height": 512,
		},
	})
}

// WebsiteJSONLD returns a JSON-LD string for the WebSite schema.
func WebsiteJSONLD(cfg SiteConfig) string {
	return marshalLD(map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"@id":         BuildURL(cfg.URL) + "/#website",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
		"publisher": map[string]string{
			"@id": organizationID(cfg),
		},
	})
}

// ArticleJSONLD returns a JSON-LD string for a post. dateModified falls back
// to the publish date and the author is published as an Organization.
func ArticleJSONLD(cfg SiteConfig, doc content.Document) string {
	postURL := BuildURL(cfg.URL, "blog", doc.Slug)
	modified := doc.UpdatedAt
	if modified == "" {
		modified = doc.PublishedAt
	}
	image := AbsoluteURL(cfg.URL, doc.Image)
	if image == "" {
		image = AbsoluteURL(cfg.URL, cfg.OGImage)
	}
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "Article",
		"headline":      doc.Title,
		"description":   doc.Description,
		"datePublished": doc.PublishedAt,
		"dateModified":  modified,
		"image":         image,
		"author": map[string]string{
			"@type": "Organization",
			"name":  doc.Author,
			"url":   BuildURL(cfg.URL),
		},
		"publisher": map[string]interface{}{
			"@type": "Organization",
			"name":  cfg.Name,
			"logo": map[string]string{
				"@type": "ImageObject",
				"url":   AbsoluteURL(cfg.URL, "/logo.png"),
			},
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if len(doc.Tags) > 0 {
		data["keywords"] = doc.Tags
	}
	return marshalLD(data)
}

// BreadcrumbJSONLD returns a JSON-LD string for a BreadcrumbList.
func BreadcrumbJSONLD(crumbs []Crumb) string {
	items := make([]map[string]interface{}, len(crumbs))
	for i, c := range crumbs {
		items[i] = map[string]interface{}{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     c.URL,
		}
	}
	return marshalLD(map[string]interface{}{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	})
}
