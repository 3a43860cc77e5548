package views

// SiteConfig holds the site-wide values every page needs.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Year        int    // footer copyright year
	GAID        string // GA4 measurement id; empty disables the gtag snippet
}

// PageMeta carries per-page SEO and OpenGraph metadata into the <head>.
type PageMeta struct {
	Title       string // full document title
	Description string
	URL         string // canonical + og:url
	Image       string // absolute og:image
	OGType      string // "website" or "article"
	NoIndex     bool
	JSONLD      []string
}

// NavItem is one header link.
type NavItem struct {
	Label string
	Href  string
}

// Nav is the primary navigation.
var Nav = []NavItem{
	{"Features", "/features/"},
	{"K-12 Schools", "/solutions/k12-schools/"},
	{"Districts", "/solutions/districts/"},
	{"Community Organizations", "/solutions/community-organizations/"},
	{"Pricing", "/pricing/"},
	{"Blog", "/blog/"},
	{"About", "/about/"},
}
