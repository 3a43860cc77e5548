package site

import (
	"encoding/json"
	"testing"

	"github.com/brainbridge/site/content"
)

func decodeLD(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		t.Fatalf("invalid JSON-LD %q: %v", s, err)
	}
	return out
}

func TestPageMetaTitles(t *testing.T) {
	env := newTestApp(t)
	home := env.app.PageMeta("BrainBridge | Attendance", "desc")
	if home.Title != "BrainBridge | Attendance" {
		t.Errorf("home title = %q, want unsuffixed", home.Title)
	}
	if home.URL != "https://brainbridge.cloud" {
		t.Errorf("home URL = %q", home.URL)
	}
	if home.Image != "https://brainbridge.cloud/og-image.png" {
		t.Errorf("home image = %q", home.Image)
	}

	pricing := env.app.PageMeta("Pricing", "desc", "pricing")
	if pricing.Title != "Pricing | BrainBridge" {
		t.Errorf("title = %q", pricing.Title)
	}
	if pricing.URL != "https://brainbridge.cloud/pricing/" {
		t.Errorf("URL = %q", pricing.URL)
	}
	if pricing.NoIndex {
		t.Error("NoIndex should default to false")
	}
}

func TestArticleJSONLD(t *testing.T) {
	cfg := SiteConfig{Name: "BrainBridge", URL: "https://brainbridge.cloud", OGImage: "/og-image.png"}
	doc := content.Document{Meta: content.Meta{
		Slug:        "post",
		Title:       "Post",
		PublishedAt: "2024-01-01",
		Author:      "BrainBridge Team",
		Image:       "/images/blog/post.jpg",
	}}
	ld := decodeLD(t, ArticleJSONLD(cfg, doc))
	if ld["@type"] != "Article" || ld["headline"] != "Post" {
		t.Errorf("article = %v", ld)
	}
	if ld["dateModified"] != "2024-01-01" {
		t.Errorf("dateModified = %v, want publish date fallback", ld["dateModified"])
	}
	if ld["image"] != "https://brainbridge.cloud/images/blog/post.jpg" {
		t.Errorf("image = %v", ld["image"])
	}
	author, _ := ld["author"].(map[string]interface{})
	if author["@type"] != "Organization" || author["name"] != "BrainBridge Team" {
		t.Errorf("author = %v", author)
	}

	doc.UpdatedAt = "2024-02-02"
	if ld := decodeLD(t, ArticleJSONLD(cfg, doc)); ld["dateModified"] != "2024-02-02" {
		t.Errorf("dateModified = %v, want updatedAt", ld["dateModified"])
	}
}

func TestBreadcrumbJSONLD(t *testing.T) {
	ld := decodeLD(t, BreadcrumbJSONLD([]Crumb{
		{Name: "Home", URL: "https://brainbridge.cloud"},
		{Name: "Blog", URL: "https://brainbridge.cloud/blog/"},
	}))
	items, _ := ld["itemListElement"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("items = %v", ld["itemListElement"])
	}
	second, _ := items[1].(map[string]interface{})
	if second["position"] != float64(2) || second["name"] != "Blog" {
		t.Errorf("second crumb = %v", second)
	}
}

func TestOrganizationAndWebsiteJSONLD(t *testing.T) {
	cfg := SiteConfig{Name: "BrainBridge", URL: "https://brainbridge.cloud"}
	org := decodeLD(t, OrganizationJSONLD(cfg))
	if org["@id"] != "https://brainbridge.cloud/#organization" {
		t.Errorf("organization id = %v", org["@id"])
	}
	site := decodeLD(t, WebsiteJSONLD(cfg))
	publisher, _ := site["publisher"].(map[string]interface{})
	if publisher["@id"] != org["@id"] {
		t.Errorf("website publisher = %v, want organization id", publisher)
	}
}
