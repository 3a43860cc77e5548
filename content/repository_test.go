package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"
)

// writePost writes a content file with a YAML front-matter header built from
// front. A nil front writes the body alone.
func writePost(t *testing.T, dir, name string, front map[string]interface{}, body string) {
	t.Helper()
	var b strings.Builder
	if front != nil {
		out, err := yaml.Marshal(front)
		if err != nil {
			t.Fatalf("marshal front matter: %v", err)
		}
		b.WriteString("---\n")
		b.Write(out)
		b.WriteString("---\n")
	}
	b.WriteString(body)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func slugs(metas []Meta) []string {
	out := make([]string, len(metas))
	for i, m := range metas {
		out[i] = m.Slug
	}
	return out
}

func TestListAllMissingDirectory(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "nope"), nil)
	got, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ListAll = %v, want empty non-nil slice", got)
	}
}

func TestListAllSortsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "old.mdx", map[string]interface{}{"title": "Old", "publishedAt": "2023-01-01"}, "old")
	writePost(t, dir, "new.mdx", map[string]interface{}{"title": "New", "publishedAt": "2024-06-01"}, "new")
	writePost(t, dir, "mid.md", map[string]interface{}{"title": "Mid", "publishedAt": "2023-09-15"}, "mid")
	writePost(t, dir, "undated.mdx", map[string]interface{}{"title": "Undated"}, "undated")
	writePost(t, dir, "notes.txt", nil, "ignored")

	repo := NewFileRepository(dir, nil)
	got, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	want := []string{"new", "mid", "old", "undated"}
	if strings.Join(slugs(got), ",") != strings.Join(want, ",") {
		t.Errorf("ListAll order = %v, want %v", slugs(got), want)
	}
}

func TestListAllSwappingDatesSwapsOrder(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "a.mdx", map[string]interface{}{"publishedAt": "2024-01-01"}, "a")
	writePost(t, dir, "b.mdx", map[string]interface{}{"publishedAt": "2024-02-01"}, "b")
	repo := NewFileRepository(dir, nil)

	got, _ := repo.ListAll()
	if got[0].Slug != "b" {
		t.Fatalf("first = %q, want b", got[0].Slug)
	}

	writePost(t, dir, "a.mdx", map[string]interface{}{"publishedAt": "2024-02-01"}, "a")
	writePost(t, dir, "b.mdx", map[string]interface{}{"publishedAt": "2024-01-01"}, "b")
	got, _ = repo.ListAll()
	if got[0].Slug != "a" {
		t.Errorf("after swap first = %q, want a", got[0].Slug)
	}
}

func TestListAllStableForEqualDates(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.mdx", "a.mdx", "b.mdx"} {
		writePost(t, dir, name, map[string]interface{}{"publishedAt": "2024-01-01"}, "x")
	}
	repo := NewFileRepository(dir, nil)
	first, _ := repo.ListAll()
	for i := 0; i < 5; i++ {
		again, _ := repo.ListAll()
		if strings.Join(slugs(again), ",") != strings.Join(slugs(first), ",") {
			t.Fatalf("ListAll not deterministic: %v vs %v", slugs(again), slugs(first))
		}
	}
}

func TestGet(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "hello.mdx", map[string]interface{}{
		"title":       "Hello",
		"publishedAt": "2024-01-15",
		"tags":        []string{"go", "web"},
		"featured":    true,
	}, "# Hello\n\nSome words here.")

	repo := NewFileRepository(dir, nil)
	doc, err := repo.Get("hello")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc.Title != "Hello" {
		t.Errorf("Title = %q, want %q", doc.Title, "Hello")
	}
	if doc.PublishedAt != "2024-01-15" {
		t.Errorf("PublishedAt = %q, want %q", doc.PublishedAt, "2024-01-15")
	}
	if !doc.Featured {
		t.Error("Featured should be true")
	}
	if !strings.Contains(doc.Body, "Some words here.") {
		t.Errorf("Body = %q, missing content", doc.Body)
	}
	if strings.Contains(doc.Body, "publishedAt") {
		t.Errorf("Body should not contain front matter: %q", doc.Body)
	}
	if doc.Link() != "/blog/hello" {
		t.Errorf("Link = %q, want /blog/hello", doc.Link())
	}
}

func TestGetNotFound(t *testing.T) {
	repo := NewFileRepository(t.TempDir(), nil)
	for _, slug := range []string{"missing", "", "../etc/passwd", "a/b", ".hidden"} {
		if _, err := repo.Get(slug); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q) error = %v, want ErrNotFound", slug, err)
		}
	}
}

func TestGetWithoutFrontMatterUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "plain.md", nil, "just a body")
	doc, err := NewFileRepository(dir, nil).Get("plain")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc.Author != DefaultAuthor || doc.Category != DefaultCategory || doc.Image != DefaultImage {
		t.Errorf("defaults not applied: %+v", doc.Meta)
	}
	if doc.PublishedAt != "" {
		t.Errorf("PublishedAt = %q, want empty", doc.PublishedAt)
	}
}

func TestGetMalformedFrontMatterStillLoads(t *testing.T) {
	dir := t.TempDir()
	content := "---\ntitle: [unclosed\n---\nbody"
	if err := os.WriteFile(filepath.Join(dir, "broken.mdx"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := NewFileRepository(dir, nil).Get("broken")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc.Title != "" || doc.Category != DefaultCategory {
		t.Errorf("expected defaulted document, got %+v", doc.Meta)
	}
}

func TestDuplicateSlugPrefersMDX(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "dup.md", map[string]interface{}{"title": "From md"}, "md")
	writePost(t, dir, "dup.mdx", map[string]interface{}{"title": "From mdx"}, "mdx")
	repo := NewFileRepository(dir, nil)

	all, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 1 || all[0].Title != "From mdx" {
		t.Errorf("ListAll = %+v, want single mdx entry", all)
	}
	doc, _ := repo.Get("dup")
	if doc.Title != "From mdx" {
		t.Errorf("Get title = %q, want From mdx", doc.Title)
	}
}
