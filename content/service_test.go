package content

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// memRepo is an in-memory Repository; docs must already be newest first.
type memRepo struct {
	docs []Document
	err  error
}

func (m *memRepo) ListAll() ([]Meta, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]Meta, len(m.docs))
	for i, d := range m.docs {
		out[i] = d.Meta
	}
	return out, nil
}

func (m *memRepo) Get(slug string) (Document, error) {
	if m.err != nil {
		return Document{}, m.err
	}
	for _, d := range m.docs {
		if d.Slug == slug {
			return d, nil
		}
	}
	return Document{}, ErrNotFound
}

func post(slug, category string, featured bool, tags ...string) Document {
	return newDocument(slug, rawFrontMatter{Category: category, Featured: featured, Tags: tags}, "")
}

func testService() *Service {
	return NewService(&memRepo{docs: []Document{
		post("p1", "Strategy", true, "attendance", "k12"),
		post("p2", "Research", false, "Attendance"),
		post("p3", "Strategy", true, "mentoring"),
		post("p4", "strategy", false, "k12", "attendance"),
		post("p5", "Product", true),
		post("p6", "Product", true, "data"),
	}})
}

func TestListFeatured(t *testing.T) {
	s := testService()
	tests := []struct {
		limit int
		want  []string
	}{
		{0, []string{"p1", "p3", "p5"}},
		{2, []string{"p1", "p3"}},
		{10, []string{"p1", "p3", "p5", "p6"}},
	}
	for _, tt := range tests {
		got, err := s.ListFeatured(tt.limit)
		if err != nil {
			t.Fatalf("ListFeatured(%d) failed: %v", tt.limit, err)
		}
		if diff := cmp.Diff(tt.want, slugs(got)); diff != "" {
			t.Errorf("ListFeatured(%d) mismatch (-want +got):\n%s", tt.limit, diff)
		}
		for _, m := range got {
			if !m.Featured {
				t.Errorf("ListFeatured returned non-featured %q", m.Slug)
			}
		}
	}
}

func TestListByCategoryIgnoresCase(t *testing.T) {
	got, err := testService().ListByCategory("STRATEGY")
	if err != nil {
		t.Fatalf("ListByCategory failed: %v", err)
	}
	if diff := cmp.Diff([]string{"p1", "p3", "p4"}, slugs(got)); diff != "" {
		t.Errorf("ListByCategory mismatch (-want +got):\n%s", diff)
	}
}

func TestListByTag(t *testing.T) {
	s := testService()
	got, err := s.ListByTag("attendance")
	if err != nil {
		t.Fatalf("ListByTag failed: %v", err)
	}
	if diff := cmp.Diff([]string{"p1", "p2", "p4"}, slugs(got)); diff != "" {
		t.Errorf("ListByTag mismatch (-want +got):\n%s", diff)
	}

	got, _ = s.ListByTag("attend")
	if len(got) != 0 {
		t.Errorf("ListByTag(substring) = %v, want none", slugs(got))
	}
}

func TestListCategoriesAndTags(t *testing.T) {
	s := testService()
	cats, err := s.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Product", "Research", "Strategy", "strategy"}, cats); diff != "" {
		t.Errorf("ListCategories mismatch (-want +got):\n%s", diff)
	}
	tags, err := s.ListTags()
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Attendance", "attendance", "data", "k12", "mentoring"}, tags); diff != "" {
		t.Errorf("ListTags mismatch (-want +got):\n%s", diff)
	}
}

func TestListRelated(t *testing.T) {
	s := testService()
	got, err := s.ListRelated("p1", 0)
	if err != nil {
		t.Fatalf("ListRelated failed: %v", err)
	}
	// p4: two shared tags (2), p3: same category (2), p2: one tag (1).
	if diff := cmp.Diff([]string{"p3", "p4", "p2"}, slugs(got)); diff != "" {
		t.Errorf("ListRelated mismatch (-want +got):\n%s", diff)
	}
	for _, m := range got {
		if m.Slug == "p1" {
			t.Error("ListRelated must exclude the source post")
		}
		if m.Slug == "p5" || m.Slug == "p6" {
			t.Errorf("ListRelated included zero-score post %q", m.Slug)
		}
	}
}

func TestListRelatedCategoryAndTagOutranksCategory(t *testing.T) {
	s := NewService(&memRepo{docs: []Document{
		post("src", "Strategy", false, "attendance"),
		post("category-only", "Strategy", false),
		post("category-and-tag", "Strategy", false, "attendance"),
	}})
	got, err := s.ListRelated("src", 3)
	if err != nil {
		t.Fatalf("ListRelated failed: %v", err)
	}
	if diff := cmp.Diff([]string{"category-and-tag", "category-only"}, slugs(got)); diff != "" {
		t.Errorf("ListRelated mismatch (-want +got):\n%s", diff)
	}
}

func TestListRelatedLimit(t *testing.T) {
	got, _ := testService().ListRelated("p1", 1)
	if len(got) != 1 {
		t.Errorf("ListRelated limit 1 returned %d", len(got))
	}
}

func TestListRelatedUnknownSlug(t *testing.T) {
	got, err := testService().ListRelated("nope", 3)
	if err != nil {
		t.Fatalf("ListRelated failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ListRelated(unknown) = %v, want empty", got)
	}
}

func TestRelatednessScore(t *testing.T) {
	current := Meta{Category: "Strategy", Tags: []string{"attendance", "K12"}}
	tests := []struct {
		name  string
		other Meta
		want  int
	}{
		{"nothing shared", Meta{Category: "Other"}, 0},
		{"category only", Meta{Category: "Strategy"}, 2},
		{"category case differs", Meta{Category: "strategy"}, 0},
		{"one tag", Meta{Category: "Other", Tags: []string{"attendance"}}, 1},
		{"tag case differs", Meta{Category: "Other", Tags: []string{"k12"}}, 1},
		{"category and tag", Meta{Category: "Strategy", Tags: []string{"attendance"}}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelatednessScore(current, tt.other); got != tt.want {
				t.Errorf("RelatednessScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestServicePropagatesRepositoryErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	s := NewService(&memRepo{err: boom})
	if _, err := s.ListFeatured(3); !errors.Is(err, boom) {
		t.Errorf("ListFeatured error = %v, want %v", err, boom)
	}
	if _, err := s.ListRelated("x", 3); !errors.Is(err, boom) {
		t.Errorf("ListRelated error = %v, want %v", err, boom)
	}
	if _, err := s.ListTags(); err == nil || !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("ListTags error = %v", err)
	}
}
