package content

import (
	"errors"
	"sort"
	"strings"
)

// Default result sizes for the featured and related listings.
const (
	DefaultFeaturedLimit = 3
	DefaultRelatedLimit  = 3
)

// Service answers the blog queries on top of a Repository. Every query goes
// through ListAll or Get, so the repository decides freshness.
type Service struct {
	repo Repository
}

// NewService returns a Service backed by repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Repository returns the underlying repository.
func (s *Service) Repository() Repository {
	return s.repo
}

// ListAll returns every post's metadata, newest first.
func (s *Service) ListAll() ([]Meta, error) {
	return s.repo.ListAll()
}

// Get returns the full post for slug, or ErrNotFound.
func (s *Service) Get(slug string) (Document, error) {
	return s.repo.Get(slug)
}

// ListFeatured returns at most limit featured posts in listing order.
// A non-positive limit uses DefaultFeaturedLimit.
func (s *Service) ListFeatured(limit int) ([]Meta, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	return s.filter(func(m Meta) bool { return m.Featured }, limit)
}

// ListByCategory returns the posts whose category equals category, ignoring case.
func (s *Service) ListByCategory(category string) ([]Meta, error) {
	return s.filter(func(m Meta) bool { return strings.EqualFold(m.Category, category) }, 0)
}

// ListByTag returns the posts carrying tag, ignoring case. Tags match
// whole, never by substring.
func (s *Service) ListByTag(tag string) ([]Meta, error) {
	return s.filter(func(m Meta) bool { return m.HasTag(tag) }, 0)
}

// ListCategories returns the distinct categories, sorted.
func (s *Service) ListCategories() ([]string, error) {
	posts, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{})
	for _, p := range posts {
		set[p.Category] = struct{}{}
	}
	return sortedKeys(set), nil
}

// ListTags returns the distinct tags, sorted.
func (s *Service) ListTags() ([]string, error) {
	posts, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Tags {
			set[t] = struct{}{}
		}
	}
	return sortedKeys(set), nil
}

// ListRelated scores every other post against the one at slug: two points
// for the same category and one per shared tag. Posts scoring zero are
// dropped; the rest are ordered by score, ties keeping listing order.
// An unknown slug yields an empty result.
func (s *Service) ListRelated(slug string, limit int) ([]Meta, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	current, err := s.repo.Get(slug)
	if errors.Is(err, ErrNotFound) {
		return []Meta{}, nil
	}
	if err != nil {
		return nil, err
	}
	posts, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}

	type scored struct {
		meta  Meta
		score int
	}
	var candidates []scored
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		if score := RelatednessScore(current.Meta, p); score > 0 {
			candidates = append(candidates, scored{meta: p, score: score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	related := make([]Meta, 0, min(limit, len(candidates)))
	for _, c := range candidates {
		if len(related) == limit {
			break
		}
		related = append(related, c.meta)
	}
	return related, nil
}

// RelatednessScore returns how closely other relates to current. Category
// must match exactly; tags are compared ignoring case, the same way
// ListByTag matches them.
func RelatednessScore(current, other Meta) int {
	score := 0
	if other.Category == current.Category {
		score += 2
	}
	tags := make(map[string]struct{}, len(current.Tags))
	for _, t := range current.Tags {
		tags[strings.ToLower(t)] = struct{}{}
	}
	for _, t := range other.Tags {
		if _, ok := tags[strings.ToLower(t)]; ok {
			score++
		}
	}
	return score
}

func (s *Service) filter(keep func(Meta) bool, limit int) ([]Meta, error) {
	posts, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]Meta, 0)
	for _, p := range posts {
		if !keep(p) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
