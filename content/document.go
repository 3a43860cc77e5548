// Package content loads the blog corpus: a directory of front-matter
// documents, one file per post, where the filename stem is the slug.
package content

import (
	"math"
	"strings"
	"time"
)

// Defaults applied when a front-matter field is absent.
const (
	DefaultAuthor   = "BrainBridge Team"
	DefaultCategory = "General"
	DefaultImage    = "/images/blog/default.jpg"

	// WordsPerMinute is the reading speed used for ReadingTime.
	WordsPerMinute = 200
)

// Meta is the listing projection of a post: every field except the body.
type Meta struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PublishedAt string   `json:"publishedAt"`
	UpdatedAt   string   `json:"updatedAt"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image"`
	Featured    bool     `json:"featured"`
	ReadingTime int      `json:"readingTime"`
}

// Document is a full post: metadata plus the raw body payload.
type Document struct {
	Meta
	Body string `json:"content"`
}

// Link returns the site-relative URL of the post.
func (m Meta) Link() string {
	return "/blog/" + m.Slug
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// PublishedTime parses PublishedAt. Missing or unparseable dates return the
// zero time, which orders before every real date.
func (m Meta) PublishedTime() time.Time {
	return parseDate(m.PublishedAt)
}

// UpdatedTime parses UpdatedAt (which defaults to PublishedAt).
func (m Meta) UpdatedTime() time.Time {
	return parseDate(m.UpdatedAt)
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// clone copies m so the result shares no slices with the original.
func (m Meta) clone() Meta {
	if m.Tags != nil {
		tags := make([]string, len(m.Tags))
		copy(tags, m.Tags)
		m.Tags = tags
	}
	return m
}

// HasTag reports whether the post carries tag, ignoring case.
func (m Meta) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ReadingTime returns the whole minutes needed to read body at
// WordsPerMinute, rounded up. An empty body counts as one word, so the
// result is never below 1.
func ReadingTime(body string) int {
	words := len(strings.Fields(body))
	if words == 0 {
		words = 1
	}
	return int(math.Ceil(float64(words) / WordsPerMinute))
}

// rawFrontMatter mirrors the structured header of a content file. Every
// field is optional; newDocument applies the defaults.
type rawFrontMatter struct {
	Title       string  `yaml:"title" toml:"title" json:"title"`
	Description string  `yaml:"description" toml:"description" json:"description"`
	PublishedAt string  `yaml:"publishedAt" toml:"publishedAt" json:"publishedAt"`
	UpdatedAt   string  `yaml:"updatedAt" toml:"updatedAt" json:"updatedAt"`
	Author      string  `yaml:"author" toml:"author" json:"author"`
	Category    string  `yaml:"category" toml:"category" json:"category"`
	Tags        tagList `yaml:"tags" toml:"tags" json:"tags"`
	Image       string  `yaml:"image" toml:"image" json:"image"`
	Featured    bool    `yaml:"featured" toml:"featured" json:"featured"`
}

// tagList accepts either a YAML sequence or a single comma-separated string.
type tagList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *tagList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*t = list
		return nil
	}
	var single string
	if err := unmarshal(&single); err != nil {
		return err
	}
	*t = splitTags(single)
	return nil
}

func splitTags(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// newDocument is the single place where raw front matter becomes a fully
// defaulted Document.
func newDocument(slug string, raw rawFrontMatter, body string) Document {
	doc := Document{
		Meta: Meta{
			Slug:        slug,
			Title:       raw.Title,
			Description: raw.Description,
			PublishedAt: raw.PublishedAt,
			UpdatedAt:   raw.UpdatedAt,
			Author:      raw.Author,
			Category:    raw.Category,
			Image:       raw.Image,
			Featured:    raw.Featured,
			ReadingTime: ReadingTime(body),
		},
		Body: body,
	}
	if doc.UpdatedAt == "" {
		doc.UpdatedAt = doc.PublishedAt
	}
	if doc.Author == "" {
		doc.Author = DefaultAuthor
	}
	if doc.Category == "" {
		doc.Category = DefaultCategory
	}
	if doc.Image == "" {
		doc.Image = DefaultImage
	}
	doc.Tags = make([]string, 0, len(raw.Tags))
	for _, t := range raw.Tags {
		if t = strings.TrimSpace(t); t != "" {
			doc.Tags = append(doc.Tags, t)
		}
	}
	return doc
}
