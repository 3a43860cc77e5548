package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no document backs the requested slug.
var ErrNotFound = errors.New("content: document not found")

// Extensions lists the accepted content file extensions in lookup order.
var Extensions = []string{".mdx", ".md"}

// Repository is the storage boundary of the corpus. ListAll returns every
// document's metadata newest first; Get returns ErrNotFound for unknown
// slugs.
type Repository interface {
	ListAll() ([]Meta, error)
	Get(slug string) (Document, error)
}

// FileRepository reads the corpus directory on every call. Edits made to
// the directory are visible on the next query without a restart.
type FileRepository struct {
	dir    string
	logger *zap.SugaredLogger
}

// NewFileRepository returns a repository over dir.
func NewFileRepository(dir string, logger *zap.SugaredLogger) *FileRepository {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &FileRepository{dir: dir, logger: logger}
}

// Dir returns the corpus directory.
func (r *FileRepository) Dir() string {
	return r.dir
}

// ListAll returns the metadata of every document sorted by PublishedAt,
// newest first. A missing corpus directory yields an empty slice.
func (r *FileRepository) ListAll() ([]Meta, error) {
	docs, err := r.loadAll()
	if err != nil {
		return nil, err
	}
	metas := make([]Meta, len(docs))
	for i, d := range docs {
		metas[i] = d.Meta
	}
	return metas, nil
}

// Get returns the full document for slug.
func (r *FileRepository) Get(slug string) (Document, error) {
	if !validSlug(slug) {
		return Document{}, ErrNotFound
	}
	for _, ext := range Extensions {
		path := filepath.Join(r.dir, slug+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Document{}, fmt.Errorf("read %s: %w", path, err)
		}
		return r.parse(slug, data, path), nil
	}
	return Document{}, ErrNotFound
}

// loadAll reads every content file, newest first. Files that cannot be read
// are logged and skipped.
func (r *FileRepository) loadAll() ([]Document, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read content dir %s: %w", r.dir, err)
	}
	// A slug present under several extensions resolves the same way Get does.
	var order []string
	files := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		slug, ok := slugFromFilename(e.Name())
		if !ok {
			continue
		}
		prev, dup := files[slug]
		if !dup {
			order = append(order, slug)
			files[slug] = e.Name()
			continue
		}
		if extRank(e.Name()) < extRank(prev) {
			files[slug] = e.Name()
		}
		r.logger.Warnw("duplicate slug in content dir", "slug", slug, "using", files[slug])
	}

	docs := make([]Document, 0, len(order))
	for _, slug := range order {
		path := filepath.Join(r.dir, files[slug])
		data, err := os.ReadFile(path)
		if err != nil {
			r.logger.Errorw("skipping unreadable content file", "file", path, "error", err)
			continue
		}
		docs = append(docs, r.parse(slug, data, path))
	}
	sortNewestFirst(docs)
	return docs, nil
}

// parse splits the front matter from the body. A header that cannot be
// decoded is treated as absent: the whole file becomes the body.
func (r *FileRepository) parse(slug string, data []byte, path string) Document {
	var raw rawFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &raw)
	if err != nil {
		r.logger.Warnw("unparseable front matter, using defaults", "file", path, "error", err)
		raw = rawFrontMatter{}
		body = data
	}
	return newDocument(slug, raw, string(body))
}

func sortNewestFirst(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].PublishedTime().After(docs[j].PublishedTime())
	})
}

// slugFromFilename strips an accepted extension from name.
func slugFromFilename(name string) (string, bool) {
	ext := filepath.Ext(name)
	for _, accepted := range Extensions {
		if ext == accepted {
			slug := strings.TrimSuffix(name, ext)
			return slug, slug != "" && !strings.HasPrefix(slug, ".")
		}
	}
	return "", false
}

func extRank(name string) int {
	ext := filepath.Ext(name)
	for i, accepted := range Extensions {
		if ext == accepted {
			return i
		}
	}
	return len(Extensions)
}

func validSlug(slug string) bool {
	if slug == "" || strings.HasPrefix(slug, ".") {
		return false
	}
	return !strings.ContainsAny(slug, `/\`) && !strings.Contains(slug, "..")
}
