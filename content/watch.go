package content

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchedRepository keeps an in-memory snapshot of the corpus and drops it
// whenever the corpus directory changes, so a later query reloads from disk.
// Change events arrive asynchronously: a read issued right after a write may
// still see the previous snapshot. If the directory itself is removed or
// renamed the watch is lost, and the repository reads from disk on every
// query from then on.
type WatchedRepository struct {
	dir     string
	files   *FileRepository
	watcher *fsnotify.Watcher
	logger  *zap.SugaredLogger

	// unwatched is set once the root directory goes away.
	unwatched atomic.Bool

	mu     sync.RWMutex
	docs   []Document
	loaded bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatchedRepository starts watching dir. The directory must exist.
func NewWatchedRepository(dir string, logger *zap.SugaredLogger) (*WatchedRepository, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	r := &WatchedRepository{
		dir:     filepath.Clean(dir),
		files:   NewFileRepository(dir, logger),
		watcher: watcher,
		logger:  logger,
		done:    make(chan struct{}),
	}
	r.wg.Add(1)
	go r.watch()
	return r, nil
}

func (r *WatchedRepository) watch() {
	defer r.wg.Done()
	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			r.logger.Debugw("content change detected", "file", event.Name, "op", event.Op.String())
			if r.rootGone(event) && !r.unwatched.Swap(true) {
				r.logger.Warnw("content directory moved or removed, reading from disk on every request", "dir", r.dir)
			}
			r.Invalidate()
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warnw("content watcher error", "error", err)
			r.Invalidate()
		case <-r.done:
			return
		}
	}
}

func (r *WatchedRepository) rootGone(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != r.dir {
		return false
	}
	return event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// Invalidate clears the snapshot so the next read triggers a fresh load.
func (r *WatchedRepository) Invalidate() {
	r.mu.Lock()
	r.docs = nil
	r.loaded = false
	r.mu.Unlock()
}

// snapshot returns the cached documents, loading them if needed. It tries a
// read lock first and only takes the write lock to reload.
func (r *WatchedRepository) snapshot() ([]Document, error) {
	if r.unwatched.Load() {
		return r.files.loadAll()
	}
	r.mu.RLock()
	if r.loaded {
		docs := r.docs
		r.mu.RUnlock()
		return docs, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return r.docs, nil
	}
	docs, err := r.files.loadAll()
	if err != nil {
		return nil, err
	}
	r.docs = docs
	r.loaded = true
	return docs, nil
}

// ListAll returns every post's metadata, newest first.
func (r *WatchedRepository) ListAll() ([]Meta, error) {
	docs, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	metas := make([]Meta, len(docs))
	for i, d := range docs {
		metas[i] = d.Meta.clone()
	}
	return metas, nil
}

// Get returns the full document for slug from the snapshot.
func (r *WatchedRepository) Get(slug string) (Document, error) {
	docs, err := r.snapshot()
	if err != nil {
		return Document{}, err
	}
	for _, d := range docs {
		if d.Slug == slug {
			d.Meta = d.Meta.clone()
			return d, nil
		}
	}
	return Document{}, ErrNotFound
}

// Close stops the watcher.
func (r *WatchedRepository) Close() error {
	close(r.done)
	err := r.watcher.Close()
	r.wg.Wait()
	return err
}
