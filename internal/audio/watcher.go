package audio

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// invalidator drops cached sounds.
type invalidator interface {
	InvalidateCache(path string)
}

// Watcher drops cached sounds when their files change on disk.
type Watcher struct {
	mu      sync.Mutex
	logger  *slog.Logger
	cache   invalidator
	fsw     *fsnotify.Watcher
	paths   map[string]bool
	dirs    map[string]bool
	done    chan struct{}
	running bool
}

// NewWatcher creates a watcher that invalidates entries of cache.
func NewWatcher(cache invalidator, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		logger: logger,
		cache:  cache,
		fsw:    fsw,
		paths:  make(map[string]bool),
		dirs:   make(map[string]bool),
		done:   make(chan struct{}),
	}, nil
}

// Watch adds a sound file. Its directory is watched, so the file may be
// replaced by an editor's rename.
func (w *Watcher) Watch(path string) {
	if path == "" {
		return
	}
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.paths[path] = true
	if w.dirs[dir] {
		return
	}
	if err := w.fsw.Add(dir); err != nil {
		w.logger.Warn("failed to watch sound directory", "dir", dir, "error", err)
		return
	}
	w.dirs[dir] = true
}

// Start runs the event loop until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	w.running = true
	go w.watch(ctx)
	return nil
}

func (w *Watcher) watch(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Clean(event.Name)
			w.mu.Lock()
			watched := w.paths[name]
			w.mu.Unlock()
			if watched {
				w.logger.Debug("sound file changed, invalidating cache", "path", name)
				w.cache.InvalidateCache(name)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("sound watcher error", "error", err)

		case <-w.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop closes the underlying watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-w.done:
		return
	default:
	}
	close(w.done)
	w.running = false
	_ = w.fsw.Close()
}
