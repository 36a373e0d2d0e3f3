package theme

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// DefaultPollInterval is how often a theme file is checked for changes.
const DefaultPollInterval = time.Second

// Watcher polls a theme file and reports new CSS when it changes.
type Watcher struct {
	mu           sync.RWMutex
	logger       *slog.Logger
	theme        *Theme
	pollInterval time.Duration
	onChange     func(css string)

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher for theme.
func NewWatcher(theme *Theme, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger:       logger,
		theme:        theme,
		pollInterval: DefaultPollInterval,
	}
}

// SetPollInterval sets the polling interval. It takes effect on Start.
func (w *Watcher) SetPollInterval(interval time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if interval > 0 {
		w.pollInterval = interval
	}
}

// SetChangeCallback sets the function that receives reloaded CSS.
func (w *Watcher) SetChangeCallback(fn func(css string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start begins polling. Watching a bundled theme is an error.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	if w.theme == nil || w.theme.IsBundled {
		return errors.New("bundled themes cannot be watched")
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	go w.watchLoop(ctx, w.pollInterval, w.stopCh, w.doneCh)

	w.logger.Debug("theme watcher started", "path", w.theme.Path, "interval", w.pollInterval)
	return nil
}

// Stop stops polling and waits for the poll goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	done := w.doneCh
	w.mu.Unlock()

	<-done
	w.logger.Debug("theme watcher stopped")
}

// IsRunning reports whether the watcher is polling.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *Watcher) watchLoop(ctx context.Context, interval time.Duration, stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// check reloads the theme and fires the callback if the CSS changed.
func (w *Watcher) check() {
	w.mu.RLock()
	theme := w.theme
	fn := w.onChange
	w.mu.RUnlock()

	changed, err := theme.Reload()
	if err != nil {
		w.logger.Debug("failed to reload theme", "path", theme.Path, "error", err)
		return
	}
	if !changed {
		return
	}
	w.logger.Info("theme file changed, reloading", "path", theme.Path)
	if fn != nil {
		fn(theme.CSS)
	}
}
