package theme

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Loader resolves theme names to stylesheets and pushes them to an apply
// function, such as Notifier.SetStylesheet marshalled onto the UI loop.
type Loader struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	themesDir string
	theme     *Theme
	watcher   *Watcher
	apply     func(css string)
	onReload  func(name string)
}

// NewLoader creates a loader that looks for user themes in themesDir.
// An empty themesDir disables user themes.
func NewLoader(themesDir string, apply func(css string), logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if apply == nil {
		apply = func(string) {}
	}
	return &Loader{
		logger:    logger,
		themesDir: themesDir,
		apply:     apply,
	}
}

// Load resolves name and applies it. User themes shadow bundled ones;
// unknown names fall back to the default theme.
func (l *Loader) Load(name string) *Theme {
	if name == "" {
		name = DefaultThemeName
	}

	t := l.resolve(name)

	l.mu.Lock()
	l.theme = t
	apply := l.apply
	l.mu.Unlock()

	apply(t.CSS)
	return t
}

func (l *Loader) resolve(name string) *Theme {
	if l.themesDir != "" {
		path := filepath.Join(l.themesDir, name+".css")
		if _, err := os.Stat(path); err == nil {
			t, err := NewTheme(name, path)
			if err == nil {
				l.logger.Info("loaded user theme", "name", name, "path", path)
				return t
			}
			l.logger.Warn("failed to load user theme, trying bundled", "theme", name, "error", err)
		}
	}

	if t, ok := NewBundledTheme(name); ok {
		l.logger.Info("loaded bundled theme", "name", name)
		return t
	}

	l.logger.Warn("theme not found, using default", "theme", name)
	t, _ := NewBundledTheme(DefaultThemeName)
	return t
}

// SetReloadCallback sets a callback run after a watched theme file was
// reapplied.
func (l *Loader) SetReloadCallback(fn func(name string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onReload = fn
}

// Current returns the loaded theme, or nil before Load.
func (l *Loader) Current() *Theme {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.theme
}

// StartHotReload watches the current user theme and reapplies it when the
// file changes. Bundled themes are not watched.
func (l *Loader) StartHotReload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		l.watcher.Stop()
		l.watcher = nil
	}
	if l.theme == nil || l.theme.IsBundled {
		l.logger.Debug("not watching bundled theme")
		return
	}

	l.watcher = NewWatcher(l.theme, l.logger)
	l.watcher.SetChangeCallback(func(css string) {
		l.mu.RLock()
		apply := l.apply
		onReload := l.onReload
		name := l.theme.Name
		l.mu.RUnlock()
		apply(css)
		if onReload != nil {
			onReload(name)
		}
	})
	if err := l.watcher.Start(ctx); err != nil {
		l.logger.Warn("failed to start theme watcher", "error", err)
	}
}

// StopHotReload stops watching the theme file.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.watcher != nil {
		l.watcher.Stop()
		l.watcher = nil
	}
}

// ListThemes returns bundled and user theme names without duplicates.
func (l *Loader) ListThemes() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, name := range ListEmbeddedThemes() {
		add(name)
	}
	if l.themesDir == "" {
		return names
	}
	entries, err := os.ReadDir(l.themesDir)
	if err != nil {
		l.logger.Debug("failed to read themes directory", "error", err)
		return names
	}
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".css" {
			add(entry.Name()[:len(entry.Name())-len(".css")])
		}
	}
	return names
}
