package audio

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"sync"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/toast"
)

// Manager plays the configured sound for each toast type.
type Manager struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	backend Backend
	watcher *Watcher
	enabled bool
	sounds  map[toast.Type]string
	onError func(err error)
}

// NewManager creates a manager playing through backend. A nil backend
// uses a speaker Player.
func NewManager(cfg *config.Config, backend Backend, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if backend == nil {
		backend = NewPlayer(logger)
	}
	m := &Manager{
		logger:  logger,
		backend: backend,
		sounds:  make(map[toast.Type]string),
	}
	m.apply(cfg)
	return m
}

// apply loads volume and sound paths from cfg. Missing files are skipped.
func (m *Manager) apply(cfg *config.Config) {
	if cfg == nil {
		return
	}

	sounds := make(map[toast.Type]string)
	for _, t := range toast.ValidTypes() {
		path := cfg.SoundFor(t)
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			m.logger.Warn("sound file not found", "type", t, "path", path)
			continue
		}
		sounds[t] = path
	}

	m.backend.SetVolume(float64(cfg.Audio.Volume) / 100.0)

	m.mu.Lock()
	m.enabled = cfg.Audio.Enabled
	m.sounds = sounds
	m.mu.Unlock()

	m.logger.Debug("audio configured", "enabled", cfg.Audio.Enabled, "sounds", len(sounds))
}

// Start preloads the sounds and begins watching them for changes. Without
// ctx being cancelled, Stop must be called to release the watcher.
func (m *Manager) Start(ctx context.Context) error {
	watcher, err := NewWatcher(m.backend, m.logger)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.watcher = watcher
	m.mu.Unlock()

	m.preload()
	return watcher.Start(ctx)
}

func (m *Manager) preload() {
	m.mu.RLock()
	sounds := maps.Clone(m.sounds)
	watcher := m.watcher
	enabled := m.enabled
	m.mu.RUnlock()

	if !enabled {
		return
	}
	for _, path := range sounds {
		if err := m.backend.Preload(path); err != nil {
			m.logger.Warn("failed to preload sound", "path", path, "error", err)
		}
		if watcher != nil {
			watcher.Watch(path)
		}
	}
}

// Stop releases the watcher and the speaker.
func (m *Manager) Stop() {
	m.mu.Lock()
	watcher := m.watcher
	m.watcher = nil
	m.mu.Unlock()

	if watcher != nil {
		watcher.Stop()
	}
	m.backend.Close()
}

// SoundFor returns the sound path used for a type, if any.
func (m *Manager) SoundFor(t toast.Type) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	path, ok := m.sounds[t]
	return path, ok
}

// Play plays the sound for a type. It is a no-op when audio is disabled or
// the type has no sound.
func (m *Manager) Play(t toast.Type) error {
	m.mu.RLock()
	enabled := m.enabled
	path, ok := m.sounds[t]
	m.mu.RUnlock()

	if !enabled || !ok {
		return nil
	}
	return m.backend.Play(path)
}

// HandleMounted is a toast.Notifier OnMounted hook. Playback runs off the
// UI loop since the first play of a file decodes it.
func (m *Manager) HandleMounted(t *toast.Toast) {
	typ := t.Config().Type
	go func() {
		if err := m.Play(typ); err != nil {
			m.logger.Warn("failed to play sound", "type", typ, "error", err)
			m.mu.RLock()
			onError := m.onError
			m.mu.RUnlock()
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// SetErrorHandler sets a callback for failed playback started by
// HandleMounted.
func (m *Manager) SetErrorHandler(fn func(err error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onError = fn
}

// UpdateConfig applies a reloaded configuration.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	m.backend.ClearCache()
	m.apply(cfg)
	m.preload()
}
