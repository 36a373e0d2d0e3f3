package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/config"
)

func TestConfigWatcher_ReloadsValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toastui.toml")

	w := NewConfigWatcher(path, nil)
	w.SetDebounce(20 * time.Millisecond)
	reloaded := make(chan *config.Config, 1)
	w.SetReloadCallback(func(cfg *config.Config) { reloaded <- cfg })

	initial := config.DefaultConfig()
	require.NoError(t, w.Start(t.Context(), initial))
	defer w.Stop()
	assert.True(t, w.IsRunning())
	assert.Same(t, initial, w.GetCurrentConfig())

	require.NoError(t, os.WriteFile(path, []byte("[defaults]\ntype = \"error\"\n"), 0o600))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "error", cfg.Defaults.Type)
		assert.Same(t, cfg, w.GetCurrentConfig())
	case <-time.After(3 * time.Second):
		t.Fatal("config not reloaded")
	}
}

func TestConfigWatcher_ReportsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toastui.toml")

	w := NewConfigWatcher(path, nil)
	w.SetDebounce(20 * time.Millisecond)
	errs := make(chan error, 1)
	w.SetErrorCallback(func(err error) { errs <- err })
	w.SetReloadCallback(func(*config.Config) { t.Error("invalid config must not be applied") })

	initial := config.DefaultConfig()
	require.NoError(t, w.Start(t.Context(), initial))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("[audio]\nvolume = 500\n"), 0o600))

	select {
	case err := <-errs:
		assert.ErrorContains(t, err, "audio.volume")
		assert.Same(t, initial, w.GetCurrentConfig())
	case <-time.After(3 * time.Second):
		t.Fatal("error not reported")
	}
}

func TestConfigWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toastui.toml")

	w := NewConfigWatcher(path, nil)
	w.SetDebounce(10 * time.Millisecond)
	reloaded := make(chan struct{}, 1)
	w.SetReloadCallback(func(*config.Config) { reloaded <- struct{}{} })
	require.NoError(t, w.Start(t.Context(), config.DefaultConfig()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o600))

	select {
	case <-reloaded:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}

	w.Stop()
	w.Stop()
	assert.False(t, w.IsRunning())
}

func TestConfigWatcher_MissingDirectory(t *testing.T) {
	w := NewConfigWatcher(filepath.Join(t.TempDir(), "nope", "toastui.toml"), nil)
	assert.Error(t, w.Start(t.Context(), config.DefaultConfig()))
	assert.False(t, w.IsRunning())
}
