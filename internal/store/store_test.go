package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	old := testEntry("old", now.Add(-2*time.Hour))
	mid := testEntry("mid", now.Add(-30*time.Minute))
	mid.Type = "error"
	recent := testEntry("recent", now.Add(-time.Minute))
	entries := []Entry{old, recent, mid}

	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{"all newest first", FilterOptions{}, []string{"recent", "mid", "old"}},
		{"since", FilterOptions{Since: time.Hour}, []string{"recent", "mid"}},
		{"type", FilterOptions{Type: "error"}, []string{"mid"}},
		{"limit", FilterOptions{Limit: 1}, []string{"recent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, e := range Filter(entries, tt.opts, now) {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestEntry_Visible(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 4*time.Second, testEntry("a", now).Visible())
	assert.Zero(t, Entry{ShownAt: now, ClosedAt: now.Add(-time.Second)}.Visible())
}

func TestFileWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.jsonl")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	changed := make(chan struct{}, 16)
	fw, err := NewFileWatcher(path, func() { changed <- struct{}{} }, nil)
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	defer fw.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o600))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("write not reported")
	}
}
