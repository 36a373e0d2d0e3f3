package theme

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSS(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessImports_NoImports(t *testing.T) {
	css := `.toast { color: red; }`
	assert.Equal(t, css, ProcessImports(css, "", nil))
}

func TestProcessImports_Nested(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, dir, "_grandchild.css", `.grandchild { color: blue; }`)
	writeCSS(t, dir, "_child.css", "@import \"_grandchild.css\";\n.child { color: green; }")

	result := ProcessImports("@import \"_child.css\";\n.main { color: red; }", dir, nil)

	assert.Contains(t, result, "/* imported: _child.css */")
	assert.Contains(t, result, "/* imported: _grandchild.css */")
	assert.Contains(t, result, ".grandchild")
	assert.Contains(t, result, ".main")
}

func TestProcessImports_Circular(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, dir, "_a.css", "@import \"_b.css\";\n.a {}")
	writeCSS(t, dir, "_b.css", "@import \"_a.css\";\n.b {}")

	result := ProcessImports(`@import "_a.css";`, dir, nil)

	assert.Contains(t, result, "/* imported: _b.css */")
	assert.Contains(t, result, "/* circular import skipped: _a.css */")
}

func TestProcessImports_MissingFile(t *testing.T) {
	result := ProcessImports(`@import "nonexistent.css";`, t.TempDir(), nil)
	assert.Equal(t, "/* import failed: nonexistent.css */", result)
}

func TestProcessImports_FallsBackToBundled(t *testing.T) {
	result := ProcessImports(`@import "default.css";`, t.TempDir(), nil)
	assert.Contains(t, result, "/* imported (bundled): default.css */")
	assert.Contains(t, result, ".toast-container")
}

func TestImportRegex(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`@import "file.css";`, "file.css"},
		{`@import 'file.css';`, "file.css"},
		{`@import url("file.css");`, "file.css"},
		{`@import url( 'file.css' );`, "file.css"},
		{`@import "_partial.css"`, "_partial.css"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := importRegex.FindStringSubmatch(tt.input)
			require.Len(t, m, 2)
			assert.Equal(t, tt.expected, m[1])
		})
	}
}

func TestTheme_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeCSS(t, dir, "custom.css", `.toast { color: red; }`)

	th, err := NewTheme("custom", path)
	require.NoError(t, err)

	changed, err := th.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "unchanged mtime should not reload")

	writeCSS(t, dir, "_extra.css", `:root { --accent: blue; }`)
	writeCSS(t, dir, "custom.css", "@import \"_extra.css\";\n.toast { color: var(--accent); }")
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	changed, err = th.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, th.CSS, "--accent: blue")
}

func TestLoader_ResolutionOrder(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, dir, "compact.css", `.toast { color: hotpink; }`)

	var applied string
	l := NewLoader(dir, func(css string) { applied = css }, nil)

	th := l.Load("compact")
	assert.False(t, th.IsBundled, "user theme should shadow the bundled one")
	assert.Contains(t, applied, "hotpink")

	th = l.Load("default")
	assert.True(t, th.IsBundled)
	assert.Equal(t, th.CSS, applied)

	th = l.Load("missing")
	assert.Equal(t, DefaultThemeName, th.Name)
	assert.Same(t, th, l.Current())
}

func TestLoader_ListThemes(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, dir, "mine.css", `.toast {}`)
	writeCSS(t, dir, "default.css", `.toast {}`)
	writeCSS(t, dir, "notes.txt", ``)

	l := NewLoader(dir, nil, nil)
	assert.ElementsMatch(t, []string{"default", "compact", "mine"}, l.ListThemes())
}

func TestWatcher_RejectsBundled(t *testing.T) {
	th, ok := NewBundledTheme("default")
	require.True(t, ok)
	w := NewWatcher(th, nil)
	assert.Error(t, w.Start(t.Context()))
	assert.False(t, w.IsRunning())
}

func TestWatcher_ReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeCSS(t, dir, "live.css", `.toast { color: red; }`)
	th, err := NewTheme("live", path)
	require.NoError(t, err)

	got := make(chan string, 1)
	w := NewWatcher(th, nil)
	w.SetPollInterval(10 * time.Millisecond)
	w.SetChangeCallback(func(css string) {
		select {
		case got <- css:
		default:
		}
	})
	require.NoError(t, w.Start(t.Context()))
	defer w.Stop()

	writeCSS(t, dir, "live.css", `.toast { color: green; }`)
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	select {
	case css := <-got:
		assert.Contains(t, css, "green")
	case <-time.After(2 * time.Second):
		t.Fatal("change not reported")
	}
}

func TestLoader_HotReload(t *testing.T) {
	dir := t.TempDir()
	path := writeCSS(t, dir, "live.css", `.toast { color: red; }`)

	applied := make(chan string, 4)
	reloaded := make(chan string, 1)
	l := NewLoader(dir, func(css string) { applied <- css }, nil)
	l.SetReloadCallback(func(name string) { reloaded <- name })

	l.Load("live")
	assert.Contains(t, <-applied, "red")

	l.StartHotReload(t.Context())
	defer l.StopHotReload()

	writeCSS(t, dir, "live.css", `.toast { color: green; }`)
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	select {
	case name := <-reloaded:
		assert.Equal(t, "live", name)
		assert.Contains(t, <-applied, "green")
	case <-time.After(5 * time.Second):
		t.Fatal("theme not reloaded")
	}
}
