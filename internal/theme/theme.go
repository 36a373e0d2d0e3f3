package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// importRegex matches @import "file.css"; @import 'file.css'; and
// @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a loaded stylesheet.
type Theme struct {
	Name      string
	Path      string // empty for bundled themes
	CSS       string // imports already inlined
	ModTime   time.Time
	IsBundled bool
}

// NewTheme loads a theme from a CSS file, inlining its imports.
func NewTheme(name, path string) (*Theme, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat theme %s: %w", name, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", name, err)
	}

	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     ProcessImports(string(data), filepath.Dir(path), nil),
		ModTime: info.ModTime(),
	}, nil
}

// NewBundledTheme returns the embedded theme with the given name.
func NewBundledTheme(name string) (*Theme, bool) {
	css, ok := GetEmbeddedTheme(name)
	if !ok {
		return nil, false
	}
	return &Theme{
		Name:      name,
		CSS:       ProcessImports(css, "", nil),
		IsBundled: true,
	}, true
}

// ProcessImports inlines @import statements, resolving paths relative to
// baseDir. Files that cannot be read fall back to a bundled theme of the
// same base name. seen guards against import cycles.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		sub := importRegex.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		ref := sub[1]

		full := ref
		if !filepath.IsAbs(ref) {
			full = filepath.Join(baseDir, ref)
		}
		if seen[full] {
			return "/* circular import skipped: " + ref + " */"
		}
		seen[full] = true

		data, err := os.ReadFile(full)
		if err != nil {
			name := strings.TrimSuffix(filepath.Base(ref), ".css")
			if bundled, ok := GetEmbeddedTheme(name); ok {
				return "/* imported (bundled): " + ref + " */\n" + ProcessImports(bundled, "", seen)
			}
			return "/* import failed: " + ref + " */"
		}

		return "/* imported: " + ref + " */\n" + ProcessImports(string(data), filepath.Dir(full), seen)
	})
}

// Reload re-reads the theme file if its modification time advanced and
// reports whether the resolved CSS changed.
func (t *Theme) Reload() (bool, error) {
	if t.IsBundled {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	data, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}

	css := ProcessImports(string(data), filepath.Dir(t.Path), nil)
	changed := css != t.CSS
	t.CSS = css
	t.ModTime = info.ModTime()
	return changed, nil
}

// ThemesDir returns the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "toastui", "themes"), nil
}
