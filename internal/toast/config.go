package toast

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Type selects the visual variant and default icon.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
	TypeDefault Type = "default"
)

// Position is the screen anchor of a container.
type Position string

const (
	TopLeft      Position = "top-left"
	TopCenter    Position = "top-center"
	TopRight     Position = "top-right"
	BottomLeft   Position = "bottom-left"
	BottomCenter Position = "bottom-center"
	BottomRight  Position = "bottom-right"
)

// Animation is the entry animation family.
type Animation string

const (
	AnimationSlide  Animation = "slide"
	AnimationFade   Animation = "fade"
	AnimationBounce Animation = "bounce"
	AnimationZoom   Animation = "zoom"
)

// Theme is the color scheme of a toast.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultDuration is how long a toast stays up unless configured otherwise.
const DefaultDuration = 4 * time.Second

// ValidTypes returns all toast types.
func ValidTypes() []Type {
	return []Type{TypeSuccess, TypeError, TypeWarning, TypeInfo, TypeDefault}
}

// ValidPositions returns all positions in layout order.
func ValidPositions() []Position {
	return []Position{TopLeft, TopCenter, TopRight, BottomLeft, BottomCenter, BottomRight}
}

// ValidAnimations returns all animation families.
func ValidAnimations() []Animation {
	return []Animation{AnimationSlide, AnimationFade, AnimationBounce, AnimationZoom}
}

// ValidThemes returns all themes.
func ValidThemes() []Theme {
	return []Theme{ThemeLight, ThemeDark}
}

// IsBottom reports whether the position is anchored to the bottom edge.
func (p Position) IsBottom() bool {
	return p == BottomLeft || p == BottomCenter || p == BottomRight
}

// Config is the resolved set of options for one toast.
type Config struct {
	Type      Type
	Position  Position
	Duration  time.Duration // 0 disables auto-dismiss
	Closable  bool
	Animation Animation
	Theme     Theme
	Icon      string // overrides the type's default icon

	OnClick func()
	OnClose func()
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Type:      TypeDefault,
		Position:  TopRight,
		Duration:  DefaultDuration,
		Closable:  true,
		Animation: AnimationSlide,
		Theme:     ThemeLight,
	}
}

// Normalize coerces a configuration into its allowed ranges. Unknown enum
// values fall back to the built-in default of their field and a negative
// duration becomes zero. It never fails.
func Normalize(c Config) Config {
	def := DefaultConfig()
	if !slices.Contains(ValidTypes(), c.Type) {
		c.Type = def.Type
	}
	if !slices.Contains(ValidPositions(), c.Position) {
		c.Position = def.Position
	}
	if !slices.Contains(ValidAnimations(), c.Animation) {
		c.Animation = def.Animation
	}
	if !slices.Contains(ValidThemes(), c.Theme) {
		c.Theme = def.Theme
	}
	if c.Duration < 0 {
		c.Duration = 0
	}
	return c
}

// ParseEnum is the strict counterpart of Normalize for user input: it
// accepts value case-insensitively and rejects anything not in valid.
func ParseEnum[T ~string](name, value string, valid []T) (T, error) {
	v := T(strings.ToLower(strings.TrimSpace(value)))
	if slices.Contains(valid, v) {
		return v, nil
	}
	names := make([]string, len(valid))
	for i, s := range valid {
		names[i] = string(s)
	}
	return "", fmt.Errorf("invalid %s %q (use %s)", name, value, strings.Join(names, ", "))
}

var defaultIcons = map[Type]string{
	TypeSuccess: "✅",
	TypeError:   "❌",
	TypeWarning: "⚠️",
	TypeInfo:    "ℹ️",
	TypeDefault: "💬",
}

// IconFor returns the icon shown for a resolved configuration.
func IconFor(c Config) string {
	if c.Icon != "" {
		return c.Icon
	}
	if icon, ok := defaultIcons[c.Type]; ok {
		return icon
	}
	return defaultIcons[TypeDefault]
}
