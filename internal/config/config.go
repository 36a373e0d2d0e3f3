// Package config loads and saves the toastui configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/toastui/internal/toast"
)

// Config is the toastui configuration, loaded from
// ~/.config/toastui/toastui.toml.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Display  DisplayConfig  `toml:"display"`
	Theme    ThemeConfig    `toml:"theme"`
	Audio    AudioConfig    `toml:"audio"`
	History  HistoryConfig  `toml:"history"`
}

// DefaultsConfig holds the initial toast defaults. Unknown enum values are
// coerced to their built-in default when applied.
type DefaultsConfig struct {
	Type      string   `toml:"type"`
	Position  string   `toml:"position"`
	Duration  Duration `toml:"duration"` // 0 = no auto-dismiss
	Closable  bool     `toml:"closable"`
	Animation string   `toml:"animation"`
	Theme     string   `toml:"theme"`
	Icon      string   `toml:"icon"`
}

// DisplayConfig contains rendering settings.
type DisplayConfig struct {
	ExitDuration Duration `toml:"exit_duration"` // exit animation length
	Tick         Duration `toml:"tick"`          // terminal redraw interval

	// ClipboardCommand receives copied messages on stdin. Empty picks
	// wl-copy, xclip or xsel from PATH.
	ClipboardCommand string `toml:"clipboard_command,omitempty"`
}

// ThemeConfig selects the stylesheet.
type ThemeConfig struct {
	Name string `toml:"name"` // theme name without .css extension
}

// AudioConfig contains audio settings.
type AudioConfig struct {
	Enabled bool        `toml:"enabled"`
	Volume  int         `toml:"volume"` // 0-100
	Sounds  SoundConfig `toml:"sounds"`
}

// SoundConfig maps toast types to sound files.
type SoundConfig struct {
	Success string `toml:"success"`
	Error   string `toml:"error"`
	Warning string `toml:"warning"`
	Info    string `toml:"info"`
	Default string `toml:"default"`
}

// HistoryConfig controls the history log of closed toasts.
type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
	Keep    int  `toml:"keep"` // entries kept on prune, 0 = unlimited
}

// Bounds checked by Validate.
const (
	MaxExitDuration = 5 * time.Second
	MinTick         = 10 * time.Millisecond
	MaxTick         = time.Second
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	d := toast.DefaultConfig()
	return &Config{
		Defaults: DefaultsConfig{
			Type:      string(d.Type),
			Position:  string(d.Position),
			Duration:  Duration(d.Duration),
			Closable:  d.Closable,
			Animation: string(d.Animation),
			Theme:     string(d.Theme),
		},
		Display: DisplayConfig{
			ExitDuration: Duration(toast.DefaultExitDuration),
			Tick:         Duration(50 * time.Millisecond),
		},
		Theme: ThemeConfig{
			Name: "default",
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
		},
		History: HistoryConfig{
			Enabled: true,
			Keep:    1000,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "toastui", "toastui.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "toastui")
}

// HistoryPath returns the path to the history JSONL file.
func HistoryPath() string {
	return filepath.Join(DataPath(), "history.jsonl")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	path := DataPath()
	if path == "" {
		return errors.New("unable to determine data directory")
	}
	return os.MkdirAll(path, 0o755)
}

// LoadConfig loads the configuration from path, or from ConfigPath if path
// is empty. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path atomically.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks the numeric settings. Toast enum fields are not checked;
// they are coerced when applied.
func (c *Config) Validate() error {
	if c.Defaults.Duration < 0 {
		return fmt.Errorf("defaults.duration must not be negative, got %s", c.Defaults.Duration.Duration())
	}
	if exit := c.Display.ExitDuration.Duration(); exit < 0 || exit > MaxExitDuration {
		return fmt.Errorf("display.exit_duration must be between 0 and %s, got %s", MaxExitDuration, exit)
	}
	if tick := c.Display.Tick.Duration(); tick < MinTick || tick > MaxTick {
		return fmt.Errorf("display.tick must be between %s and %s, got %s", MinTick, MaxTick, tick)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("audio.volume must be between 0 and 100, got %d", c.Audio.Volume)
	}
	if c.History.Keep < 0 {
		return fmt.Errorf("history.keep must not be negative, got %d", c.History.Keep)
	}
	return nil
}

// ToastDefaults returns the [defaults] section as a toast option.
func (c *Config) ToastDefaults() toast.Partial {
	d := c.Defaults
	typ := toast.Type(d.Type)
	pos := toast.Position(d.Position)
	dur := d.Duration.Duration()
	closable := d.Closable
	anim := toast.Animation(d.Animation)
	th := toast.Theme(d.Theme)
	icon := d.Icon
	return toast.Partial{
		Type:      &typ,
		Position:  &pos,
		Duration:  &dur,
		Closable:  &closable,
		Animation: &anim,
		Theme:     &th,
		Icon:      &icon,
	}
}

// SoundFor returns the sound file for a toast type with ~ expanded.
// Types without their own sound use the default sound.
func (c *Config) SoundFor(t toast.Type) string {
	var path string
	switch t {
	case toast.TypeSuccess:
		path = c.Audio.Sounds.Success
	case toast.TypeError:
		path = c.Audio.Sounds.Error
	case toast.TypeWarning:
		path = c.Audio.Sounds.Warning
	case toast.TypeInfo:
		path = c.Audio.Sounds.Info
	}
	if path == "" {
		path = c.Audio.Sounds.Default
	}
	return expandPath(path)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
