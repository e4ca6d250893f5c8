// Package config loads and saves the listings configuration file.
//
// The file lives at ~/.listings/config.toml and is plain TOML:
//
//	user_email = "dana@example.com"
//	data_file  = "~/.listings/listings.toml"
//	log_level  = "info"
//
//	[overlay]
//	gap = 0
//	margin = 1
//
//	[keybindings]
//	"menu.user" = "u"
//
// Missing values are filled from Default so a partial file is valid.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/treykane/listings/internal/logging"
)

const (
	configDirName  = ".listings"
	configFileName = "config.toml"
	dataFileName   = "listings.toml"
	keymapFileName = "keymap.toml"
)

var log = logging.New("config")

var ErrNotConfigured = errors.New("listings is not configured")

// Config stores user-defined settings.
type Config struct {
	// UserEmail is the signed-in user.
	UserEmail string `toml:"user_email"`
	// DataFile is the TOML file holding listings and users.
	DataFile string `toml:"data_file"`
	// LogFile receives log output when set; otherwise logs go to stderr.
	LogFile  string `toml:"log_file,omitempty"`
	LogLevel string `toml:"log_level,omitempty"`

	Overlay Overlay `toml:"overlay"`
	Theme   Theme   `toml:"theme"`

	// Keybindings maps action names to a replacement key.
	Keybindings map[string]string `toml:"keybindings,omitempty"`
	// KeymapFile holds further overrides, applied after Keybindings.
	KeymapFile string `toml:"keymap_file,omitempty"`
}

// Overlay holds the floating panel metrics, in terminal cells.
type Overlay struct {
	Gap              float64 `toml:"gap"`
	Margin           float64 `toml:"margin"`
	ArrowSize        float64 `toml:"arrow_size"`
	ArrowInset       float64 `toml:"arrow_inset"`
	MaxHeightPercent float64 `toml:"max_height_percent"`
}

// Theme holds ANSI color values (names of 256-color indices or hex).
type Theme struct {
	Accent          string `toml:"accent"`
	Border          string `toml:"border"`
	Foreground      string `toml:"foreground"`
	Background      string `toml:"background"`
	TitleForeground string `toml:"title_foreground"`
	TitleBackground string `toml:"title_background"`
}

// DefaultOverlay matches the engine's cell metrics with a 60% height cap.
var DefaultOverlay = Overlay{
	Gap:              0,
	Margin:           1,
	ArrowSize:        2,
	ArrowInset:       1,
	MaxHeightPercent: 60,
}

// DefaultTheme is the dark palette the UI ships with.
var DefaultTheme = Theme{
	Accent:          "62",
	Border:          "240",
	Foreground:      "250",
	Background:      "236",
	TitleForeground: "255",
	TitleBackground: "238",
}

// Default returns a configuration with every optional value filled in and
// paths under the user's home directory.
func Default() (Config, error) {
	dir, err := configDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		DataFile:   filepath.Join(dir, dataFileName),
		LogLevel:   "info",
		Overlay:    DefaultOverlay,
		Theme:      DefaultTheme,
		KeymapFile: filepath.Join(dir, keymapFileName),
	}, nil
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName), nil
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat config path: %w", err)
}

// Load reads the configuration from ConfigPath.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates the configuration at path. A missing file
// yields ErrNotConfigured.
func LoadFrom(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, ErrNotConfigured
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		log.Warn("ignoring unknown config keys", "path", path, "keys", fmt.Sprint(undecoded))
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to ConfigPath.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes cfg to path, creating the parent directory with owner-only
// permissions.
func SaveTo(path string, cfg Config) error {
	if err := cfg.normalize(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	log.Info("saved config", "path", path)
	return nil
}

// normalize expands paths and replaces out-of-range overlay values with
// their defaults.
func (c *Config) normalize() error {
	c.UserEmail = strings.ToLower(strings.TrimSpace(c.UserEmail))

	dataFile, err := NormalizePath(c.DataFile)
	if err != nil {
		return fmt.Errorf("invalid data_file: %w", err)
	}
	c.DataFile = dataFile

	if strings.TrimSpace(c.LogFile) != "" {
		logFile, err := NormalizePath(c.LogFile)
		if err != nil {
			return fmt.Errorf("invalid log_file: %w", err)
		}
		c.LogFile = logFile
	}
	if strings.TrimSpace(c.KeymapFile) != "" {
		keymap, err := NormalizePath(c.KeymapFile)
		if err != nil {
			return fmt.Errorf("invalid keymap_file: %w", err)
		}
		c.KeymapFile = keymap
	}

	if c.Overlay.Gap < 0 {
		c.Overlay.Gap = DefaultOverlay.Gap
	}
	if c.Overlay.Margin < 0 {
		c.Overlay.Margin = DefaultOverlay.Margin
	}
	if c.Overlay.ArrowSize < 0 {
		c.Overlay.ArrowSize = DefaultOverlay.ArrowSize
	}
	if c.Overlay.ArrowInset < 0 {
		c.Overlay.ArrowInset = DefaultOverlay.ArrowInset
	}
	if c.Overlay.MaxHeightPercent <= 0 || c.Overlay.MaxHeightPercent > 100 {
		c.Overlay.MaxHeightPercent = DefaultOverlay.MaxHeightPercent
	}
	return nil
}

// NormalizePath expands and normalizes a file path.
func NormalizePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}

	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(abs), nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}
