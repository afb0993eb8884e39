package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

//go:embed pake.json
var defaultConfig []byte

const (
	DefaultWidth  = 1200
	DefaultHeight = 780
	DefaultName   = "Pake"
)

var (
	ErrNoWindows  = errors.New("config: at least one window is required")
	ErrMissingURL = errors.New("config: window url is required")
)

// WindowConfig mirrors one entry of the "windows" array in pake.json
type WindowConfig struct {
	URL                string `json:"url" yaml:"url"`
	Title              string `json:"title" yaml:"title"`
	Width              int    `json:"width" yaml:"width"`
	Height             int    `json:"height" yaml:"height"`
	Fullscreen         bool   `json:"fullscreen" yaml:"fullscreen"`
	HideOnClose        bool   `json:"hide_on_close" yaml:"hide_on_close"`
	StartToTray        bool   `json:"start_to_tray" yaml:"start_to_tray"`
	ActivationShortcut string `json:"activation_shortcut" yaml:"activation_shortcut"`
}

// SystemTray enables the tray per platform
type SystemTray struct {
	MacOS   bool `json:"macos" yaml:"macos"`
	Linux   bool `json:"linux" yaml:"linux"`
	Windows bool `json:"windows" yaml:"windows"`
}

// Enabled reports the tray setting for goos
func (s SystemTray) Enabled(goos string) bool {
	switch goos {
	case "darwin":
		return s.MacOS
	case "linux":
		return s.Linux
	case "windows":
		return s.Windows
	default:
		return false
	}
}

// File is the on-disk shape of pake.json / pake.yaml
type File struct {
	Name           string         `json:"name" yaml:"name"`
	Windows        []WindowConfig `json:"windows" yaml:"windows"`
	UserAgent      string         `json:"user_agent" yaml:"user_agent"`
	SystemTray     SystemTray     `json:"system_tray" yaml:"system_tray"`
	SystemTrayPath string         `json:"system_tray_path" yaml:"system_tray_path"`
	MultiInstance  bool           `json:"multi_instance" yaml:"multi_instance"`
}

// LaunchConfig is the resolved, read-only configuration shared by every
// component. It is built once before any window exists and never mutated.
type LaunchConfig struct {
	Name               string
	URL                string
	Title              string
	Width              int
	Height             int
	Fullscreen         bool
	HideOnClose        bool
	StartToTray        bool
	ShowSystemTray     bool
	ActivationShortcut string
	MultiInstance      bool
	SystemTrayPath     string
	UserAgent          string
}

// StartsInTray reports whether the primary window stays hidden at startup.
// Start-to-tray only applies when a tray exists to summon the window from.
func (c *LaunchConfig) StartsInTray() bool {
	return c.StartToTray && c.ShowSystemTray
}

// Default returns the embedded configuration
func Default() (*LaunchConfig, error) {
	return Parse(defaultConfig, FormatJSON)
}

// Format selects the decoder for a config document
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks a decoder by file extension, defaulting to JSON
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and resolves a config file. An empty path loads the embedded default.
func Load(path string) (*LaunchConfig, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a config document and resolves it for the running platform
func Parse(data []byte, format Format) (*LaunchConfig, error) {
	var f File
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	default:
		err = sonic.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return f.Resolve(runtime.GOOS)
}

// Resolve flattens the first window entry and the tray setting for goos
func (f *File) Resolve(goos string) (*LaunchConfig, error) {
	if len(f.Windows) == 0 {
		return nil, ErrNoWindows
	}
	w := f.Windows[0]
	if strings.TrimSpace(w.URL) == "" {
		return nil, ErrMissingURL
	}

	cfg := &LaunchConfig{
		Name:               f.Name,
		URL:                w.URL,
		Title:              w.Title,
		Width:              w.Width,
		Height:             w.Height,
		Fullscreen:         w.Fullscreen,
		HideOnClose:        w.HideOnClose,
		StartToTray:        w.StartToTray,
		ShowSystemTray:     f.SystemTray.Enabled(goos),
		ActivationShortcut: strings.TrimSpace(w.ActivationShortcut),
		MultiInstance:      f.MultiInstance,
		SystemTrayPath:     f.SystemTrayPath,
		UserAgent:          f.UserAgent,
	}
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	return cfg, nil
}
