package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if cfg.URL == "" {
		t.Error("default config has no url")
	}
	if cfg.Width != 1200 || cfg.Height != 780 {
		t.Errorf("default size = %dx%d, want 1200x780", cfg.Width, cfg.Height)
	}
	if !cfg.HideOnClose {
		t.Error("default config should hide on close")
	}
	if cfg.MultiInstance {
		t.Error("default config should be single instance")
	}
}

func TestResolveTrayPerPlatform(t *testing.T) {
	f := File{
		Windows:    []WindowConfig{{URL: "https://example.com"}},
		SystemTray: SystemTray{MacOS: false, Linux: true, Windows: true},
	}
	tests := []struct {
		goos     string
		expected bool
	}{
		{goos: "darwin", expected: false},
		{goos: "linux", expected: true},
		{goos: "windows", expected: true},
		{goos: "freebsd", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cfg, err := f.Resolve(tt.goos)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if cfg.ShowSystemTray != tt.expected {
				t.Errorf("ShowSystemTray = %v, want %v", cfg.ShowSystemTray, tt.expected)
			}
		})
	}
}

func TestResolveDefaultsAndErrors(t *testing.T) {
	if _, err := (&File{}).Resolve("linux"); !errors.Is(err, ErrNoWindows) {
		t.Errorf("empty windows error = %v, want ErrNoWindows", err)
	}
	if _, err := (&File{Windows: []WindowConfig{{URL: "  "}}}).Resolve("linux"); !errors.Is(err, ErrMissingURL) {
		t.Errorf("blank url error = %v, want ErrMissingURL", err)
	}

	cfg, err := (&File{Windows: []WindowConfig{{URL: "https://example.com", Width: -1}}}).Resolve("linux")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Errorf("size = %dx%d, want defaults", cfg.Width, cfg.Height)
	}
	if cfg.Name != DefaultName {
		t.Errorf("Name = %q, want %q", cfg.Name, DefaultName)
	}
}

func TestStartsInTray(t *testing.T) {
	tests := []struct {
		name        string
		startToTray bool
		showTray    bool
		expected    bool
	}{
		{name: "both", startToTray: true, showTray: true, expected: true},
		{name: "no tray", startToTray: true, showTray: false, expected: false},
		{name: "not requested", startToTray: false, showTray: true, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &LaunchConfig{StartToTray: tt.startToTray, ShowSystemTray: tt.showTray}
			if got := cfg.StartsInTray(); got != tt.expected {
				t.Errorf("StartsInTray() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pake.yaml")
	doc := `name: Weekly
windows:
  - url: https://example.com/
    width: 800
    height: 600
    fullscreen: true
    activation_shortcut: "CmdOrControl+Shift+P"
multi_instance: true
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Name != "Weekly" || cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.Fullscreen || !cfg.MultiInstance {
		t.Errorf("flags not decoded: %+v", cfg)
	}
	if cfg.ActivationShortcut != "CmdOrControl+Shift+P" {
		t.Errorf("ActivationShortcut = %q", cfg.ActivationShortcut)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pake.json")
	doc := `{"windows":[{"url":"http://localhost:3000","hide_on_close":false,"start_to_tray":true}],"system_tray":{"macos":true,"linux":true,"windows":true}}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.URL != "http://localhost:3000" || cfg.HideOnClose {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.StartsInTray() {
		t.Error("StartsInTray() = false, want true")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed file")
	}
}
