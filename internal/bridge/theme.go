package bridge

import "fmt"

// ThemeMode is the page's requested color scheme
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// ParseThemeMode accepts "light" or "dark"
func ParseThemeMode(s string) (ThemeMode, error) {
	switch ThemeMode(s) {
	case ThemeLight, ThemeDark:
		return ThemeMode(s), nil
	default:
		return "", fmt.Errorf("unsupported theme mode %q", s)
	}
}

// ThemeScript returns the script that forces the page's color scheme
func ThemeScript(mode ThemeMode) string {
	return fmt.Sprintf("document.documentElement.style.colorScheme = '%s'", mode)
}
