// Package shortcut parses accelerator strings such as "CmdOrControl+Shift+P"
// and registers them as system-wide hotkeys.
package shortcut

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Modifier is a platform-neutral modifier key
type Modifier int

const (
	ModCtrl Modifier = iota
	ModShift
	ModAlt
	ModSuper
)

func (m Modifier) String() string {
	switch m {
	case ModCtrl:
		return "Ctrl"
	case ModShift:
		return "Shift"
	case ModAlt:
		return "Alt"
	case ModSuper:
		return "Super"
	default:
		return fmt.Sprintf("Modifier(%d)", int(m))
	}
}

// Accelerator is a parsed shortcut: sorted unique modifiers and one key
type Accelerator struct {
	Modifiers []Modifier
	Key       string
}

func (a Accelerator) String() string {
	parts := make([]string, 0, len(a.Modifiers)+1)
	for _, m := range a.Modifiers {
		parts = append(parts, m.String())
	}
	return strings.Join(append(parts, a.Key), "+")
}

var (
	ErrEmpty      = errors.New("empty accelerator")
	ErrNoKey      = errors.New("accelerator has no key")
	ErrTwoKeys    = errors.New("accelerator has more than one key")
	ErrUnknownKey = errors.New("unknown key")
)

var keyAliases = map[string]string{
	"space":      "Space",
	"enter":      "Return",
	"return":     "Return",
	"esc":        "Escape",
	"escape":     "Escape",
	"tab":        "Tab",
	"delete":     "Delete",
	"up":         "Up",
	"down":       "Down",
	"left":       "Left",
	"right":      "Right",
	"arrowup":    "Up",
	"arrowdown":  "Down",
	"arrowleft":  "Left",
	"arrowright": "Right",
}

// Parse reads an accelerator for goos. CmdOrControl resolves to Super on
// macOS and Ctrl elsewhere.
func Parse(s, goos string) (Accelerator, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Accelerator{}, ErrEmpty
	}

	seen := make(map[Modifier]bool)
	var acc Accelerator
	for _, raw := range strings.Split(s, "+") {
		token := strings.TrimSpace(raw)
		if token == "" {
			return Accelerator{}, fmt.Errorf("malformed accelerator %q", s)
		}
		if mod, ok := parseModifier(token, goos); ok {
			seen[mod] = true
			continue
		}
		if acc.Key != "" {
			return Accelerator{}, fmt.Errorf("%w: %q", ErrTwoKeys, s)
		}
		key, err := parseKey(token)
		if err != nil {
			return Accelerator{}, err
		}
		acc.Key = key
	}
	if acc.Key == "" {
		return Accelerator{}, fmt.Errorf("%w: %q", ErrNoKey, s)
	}

	for mod := range seen {
		acc.Modifiers = append(acc.Modifiers, mod)
	}
	sort.Slice(acc.Modifiers, func(i, j int) bool { return acc.Modifiers[i] < acc.Modifiers[j] })
	return acc, nil
}

func parseModifier(token, goos string) (Modifier, bool) {
	switch strings.ToLower(token) {
	case "cmdorcontrol", "commandorcontrol", "cmdorctrl", "commandorctrl":
		if goos == "darwin" {
			return ModSuper, true
		}
		return ModCtrl, true
	case "ctrl", "control":
		return ModCtrl, true
	case "shift":
		return ModShift, true
	case "alt", "option":
		return ModAlt, true
	case "cmd", "command", "super", "meta", "win":
		return ModSuper, true
	}
	return 0, false
}

func parseKey(token string) (string, error) {
	if len(token) == 1 {
		c := strings.ToUpper(token)[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return string(c), nil
		}
	}
	lower := strings.ToLower(token)
	if alias, ok := keyAliases[lower]; ok {
		return alias, nil
	}
	if strings.HasPrefix(lower, "f") {
		var n int
		if _, err := fmt.Sscanf(lower, "f%d", &n); err == nil && n >= 1 && n <= 12 && fmt.Sprintf("f%d", n) == lower {
			return fmt.Sprintf("F%d", n), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, token)
}
