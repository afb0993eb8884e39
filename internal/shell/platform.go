package shell

import "time"

// Platform captures the per-OS differences in the reveal and hide sequences.
// It is selected once at startup.
type Platform interface {
	Name() string
	// LeavesFullscreenBeforeHide reports whether a fullscreen window must
	// exit fullscreen before it can be hidden.
	LeavesFullscreenBeforeHide() bool
	// ExitFullscreenSettle is the wait between leaving fullscreen and hiding.
	ExitFullscreenSettle() time.Duration
	// RefocusAfterFullscreenExit restores input focus dropped by the transition.
	RefocusAfterFullscreenExit() bool
	// MinimizeBeforeHide minimizes before hiding. macOS skips it to avoid a
	// duplicate Dock entry.
	MinimizeBeforeHide() bool
	// FocusFixupDelay is the wait after first show before focus is
	// re-asserted. Zero disables the fix-up.
	FocusFixupDelay() time.Duration
}

const (
	macFullscreenSettle = 900 * time.Millisecond
	linuxFocusFixup     = 30 * time.Millisecond
)

type platformPolicy struct {
	name            string
	leaveFullscreen bool
	settle          time.Duration
	refocus         bool
	minimize        bool
	focusFixup      time.Duration
}

func (p platformPolicy) Name() string                        { return p.name }
func (p platformPolicy) LeavesFullscreenBeforeHide() bool    { return p.leaveFullscreen }
func (p platformPolicy) ExitFullscreenSettle() time.Duration { return p.settle }
func (p platformPolicy) RefocusAfterFullscreenExit() bool    { return p.refocus }
func (p platformPolicy) MinimizeBeforeHide() bool            { return p.minimize }
func (p platformPolicy) FocusFixupDelay() time.Duration      { return p.focusFixup }

// PlatformFor returns the policy for a GOOS value
func PlatformFor(goos string) Platform {
	switch goos {
	case "darwin":
		return platformPolicy{
			name:            goos,
			leaveFullscreen: true,
			settle:          macFullscreenSettle,
		}
	case "linux":
		// GNOME keeps decorations inert until the window manager has
		// processed the map event, hence the focus fix-up.
		return platformPolicy{
			name:            goos,
			leaveFullscreen: true,
			refocus:         true,
			minimize:        true,
			focusFixup:      linuxFocusFixup,
		}
	default:
		return platformPolicy{
			name:     goos,
			minimize: true,
		}
	}
}
