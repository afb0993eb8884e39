package shell

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/awsl-project/pake/internal/urlmatch"
)

const (
	// ShowDelay lets state restoration apply geometry before first paint
	ShowDelay = 50 * time.Millisecond
	// NavigateDelay defers launch-URL navigation until the page has started loading
	NavigateDelay = 100 * time.Millisecond
)

var ErrPrimaryExists = errors.New("primary window already exists")

// BuildPrimary creates the hidden primary window, restores its saved state
// and schedules the reveal. args are the initial process arguments; a
// matching URL among them is opened in the primary window.
func (a *App) BuildPrimary(args []string) (Window, error) {
	if _, exists := a.Primary(); exists {
		return nil, ErrPrimaryExists
	}

	w, err := a.host.CreateWindow(WindowSpec{
		Label:      PrimaryLabel,
		Title:      a.cfg.Title,
		URL:        a.cfg.URL,
		Width:      a.cfg.Width,
		Height:     a.cfg.Height,
		Hidden:     true,
		InitScript: a.initScript,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create primary window: %w", err)
	}

	if a.state != nil {
		if err := a.state.Restore(w); err != nil {
			log.Printf("[State] Restore %s failed: %v", w.Label(), err)
		}
	}

	if url, ok := urlmatch.FindAllowedURL(args, a.cfg.URL); ok {
		a.sched.After(NavigateDelay, func() {
			discard("navigate", w, w.Eval(urlmatch.NavigateScript(url)))
		})
	}

	if a.cfg.StartsInTray() {
		log.Println("[Launcher] Starting in tray, primary window stays hidden")
		return w, nil
	}

	a.sched.After(ShowDelay, func() { a.reveal(w) })
	return w, nil
}

// reveal shows a freshly built window and applies the platform focus fix-ups
func (a *App) reveal(w Window) {
	discard("show", w, w.Show())

	if a.cfg.Fullscreen {
		discard("fullscreen", w, w.SetFullscreen(true))
		// some platforms drop input focus on the fullscreen transition
		discard("focus", w, w.Focus())
		return
	}

	if d := a.platform.FocusFixupDelay(); d > 0 {
		a.sched.After(d, func() {
			discard("focus", w, w.Focus())
		})
	}
}

// ShowPrimary brings the primary window to front from the tray or shortcut
func (a *App) ShowPrimary() {
	w, ok := a.Primary()
	if !ok {
		return
	}
	discard("unminimize", w, w.Unminimize())
	discard("show", w, w.Show())
	if a.cfg.Fullscreen && !w.IsFullscreen() {
		discard("fullscreen", w, w.SetFullscreen(true))
	}
	discard("focus", w, w.Focus())
}

// HidePrimary hides the primary window using the close-policy sequence
func (a *App) HidePrimary() {
	w, ok := a.Primary()
	if !ok {
		return
	}
	a.sched.After(0, func() { a.hide(w) })
}

// TogglePrimary hides a visible primary window and shows a hidden one
func (a *App) TogglePrimary() {
	w, ok := a.Primary()
	if !ok {
		return
	}
	if w.IsVisible() {
		a.HidePrimary()
		return
	}
	a.ShowPrimary()
}

// Reactivate handles the dock icon being clicked
func (a *App) Reactivate(hasVisibleWindows bool) {
	if hasVisibleWindows {
		return
	}
	w, ok := a.Primary()
	if !ok {
		return
	}
	discard("show", w, w.Show())
	discard("focus", w, w.Focus())
}

// Quit terminates the process
func (a *App) Quit() {
	if w, ok := a.Primary(); ok && a.state != nil {
		if err := a.state.Save(w); err != nil {
			log.Printf("[State] Save %s failed: %v", w.Label(), err)
		}
	}
	a.host.Exit(0)
}
