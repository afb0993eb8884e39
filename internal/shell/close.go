package shell

import "log"

// HandleCloseRequest decides what a window close does. It returns true when
// the native close must be suppressed.
//
// Without hide_on_close the process exits at once with code 0. Otherwise
// the window is hidden in the background and the process keeps running.
func (a *App) HandleCloseRequest(w Window) bool {
	if !a.cfg.HideOnClose {
		log.Printf("[Launcher] Close requested on %s, exiting", w.Label())
		a.host.Exit(0)
		return false
	}

	a.sched.After(0, func() { a.hide(w) })
	return true
}

// hide runs the platform hide sequence. It is always called from a deferred task.
func (a *App) hide(w Window) {
	if a.platform.LeavesFullscreenBeforeHide() && w.IsFullscreen() {
		discard("unfullscreen", w, w.SetFullscreen(false))
		if a.platform.RefocusAfterFullscreenExit() {
			discard("focus", w, w.Focus())
		}
		if d := a.platform.ExitFullscreenSettle(); d > 0 {
			a.sched.After(d, func() { a.finishHide(w) })
			return
		}
	}
	a.finishHide(w)
}

func (a *App) finishHide(w Window) {
	if a.state != nil {
		if err := a.state.Save(w); err != nil {
			log.Printf("[State] Save %s failed: %v", w.Label(), err)
		}
	}
	if a.platform.MinimizeBeforeHide() {
		discard("minimize", w, w.Minimize())
	}
	discard("hide", w, w.Hide())
}
