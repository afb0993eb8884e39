package shell

import (
	"log"

	"github.com/awsl-project/pake/internal/urlmatch"
)

// Native menu item identifiers
const (
	MenuReload     = "reload"
	MenuGoBack     = "go_back"
	MenuGoForward  = "go_forward"
	MenuGoHome     = "go_home"
	MenuClearCache = "clear_cache"
	MenuQuit       = "quit"
)

// HandleMenuClick dispatches a native menu item by id
func (a *App) HandleMenuClick(id string) {
	switch id {
	case MenuQuit:
		a.Quit()
		return
	case MenuClearCache:
		if a.clearCache != nil {
			a.clearCache()
		}
		return
	}

	var script string
	switch id {
	case MenuReload:
		script = "window.location.reload()"
	case MenuGoBack:
		script = "window.history.back()"
	case MenuGoForward:
		script = "window.history.forward()"
	case MenuGoHome:
		script = urlmatch.NavigateScript(a.cfg.URL)
	default:
		log.Printf("[Menu] Unknown menu item: %s", id)
		return
	}

	w, ok := a.Primary()
	if !ok {
		return
	}
	discard(id, w, w.Eval(script))
}
