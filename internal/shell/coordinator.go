package shell

import (
	"log"

	"github.com/awsl-project/pake/internal/urlmatch"
)

// HandleSecondInstance runs inside the first process when another launch is
// forwarded to it. A launch carrying a URL on the configured host opens a
// new window; any other launch brings the primary window back.
func (a *App) HandleSecondInstance(args []string) {
	if url, ok := urlmatch.FindAllowedURL(args, a.cfg.URL); ok {
		a.openSecondary(url)
		return
	}

	w, ok := a.Primary()
	if !ok {
		log.Println("[Instance] Second launch without primary window, nothing to focus")
		return
	}
	discard("unminimize", w, w.Unminimize())
	discard("show", w, w.Show())
	discard("focus", w, w.Focus())
}

// openSecondary creates a window at the configured size, not the primary's
// current size. The title is left for the page to set.
func (a *App) openSecondary(url string) {
	label := a.labels.Next()
	w, err := a.host.CreateWindow(WindowSpec{
		Label:      label,
		URL:        url,
		Width:      a.cfg.Width,
		Height:     a.cfg.Height,
		InitScript: a.initScript,
	})
	if err != nil {
		log.Printf("[Instance] Window %s for %s not created: %v", label, url, err)
		return
	}
	log.Printf("[Instance] Opened %s for %s", label, url)
	discard("show", w, w.Show())
	discard("focus", w, w.Focus())
}
