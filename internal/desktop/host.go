package desktop

import (
	"log"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"

	"github.com/awsl-project/pake/internal/shell"
)

// stateSaveDelay coalesces bursts of move/resize events into one write
const stateSaveDelay = 500 * time.Millisecond

// wailsHost implements shell.Host on top of the Wails window manager
type wailsHost struct {
	app *application.App

	mu      sync.RWMutex
	windows map[string]*webWindow

	quitting atomic.Bool
	ready    readyGate

	// set once the shell app exists
	onClose func(w shell.Window) bool
	onSave  func(w shell.Window)
}

func newWailsHost(app *application.App) *wailsHost {
	return &wailsHost{app: app, windows: make(map[string]*webWindow)}
}

func (h *wailsHost) CreateWindow(spec shell.WindowSpec) (shell.Window, error) {
	native := h.app.Window.NewWithOptions(application.WebviewWindowOptions{
		Name:   spec.Label,
		Title:  spec.Title,
		URL:    spec.URL,
		Width:  spec.Width,
		Height: spec.Height,
		Hidden: spec.Hidden,
		JS:     spec.InitScript,
	})
	ww := newWebWindow(spec.Label, native, &h.ready)

	h.mu.Lock()
	h.windows[spec.Label] = ww
	h.mu.Unlock()

	h.attachHooks(ww)
	log.Printf("[Window] Created %s (%dx%d)", spec.Label, spec.Width, spec.Height)
	return ww, nil
}

func (h *wailsHost) attachHooks(ww *webWindow) {
	ww.w.RegisterHook(events.Common.WindowClosing, func(e *application.WindowEvent) {
		if h.quitting.Load() || h.onClose == nil {
			return
		}
		if h.onClose(ww) {
			e.Cancel()
		}
	})

	// listeners only run for closes that were not cancelled by a hook
	ww.w.OnWindowEvent(events.Common.WindowClosing, func(*application.WindowEvent) {
		if h.onSave != nil {
			h.onSave(ww)
		}
		ww.closed.Store(true)
		h.mu.Lock()
		delete(h.windows, ww.label)
		h.mu.Unlock()
	})

	debounced := debounce.New(stateSaveDelay)
	save := func(*application.WindowEvent) {
		if h.onSave == nil || h.quitting.Load() {
			return
		}
		debounced(func() { h.onSave(ww) })
	}
	ww.w.OnWindowEvent(events.Common.WindowDidMove, save)
	ww.w.OnWindowEvent(events.Common.WindowDidResize, save)
}

func (h *wailsHost) Window(label string) (shell.Window, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ww, ok := h.windows[label]
	if !ok {
		return nil, false
	}
	return ww, true
}

// Windows returns every open window ordered by label
func (h *wailsHost) Windows() []*webWindow {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*webWindow, 0, len(h.windows))
	for _, ww := range h.windows {
		out = append(out, ww)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].label < out[j].label })
	return out
}

func (h *wailsHost) Exit(code int) {
	log.Printf("[Launcher] Exiting with code %d", code)
	h.quitting.Store(true)
	if code != 0 {
		os.Exit(code)
	}
	h.app.Quit()
}
