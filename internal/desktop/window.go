package desktop

import (
	"errors"
	"sync/atomic"

	"github.com/wailsapp/wails/v3/pkg/application"

	"github.com/awsl-project/pake/internal/windowstate"
)

var errWindowClosed = errors.New("window closed")

// webWindow adapts a Wails webview window to the shell and state interfaces
type webWindow struct {
	label  string
	w      *application.WebviewWindow
	ready  *readyGate
	closed atomic.Bool
}

func newWebWindow(label string, w *application.WebviewWindow, ready *readyGate) *webWindow {
	return &webWindow{label: label, w: w, ready: ready}
}

func (ww *webWindow) Label() string {
	return ww.label
}

func (ww *webWindow) do(fn func()) error {
	if ww.closed.Load() {
		return errWindowClosed
	}
	fn()
	return nil
}

func (ww *webWindow) Show() error {
	return ww.do(func() { ww.w.Show() })
}

func (ww *webWindow) Hide() error {
	return ww.do(func() { ww.w.Hide() })
}

func (ww *webWindow) Focus() error {
	return ww.do(func() { ww.w.Focus() })
}

func (ww *webWindow) Minimize() error {
	return ww.do(func() { ww.w.Minimise() })
}

func (ww *webWindow) Unminimize() error {
	return ww.do(func() { ww.w.UnMinimise() })
}

func (ww *webWindow) IsVisible() bool {
	return !ww.closed.Load() && ww.w.IsVisible()
}

func (ww *webWindow) IsFullscreen() bool {
	return !ww.closed.Load() && ww.w.IsFullscreen()
}

func (ww *webWindow) SetFullscreen(fullscreen bool) error {
	return ww.do(func() {
		if fullscreen {
			ww.w.Fullscreen()
		} else {
			ww.w.UnFullscreen()
		}
	})
}

func (ww *webWindow) Eval(script string) error {
	return ww.do(func() { ww.w.ExecJS(script) })
}

// WhenReady defers fn until the native window accepts geometry
func (ww *webWindow) WhenReady(fn func()) {
	ww.ready.Do(fn)
}

func (ww *webWindow) Bounds() windowstate.Bounds {
	x, y := ww.w.Position()
	width, height := ww.w.Size()
	return windowstate.Bounds{X: x, Y: y, Width: width, Height: height}
}

func (ww *webWindow) SetBounds(b windowstate.Bounds) {
	if ww.closed.Load() {
		return
	}
	ww.w.SetSize(b.Width, b.Height)
	ww.w.SetPosition(b.X, b.Y)
}

func (ww *webWindow) IsMaximized() bool {
	return !ww.closed.Load() && ww.w.IsMaximised()
}

func (ww *webWindow) Maximize() {
	if !ww.closed.Load() {
		ww.w.Maximise()
	}
}
