package shell

import (
	"errors"
	"sync"
)

var errDestroyed = errors.New("window destroyed")

// fakeWindow records every operation applied to it
type fakeWindow struct {
	mu         sync.Mutex
	spec       WindowSpec
	visible    bool
	minimized  bool
	fullscreen bool
	focused    bool
	destroyed  bool
	ops        []string
	scripts    []string
}

func (w *fakeWindow) record(op string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ops = append(w.ops, op)
	if w.destroyed {
		return errDestroyed
	}
	switch op {
	case "show":
		w.visible = true
	case "hide":
		w.visible = false
		w.focused = false
	case "focus":
		w.focused = true
	case "minimize":
		w.minimized = true
	case "unminimize":
		w.minimized = false
	case "fullscreen":
		w.fullscreen = true
	case "unfullscreen":
		w.fullscreen = false
	}
	return nil
}

func (w *fakeWindow) Label() string     { return w.spec.Label }
func (w *fakeWindow) Show() error       { return w.record("show") }
func (w *fakeWindow) Hide() error       { return w.record("hide") }
func (w *fakeWindow) Focus() error      { return w.record("focus") }
func (w *fakeWindow) Minimize() error   { return w.record("minimize") }
func (w *fakeWindow) Unminimize() error { return w.record("unminimize") }

func (w *fakeWindow) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *fakeWindow) IsFullscreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen
}

func (w *fakeWindow) SetFullscreen(fullscreen bool) error {
	if fullscreen {
		return w.record("fullscreen")
	}
	return w.record("unfullscreen")
}

func (w *fakeWindow) Eval(script string) error {
	w.mu.Lock()
	w.scripts = append(w.scripts, script)
	w.mu.Unlock()
	return w.record("eval")
}

func (w *fakeWindow) Ops() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.ops...)
}

// fakeHost keeps windows by label and records exit calls instead of exiting
type fakeHost struct {
	mu        sync.Mutex
	windows   map[string]*fakeWindow
	created   []WindowSpec
	createErr error
	exitCodes []int
}

func newFakeHost() *fakeHost {
	return &fakeHost{windows: make(map[string]*fakeWindow)}
}

func (h *fakeHost) CreateWindow(spec WindowSpec) (Window, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.createErr != nil {
		return nil, h.createErr
	}
	w := &fakeWindow{spec: spec, visible: !spec.Hidden}
	h.windows[spec.Label] = w
	h.created = append(h.created, spec)
	return w, nil
}

func (h *fakeHost) Window(label string) (Window, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.windows[label]
	if !ok {
		return nil, false
	}
	return w, true
}

func (h *fakeHost) Exit(code int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.exitCodes = append(h.exitCodes, code)
}

func (h *fakeHost) fake(label string) *fakeWindow {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.windows[label]
}

// fakeState records restores and saves
type fakeState struct {
	mu       sync.Mutex
	restored []string
	saved    []string
}

func (s *fakeState) Restore(w Window) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restored = append(s.restored, w.Label())
	return nil
}

func (s *fakeState) Save(w Window) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, w.Label())
	return nil
}

func equalOps(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
