package desktop

import "sync"

// readyGate holds callbacks until the native event loop is running. Wails
// drops geometry set on a window before its native handle exists.
type readyGate struct {
	mu    sync.Mutex
	open  bool
	queue []func()
}

// Do runs fn now if the gate is open, otherwise when it opens
func (g *readyGate) Do(fn func()) {
	g.mu.Lock()
	if !g.open {
		g.queue = append(g.queue, fn)
		g.mu.Unlock()
		return
	}
	g.mu.Unlock()
	fn()
}

// Open runs the queued callbacks in order. Later calls are no-ops.
func (g *readyGate) Open() {
	g.mu.Lock()
	if g.open {
		g.mu.Unlock()
		return
	}
	g.open = true
	queued := g.queue
	g.queue = nil
	g.mu.Unlock()

	for _, fn := range queued {
		fn()
	}
}
