// Package windowstate saves and restores window geometry between runs.
package windowstate

import (
	"fmt"
	"log"
	"sync"
)

// StateFlags selects which parts of a window's state are tracked
type StateFlags uint32

const (
	FlagSize StateFlags = 1 << iota
	FlagPosition
	FlagMaximized
	FlagVisible
	FlagFullscreen

	FlagsAll = FlagSize | FlagPosition | FlagMaximized | FlagVisible | FlagFullscreen
)

// Has reports whether every bit of other is set
func (f StateFlags) Has(other StateFlags) bool {
	return f&other == other
}

// TrackedFlags returns the flags for a window's initial mode. Visibility is
// never restored so the window does not flash before it is positioned. A
// window that starts fullscreen only tracks fullscreen, otherwise a stale
// windowed size would be restored underneath it.
func TrackedFlags(initFullscreen bool) StateFlags {
	if initFullscreen {
		return FlagFullscreen
	}
	return FlagsAll &^ FlagVisible
}

// Bounds is a window's outer rectangle in screen coordinates
type Bounds struct {
	X, Y, Width, Height int
}

// Target is a window whose state can be captured and applied
type Target interface {
	Label() string
	Bounds() Bounds
	SetBounds(b Bounds)
	IsMaximized() bool
	Maximize()
	IsVisible() bool
	Show() error
	IsFullscreen() bool
	SetFullscreen(fullscreen bool) error
}

// Deferred is implemented by targets whose native window is created after
// the handle. Geometry applied before WhenReady fires is lost.
type Deferred interface {
	WhenReady(fn func())
}

// Tracker applies a flag set on top of a Store
type Tracker struct {
	store *Store
	flags StateFlags

	mu      sync.Mutex
	pending map[string]bool
}

// NewTracker creates a tracker for the given flags
func NewTracker(store *Store, flags StateFlags) *Tracker {
	return &Tracker{store: store, flags: flags, pending: make(map[string]bool)}
}

// Restore applies the saved state of w, if any. For a Deferred target the
// state is applied once it is ready, and saves for it are skipped until then
// so the default placement never overwrites the record.
func (t *Tracker) Restore(w Target) error {
	rec, err := t.store.Get(w.Label())
	if err != nil {
		return fmt.Errorf("failed to load state for %s: %w", w.Label(), err)
	}
	if rec == nil {
		return nil
	}

	d, ok := w.(Deferred)
	if !ok {
		return t.apply(w, rec)
	}

	label := w.Label()
	t.setPending(label, true)
	d.WhenReady(func() {
		defer t.setPending(label, false)
		if err := t.apply(w, rec); err != nil {
			log.Printf("[State] Restore %s failed: %v", label, err)
		}
	})
	return nil
}

func (t *Tracker) setPending(label string, pending bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if pending {
		t.pending[label] = true
	} else {
		delete(t.pending, label)
	}
}

func (t *Tracker) isPending(label string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending[label]
}

func (t *Tracker) apply(w Target, rec *Record) error {
	b := w.Bounds()
	changed := false
	if t.flags.Has(FlagSize) && rec.Width > 0 && rec.Height > 0 {
		b.Width, b.Height = rec.Width, rec.Height
		changed = true
	}
	if t.flags.Has(FlagPosition) {
		b.X, b.Y = rec.X, rec.Y
		changed = true
	}
	if changed {
		w.SetBounds(b)
	}
	if t.flags.Has(FlagMaximized) && rec.Maximized {
		w.Maximize()
	}
	if t.flags.Has(FlagFullscreen) && rec.Fullscreen {
		if err := w.SetFullscreen(true); err != nil {
			return fmt.Errorf("failed to restore fullscreen for %s: %w", w.Label(), err)
		}
	}
	if t.flags.Has(FlagVisible) && rec.Visible {
		if err := w.Show(); err != nil {
			return fmt.Errorf("failed to restore visibility for %s: %w", w.Label(), err)
		}
	}
	return nil
}

// Save captures the tracked state of w. Geometry is only updated while the
// window is in its normal state so that un-maximizing restores the old size.
func (t *Tracker) Save(w Target) error {
	if t.isPending(w.Label()) {
		return nil
	}
	rec, err := t.store.Get(w.Label())
	if err != nil {
		return fmt.Errorf("failed to load state for %s: %w", w.Label(), err)
	}
	if rec == nil {
		rec = &Record{Label: w.Label()}
	}

	maximized := w.IsMaximized()
	fullscreen := w.IsFullscreen()
	if !maximized && !fullscreen {
		b := w.Bounds()
		if t.flags.Has(FlagSize) {
			rec.Width, rec.Height = b.Width, b.Height
		}
		if t.flags.Has(FlagPosition) {
			rec.X, rec.Y = b.X, b.Y
		}
	}
	if t.flags.Has(FlagMaximized) {
		rec.Maximized = maximized
	}
	if t.flags.Has(FlagFullscreen) {
		rec.Fullscreen = fullscreen
	}
	if t.flags.Has(FlagVisible) {
		rec.Visible = w.IsVisible()
	}

	if err := t.store.Put(rec); err != nil {
		return fmt.Errorf("failed to save state for %s: %w", w.Label(), err)
	}
	return nil
}
