// Package shell holds the window lifecycle of the desktop shell: the
// single-instance coordinator, the startup reveal sequence and the close
// policy. It talks to the GUI runtime only through Host and Window.
package shell

import (
	"fmt"
	"log"
	"sync/atomic"
)

// PrimaryLabel is reserved for the main application window
const PrimaryLabel = "pake"

// Window is one OS window bound to one webview
type Window interface {
	Label() string
	Show() error
	Hide() error
	Focus() error
	Minimize() error
	Unminimize() error
	IsVisible() bool
	IsFullscreen() bool
	SetFullscreen(fullscreen bool) error
	Eval(script string) error
}

// WindowSpec describes a window to create
type WindowSpec struct {
	Label      string
	Title      string
	URL        string
	Width      int
	Height     int
	Hidden     bool
	InitScript string
}

// Host is the GUI runtime
type Host interface {
	CreateWindow(spec WindowSpec) (Window, error)
	Window(label string) (Window, bool)
	// Exit ends the process. Code 0 is an orderly quit: shutdown hooks run
	// and windows close without consulting the close policy.
	Exit(code int)
}

// StateKeeper persists window geometry between runs
type StateKeeper interface {
	Restore(w Window) error
	Save(w Window) error
}

// LabelCounter hands out secondary window labels. Numbers start at 1 and
// are never reissued, even after the window closes.
type LabelCounter struct {
	next atomic.Uint64
}

// NewLabelCounter creates a counter whose first label is pake-1
func NewLabelCounter() *LabelCounter {
	c := &LabelCounter{}
	c.next.Store(1)
	return c
}

// Next returns a fresh secondary label
func (c *LabelCounter) Next() string {
	return SecondaryLabel(c.next.Add(1) - 1)
}

// SecondaryLabel formats the label of the n-th secondary window
func SecondaryLabel(n uint64) string {
	return fmt.Sprintf("%s-%d", PrimaryLabel, n)
}

// discard logs a failed window operation. Window calls may race with the
// window being destroyed, so failures are never fatal and never retried.
func discard(op string, w Window, err error) {
	if err != nil {
		log.Printf("[Window] %s on %s ignored: %v", op, w.Label(), err)
	}
}
