package shortcut

import (
	"fmt"
	"log"
	"runtime"

	"golang.design/x/hotkey"
)

var keys = map[string]hotkey.Key{
	"A": hotkey.KeyA, "B": hotkey.KeyB, "C": hotkey.KeyC, "D": hotkey.KeyD,
	"E": hotkey.KeyE, "F": hotkey.KeyF, "G": hotkey.KeyG, "H": hotkey.KeyH,
	"I": hotkey.KeyI, "J": hotkey.KeyJ, "K": hotkey.KeyK, "L": hotkey.KeyL,
	"M": hotkey.KeyM, "N": hotkey.KeyN, "O": hotkey.KeyO, "P": hotkey.KeyP,
	"Q": hotkey.KeyQ, "R": hotkey.KeyR, "S": hotkey.KeyS, "T": hotkey.KeyT,
	"U": hotkey.KeyU, "V": hotkey.KeyV, "W": hotkey.KeyW, "X": hotkey.KeyX,
	"Y": hotkey.KeyY, "Z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"F1": hotkey.KeyF1, "F2": hotkey.KeyF2, "F3": hotkey.KeyF3, "F4": hotkey.KeyF4,
	"F5": hotkey.KeyF5, "F6": hotkey.KeyF6, "F7": hotkey.KeyF7, "F8": hotkey.KeyF8,
	"F9": hotkey.KeyF9, "F10": hotkey.KeyF10, "F11": hotkey.KeyF11, "F12": hotkey.KeyF12,
	"Space":  hotkey.KeySpace,
	"Return": hotkey.KeyReturn,
	"Escape": hotkey.KeyEscape,
	"Tab":    hotkey.KeyTab,
	"Delete": hotkey.KeyDelete,
	"Up":     hotkey.KeyUp,
	"Down":   hotkey.KeyDown,
	"Left":   hotkey.KeyLeft,
	"Right":  hotkey.KeyRight,
}

// Binding is a registered system-wide hotkey
type Binding struct {
	accel Accelerator
	hk    *hotkey.Hotkey
	done  chan struct{}
}

// Register parses accelerator and calls fn on every key press. An empty value
// registers nothing and returns a nil Binding.
func Register(accelerator string, fn func()) (*Binding, error) {
	if accelerator == "" {
		return nil, nil
	}
	accel, err := Parse(accelerator, runtime.GOOS)
	if err != nil {
		return nil, fmt.Errorf("invalid activation shortcut: %w", err)
	}

	key, ok := keys[accel.Key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, accel.Key)
	}
	mods := make([]hotkey.Modifier, 0, len(accel.Modifiers))
	for _, m := range accel.Modifiers {
		hm, ok := platformModifier(m)
		if !ok {
			return nil, fmt.Errorf("modifier %s is not supported on %s", m, runtime.GOOS)
		}
		mods = append(mods, hm)
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("failed to register shortcut %s: %w", accel, err)
	}

	b := &Binding{accel: accel, hk: hk, done: make(chan struct{})}
	go b.listen(fn)
	log.Printf("[Shortcut] Registered %s", accel)
	return b, nil
}

func (b *Binding) listen(fn func()) {
	for {
		select {
		case <-b.hk.Keydown():
			fn()
		case <-b.done:
			return
		}
	}
}

// Unregister releases the hotkey
func (b *Binding) Unregister() error {
	if b == nil {
		return nil
	}
	close(b.done)
	return b.hk.Unregister()
}
