package desktop

import (
	"fmt"

	"github.com/awsl-project/pake/internal/shell"
	"github.com/awsl-project/pake/internal/windowstate"
)

// stateKeeper lets the shell persist windows without knowing their geometry API
type stateKeeper struct {
	tracker *windowstate.Tracker
}

func (s stateKeeper) target(w shell.Window) (windowstate.Target, error) {
	t, ok := w.(windowstate.Target)
	if !ok {
		return nil, fmt.Errorf("window %s does not expose geometry", w.Label())
	}
	return t, nil
}

func (s stateKeeper) Restore(w shell.Window) error {
	t, err := s.target(w)
	if err != nil {
		return err
	}
	return s.tracker.Restore(t)
}

func (s stateKeeper) Save(w shell.Window) error {
	t, err := s.target(w)
	if err != nil {
		return err
	}
	return s.tracker.Save(t)
}
