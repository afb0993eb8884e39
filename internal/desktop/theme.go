package desktop

import (
	"errors"

	"github.com/awsl-project/pake/internal/bridge"
)

// themeApplier pushes a color scheme into every open window
type themeApplier struct {
	host *wailsHost
}

func (t themeApplier) ApplyTheme(mode bridge.ThemeMode) error {
	script := bridge.ThemeScript(mode)
	var errs []error
	for _, w := range t.host.Windows() {
		if err := w.Eval(script); err != nil && !errors.Is(err, errWindowClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
