package shell

import (
	"context"
	"runtime"

	"github.com/awsl-project/pake/internal/config"
)

// Options carries the collaborators of an App. Platform and Scheduler
// default to the running OS and real timers.
type Options struct {
	Host      Host
	Platform  Platform
	Scheduler Scheduler
	State     StateKeeper
	// InitScript is injected into every window on page load
	InitScript string
	// ClearCache backs the clear_cache menu item
	ClearCache func()
}

// App owns the window lifecycle for one process
type App struct {
	cfg        *config.LaunchConfig
	host       Host
	platform   Platform
	sched      Scheduler
	state      StateKeeper
	labels     *LabelCounter
	initScript string
	clearCache func()
}

// NewApp wires the lifecycle components around a host
func NewApp(cfg *config.LaunchConfig, opts Options) *App {
	a := &App{
		cfg:        cfg,
		host:       opts.Host,
		platform:   opts.Platform,
		sched:      opts.Scheduler,
		state:      opts.State,
		labels:     NewLabelCounter(),
		initScript: opts.InitScript,
		clearCache: opts.ClearCache,
	}
	if a.platform == nil {
		a.platform = PlatformFor(runtime.GOOS)
	}
	if a.sched == nil {
		a.sched = NewTimerScheduler(context.Background())
	}
	return a
}

// Primary returns the primary window if it exists
func (a *App) Primary() (Window, bool) {
	return a.host.Window(PrimaryLabel)
}
