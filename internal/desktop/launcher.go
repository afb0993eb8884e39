// Package desktop runs the shell on the Wails runtime: windows, tray,
// application menu, single-instance lock and the page bridge.
package desktop

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"

	"github.com/awsl-project/pake/internal/bridge"
	"github.com/awsl-project/pake/internal/config"
	"github.com/awsl-project/pake/internal/shell"
	"github.com/awsl-project/pake/internal/shortcut"
	"github.com/awsl-project/pake/internal/version"
	"github.com/awsl-project/pake/internal/windowstate"
)

const (
	stateFile       = "window-state.db"
	shutdownTimeout = 2 * time.Second
)

// Options configure a Launcher
type Options struct {
	Config *config.LaunchConfig
	// DataDir holds the state database when StateDSN is empty
	DataDir  string
	StateDSN string
	// Args are the process arguments, element 0 being the executable
	Args []string
}

// Launcher wires the shell to the Wails runtime for one process
type Launcher struct {
	opts Options
	cfg  *config.LaunchConfig

	app    *application.App
	host   *wailsHost
	shell  *shell.App
	sched  *shell.TimerScheduler
	store  *windowstate.Store
	keeper stateKeeper
	server *bridge.Server

	restart  atomic.Bool
	stopOnce sync.Once

	mu       sync.Mutex
	binding  *shortcut.Binding
	startErr error
}

// NewLauncher creates the application, opens the state store and starts
// the bridge. No window exists until Run.
func NewLauncher(opts Options) (*Launcher, error) {
	cfg := opts.Config
	l := &Launcher{opts: opts, cfg: cfg}

	// a second instance exits inside application.New, before touching the store
	l.app = application.New(l.applicationOptions())
	l.host = newWailsHost(l.app)

	store, err := openStore(opts)
	if err != nil {
		return nil, err
	}
	l.store = store
	l.keeper = stateKeeper{tracker: windowstate.NewTracker(store, windowstate.TrackedFlags(cfg.Fullscreen))}

	auth, err := bridge.NewTokenAuth()
	if err != nil {
		store.Close()
		return nil, err
	}
	token, err := auth.Issue()
	if err != nil {
		store.Close()
		return nil, err
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = version.UserAgent(cfg.Name)
	}
	hub := bridge.NewHub()
	cache := &cacheClearer{
		dirs:    WebviewDataDirs(runtime.GOOS, cfg.Name),
		restart: &l.restart,
		quit:    func() { l.shell.Quit() },
	}
	dispatcher := bridge.NewDispatcher(bridge.Services{
		AppName:    cfg.Name,
		Downloader: bridge.NewDownloader(bridge.DefaultDownloadDir(), nil, userAgent),
		Notifier:   bridge.NewDesktopNotifier(cfg.Name, ""),
		Theme:      themeApplier{host: l.host},
		Cache:      cache,
		Events:     hub,
	})
	l.server = bridge.NewServer(dispatcher, auth, hub, bridge.OriginOf(cfg.URL))
	if err := l.server.Start(); err != nil {
		store.Close()
		return nil, err
	}

	l.sched = shell.NewTimerScheduler(context.Background())
	l.shell = shell.NewApp(cfg, shell.Options{
		Host:       l.host,
		Scheduler:  l.sched,
		State:      l.keeper,
		InitScript: bridge.InitScript(l.server.URL(), token),
		ClearCache: func() {
			if err := cache.ClearCacheAndRestart(); err != nil {
				log.Printf("[Cache] Clear failed: %v", err)
			}
		},
	})
	l.host.onClose = l.shell.HandleCloseRequest
	l.host.onSave = l.saveState

	return l, nil
}

func openStore(opts Options) (*windowstate.Store, error) {
	if opts.StateDSN != "" {
		log.Printf("[State] Using state DSN from environment")
		return windowstate.Open(opts.StateDSN)
	}
	return windowstate.OpenFile(filepath.Join(opts.DataDir, stateFile))
}

func (l *Launcher) applicationOptions() application.Options {
	opts := application.Options{
		Name: l.cfg.Name,
		Icon: iconData,
		Mac: application.MacOptions{
			ApplicationShouldTerminateAfterLastWindowClosed: false,
		},
		Windows: application.WindowsOptions{
			DisableQuitOnLastWindowClosed: true,
		},
		Linux: application.LinuxOptions{
			DisableQuitOnLastWindowClosed: true,
			ProgramName:                  l.cfg.Name,
		},
		OnShutdown: l.shutdown,
	}
	if !l.cfg.MultiInstance {
		opts.SingleInstance = &application.SingleInstanceOptions{
			UniqueID: UniqueID(l.cfg.Name),
			OnSecondInstanceLaunch: func(data application.SecondInstanceData) {
				log.Printf("[Instance] Second launch with %d args", len(data.Args))
				l.shell.HandleSecondInstance(data.Args)
			},
		}
	}
	return opts
}

// Run registers the tray and menu, builds the primary window once the
// runtime has started, and blocks until the application quits
func (l *Launcher) Run() error {
	if l.cfg.ShowSystemTray {
		tray := NewTrayManager(l.app, l.shell, l.cfg.Name, l.cfg.SystemTrayPath)
		if err := tray.Start(); err != nil {
			l.shutdown()
			return fmt.Errorf("failed to start system tray: %w", err)
		}
	}

	if runtime.GOOS == "darwin" {
		l.app.Menu.Set(buildMenu(l.app, l.shell))
		l.app.Event.OnApplicationEvent(events.Mac.ApplicationShouldHandleReopen, func(e *application.ApplicationEvent) {
			l.shell.Reactivate(e.Context().HasVisibleWindows())
		})
	}

	// windows, geometry and hotkeys all need the native event loop
	l.app.Event.OnApplicationEvent(events.Common.ApplicationStarted, func(*application.ApplicationEvent) {
		l.host.ready.Open()
		if _, err := l.shell.BuildPrimary(l.opts.Args); err != nil {
			l.fail(err)
			return
		}
		binding, err := shortcut.Register(l.cfg.ActivationShortcut, l.shell.TogglePrimary)
		if err != nil {
			l.fail(err)
			return
		}
		l.mu.Lock()
		l.binding = binding
		l.mu.Unlock()
	})

	log.Printf("[Launcher] Starting %s %s", l.cfg.Name, version.Info())
	if err := l.app.Run(); err != nil {
		return fmt.Errorf("application error: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.startErr
}

// fail records a startup error and quits the application
func (l *Launcher) fail(err error) {
	log.Printf("[Launcher] Startup failed: %v", err)
	l.mu.Lock()
	l.startErr = err
	l.mu.Unlock()
	l.host.Exit(0)
}

// RestartRequested reports whether the process should relaunch itself
func (l *Launcher) RestartRequested() bool {
	return l.restart.Load()
}

func (l *Launcher) saveState(w shell.Window) {
	if err := l.keeper.Save(w); err != nil {
		log.Printf("[State] Save %s failed: %v", w.Label(), err)
	}
}

func (l *Launcher) shutdown() {
	l.stopOnce.Do(func() {
		log.Println("[Launcher] Shutting down...")
		l.mu.Lock()
		binding := l.binding
		l.mu.Unlock()
		if err := binding.Unregister(); err != nil {
			log.Printf("[Shortcut] Unregister failed: %v", err)
		}
		l.sched.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := l.server.Stop(ctx); err != nil {
			log.Printf("[Bridge] Stop failed: %v", err)
		}
		if err := l.store.Close(); err != nil {
			log.Printf("[State] Close failed: %v", err)
		}
	})
}
