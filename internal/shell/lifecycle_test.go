package shell

import (
	"errors"
	"testing"
	"time"
)

func TestBuildPrimaryRevealSequence(t *testing.T) {
	tests := []struct {
		name       string
		goos       string
		fullscreen bool
		steps      []time.Duration
		want       [][]string
	}{
		{
			name:  "linux focus fix-up",
			goos:  "linux",
			steps: []time.Duration{ShowDelay - time.Millisecond, time.Millisecond, 29 * time.Millisecond, time.Millisecond},
			want:  [][]string{nil, {"show"}, {"show"}, {"show", "focus"}},
		},
		{
			name:  "windows no fix-up",
			goos:  "windows",
			steps: []time.Duration{ShowDelay, time.Second},
			want:  [][]string{{"show"}, {"show"}},
		},
		{
			name:       "fullscreen",
			goos:       "darwin",
			fullscreen: true,
			steps:      []time.Duration{ShowDelay, time.Second},
			want:       [][]string{{"show", "fullscreen", "focus"}, {"show", "fullscreen", "focus"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Fullscreen = tt.fullscreen
			app, host, sched, state := newTestApp(cfg, tt.goos)

			w, err := app.BuildPrimary([]string{"exe"})
			if err != nil {
				t.Fatalf("BuildPrimary() error: %v", err)
			}
			if w.Label() != PrimaryLabel {
				t.Errorf("label = %q", w.Label())
			}
			if !host.created[0].Hidden {
				t.Error("primary window must be created hidden")
			}
			if len(state.restored) != 1 {
				t.Errorf("state restored %d times, want 1", len(state.restored))
			}

			fw := host.fake(PrimaryLabel)
			for i, step := range tt.steps {
				sched.Advance(step)
				if !equalOps(fw.Ops(), tt.want[i]) {
					t.Errorf("after step %d ops = %v, want %v", i, fw.Ops(), tt.want[i])
				}
			}
		})
	}
}

func TestBuildPrimaryStartToTray(t *testing.T) {
	cfg := baseConfig()
	cfg.StartToTray = true
	cfg.ShowSystemTray = true
	app, host, sched, _ := newTestApp(cfg, "linux")

	if _, err := app.BuildPrimary([]string{"exe"}); err != nil {
		t.Fatal(err)
	}
	sched.Advance(time.Minute)

	if ops := host.fake(PrimaryLabel).Ops(); len(ops) != 0 {
		t.Errorf("start-to-tray window was touched: %v", ops)
	}

	app.ShowPrimary()
	if !host.fake(PrimaryLabel).IsVisible() {
		t.Error("ShowPrimary() did not reveal the window")
	}
}

func TestBuildPrimaryStartToTrayWithoutTrayShows(t *testing.T) {
	cfg := baseConfig()
	cfg.StartToTray = true
	cfg.ShowSystemTray = false
	app, host, sched, _ := newTestApp(cfg, "windows")

	if _, err := app.BuildPrimary([]string{"exe"}); err != nil {
		t.Fatal(err)
	}
	sched.Advance(ShowDelay)
	if !host.fake(PrimaryLabel).IsVisible() {
		t.Error("window should be shown when no tray exists")
	}
}

func TestBuildPrimaryNavigatesToLaunchURL(t *testing.T) {
	app, host, sched, _ := newTestApp(baseConfig(), "windows")

	if _, err := app.BuildPrimary([]string{"exe", "https://example.com/it's"}); err != nil {
		t.Fatal(err)
	}
	fw := host.fake(PrimaryLabel)

	sched.Advance(NavigateDelay - time.Millisecond)
	if len(fw.scripts) != 0 {
		t.Fatalf("navigated too early")
	}
	sched.Advance(time.Millisecond)
	if len(fw.scripts) != 1 {
		t.Fatalf("scripts = %v, want one navigation", fw.scripts)
	}
	want := `window.location.href = 'https://example.com/it\'s'`
	if fw.scripts[0] != want {
		t.Errorf("script = %q, want %q", fw.scripts[0], want)
	}
	if host.created[0].URL != "https://example.com/app" {
		t.Errorf("primary should load configured URL first, got %q", host.created[0].URL)
	}
}

func TestBuildPrimaryIgnoresForeignLaunchURL(t *testing.T) {
	app, host, sched, _ := newTestApp(baseConfig(), "windows")
	if _, err := app.BuildPrimary([]string{"exe", "https://evil.com/"}); err != nil {
		t.Fatal(err)
	}
	sched.Advance(time.Second)
	if scripts := host.fake(PrimaryLabel).scripts; len(scripts) != 0 {
		t.Errorf("unexpected navigation: %v", scripts)
	}
}

func TestBuildPrimaryTwice(t *testing.T) {
	app, _, _, _ := newTestApp(baseConfig(), "linux")
	if _, err := app.BuildPrimary(nil); err != nil {
		t.Fatal(err)
	}
	if _, err := app.BuildPrimary(nil); !errors.Is(err, ErrPrimaryExists) {
		t.Errorf("second BuildPrimary() error = %v, want ErrPrimaryExists", err)
	}
}

func TestBuildPrimaryCreateError(t *testing.T) {
	app, host, _, _ := newTestApp(baseConfig(), "linux")
	host.createErr = errors.New("no display")
	if _, err := app.BuildPrimary(nil); err == nil {
		t.Error("expected error")
	}
}

func TestRevealToleratesDestroyedWindow(t *testing.T) {
	app, host, sched, _ := newTestApp(baseConfig(), "linux")
	if _, err := app.BuildPrimary(nil); err != nil {
		t.Fatal(err)
	}
	host.fake(PrimaryLabel).destroyed = true
	sched.Advance(time.Second)

	if ops := host.fake(PrimaryLabel).Ops(); !equalOps(ops, []string{"show", "focus"}) {
		t.Errorf("ops = %v, want single attempt each", ops)
	}
}

func TestTogglePrimary(t *testing.T) {
	app, host, sched, _ := newTestApp(baseConfig(), "windows")
	if _, err := app.BuildPrimary(nil); err != nil {
		t.Fatal(err)
	}
	sched.Advance(ShowDelay)
	fw := host.fake(PrimaryLabel)

	app.TogglePrimary()
	sched.Advance(0)
	if fw.IsVisible() {
		t.Fatal("toggle on visible window should hide it")
	}

	app.TogglePrimary()
	if !fw.IsVisible() || !fw.focused {
		t.Error("toggle on hidden window should show and focus it")
	}
}

func TestReactivate(t *testing.T) {
	app, host, sched, _ := newTestApp(baseConfig(), "darwin")
	if _, err := app.BuildPrimary(nil); err != nil {
		t.Fatal(err)
	}
	sched.Advance(ShowDelay)
	fw := host.fake(PrimaryLabel)
	_ = fw.Hide()
	before := len(fw.Ops())

	app.Reactivate(true)
	if len(fw.Ops()) != before {
		t.Errorf("reactivate with visible windows touched primary: %v", fw.Ops()[before:])
	}

	app.Reactivate(false)
	if !equalOps(fw.Ops()[before:], []string{"show", "focus"}) {
		t.Errorf("reactivate ops = %v, want [show focus]", fw.Ops()[before:])
	}
}

func TestQuitSavesAndExits(t *testing.T) {
	app, host, _, state := newTestApp(baseConfig(), "linux")
	if _, err := app.BuildPrimary(nil); err != nil {
		t.Fatal(err)
	}
	app.Quit()
	if len(host.exitCodes) != 1 || host.exitCodes[0] != 0 {
		t.Errorf("exit codes = %v, want [0]", host.exitCodes)
	}
	if len(state.saved) != 1 {
		t.Errorf("saved = %v, want primary saved once", state.saved)
	}
}

func TestHandleMenuClick(t *testing.T) {
	cleared := false
	host := newFakeHost()
	sched := NewManualScheduler()
	app := NewApp(baseConfig(), Options{
		Host:       host,
		Platform:   PlatformFor("darwin"),
		Scheduler:  sched,
		ClearCache: func() { cleared = true },
	})
	if _, err := app.BuildPrimary(nil); err != nil {
		t.Fatal(err)
	}
	fw := host.fake(PrimaryLabel)

	app.HandleMenuClick(MenuReload)
	app.HandleMenuClick(MenuGoHome)
	app.HandleMenuClick("unknown")
	app.HandleMenuClick(MenuClearCache)

	want := []string{"window.location.reload()", "window.location.href = 'https://example.com/app'"}
	if !equalOps(fw.scripts, want) {
		t.Errorf("scripts = %v, want %v", fw.scripts, want)
	}
	if !cleared {
		t.Error("clear_cache did not reach the cache clearer")
	}
}
