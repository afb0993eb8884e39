package desktop

import (
	_ "embed"
	"fmt"
	"log"
	"os"

	"github.com/wailsapp/wails/v3/pkg/application"

	"github.com/awsl-project/pake/internal/shell"
)

//go:embed icon.png
var iconData []byte

// TrayManager owns the system tray icon and its menu
type TrayManager struct {
	app      *application.App
	shell    *shell.App
	name     string
	iconPath string
	tray     *application.SystemTray
}

// NewTrayManager creates a tray manager. iconPath overrides the embedded icon.
func NewTrayManager(app *application.App, sh *shell.App, name, iconPath string) *TrayManager {
	return &TrayManager{
		app:      app,
		shell:    sh,
		name:     name,
		iconPath: iconPath,
	}
}

// Start registers the tray. An unreadable custom icon is an error.
func (t *TrayManager) Start() error {
	log.Println("[Tray] Initializing system tray...")

	icon, err := loadTrayIcon(t.iconPath)
	if err != nil {
		return err
	}

	t.tray = t.app.SystemTray.New()
	t.tray.SetIcon(icon)
	t.tray.SetTooltip(t.name)

	menu := t.app.NewMenu()
	menu.Add("Show").OnClick(func(*application.Context) {
		log.Println("[Tray] Show window clicked")
		t.shell.ShowPrimary()
	})
	menu.Add("Hide").OnClick(func(*application.Context) {
		log.Println("[Tray] Hide window clicked")
		t.shell.HidePrimary()
	})
	menu.AddSeparator()
	menu.Add("Quit").OnClick(func(*application.Context) {
		log.Println("[Tray] Quit clicked")
		t.shell.Quit()
	})
	t.tray.SetMenu(menu)

	t.tray.OnClick(t.shell.TogglePrimary)
	return nil
}

func loadTrayIcon(path string) ([]byte, error) {
	if path == "" {
		return iconData, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tray icon %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("tray icon %s is empty", path)
	}
	return data, nil
}
