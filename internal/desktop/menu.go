package desktop

import (
	"github.com/wailsapp/wails/v3/pkg/application"

	"github.com/awsl-project/pake/internal/shell"
)

type menuEntry struct {
	id          string
	label       string
	accelerator string
}

// navigation entries of the macOS "File" menu; an empty id is a separator
var fileMenu = []menuEntry{
	{id: shell.MenuReload, label: "Reload", accelerator: "CmdOrCtrl+R"},
	{id: shell.MenuGoBack, label: "Back", accelerator: "CmdOrCtrl+["},
	{id: shell.MenuGoForward, label: "Forward", accelerator: "CmdOrCtrl+]"},
	{id: shell.MenuGoHome, label: "Home", accelerator: "CmdOrCtrl+Shift+H"},
	{},
	{id: shell.MenuClearCache, label: "Clear Cache and Restart"},
	{},
	// the AppMenu role already binds CmdOrCtrl+Q
	{id: shell.MenuQuit, label: "Quit"},
}

// buildMenu creates the macOS application menu
func buildMenu(app *application.App, sh *shell.App) *application.Menu {
	menu := app.NewMenu()
	menu.AddRole(application.AppMenu)

	file := menu.AddSubmenu("File")
	for _, e := range fileMenu {
		if e.id == "" {
			file.AddSeparator()
			continue
		}
		id := e.id
		item := file.Add(e.label).OnClick(func(*application.Context) {
			sh.HandleMenuClick(id)
		})
		if e.accelerator != "" {
			item.SetAccelerator(e.accelerator)
		}
	}

	// Edit keeps copy and paste working in the webview
	menu.AddRole(application.EditMenu)
	menu.AddRole(application.WindowMenu)
	return menu
}
