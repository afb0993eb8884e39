package desktop

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
)

// WebviewDataDirs returns the directories where the platform webview keeps
// cookies, storage and HTTP cache for an app
func WebviewDataDirs(goos, name string) []string {
	home, _ := os.UserHomeDir()
	var dirs []string
	switch goos {
	case "darwin":
		if home != "" {
			dirs = append(dirs,
				filepath.Join(home, "Library", "Caches", name),
				filepath.Join(home, "Library", "WebKit", name),
			)
		}
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			dirs = append(dirs, filepath.Join(dir, name))
		}
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			dirs = append(dirs, filepath.Join(dir, name))
		}
	default:
		if dir, err := os.UserCacheDir(); err == nil {
			dirs = append(dirs, filepath.Join(dir, name))
		}
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" && home != "" {
			dataHome = filepath.Join(home, ".local", "share")
		}
		if dataHome != "" {
			dirs = append(dirs, filepath.Join(dataHome, name))
		}
	}
	return dirs
}

// cacheClearer wipes webview data and asks for a relaunch on exit
type cacheClearer struct {
	dirs    []string
	restart *atomic.Bool
	quit    func()
}

func (c *cacheClearer) ClearCacheAndRestart() error {
	var errs []error
	for _, dir := range c.dirs {
		if err := os.RemoveAll(dir); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", dir, err))
			continue
		}
		log.Printf("[Cache] Removed %s", dir)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	c.restart.Store(true)
	c.quit()
	return nil
}
