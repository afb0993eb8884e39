package desktop

import (
	"log"
	"os"
)

// setenvDefault sets key only when it is unset and reports whether it did
func setenvDefault(key, value string) (bool, error) {
	if _, ok := os.LookupEnv(key); ok {
		return false, nil
	}
	return true, os.Setenv(key, value)
}

// PrepareEnvironment applies rendering workarounds before the webview loads.
// WebKitGTK's DMA-BUF renderer shows blank windows on several GPU drivers.
func PrepareEnvironment(goos string) {
	if goos != "linux" {
		return
	}
	set, err := setenvDefault("WEBKIT_DISABLE_DMABUF_RENDERER", "1")
	if err != nil {
		log.Printf("[Launcher] Failed to set WEBKIT_DISABLE_DMABUF_RENDERER: %v", err)
		return
	}
	if set {
		log.Println("[Launcher] WEBKIT_DISABLE_DMABUF_RENDERER=1")
	}
}
