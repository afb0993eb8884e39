package bridge

import (
	"strings"

	"github.com/gen2brain/beeep"
)

// Notifier sends native notifications
type Notifier interface {
	Notify(title, body, icon string) error
}

// DesktopNotifier sends notifications through the OS notification center
type DesktopNotifier struct {
	defaultIcon string
}

// NewDesktopNotifier creates a notifier that reports as appName
func NewDesktopNotifier(appName, defaultIcon string) *DesktopNotifier {
	beeep.AppName = appName
	return &DesktopNotifier{defaultIcon: defaultIcon}
}

// Notify implements Notifier
func (n *DesktopNotifier) Notify(title, body, icon string) error {
	if icon == "" {
		icon = n.defaultIcon
	}
	return beeep.Notify(title, body, icon)
}

// DownloadMessage returns the localized download result text
func DownloadMessage(language string, success bool) string {
	zh := strings.HasPrefix(strings.ToLower(language), "zh")
	switch {
	case success && zh:
		return "下载成功，已保存到下载目录~"
	case success:
		return "Download successful, saved to download directory~"
	case zh:
		return "下载失败，请检查你的网络连接！"
	default:
		return "Download failed, please check your network connection!"
	}
}
