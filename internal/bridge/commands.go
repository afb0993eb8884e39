// Package bridge exposes host capabilities to the hosted page: downloads,
// notifications, theme switching and cache clearing.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bytedance/sonic"
)

// Command names invocable from the page
const (
	CommandDownloadFile         = "download_file"
	CommandDownloadFileByBinary = "download_file_by_binary"
	CommandSendNotification     = "send_notification"
	CommandUpdateThemeMode      = "update_theme_mode"
	CommandClearCacheAndRestart = "clear_cache_and_restart"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidPayload = errors.New("invalid payload")
)

// Handler runs one command. The result is encoded back to the page as JSON.
type Handler func(ctx context.Context, payload []byte) (any, error)

// DownloadFileParams is the payload of download_file
type DownloadFileParams struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Language string `json:"language"`
}

// BinaryDownloadParams is the payload of download_file_by_binary
type BinaryDownloadParams struct {
	Filename string    `json:"filename"`
	Binary   ByteArray `json:"binary"`
	Language string    `json:"language"`
}

// NotificationParams is the payload of send_notification
type NotificationParams struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
}

// ThemeParams is the payload of update_theme_mode
type ThemeParams struct {
	Mode string `json:"mode"`
}

// DownloadResult is returned by both download commands
type DownloadResult struct {
	Path string `json:"path"`
}

// ByteArray accepts either a JSON array of byte values, as produced by
// Array.from(new Uint8Array(...)), or a base64 string.
type ByteArray []byte

// UnmarshalJSON implements json.Unmarshaler
func (b *ByteArray) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*b = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var raw []byte
		if err := sonic.Unmarshal(data, &raw); err != nil {
			return err
		}
		*b = raw
		return nil
	}

	var values []int
	if err := sonic.Unmarshal(data, &values); err != nil {
		return err
	}
	out := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return fmt.Errorf("byte %d out of range: %d", i, v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

// ThemeApplier switches every window between light and dark
type ThemeApplier interface {
	ApplyTheme(mode ThemeMode) error
}

// CacheClearer wipes webview data and restarts the application
type CacheClearer interface {
	ClearCacheAndRestart() error
}

// Services are the host-side collaborators of the commands
type Services struct {
	AppName    string
	Downloader *Downloader
	Notifier   Notifier
	Theme      ThemeApplier
	Cache      CacheClearer
	Events     EventSink
}

// Dispatcher maps command names to handlers. The command set is fixed at
// construction.
type Dispatcher struct {
	services Services
	handlers map[string]Handler
	order    []string
}

// NewDispatcher registers the full command set
func NewDispatcher(s Services) *Dispatcher {
	if s.Events == nil {
		s.Events = discardEvents{}
	}
	d := &Dispatcher{services: s, handlers: make(map[string]Handler)}
	d.register(CommandDownloadFile, d.downloadFile)
	d.register(CommandDownloadFileByBinary, d.downloadFileByBinary)
	d.register(CommandSendNotification, d.sendNotification)
	d.register(CommandUpdateThemeMode, d.updateThemeMode)
	d.register(CommandClearCacheAndRestart, d.clearCacheAndRestart)
	return d
}

func (d *Dispatcher) register(name string, h Handler) {
	d.handlers[name] = h
	d.order = append(d.order, name)
}

// Commands lists the registered command names in registration order
func (d *Dispatcher) Commands() []string {
	return append([]string(nil), d.order...)
}

// Invoke runs a command by name
func (d *Dispatcher) Invoke(ctx context.Context, name string, payload []byte) (any, error) {
	h, ok := d.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return h(ctx, payload)
}

func decodePayload(payload []byte, v any) error {
	if len(strings.TrimSpace(string(payload))) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

func (d *Dispatcher) downloadFile(ctx context.Context, payload []byte) (any, error) {
	var p DownloadFileParams
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}
	if p.URL == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidPayload)
	}

	path, err := d.services.Downloader.Fetch(ctx, p.URL, p.Filename)
	d.finishDownload(p.Language, path, err)
	if err != nil {
		return nil, err
	}
	return DownloadResult{Path: path}, nil
}

func (d *Dispatcher) downloadFileByBinary(_ context.Context, payload []byte) (any, error) {
	var p BinaryDownloadParams
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}
	if p.Filename == "" {
		return nil, fmt.Errorf("%w: filename is required", ErrInvalidPayload)
	}

	path, err := d.services.Downloader.SaveBytes(p.Filename, p.Binary)
	d.finishDownload(p.Language, path, err)
	if err != nil {
		return nil, err
	}
	return DownloadResult{Path: path}, nil
}

// finishDownload tells the user how the download went
func (d *Dispatcher) finishDownload(language, path string, err error) {
	ok := err == nil
	if ok {
		log.Printf("[Bridge] Download saved to %s", path)
		d.services.Events.Publish(Event{Type: EventDownloadComplete, Path: path})
	} else {
		log.Printf("[Bridge] Download failed: %v", err)
		d.services.Events.Publish(Event{Type: EventDownloadFailed, Error: err.Error()})
	}
	if d.services.Notifier == nil {
		return
	}
	if nerr := d.services.Notifier.Notify(d.services.AppName, DownloadMessage(language, ok), ""); nerr != nil {
		log.Printf("[Bridge] Download notification failed: %v", nerr)
	}
}

func (d *Dispatcher) sendNotification(_ context.Context, payload []byte) (any, error) {
	var p NotificationParams
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}
	if d.services.Notifier == nil {
		return nil, errors.New("notifications are not available")
	}
	title := p.Title
	if title == "" {
		title = d.services.AppName
	}
	if err := d.services.Notifier.Notify(title, p.Body, p.Icon); err != nil {
		return nil, fmt.Errorf("failed to send notification: %w", err)
	}
	return nil, nil
}

func (d *Dispatcher) updateThemeMode(_ context.Context, payload []byte) (any, error) {
	var p ThemeParams
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}
	mode, err := ParseThemeMode(p.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if d.services.Theme == nil {
		return nil, nil
	}
	if err := d.services.Theme.ApplyTheme(mode); err != nil {
		return nil, fmt.Errorf("failed to apply theme: %w", err)
	}
	return nil, nil
}

func (d *Dispatcher) clearCacheAndRestart(_ context.Context, _ []byte) (any, error) {
	if d.services.Cache == nil {
		return nil, errors.New("cache clearing is not available")
	}
	if err := d.services.Cache.ClearCacheAndRestart(); err != nil {
		return nil, fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil, nil
}
