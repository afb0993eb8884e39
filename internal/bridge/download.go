package bridge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	// DownloadTimeout bounds a single remote download
	DownloadTimeout = 10 * time.Minute
	defaultFilename = "download"
)

var ErrUnsupportedScheme = errors.New("only http and https downloads are supported")

// Downloader saves remote resources and page-provided buffers into one
// directory without overwriting existing files.
type Downloader struct {
	dir       string
	client    *http.Client
	userAgent string

	group  singleflight.Group
	nameMu sync.Mutex
}

// NewDownloader creates a downloader writing into dir. A nil client uses
// a client with DownloadTimeout.
func NewDownloader(dir string, client *http.Client, userAgent string) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: DownloadTimeout}
	}
	return &Downloader{dir: dir, client: client, userAgent: userAgent}
}

// DefaultDownloadDir returns the user's download directory
func DefaultDownloadDir() string {
	if dir := os.Getenv("XDG_DOWNLOAD_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, "Downloads")
}

// Fetch downloads rawURL and returns the saved path. Concurrent calls for
// the same URL and filename share a single transfer, which outlives the
// cancellation of whichever caller started it.
func (d *Downloader) Fetch(ctx context.Context, rawURL, filename string) (string, error) {
	key := rawURL + "\x00" + filename
	v, err, _ := d.group.Do(key, func() (any, error) {
		return d.fetch(context.WithoutCancel(ctx), rawURL, filename)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (d *Downloader) fetch(ctx context.Context, rawURL, filename string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid download url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrUnsupportedScheme
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept-Encoding", AcceptEncoding)
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	body, err := DecodeBody(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		return "", err
	}
	defer body.Close()

	if filename == "" {
		filename = path.Base(u.Path)
	}
	return d.Save(filename, body)
}

// SaveBytes writes an in-memory buffer under filename
func (d *Downloader) SaveBytes(filename string, data []byte) (string, error) {
	return d.Save(filename, bytes.NewReader(data))
}

// Save streams r into the download directory and returns the final path.
// Data goes to a temporary file first so a failed transfer leaves nothing
// behind under the real name.
func (d *Downloader) Save(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	tmpPath := filepath.Join(d.dir, "."+uuid.New().String()+".part")
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write download: %w", err)
	}

	d.nameMu.Lock()
	defer d.nameMu.Unlock()
	final := UniquePath(filepath.Join(d.dir, SanitizeFilename(filename)))
	if err := os.Rename(tmpPath, final); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move download into place: %w", err)
	}
	return final, nil
}

// SanitizeFilename strips directory components so a page cannot write
// outside the download directory
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(path.Clean("/" + name))
	name = strings.TrimSpace(name)
	if name == "" || name == "/" || name == "." || name == ".." {
		return defaultFilename
	}
	return name
}

// UniquePath returns p, or p with "-1", "-2", ... inserted before the
// extension, whichever does not exist yet
func UniquePath(p string) string {
	if !exists(p) {
		return p
	}
	dir, base := filepath.Split(p)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for n := 1; ; n++ {
		candidate := filepath.Join(dir, stem+"-"+strconv.Itoa(n)+ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
