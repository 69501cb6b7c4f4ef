package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"valuebell/internal/logging"
)

// Downloader fetches source files over HTTP into local paths.
type Downloader struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewDownloader constructs a downloader. The timeout bounds the whole
// transfer, not just the connection.
func NewDownloader(timeout time.Duration, logger *slog.Logger) *Downloader {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &Downloader{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.WithComponent(logger, "download"),
	}
}

// Fetch resolves the share link for its provider and downloads the
// file to destPath. Providers that gate downloads behind a browser
// session return ErrManualLinkRequired with resolution guidance.
func (d *Downloader) Fetch(ctx context.Context, rawURL, destPath string) error {
	source := DetectSource(rawURL)
	d.logger.Info("starting download",
		logging.String("source", string(source)),
		logging.String("dest", filepath.Base(destPath)),
	)

	switch source {
	case SourceDrive:
		directURL, err := DriveDownloadURL(rawURL)
		if err != nil {
			return fmt.Errorf("download: %w", err)
		}
		return d.fetchURL(ctx, directURL, destPath)
	case SourceDropbox:
		return d.fetchURL(ctx, DropboxDirectURL(rawURL), destPath)
	case SourceDropboxTransfer:
		return fmt.Errorf("download: Dropbox Transfer links need a direct link: open %s in a browser, start the download, copy the download manager's direct link, and retry with that URL: %w", rawURL, ErrManualLinkRequired)
	case SourceWeTransfer:
		return fmt.Errorf("download: WeTransfer links need a direct link: open %s in a browser, start the download, copy the download manager's direct link, and retry with that URL: %w", rawURL, ErrManualLinkRequired)
	default:
		return d.fetchURL(ctx, rawURL, destPath)
	}
}

func (d *Downloader) fetchURL(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("download: build request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download: server returned %d for %s", resp.StatusCode, url)
	}
	// Share hosts answer expired or gated links with an HTML page
	// instead of an error status.
	if strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "text/html") {
		return fmt.Errorf("download: %s returned a web page instead of a file; the link may have expired or need a direct download link", url)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("download: create staging dir: %w", err)
	}
	file, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("download: create file: %w", err)
	}
	defer file.Close()

	started := time.Now()
	written, err := io.Copy(file, resp.Body)
	if err != nil {
		return fmt.Errorf("download: write file: %w", err)
	}

	d.logger.Info("download complete",
		logging.String("dest", filepath.Base(destPath)),
		logging.Int64("bytes", written),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}
