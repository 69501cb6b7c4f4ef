// Package download fetches source media from share links into the
// staging directory.
package download

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Source identifies the hosting provider behind a share URL.
type Source string

const (
	SourceDrive           Source = "drive"
	SourceDropbox         Source = "dropbox"
	SourceDropboxTransfer Source = "dropbox_transfer"
	SourceWeTransfer      Source = "wetransfer"
	SourceDirect          Source = "direct"
)

// ErrManualLinkRequired marks share links that cannot be fetched
// without the user resolving a direct download link first.
var ErrManualLinkRequired = errors.New("manual direct download link required")

// DetectSource classifies a URL by its hosting provider. Anything not
// recognized is treated as a direct download link.
func DetectSource(rawURL string) Source {
	lower := strings.ToLower(rawURL)
	switch {
	case strings.Contains(lower, "drive.google") || strings.Contains(lower, "docs.google"):
		return SourceDrive
	case strings.Contains(lower, "dropbox"):
		if strings.Contains(lower, "/transfer/") || strings.Contains(lower, "dropbox.com/t/") {
			return SourceDropboxTransfer
		}
		return SourceDropbox
	case strings.Contains(lower, "we.tl") || strings.Contains(lower, "wetransfer.com"):
		return SourceWeTransfer
	default:
		return SourceDirect
	}
}

// DropboxDirectURL rewrites a Dropbox share link into its direct
// download form by forcing dl=1.
func DropboxDirectURL(rawURL string) string {
	if !strings.Contains(strings.ToLower(rawURL), "dropbox.com") {
		return rawURL
	}
	if strings.Contains(rawURL, "dl=0") {
		return strings.Replace(rawURL, "dl=0", "dl=1", 1)
	}
	if strings.Contains(rawURL, "dl=1") {
		return rawURL
	}
	separator := "?"
	if strings.Contains(rawURL, "?") {
		separator = "&"
	}
	return rawURL + separator + "dl=1"
}

var driveIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`),
}

// DriveDownloadURL extracts the file ID from a Google Drive share link
// and returns the direct download endpoint for it.
func DriveDownloadURL(rawURL string) (string, error) {
	for _, pattern := range driveIDPatterns {
		if match := pattern.FindStringSubmatch(rawURL); match != nil {
			return "https://drive.google.com/uc?export=download&id=" + match[1], nil
		}
	}
	return "", fmt.Errorf("no file ID found in Google Drive URL %q", rawURL)
}
