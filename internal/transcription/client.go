package transcription

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"valuebell/internal/logging"
)

const speechToTextPath = "/v1/speech-to-text"

// ClientOptions carries the transcription API settings.
type ClientOptions struct {
	APIKey   string
	BaseURL  string
	Model    string
	Language string
	Diarize  bool
	Timeout  time.Duration
}

// Client calls the hosted speech-to-text API.
type Client struct {
	opts       ClientOptions
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a transcription client. The HTTP timeout covers
// the whole upload-and-transcribe round trip, so it is generous by
// default.
func NewClient(opts ClientOptions, logger *slog.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Minute
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Client{
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.Timeout},
		logger:     logging.WithComponent(logger, "transcription"),
	}
}

// Transcribe uploads the audio file and returns the parsed response
// document along with the raw response JSON for caching. A non-empty
// language overrides the configured default for this request.
func (c *Client) Transcribe(ctx context.Context, audioPath, language string) (*Document, []byte, error) {
	if c.opts.APIKey == "" {
		return nil, nil, fmt.Errorf("transcribe: API key not configured")
	}
	if language == "" {
		language = c.opts.Language
	}

	body, contentType, err := c.buildRequestBody(audioPath, language)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+speechToTextPath, body)
	if err != nil {
		return nil, nil, fmt.Errorf("transcribe: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("xi-api-key", c.opts.APIKey)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("transcribe: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("transcribe: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("transcribe: API returned %d: %s", resp.StatusCode, truncateBody(raw))
	}

	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, nil, err
	}

	c.logger.Info("transcription complete",
		logging.String("file", filepath.Base(audioPath)),
		logging.Int("words", len(doc.Words)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return doc, raw, nil
}

func (c *Client) buildRequestBody(audioPath, language string) (io.Reader, string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("transcribe: open audio: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", fmt.Errorf("transcribe: form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("transcribe: copy audio: %w", err)
	}

	fields := map[string]string{
		"model_id":               c.opts.Model,
		"language_code":          language,
		"diarize":                strconv.FormatBool(c.opts.Diarize),
		"tag_audio_events":       "false",
		"timestamps_granularity": "word",
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("transcribe: write field %s: %w", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("transcribe: finalize form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

func truncateBody(raw []byte) string {
	const limit = 512
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
