package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"valuebell/internal/logging"
)

// ConvertOptions carries the audio conversion parameters.
type ConvertOptions struct {
	SampleRate    int
	Channels      int
	MP3Bitrate    string
	MP3SampleRate int
	// MaxWAVBytes is the WAV size above which ProcessAudio falls back
	// to MP3.
	MaxWAVBytes int64
}

// Converter turns arbitrary media inputs into speech-to-text-ready
// audio files via ffmpeg.
type Converter struct {
	binary string
	opts   ConvertOptions
	logger *slog.Logger

	// commandRunner substitutes the ffmpeg invocation in tests.
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewConverter creates a converter using the given ffmpeg binary name.
func NewConverter(binary string, opts ConvertOptions, logger *slog.Logger) *Converter {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return &Converter{
		binary: binary,
		opts:   opts,
		logger: logging.WithComponent(logger, "media"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *Converter) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	c.commandRunner = runner
}

func (c *Converter) run(ctx context.Context, args ...string) error {
	if c.commandRunner != nil {
		return c.commandRunner(ctx, c.binary, args...)
	}
	cmd := exec.CommandContext(ctx, c.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return missingBinaryError(c.binary)
		}
		return fmt.Errorf("%s: %w: %s", c.binary, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// ConvertToWAV converts any input into uncompressed mono PCM WAV at the
// configured sample rate.
func (c *Converter) ConvertToWAV(ctx context.Context, source, dest string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(c.opts.SampleRate),
		"-ac", strconv.Itoa(c.opts.Channels),
		dest,
	}
	if err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("convert to wav: %w", err)
	}
	return nil
}

// ConvertToMP3 re-encodes a WAV file as MP3 at the configured bitrate.
func (c *Converter) ConvertToMP3(ctx context.Context, source, dest string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-acodec", "libmp3lame",
		"-b:a", c.opts.MP3Bitrate,
		"-ar", strconv.Itoa(c.opts.MP3SampleRate),
		"-ac", strconv.Itoa(c.opts.Channels),
		dest,
	}
	if err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("convert to mp3: %w", err)
	}
	return nil
}

// ProcessAudio converts the source into upload-ready audio in workDir.
// WAV is preferred; when the WAV exceeds MaxWAVBytes the oversized file
// is re-encoded to MP3 and removed. Returns the path of the final file.
func (c *Converter) ProcessAudio(ctx context.Context, source, workDir, baseName string) (string, error) {
	wavPath := filepath.Join(workDir, baseName+".wav")
	if err := c.ConvertToWAV(ctx, source, wavPath); err != nil {
		return "", err
	}

	info, err := os.Stat(wavPath)
	if err != nil {
		return "", fmt.Errorf("stat wav: %w", err)
	}
	if info.Size() <= c.opts.MaxWAVBytes {
		return wavPath, nil
	}

	c.logger.Info("wav exceeds upload ceiling, falling back to mp3",
		logging.Int64("wav_bytes", info.Size()),
		logging.Int64("max_bytes", c.opts.MaxWAVBytes),
	)

	mp3Path := filepath.Join(workDir, baseName+".mp3")
	if err := c.ConvertToMP3(ctx, wavPath, mp3Path); err != nil {
		return "", err
	}
	if err := os.Remove(wavPath); err != nil {
		return "", fmt.Errorf("remove oversized wav: %w", err)
	}
	return mp3Path, nil
}
