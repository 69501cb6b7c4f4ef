// Package pipeline runs transcription jobs end to end: fetch the
// source, convert it to upload-ready audio, transcribe it, and render
// the transcript artifacts.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"valuebell/internal/artifacts"
	"valuebell/internal/config"
	"valuebell/internal/download"
	"valuebell/internal/logging"
	"valuebell/internal/media"
	"valuebell/internal/queue"
	"valuebell/internal/transcript"
	"valuebell/internal/transcription"
)

// Transcriber produces a transcription document for an audio file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (*transcription.Document, []byte, error)
}

// Options tunes per-run pipeline behavior.
type Options struct {
	// Zip bundles the rendered artifacts into a single archive next to
	// them.
	Zip bool
	// KeepStaging preserves the per-run staging directory after a
	// successful run.
	KeepStaging bool
}

// Outcome reports what a completed job produced.
type Outcome struct {
	Item     *queue.Item
	Paths    artifacts.Paths
	ZipPath  string
	Warnings []string
}

// Pipeline executes queued transcription jobs one at a time.
type Pipeline struct {
	cfg         *config.Config
	store       *queue.Store
	opts        Options
	logger      *slog.Logger
	downloader  *download.Downloader
	converter   *media.Converter
	transcriber Transcriber
	cache       *transcription.Cache
	lock        *flock.Flock
}

// New wires a pipeline from configuration. The queue store is shared
// with the CLI commands that inspect it.
func New(cfg *config.Config, store *queue.Store, opts Options, logger *slog.Logger) *Pipeline {
	client := transcription.NewClient(transcription.ClientOptions{
		APIKey:   cfg.Transcription.APIKey,
		BaseURL:  cfg.Transcription.BaseURL,
		Model:    cfg.Transcription.Model,
		Language: cfg.Transcription.Language,
		Diarize:  cfg.Transcription.Diarize,
		Timeout:  time.Duration(cfg.Transcription.TimeoutSeconds) * time.Second,
	}, logger)

	return &Pipeline{
		cfg:         cfg,
		store:       store,
		opts:        opts,
		logger:      logging.WithComponent(logger, "pipeline"),
		downloader:  download.NewDownloader(time.Duration(cfg.Download.TimeoutSeconds)*time.Second, logger),
		transcriber: client,
		cache:       transcription.NewCache(filepath.Join(cfg.Paths.CacheDir, "transcripts")),
		lock:        flock.New(filepath.Join(cfg.Paths.CacheDir, "valuebell.lock")),
		converter: media.NewConverter(cfg.FFmpegBinary(), media.ConvertOptions{
			SampleRate:    cfg.Audio.SampleRate,
			Channels:      cfg.Audio.Channels,
			MP3Bitrate:    cfg.Audio.MP3Bitrate,
			MP3SampleRate: cfg.Audio.MP3SampleRate,
			MaxWAVBytes:   cfg.Audio.MaxWAVBytes,
		}, logger),
	}
}

// WithTranscriber replaces the speech-to-text client (for testing).
func (p *Pipeline) WithTranscriber(t Transcriber) {
	p.transcriber = t
}

// WithConverterRunner substitutes the ffmpeg invocation (for testing).
func (p *Pipeline) WithConverterRunner(runner func(ctx context.Context, name string, args ...string) error) {
	p.converter.WithCommandRunner(runner)
}

// Run drains the pending queue under the processing lock. Failed items
// are marked and skipped; processing continues with the next job.
func (p *Pipeline) Run(ctx context.Context) ([]Outcome, error) {
	acquired, err := p.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire processing lock: %w", err)
	}
	if !acquired {
		return nil, errors.New("another valuebell process is already running")
	}
	defer func() { _ = p.lock.Unlock() }()

	var outcomes []Outcome
	for {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		item, err := p.store.NextPending(ctx)
		if err != nil {
			return outcomes, err
		}
		if item == nil {
			return outcomes, nil
		}

		outcome, err := p.ProcessItem(ctx, item)
		if err != nil {
			p.logger.Error("job failed",
				logging.Int64("job", item.ID),
				logging.String("episode", item.EpisodeName),
				logging.Error(err),
			)
			continue
		}
		outcomes = append(outcomes, *outcome)
	}
}

// ProcessItem runs one job through every stage, persisting status
// transitions as it goes. On failure the item is marked failed with
// the error message before the error is returned.
func (p *Pipeline) ProcessItem(ctx context.Context, item *queue.Item) (*Outcome, error) {
	outcome, err := p.process(ctx, item)
	if err != nil {
		item.SetFailed(err.Error())
		if updateErr := p.store.Update(ctx, item); updateErr != nil {
			return nil, errors.Join(err, updateErr)
		}
		return nil, err
	}
	return outcome, nil
}

func (p *Pipeline) process(ctx context.Context, item *queue.Item) (*Outcome, error) {
	item.RunID = uuid.NewString()
	stagingDir := filepath.Join(p.cfg.Paths.StagingDir, item.RunID)
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	if !p.opts.KeepStaging {
		defer os.RemoveAll(stagingDir)
	}

	base := artifacts.CleanBaseName(item.EpisodeName)

	sourcePath, err := p.stageSource(ctx, item, stagingDir, base)
	if err != nil {
		return nil, err
	}

	if err := p.transition(ctx, item, queue.StatusConverting); err != nil {
		return nil, err
	}
	audioPath, err := p.converter.ProcessAudio(ctx, sourcePath, stagingDir, base)
	if err != nil {
		return nil, err
	}
	item.AudioFile = audioPath

	if err := p.transition(ctx, item, queue.StatusTranscribing); err != nil {
		return nil, err
	}
	doc, raw, err := p.transcribe(ctx, audioPath, item.Language)
	if err != nil {
		return nil, err
	}

	if err := p.transition(ctx, item, queue.StatusRendering); err != nil {
		return nil, err
	}
	outcome, err := p.render(ctx, item, doc, raw, audioPath)
	if err != nil {
		return nil, err
	}

	item.Status = queue.StatusCompleted
	item.ErrorMessage = ""
	if err := p.store.Update(ctx, item); err != nil {
		return nil, err
	}
	outcome.Item = item
	return outcome, nil
}

// stageSource places the job's input into the staging directory,
// downloading when the job carries a URL.
func (p *Pipeline) stageSource(ctx context.Context, item *queue.Item, stagingDir, base string) (string, error) {
	if item.SourceURL == "" {
		if _, err := os.Stat(item.SourcePath); err != nil {
			return "", fmt.Errorf("source file: %w", err)
		}
		return item.SourcePath, nil
	}

	if err := p.transition(ctx, item, queue.StatusDownloading); err != nil {
		return "", err
	}
	dest := filepath.Join(stagingDir, base+sourceExtension(item.SourceURL))
	if err := p.downloader.Fetch(ctx, item.SourceURL, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func (p *Pipeline) transcribe(ctx context.Context, audioPath, language string) (*transcription.Document, []byte, error) {
	if !p.cfg.Transcription.CacheEnabled {
		return p.transcriber.Transcribe(ctx, audioPath, language)
	}

	key, err := p.cache.Key(audioPath, language)
	if err != nil {
		return nil, nil, err
	}
	if doc, raw, err := p.cache.Load(key); err != nil {
		return nil, nil, err
	} else if doc != nil {
		p.logger.Info("using cached transcription", logging.String("key", key))
		return doc, raw, nil
	}

	doc, raw, err := p.transcriber.Transcribe(ctx, audioPath, language)
	if err != nil {
		return nil, nil, err
	}
	if err := p.cache.Store(key, raw); err != nil {
		return nil, nil, err
	}
	return doc, raw, nil
}

func (p *Pipeline) render(ctx context.Context, item *queue.Item, doc *transcription.Document, raw []byte, audioPath string) (*Outcome, error) {
	tokens := doc.Tokens()

	audioDuration := media.ProbeDuration(ctx, p.cfg.FFprobeBinary(), audioPath)
	warnings := transcript.AnalyzeQuality(tokens, audioDuration, transcript.Thresholds{
		AbnormalFinalTokenDuration: p.cfg.Quality.AbnormalFinalTokenDuration,
		OutlierZScore:              p.cfg.Quality.OutlierZScore,
		IncompleteTranscript:       p.cfg.Quality.IncompleteTranscriptThreshold,
	})
	for _, warning := range warnings {
		p.logger.Warn("quality analysis", logging.String("finding", warning))
	}

	paths, err := artifacts.Write(p.cfg.Paths.OutputDir, item.EpisodeName, artifacts.Outputs{
		TranscriptText: transcript.RenderTranscript(tokens, doc.Text),
		SubtitleText: transcript.RenderSubtitlesWithLimits(tokens, transcript.CueLimits{
			MaxDurationSeconds: p.cfg.Subtitles.MaxCueDurationSeconds,
			MaxCharacters:      p.cfg.Subtitles.MaxCueCharacters,
		}),
		RawJSON: raw,
	})
	if err != nil {
		return nil, err
	}
	item.TranscriptFile = paths.Transcript
	item.SubtitleFile = paths.Subtitles
	item.RawJSONFile = paths.RawJSON

	outcome := &Outcome{Paths: paths, Warnings: warnings}
	if p.opts.Zip {
		zipPath := filepath.Join(p.cfg.Paths.OutputDir, artifacts.CleanBaseName(item.EpisodeName)+"_files.zip")
		if err := artifacts.Bundle(zipPath, paths.All()); err != nil {
			return nil, err
		}
		item.ZipFile = zipPath
		outcome.ZipPath = zipPath
	}
	return outcome, nil
}

func (p *Pipeline) transition(ctx context.Context, item *queue.Item, status queue.Status) error {
	item.Status = status
	if err := p.store.Update(ctx, item); err != nil {
		return err
	}
	p.logger.Info("stage started",
		logging.Int64("job", item.ID),
		logging.String("episode", item.EpisodeName),
		logging.String("stage", string(status)),
	)
	return nil
}

// sourceExtension guesses a file extension from the URL path. Downloads
// without a usable extension default to .mp3.
func sourceExtension(rawURL string) string {
	if parsed, err := url.Parse(rawURL); err == nil {
		if ext := filepath.Ext(parsed.Path); ext != "" && len(ext) <= 5 {
			return strings.ToLower(ext)
		}
	}
	return ".mp3"
}
