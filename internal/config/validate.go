package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks configuration invariants that would otherwise surface
// as confusing runtime failures.
func (c *Config) Validate() error {
	var problems []string

	if c.Transcription.BaseURL == "" {
		problems = append(problems, "transcription.base_url must be set")
	}
	if c.Transcription.Model == "" {
		problems = append(problems, "transcription.model must be set")
	}
	if c.Transcription.TimeoutSeconds <= 0 {
		problems = append(problems, "transcription.timeout_seconds must be positive")
	}
	if c.Audio.SampleRate <= 0 {
		problems = append(problems, "audio.sample_rate must be positive")
	}
	if c.Audio.Channels <= 0 {
		problems = append(problems, "audio.channels must be positive")
	}
	if c.Audio.MaxWAVBytes <= 0 {
		problems = append(problems, "audio.max_wav_bytes must be positive")
	}
	if c.Subtitles.MaxCueDurationSeconds <= 0 {
		problems = append(problems, "subtitles.max_cue_duration_seconds must be positive")
	}
	if c.Subtitles.MaxCueCharacters <= 0 {
		problems = append(problems, "subtitles.max_cue_characters must be positive")
	}
	if c.Quality.AbnormalFinalTokenDuration <= 0 {
		problems = append(problems, "quality.abnormal_final_token_duration must be positive")
	}
	if c.Quality.OutlierZScore <= 0 {
		problems = append(problems, "quality.outlier_z_score must be positive")
	}
	if c.Quality.IncompleteTranscriptThreshold < 0 {
		problems = append(problems, "quality.incomplete_transcript_threshold must not be negative")
	}
	if c.Download.TimeoutSeconds <= 0 {
		problems = append(problems, "download.timeout_seconds must be positive")
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not supported (console, json)", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
