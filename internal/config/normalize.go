package config

import (
	"os"
	"strings"
)

// normalize expands path fields, applies environment overrides, and
// trims string fields after decoding.
func (c *Config) normalize() error {
	for _, field := range []*string{
		&c.Paths.StagingDir,
		&c.Paths.OutputDir,
		&c.Paths.LogDir,
		&c.Paths.CacheDir,
	} {
		expanded, err := ExpandPath(strings.TrimSpace(*field))
		if err != nil {
			return err
		}
		*field = expanded
	}

	// Environment variables win over file values for secrets.
	if key := strings.TrimSpace(os.Getenv("ELEVENLABS_API_KEY")); key != "" {
		c.Transcription.APIKey = key
	}
	if key := strings.TrimSpace(os.Getenv("VALUEBELL_API_KEY")); key != "" {
		c.Transcription.APIKey = key
	}

	c.Transcription.APIKey = strings.TrimSpace(c.Transcription.APIKey)
	c.Transcription.BaseURL = strings.TrimRight(strings.TrimSpace(c.Transcription.BaseURL), "/")
	c.Transcription.Model = strings.TrimSpace(c.Transcription.Model)
	c.Transcription.Language = strings.TrimSpace(c.Transcription.Language)
	c.Audio.MP3Bitrate = strings.TrimSpace(c.Audio.MP3Bitrate)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	return nil
}
