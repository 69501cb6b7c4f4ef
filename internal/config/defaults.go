package config

const (
	defaultStagingDir = "~/.local/share/valuebell/staging"
	defaultOutputDir  = "~/valuebell"
	defaultLogDir     = "~/.local/share/valuebell/logs"
	defaultCacheDir   = "~/.cache/valuebell"

	defaultTranscriptionBaseURL = "https://api.elevenlabs.io"
	defaultTranscriptionModel   = "scribe_v1_experimental"
	defaultTranscriptionLang    = "en"
	defaultTranscriptionTimeout = 900

	defaultSampleRate    = 16000
	defaultChannels      = 1
	defaultMP3Bitrate    = "192k"
	defaultMP3SampleRate = 44100
	defaultMaxWAVBytes   = 1 << 30 // 1 GiB

	defaultMaxCueDurationSeconds = 7
	defaultMaxCueCharacters      = 120

	defaultAbnormalFinalTokenDuration    = 10
	defaultOutlierZScore                 = 3
	defaultIncompleteTranscriptThreshold = 5

	defaultDownloadTimeout = 600

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
			CacheDir:   defaultCacheDir,
		},
		Transcription: Transcription{
			BaseURL:        defaultTranscriptionBaseURL,
			Model:          defaultTranscriptionModel,
			Language:       defaultTranscriptionLang,
			Diarize:        true,
			TimeoutSeconds: defaultTranscriptionTimeout,
			CacheEnabled:   true,
		},
		Audio: Audio{
			SampleRate:    defaultSampleRate,
			Channels:      defaultChannels,
			MP3Bitrate:    defaultMP3Bitrate,
			MP3SampleRate: defaultMP3SampleRate,
			MaxWAVBytes:   defaultMaxWAVBytes,
		},
		Subtitles: Subtitles{
			MaxCueDurationSeconds: defaultMaxCueDurationSeconds,
			MaxCueCharacters:      defaultMaxCueCharacters,
		},
		Quality: Quality{
			AbnormalFinalTokenDuration:    defaultAbnormalFinalTokenDuration,
			OutlierZScore:                 defaultOutlierZScore,
			IncompleteTranscriptThreshold: defaultIncompleteTranscriptThreshold,
		},
		Download: Download{
			TimeoutSeconds: defaultDownloadTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
