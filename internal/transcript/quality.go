package transcript

import (
	"fmt"
	"math"
	"strings"
)

// Quality analysis thresholds.
const (
	// AbnormalFinalTokenDuration flags a final token longer than this
	// many seconds; hosted STT engines sometimes stretch the last token
	// across trailing silence.
	AbnormalFinalTokenDuration = 10.0
	// OutlierZScoreThreshold flags token durations more than this many
	// standard deviations above the mean.
	OutlierZScoreThreshold = 3.0
	// IncompleteTranscriptThreshold flags transcripts ending more than
	// this many seconds before the known end of the audio.
	IncompleteTranscriptThreshold = 5.0
)

// Thresholds carries the tunable quality-analysis bounds.
type Thresholds struct {
	AbnormalFinalTokenDuration float64
	OutlierZScore              float64
	IncompleteTranscript       float64
}

// DefaultThresholds returns the stock analysis bounds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AbnormalFinalTokenDuration: AbnormalFinalTokenDuration,
		OutlierZScore:              OutlierZScoreThreshold,
		IncompleteTranscript:       IncompleteTranscriptThreshold,
	}
}

type timedToken struct {
	index    int
	text     string
	start    float64
	end      float64
	duration float64
}

// AnalyzeQuality inspects token timing for anomalies and returns
// human-readable warnings, or an empty list when nothing is suspect.
// audioDuration is the known total audio length in seconds; pass nil
// when unknown to skip the premature-ending check.
//
// Only tokens carrying both timestamps participate: anything else is
// excluded from the statistics entirely and can never be flagged. When
// any finding is produced, the list is wrapped with a title, separator,
// and statistics-summary header plus a closing separator, so callers
// can distinguish "no findings" from "findings" structurally.
func AnalyzeQuality(tokens []any, audioDuration *float64, th Thresholds) []string {
	var warnings []string

	timed := collectTimedTokens(tokens)
	if len(timed) == 0 {
		return warnings
	}

	// Final-token check.
	final := timed[len(timed)-1]
	if final.duration > th.AbnormalFinalTokenDuration {
		warnings = append(warnings, fmt.Sprintf(
			"⚠️ Final token has abnormal duration: '%s' spans %.1f seconds (%s - %s)",
			final.text, final.duration,
			FormatTXTTimestamp(ptr(final.start)), FormatTXTTimestamp(ptr(final.end)),
		))
	}

	mean, std := durationStats(timed)

	// Outlier detection. Skipped entirely when std is zero: identical
	// durations produce no outliers regardless of magnitude. The last
	// timed token is excluded because the final-token check owns it.
	if std > 0 {
		for i, token := range timed {
			if i == len(timed)-1 {
				continue
			}
			z := (token.duration - mean) / std
			if z > th.OutlierZScore {
				warnings = append(warnings, fmt.Sprintf(
					"⚠️ Potential error: Token '%s' at %s has unusual duration of %.1f seconds (z-score: %.2f)",
					token.text, FormatTXTTimestamp(ptr(token.start)), token.duration, z,
				))
			}
		}
	}

	// Premature-ending check, only when the audio length is known.
	if audioDuration != nil {
		unaccounted := *audioDuration - final.end
		if unaccounted > th.IncompleteTranscript {
			warnings = append(warnings, fmt.Sprintf(
				"⚠️ Transcript may be incomplete: Audio duration is %s but transcript ends at %s (%.1f seconds unaccounted)",
				FormatTXTTimestamp(audioDuration), FormatTXTTimestamp(ptr(final.end)), unaccounted,
			))
		}
	}

	if len(warnings) > 0 {
		header := []string{
			"🔍 TRANSCRIPT QUALITY ANALYSIS",
			strings.Repeat("=", 60),
			fmt.Sprintf("📊 Token duration statistics: mean=%.2fs, std=%.2fs", mean, std),
		}
		warnings = append(header, warnings...)
		warnings = append(warnings, strings.Repeat("=", 60))
	}

	return warnings
}

// collectTimedTokens builds the filtered array of tokens carrying both
// timestamps, preserving sequence order and original indices.
func collectTimedTokens(tokens []any) []timedToken {
	var timed []timedToken
	for i, token := range tokens {
		view := viewOf(token)
		if view.start == nil || view.end == nil {
			continue
		}
		timed = append(timed, timedToken{
			index:    i,
			text:     view.text,
			start:    *view.start,
			end:      *view.end,
			duration: *view.end - *view.start,
		})
	}
	return timed
}

// durationStats returns the population mean and population standard
// deviation (dividing by N) of the timed token durations.
func durationStats(timed []timedToken) (mean, std float64) {
	n := float64(len(timed))
	var sum float64
	for _, token := range timed {
		sum += token.duration
	}
	mean = sum / n

	var variance float64
	for _, token := range timed {
		delta := token.duration - mean
		variance += delta * delta
	}
	variance /= n
	return mean, math.Sqrt(variance)
}
