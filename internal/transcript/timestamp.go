package transcript

import (
	"fmt"
	"math"
)

// FormatTXTTimestamp renders seconds as zero-padded HH:MM:SS for the
// plain-text transcript. Fractional seconds are truncated, hours are
// unbounded, and a nil input renders as "00:00:00".
func FormatTXTTimestamp(seconds *float64) string {
	if seconds == nil {
		return "00:00:00"
	}
	total := int64(*seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// FormatSRTTime renders seconds as zero-padded HH:MM:SS,mmm for SRT
// cues. The value is rounded (half away from zero) to the nearest
// millisecond, hours are unbounded, and a nil input renders as
// "00:00:00,000".
func FormatSRTTime(seconds *float64) string {
	if seconds == nil {
		return "00:00:00,000"
	}
	millis := int64(math.Round(*seconds * 1000))
	hours := millis / (3600 * 1000)
	millis %= 3600 * 1000
	minutes := millis / (60 * 1000)
	millis %= 60 * 1000
	secs := millis / 1000
	millis %= 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

func ptr(v float64) *float64 { return &v }
