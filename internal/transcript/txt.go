package transcript

import (
	"fmt"
	"strings"
)

// Disclaimer is prepended to every rendered plain-text transcript.
const Disclaimer = `⚠️  TRANSCRIPT DISCLAIMER ⚠️
This transcript was generated using AI technology and may contain errors,
inaccuracies, or misinterpretations. Please review and verify the content
before using it for any official, legal, or critical purposes.
Generated by: Valuebell Transcriber
═══════════════════════════════════════════════════════════════════════════

`

// RenderTranscript renders the disclaimer followed by speaker-grouped,
// timestamped paragraphs. When the token sequence is empty, the full
// unsegmented transcript text is rendered verbatim after the disclaimer
// instead. A non-empty sequence whose tokens are all skipped renders
// the disclaimer alone; the fallback applies only to missing token
// data, not to malformed token data.
func RenderTranscript(tokens []any, fullText string) string {
	var b strings.Builder
	b.WriteString(Disclaimer)

	if len(tokens) == 0 {
		b.WriteString(fullText)
		return b.String()
	}

	for _, segment := range GroupBySpeaker(tokens) {
		fmt.Fprintf(&b, "[%s] %s:\n", FormatTXTTimestamp(ptr(segment.StartTime)), segment.Speaker)
		b.WriteString(strings.Join(segment.TextParts, " "))
		b.WriteString("\n\n")
	}
	return b.String()
}
