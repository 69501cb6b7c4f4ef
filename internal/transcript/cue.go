package transcript

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Cue packing limits. A cue closes before the token that would push it
// past either bound, or when the speaker changes.
const (
	MaxCueDurationSeconds = 7
	MaxCueCharacters      = 120
)

// CueLimits carries the tunable subtitle packing bounds.
type CueLimits struct {
	MaxDurationSeconds float64
	MaxCharacters      int
}

// DefaultCueLimits returns the stock packing bounds.
func DefaultCueLimits() CueLimits {
	return CueLimits{
		MaxDurationSeconds: MaxCueDurationSeconds,
		MaxCharacters:      MaxCueCharacters,
	}
}

type cueWord struct {
	text string
	end  float64
}

// RenderSubtitles packs the token sequence into SRT cue blocks using
// the default limits. It returns the empty string when the sequence is
// empty or no token carries text plus both timestamps.
func RenderSubtitles(tokens []any) string {
	return RenderSubtitlesWithLimits(tokens, DefaultCueLimits())
}

// RenderSubtitlesWithLimits packs tokens into numbered SRT cues. A cue
// is finalized before adding a token when the speaker changes, when the
// token's end would stretch the cue past MaxDurationSeconds, or when
// the joined text including the token would exceed MaxCharacters. The
// first token of a cue is never rejected on its own account, so a
// single pathological token still forms a one-token cue that may exceed
// either bound. Token text is never truncated.
func RenderSubtitlesWithLimits(tokens []any, limits CueLimits) string {
	if len(tokens) == 0 {
		return ""
	}

	var (
		blocks     []string
		cueNumber  = 1
		cueWords   []cueWord
		cueSpeaker string
		cueStart   float64
	)

	for _, token := range tokens {
		view := viewOf(token)
		if !view.usableForCue() {
			continue
		}

		finalize := false
		if len(cueWords) == 0 {
			cueSpeaker = view.speaker
			cueStart = *view.start
		} else if view.speaker != cueSpeaker ||
			*view.end-cueStart > limits.MaxDurationSeconds ||
			joinedLength(cueWords, view.text) > limits.MaxCharacters {
			finalize = true
		}

		if finalize && len(cueWords) > 0 {
			blocks = append(blocks, renderCueBlock(cueNumber, cueStart, cueSpeaker, cueWords))
			cueNumber++
			cueWords = cueWords[:0]
			cueSpeaker = view.speaker
			cueStart = *view.start
		}

		cueWords = append(cueWords, cueWord{text: view.text, end: *view.end})
	}

	if len(cueWords) > 0 {
		blocks = append(blocks, renderCueBlock(cueNumber, cueStart, cueSpeaker, cueWords))
	}

	return strings.Join(blocks, "\n")
}

// joinedLength counts the characters of the space-joined accumulated
// texts plus the candidate token text. Counting is by code point, not
// byte, so multibyte scripts pack the same number of visible characters.
func joinedLength(words []cueWord, candidate string) int {
	length := utf8.RuneCountInString(candidate)
	for _, w := range words {
		length += utf8.RuneCountInString(w.text) + 1
	}
	return length
}

func renderCueBlock(number int, start float64, speaker string, words []cueWord) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.text
	}
	return fmt.Sprintf("%d\n%s --> %s\n%s: %s\n",
		number,
		FormatSRTTime(ptr(start)),
		FormatSRTTime(ptr(words[len(words)-1].end)),
		speaker,
		strings.Join(parts, " "),
	)
}
