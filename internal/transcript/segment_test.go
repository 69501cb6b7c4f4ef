package transcript_test

import (
	"strings"
	"testing"

	"valuebell/internal/transcript"
)

func TestGroupBySpeakerSplitsOnSpeakerChange(t *testing.T) {
	tokens := []any{
		mapToken("Hello", floatPtr(0.0), floatPtr(0.4), "speaker_0"),
		mapToken("there", floatPtr(0.5), floatPtr(0.9), "speaker_0"),
		mapToken("Hi", floatPtr(1.0), floatPtr(1.3), "speaker_1"),
		mapToken("back", floatPtr(1.4), floatPtr(1.8), "speaker_0"),
	}

	segments := transcript.GroupBySpeaker(tokens)
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	for i := 1; i < len(segments); i++ {
		if segments[i].Speaker == segments[i-1].Speaker {
			t.Fatalf("adjacent segments share speaker %q", segments[i].Speaker)
		}
	}
	if segments[0].StartTime != 0.0 || len(segments[0].TextParts) != 2 {
		t.Fatalf("unexpected first segment: %+v", segments[0])
	}
	if segments[1].Speaker != "speaker_1" {
		t.Fatalf("unexpected second segment speaker: %q", segments[1].Speaker)
	}
}

func TestGroupBySpeakerSkipsUnusableTokens(t *testing.T) {
	tokens := []any{
		mapToken("", floatPtr(0.0), floatPtr(0.2), "speaker_0"), // no text
		mapToken("kept", floatPtr(0.3), nil, "speaker_0"),       // end missing is fine here
		mapToken("dropped", nil, floatPtr(1.0), "speaker_0"),    // no start
		mapToken("also kept", floatPtr(1.1), nil, "speaker_0"),
	}

	segments := transcript.GroupBySpeaker(tokens)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if got := strings.Join(segments[0].TextParts, " "); got != "kept also kept" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestGroupBySpeakerDefaultsToUnknownSentinel(t *testing.T) {
	tokens := []any{
		mapToken("word", floatPtr(0.0), floatPtr(0.5), ""),
	}
	segments := transcript.GroupBySpeaker(tokens)
	if len(segments) != 1 || segments[0].Speaker != transcript.SpeakerUnknown {
		t.Fatalf("expected sentinel speaker, got %+v", segments)
	}
}

func TestGroupBySpeakerMixedShapes(t *testing.T) {
	tokens := []any{
		wordToken("one", floatPtr(0.0), floatPtr(0.2), "speaker_0"),
		mapToken("two", floatPtr(0.3), floatPtr(0.5), "speaker_0"),
	}
	segments := transcript.GroupBySpeaker(tokens)
	if len(segments) != 1 || len(segments[0].TextParts) != 2 {
		t.Fatalf("expected one merged segment, got %+v", segments)
	}
}

func TestGroupBySpeakerEmptyInput(t *testing.T) {
	if segments := transcript.GroupBySpeaker(nil); len(segments) != 0 {
		t.Fatalf("expected no segments, got %d", len(segments))
	}
}

func TestCountUniqueSpeakers(t *testing.T) {
	tokens := []any{
		mapToken("a", floatPtr(0), floatPtr(1), "speaker_0"),
		mapToken("b", floatPtr(1), floatPtr(2), "speaker_1"),
		mapToken("c", floatPtr(2), floatPtr(3), ""),
		mapToken("d", floatPtr(3), floatPtr(4), "speaker_0"),
	}
	if got := transcript.CountUniqueSpeakers(tokens); got != 3 {
		t.Fatalf("expected 3 unique speakers, got %d", got)
	}
}

func TestRenderTranscriptGroupsAndTimestamps(t *testing.T) {
	tokens := []any{
		mapToken("Hello", floatPtr(65.0), floatPtr(65.4), "speaker_0"),
		mapToken("world", floatPtr(65.5), floatPtr(65.9), "speaker_0"),
	}

	out := transcript.RenderTranscript(tokens, "")
	if !strings.HasPrefix(out, transcript.Disclaimer) {
		t.Fatal("transcript missing disclaimer banner")
	}
	if !strings.Contains(out, "[00:01:05] speaker_0:\nHello world\n\n") {
		t.Fatalf("unexpected transcript body:\n%s", out)
	}
}

func TestRenderTranscriptFallsBackToFullText(t *testing.T) {
	out := transcript.RenderTranscript(nil, "raw transcript text")
	if out != transcript.Disclaimer+"raw transcript text" {
		t.Fatalf("unexpected fallback output:\n%s", out)
	}
}

func TestRenderTranscriptSkippedTokensDoNotTriggerFallback(t *testing.T) {
	tokens := []any{mapToken("", floatPtr(0), floatPtr(1), "speaker_0")}
	out := transcript.RenderTranscript(tokens, "should not appear")
	if strings.Contains(out, "should not appear") {
		t.Fatal("fallback text rendered despite non-empty token sequence")
	}
}
