package transcript_test

import (
	"strings"
	"testing"

	"valuebell/internal/transcript"
)

func analyze(tokens []any, audioDuration *float64) []string {
	return transcript.AnalyzeQuality(tokens, audioDuration, transcript.DefaultThresholds())
}

func TestAnalyzeQualityEmptyInput(t *testing.T) {
	if warnings := analyze(nil, nil); len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if warnings := analyze([]any{}, floatPtr(60)); len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}

func TestAnalyzeQualityNoTimedTokens(t *testing.T) {
	tokens := []any{
		mapToken("untimed", nil, nil, "speaker_0"),
		mapToken("half", floatPtr(1.0), nil, "speaker_0"),
	}
	if warnings := analyze(tokens, floatPtr(60)); len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}

func TestAnalyzeQualityCleanTranscriptIsUnwrapped(t *testing.T) {
	tokens := []any{
		mapToken("a", floatPtr(0.0), floatPtr(0.5), "speaker_0"),
		mapToken("b", floatPtr(0.6), floatPtr(1.1), "speaker_0"),
		mapToken("c", floatPtr(1.2), floatPtr(1.7), "speaker_0"),
	}
	if warnings := analyze(tokens, floatPtr(2.0)); len(warnings) != 0 {
		t.Fatalf("clean transcript produced warnings: %v", warnings)
	}
}

func TestAnalyzeQualityAbnormalFinalTokenNotDoubleReported(t *testing.T) {
	// The anomalous token is the final timed token: the final-token
	// check owns it and the outlier pass must skip it.
	tokens := []any{
		mapToken("Hello", floatPtr(0.0), floatPtr(0.5), "speaker_0"),
		mapToken("world", floatPtr(0.6), floatPtr(1.0), "speaker_0"),
		mapToken("outlier", floatPtr(1.0), floatPtr(20.0), "speaker_0"),
	}

	warnings := analyze(tokens, nil)
	if len(warnings) == 0 {
		t.Fatal("expected warnings")
	}
	joined := strings.Join(warnings, "\n")
	if !strings.Contains(joined, "abnormal duration") {
		t.Fatalf("missing abnormal duration warning:\n%s", joined)
	}
	if !strings.Contains(joined, "'outlier'") {
		t.Fatalf("warning does not name the token:\n%s", joined)
	}
	if strings.Contains(joined, "unusual duration") {
		t.Fatalf("final token double-reported by outlier pass:\n%s", joined)
	}
	if strings.Contains(joined, "'Hello'") {
		t.Fatalf("unrelated token flagged:\n%s", joined)
	}
}

func TestAnalyzeQualityFlagsMidSequenceOutlier(t *testing.T) {
	// Many uniform tokens plus one mid-sequence spike pushes the spike
	// past z=3 while the final token stays ordinary.
	var tokens []any
	for i := 0; i < 30; i++ {
		start := float64(i)
		end := start + 0.5
		tokens = append(tokens, mapToken("word", &start, &end, "speaker_0"))
	}
	tokens[10] = mapToken("sssstuck", floatPtr(10.0), floatPtr(18.0), "speaker_0")

	warnings := analyze(tokens, nil)
	joined := strings.Join(warnings, "\n")
	if !strings.Contains(joined, "unusual duration") || !strings.Contains(joined, "'sssstuck'") {
		t.Fatalf("mid-sequence outlier not flagged:\n%s", joined)
	}
	if strings.Contains(joined, "abnormal duration") {
		t.Fatalf("final-token warning raised for ordinary final token:\n%s", joined)
	}
}

func TestAnalyzeQualityIdenticalDurationsProduceNoOutliers(t *testing.T) {
	// Zero standard deviation disables the z-score pass entirely, even
	// when every duration is absurdly long.
	var tokens []any
	for i := 0; i < 5; i++ {
		start := float64(i) * 10
		end := start + 9.0
		tokens = append(tokens, mapToken("slow", &start, &end, "speaker_0"))
	}
	if warnings := analyze(tokens, nil); len(warnings) != 0 {
		t.Fatalf("expected no warnings for uniform durations, got %v", warnings)
	}
}

func TestAnalyzeQualityIncompleteTranscript(t *testing.T) {
	tokens := []any{
		mapToken("short", floatPtr(0.0), floatPtr(0.5), "speaker_0"),
		mapToken("transcript", floatPtr(1.0), floatPtr(2.0), "speaker_0"),
	}

	warnings := analyze(tokens, floatPtr(10.0))
	joined := strings.Join(warnings, "\n")
	if !strings.Contains(joined, "incomplete") {
		t.Fatalf("missing incomplete warning:\n%s", joined)
	}
	if !strings.Contains(joined, "00:00:10") || !strings.Contains(joined, "00:00:02") {
		t.Fatalf("incomplete warning missing formatted bounds:\n%s", joined)
	}
	if !strings.Contains(joined, "8.0 seconds unaccounted") {
		t.Fatalf("incomplete warning missing unaccounted time:\n%s", joined)
	}
}

func TestAnalyzeQualityUnknownAudioDurationSkipsIncompleteCheck(t *testing.T) {
	tokens := []any{
		mapToken("short", floatPtr(0.0), floatPtr(0.5), "speaker_0"),
		mapToken("transcript", floatPtr(1.0), floatPtr(2.0), "speaker_0"),
	}
	if warnings := analyze(tokens, nil); len(warnings) != 0 {
		t.Fatalf("expected no warnings without audio duration, got %v", warnings)
	}
}

func TestAnalyzeQualityWrapperLines(t *testing.T) {
	tokens := []any{
		mapToken("short", floatPtr(0.0), floatPtr(0.5), "speaker_0"),
		mapToken("transcript", floatPtr(1.0), floatPtr(2.0), "speaker_0"),
	}

	warnings := analyze(tokens, floatPtr(10.0))
	if len(warnings) < 5 {
		t.Fatalf("expected wrapped warning list, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "TRANSCRIPT QUALITY ANALYSIS") {
		t.Fatalf("first line is not the title: %q", warnings[0])
	}
	if warnings[1] != strings.Repeat("=", 60) {
		t.Fatalf("second line is not a separator: %q", warnings[1])
	}
	if !strings.Contains(warnings[2], "mean=") || !strings.Contains(warnings[2], "std=") {
		t.Fatalf("third line is not the statistics summary: %q", warnings[2])
	}
	if warnings[len(warnings)-1] != strings.Repeat("=", 60) {
		t.Fatalf("missing closing separator: %q", warnings[len(warnings)-1])
	}
}

func TestAnalyzeQualityLastTimedEntryExclusionIgnoresTrailingUntimedTokens(t *testing.T) {
	// The outlier exclusion applies to the last entry of the filtered
	// timed array, even when untimed tokens follow it in the sequence.
	tokens := []any{
		mapToken("Hello", floatPtr(0.0), floatPtr(0.5), "speaker_0"),
		mapToken("world", floatPtr(0.6), floatPtr(1.0), "speaker_0"),
		mapToken("outlier", floatPtr(1.0), floatPtr(20.0), "speaker_0"),
		mapToken("trailing untimed", nil, nil, "speaker_0"),
	}

	warnings := analyze(tokens, nil)
	joined := strings.Join(warnings, "\n")
	if strings.Contains(joined, "unusual duration") {
		t.Fatalf("last timed entry reported by outlier pass:\n%s", joined)
	}
	if !strings.Contains(joined, "abnormal duration") {
		t.Fatalf("final-token check missing:\n%s", joined)
	}
}
