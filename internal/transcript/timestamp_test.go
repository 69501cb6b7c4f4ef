package transcript_test

import (
	"testing"

	"valuebell/internal/transcript"
)

func TestFormatTXTTimestamp(t *testing.T) {
	cases := []struct {
		name    string
		seconds *float64
		want    string
	}{
		{"nil", nil, "00:00:00"},
		{"zero", floatPtr(0), "00:00:00"},
		{"minute boundary", floatPtr(65), "00:01:05"},
		{"truncates fraction", floatPtr(65.9), "00:01:05"},
		{"hours", floatPtr(3723), "01:02:03"},
		{"unbounded hours", floatPtr(90000), "25:00:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := transcript.FormatTXTTimestamp(tc.seconds); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatSRTTime(t *testing.T) {
	cases := []struct {
		name    string
		seconds *float64
		want    string
	}{
		{"nil", nil, "00:00:00,000"},
		{"zero", floatPtr(0), "00:00:00,000"},
		{"half second", floatPtr(65.5), "00:01:05,500"},
		{"rounds up at millisecond boundary", floatPtr(1.0005), "00:00:01,001"},
		{"rounds nearest", floatPtr(2.0004), "00:00:02,000"},
		{"unbounded hours", floatPtr(90000.25), "25:00:00,250"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := transcript.FormatSRTTime(tc.seconds); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormattersAreIdempotent(t *testing.T) {
	v := floatPtr(4242.042)
	if transcript.FormatTXTTimestamp(v) != transcript.FormatTXTTimestamp(v) {
		t.Fatal("FormatTXTTimestamp not stable across calls")
	}
	if transcript.FormatSRTTime(v) != transcript.FormatSRTTime(v) {
		t.Fatal("FormatSRTTime not stable across calls")
	}
}
