package media_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"valuebell/internal/media"
)

func testConverter(runner func(ctx context.Context, name string, args ...string) error) *media.Converter {
	conv := media.NewConverter("ffmpeg", media.ConvertOptions{
		SampleRate:    16000,
		Channels:      1,
		MP3Bitrate:    "192k",
		MP3SampleRate: 44100,
		MaxWAVBytes:   1 << 30,
	}, nil)
	conv.WithCommandRunner(runner)
	return conv
}

func TestConvertToWAVArgs(t *testing.T) {
	var captured []string
	conv := testConverter(func(_ context.Context, name string, args ...string) error {
		if name != "ffmpeg" {
			t.Fatalf("unexpected binary: %q", name)
		}
		captured = args
		return nil
	})

	if err := conv.ConvertToWAV(context.Background(), "in.mp4", "out.wav"); err != nil {
		t.Fatalf("ConvertToWAV: %v", err)
	}

	joined := strings.Join(captured, " ")
	for _, want := range []string{"-acodec pcm_s16le", "-ar 16000", "-ac 1", "-vn", "out.wav"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args missing %q: %s", want, joined)
		}
	}
}

func TestConvertToMP3Args(t *testing.T) {
	var captured []string
	conv := testConverter(func(_ context.Context, _ string, args ...string) error {
		captured = args
		return nil
	})

	if err := conv.ConvertToMP3(context.Background(), "in.wav", "out.mp3"); err != nil {
		t.Fatalf("ConvertToMP3: %v", err)
	}

	joined := strings.Join(captured, " ")
	for _, want := range []string{"-acodec libmp3lame", "-b:a 192k", "-ar 44100", "out.mp3"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args missing %q: %s", want, joined)
		}
	}
}

func TestProcessAudioKeepsSmallWAV(t *testing.T) {
	workDir := t.TempDir()
	conv := testConverter(func(_ context.Context, _ string, args ...string) error {
		// Simulate ffmpeg producing the destination file.
		dest := args[len(args)-1]
		return os.WriteFile(dest, []byte("RIFF"), 0o644)
	})

	path, err := conv.ProcessAudio(context.Background(), "in.mp4", workDir, "meeting")
	if err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}
	if path != filepath.Join(workDir, "meeting.wav") {
		t.Fatalf("unexpected output path: %q", path)
	}
}

func TestProcessAudioFallsBackToMP3(t *testing.T) {
	workDir := t.TempDir()
	conv := media.NewConverter("ffmpeg", media.ConvertOptions{
		SampleRate:    16000,
		Channels:      1,
		MP3Bitrate:    "192k",
		MP3SampleRate: 44100,
		MaxWAVBytes:   4, // force the fallback
	}, nil)
	conv.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		dest := args[len(args)-1]
		return os.WriteFile(dest, []byte("too large"), 0o644)
	})

	path, err := conv.ProcessAudio(context.Background(), "in.mp4", workDir, "meeting")
	if err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}
	if path != filepath.Join(workDir, "meeting.mp3") {
		t.Fatalf("expected mp3 fallback, got %q", path)
	}
	if _, err := os.Stat(filepath.Join(workDir, "meeting.wav")); !os.IsNotExist(err) {
		t.Fatal("oversized wav should have been removed")
	}
}

func TestInspectEmptyPath(t *testing.T) {
	if _, err := media.Inspect(context.Background(), "ffprobe", ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestProbeResultAccessors(t *testing.T) {
	result := media.ProbeResult{
		Streams: []media.Stream{
			{CodecType: "audio"},
			{CodecType: "video"},
			{CodecType: "AUDIO"},
		},
		Format: media.Format{Duration: "123.45"},
	}
	if got := result.DurationSeconds(); got != 123.45 {
		t.Fatalf("duration: got %v", got)
	}
	if got := result.AudioStreamCount(); got != 2 {
		t.Fatalf("audio streams: got %d", got)
	}

	empty := media.ProbeResult{}
	if got := empty.DurationSeconds(); got != 0 {
		t.Fatalf("empty duration: got %v", got)
	}
}
