package artifacts_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"valuebell/internal/artifacts"
)

func TestCleanBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Episode 12: The Finale!", "Episode_12__The_Finale_"},
		{"  weekly-sync_04  ", "weekly-sync_04"},
		{"board/meeting (final)", "board_meeting__final_"},
		{"simple", "simple"},
	}
	for _, tt := range tests {
		if got := artifacts.CleanBaseName(tt.in); got != tt.want {
			t.Errorf("CleanBaseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNamesFor(t *testing.T) {
	names := artifacts.NamesFor("weekly_sync")
	if names.Transcript != "weekly_sync_transcript.txt" {
		t.Errorf("transcript name: %q", names.Transcript)
	}
	if names.Subtitles != "weekly_sync_subtitles.srt" {
		t.Errorf("subtitles name: %q", names.Subtitles)
	}
	if names.RawJSON != "weekly_sync_raw_transcript.json" {
		t.Errorf("raw json name: %q", names.RawJSON)
	}
}

func TestWriteStoresAllOutputs(t *testing.T) {
	dir := t.TempDir()
	paths, err := artifacts.Write(dir, "Weekly Sync", artifacts.Outputs{
		TranscriptText: "transcript body",
		SubtitleText:   "1\n00:00:00,000 --> 00:00:01,000\nspeaker_0: hi\n",
		RawJSON:        []byte(`{"text": "hi"}`),
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	for path, want := range map[string]string{
		paths.Transcript: "transcript body",
		paths.RawJSON:    `{"text": "hi"}`,
	} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if string(data) != want {
			t.Errorf("%s: got %q, want %q", path, data, want)
		}
	}
	if filepath.Base(paths.Transcript) != "Weekly_Sync_transcript.txt" {
		t.Errorf("unexpected transcript filename: %s", paths.Transcript)
	}
	if got := len(paths.All()); got != 3 {
		t.Errorf("All() returned %d paths, want 3", got)
	}
}

func TestWriteSkipsRawJSONWhenAbsent(t *testing.T) {
	paths, err := artifacts.Write(t.TempDir(), "ep", artifacts.Outputs{
		TranscriptText: "body",
		SubtitleText:   "",
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if paths.RawJSON != "" {
		t.Errorf("expected no raw JSON path, got %s", paths.RawJSON)
	}
	if got := len(paths.All()); got != 2 {
		t.Errorf("All() returned %d paths, want 2", got)
	}
}

func TestWriteRejectsUnusableName(t *testing.T) {
	if _, err := artifacts.Write(t.TempDir(), "   ", artifacts.Outputs{}); err == nil {
		t.Fatal("expected error for blank episode name")
	}
}

func TestBundleCreatesZip(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for name, content := range map[string]string{
		"ep_transcript.txt": "transcript",
		"ep_subtitles.srt":  "subtitles",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		files = append(files, path)
	}

	zipPath := filepath.Join(dir, "ep_files.zip")
	if err := artifacts.Bundle(zipPath, files); err != nil {
		t.Fatalf("Bundle: %v", err)
	}

	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer reader.Close()

	found := map[string]bool{}
	for _, entry := range reader.File {
		found[entry.Name] = true
	}
	for _, want := range []string{"ep_transcript.txt", "ep_subtitles.srt"} {
		if !found[want] {
			t.Errorf("zip missing entry %s (have %v)", want, found)
		}
	}
}

func TestBundleRejectsEmptyFileList(t *testing.T) {
	if err := artifacts.Bundle(filepath.Join(t.TempDir(), "x.zip"), nil); err == nil {
		t.Fatal("expected error for empty file list")
	}
}
