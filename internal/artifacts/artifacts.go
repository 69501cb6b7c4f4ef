// Package artifacts writes and bundles the rendered transcript
// outputs.
package artifacts

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CleanBaseName reduces an episode name to a filesystem-safe base:
// alphanumerics, underscores, and hyphens survive, everything else
// becomes an underscore.
func CleanBaseName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// OutputNames holds the derived filenames for one episode's outputs.
type OutputNames struct {
	Transcript string
	Subtitles  string
	RawJSON    string
}

// NamesFor derives the output filenames from a cleaned base name.
func NamesFor(baseName string) OutputNames {
	return OutputNames{
		Transcript: baseName + "_transcript.txt",
		Subtitles:  baseName + "_subtitles.srt",
		RawJSON:    baseName + "_raw_transcript.json",
	}
}

// Outputs is the set of rendered artifacts for one episode.
type Outputs struct {
	TranscriptText string
	SubtitleText   string
	RawJSON        []byte
}

// Paths locates the written artifact files.
type Paths struct {
	Transcript string
	Subtitles  string
	RawJSON    string
}

// All returns the artifact paths in a fixed order, skipping empties.
func (p Paths) All() []string {
	var all []string
	for _, path := range []string{p.Transcript, p.Subtitles, p.RawJSON} {
		if path != "" {
			all = append(all, path)
		}
	}
	return all
}

// Write stores the rendered outputs under dir using filenames derived
// from episodeName. The raw JSON is optional; transcript and subtitles
// are always written.
func Write(dir, episodeName string, outputs Outputs) (Paths, error) {
	base := CleanBaseName(episodeName)
	if base == "" {
		return Paths{}, fmt.Errorf("write artifacts: episode name %q reduces to nothing usable", episodeName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("write artifacts: %w", err)
	}

	names := NamesFor(base)
	paths := Paths{
		Transcript: filepath.Join(dir, names.Transcript),
		Subtitles:  filepath.Join(dir, names.Subtitles),
	}
	if err := os.WriteFile(paths.Transcript, []byte(outputs.TranscriptText), 0o644); err != nil {
		return Paths{}, fmt.Errorf("write transcript: %w", err)
	}
	if err := os.WriteFile(paths.Subtitles, []byte(outputs.SubtitleText), 0o644); err != nil {
		return Paths{}, fmt.Errorf("write subtitles: %w", err)
	}
	if len(outputs.RawJSON) > 0 {
		paths.RawJSON = filepath.Join(dir, names.RawJSON)
		if err := os.WriteFile(paths.RawJSON, outputs.RawJSON, 0o644); err != nil {
			return Paths{}, fmt.Errorf("write raw transcript: %w", err)
		}
	}
	return paths, nil
}

// Bundle zips the given files into zipPath, storing each under its
// base name.
func Bundle(zipPath string, files []string) error {
	if len(files) == 0 {
		return fmt.Errorf("bundle: no files to bundle")
	}

	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("bundle: %w", err)
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	for _, path := range files {
		if err := addToZip(writer, path); err != nil {
			writer.Close()
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("bundle: finalize zip: %w", err)
	}
	return nil
}

func addToZip(writer *zip.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("bundle: %w", err)
	}
	defer file.Close()

	entry, err := writer.Create(filepath.Base(path))
	if err != nil {
		return fmt.Errorf("bundle: add %s: %w", filepath.Base(path), err)
	}
	if _, err := io.Copy(entry, file); err != nil {
		return fmt.Errorf("bundle: add %s: %w", filepath.Base(path), err)
	}
	return nil
}
