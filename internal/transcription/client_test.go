package transcription_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"valuebell/internal/transcription"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meeting.wav")
	if err := os.WriteFile(path, []byte("RIFF fake audio"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

func TestTranscribeUploadsMultipartAndParsesResponse(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("model_id"); got != "scribe_v1_experimental" {
			t.Errorf("model_id: got %q", got)
		}
		if got := r.FormValue("diarize"); got != "true" {
			t.Errorf("diarize: got %q", got)
		}
		if got := r.FormValue("language_code"); got != "de" {
			t.Errorf("language_code: got %q", got)
		}
		if got := r.FormValue("timestamps_granularity"); got != "word" {
			t.Errorf("timestamps_granularity: got %q", got)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("file part: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"text": "Hello world",
			"words": [
				{"text": "Hello", "start": 0.0, "end": 0.5, "speaker_id": "speaker_0"},
				{"text": "world", "start": 0.6, "end": 1.0, "speaker_id": "speaker_0"}
			]
		}`))
	}))
	defer server.Close()

	client := transcription.NewClient(transcription.ClientOptions{
		APIKey:   "test-key",
		BaseURL:  server.URL,
		Model:    "scribe_v1_experimental",
		Language: "en",
		Diarize:  true,
		Timeout:  5 * time.Second,
	}, nil)

	doc, raw, err := client.Transcribe(context.Background(), writeTempAudio(t), "de")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if gotPath != "/v1/speech-to-text" {
		t.Fatalf("unexpected request path: %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("unexpected api key header: %q", gotKey)
	}
	if doc.Text != "Hello world" || len(doc.Words) != 2 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if len(raw) == 0 {
		t.Fatal("expected raw response bytes")
	}
	if doc.Words[0].Start == nil || *doc.Words[0].Start != 0.0 {
		t.Fatalf("unexpected first word start: %v", doc.Words[0].Start)
	}
}

func TestTranscribeRejectsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := transcription.NewClient(transcription.ClientOptions{
		APIKey:  "bad-key",
		BaseURL: server.URL,
		Model:   "scribe_v1_experimental",
	}, nil)

	if _, _, err := client.Transcribe(context.Background(), writeTempAudio(t), ""); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestTranscribeRequiresAPIKey(t *testing.T) {
	client := transcription.NewClient(transcription.ClientOptions{BaseURL: "http://localhost"}, nil)
	if _, _, err := client.Transcribe(context.Background(), writeTempAudio(t), ""); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestTranscribeRejectsDocumentWithoutTextOrWords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"language_code": "en"}`))
	}))
	defer server.Close()

	client := transcription.NewClient(transcription.ClientOptions{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "m",
	}, nil)

	_, _, err := client.Transcribe(context.Background(), writeTempAudio(t), "")
	if !errors.Is(err, transcription.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}
