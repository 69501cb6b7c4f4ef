package transcription_test

import (
	"os"
	"path/filepath"
	"testing"

	"valuebell/internal/transcription"
)

func TestCacheKeyDependsOnContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.wav")
	b := filepath.Join(dir, "b.wav")
	c := filepath.Join(dir, "c.wav")
	if err := os.WriteFile(a, []byte("audio one"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("audio one"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c, []byte("audio two"), 0o644); err != nil {
		t.Fatal(err)
	}

	cache := transcription.NewCache(t.TempDir())
	keyA, err := cache.Key(a, "en")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	keyB, err := cache.Key(b, "en")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	keyC, err := cache.Key(c, "en")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	keyD, err := cache.Key(a, "de")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}

	if keyA != keyB {
		t.Fatalf("identical content produced different keys: %s vs %s", keyA, keyB)
	}
	if keyA == keyC {
		t.Fatal("different content produced the same key")
	}
	if keyA == keyD {
		t.Fatal("different language produced the same key")
	}
	if len(keyA) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(keyA))
	}
}

func TestCacheStoreAndLoad(t *testing.T) {
	cache := transcription.NewCache(filepath.Join(t.TempDir(), "cache"))
	raw := []byte(`{"text": "cached", "words": [{"text": "cached", "start": 0.0, "end": 0.4}]}`)

	if err := cache.Store("abc123", raw); err != nil {
		t.Fatalf("Store: %v", err)
	}

	doc, loaded, err := cache.Load("abc123")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc == nil {
		t.Fatal("expected a cache hit")
	}
	if doc.Text != "cached" || len(doc.Words) != 1 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if string(loaded) != string(raw) {
		t.Fatalf("raw bytes changed: %s", loaded)
	}
}

func TestCacheLoadMissesAbsentKey(t *testing.T) {
	cache := transcription.NewCache(t.TempDir())
	doc, raw, err := cache.Load("nope")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc != nil || raw != nil {
		t.Fatalf("expected a miss, got %+v", doc)
	}
}

func TestCacheLoadTreatsCorruptEntryAsMiss(t *testing.T) {
	dir := t.TempDir()
	cache := transcription.NewCache(dir)
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, raw, err := cache.Load("bad")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc != nil || raw != nil {
		t.Fatal("corrupt entry should read as a miss")
	}
}
