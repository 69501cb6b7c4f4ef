package transcription

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"lukechampine.com/blake3"
)

// Cache stores raw transcription responses keyed by a hash of the audio
// content, so re-running an unchanged input skips the API call.
type Cache struct {
	dir string
}

// NewCache creates a response cache rooted at dir.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Key hashes the audio file's content and the transcription language
// with BLAKE3 and returns the cache key. The same audio transcribed in
// a different language must not share an entry.
func (c *Cache) Key(audioPath, language string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	defer file.Close()

	hasher := blake3.New(32, nil)
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("cache key: hash audio: %w", err)
	}
	hasher.Write([]byte("\x00" + language))
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Load returns the cached document and its raw JSON for the given key,
// or (nil, nil, nil) on a cache miss. A corrupt cache entry is treated
// as a miss.
func (c *Cache) Load(key string) (*Document, []byte, error) {
	raw, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("cache load: %w", err)
	}
	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, nil, nil
	}
	return doc, raw, nil
}

// Store writes the raw response JSON under the given key.
func (c *Cache) Store(key string, raw []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	if err := os.WriteFile(c.entryPath(key), raw, 0o644); err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".json")
}
