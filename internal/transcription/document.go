package transcription

import (
	"encoding/json"
	"errors"
	"fmt"

	"valuebell/internal/transcript"
)

// ErrInvalidDocument indicates a response document carrying neither a
// transcript text nor a word array.
var ErrInvalidDocument = errors.New("transcription document has neither text nor words")

// Document is a parsed transcription response: the full transcript
// text and the word-level token array. Either field may be absent, but
// never both.
type Document struct {
	Text         string            `json:"text"`
	Words        []transcript.Word `json:"words"`
	LanguageCode string            `json:"language_code,omitempty"`
}

// ParseDocument decodes and validates a raw response document. A
// document is valid only when at least one of the top-level "text" or
// "words" fields is present; anything else is rejected before it can
// produce a meaningless render downstream.
func ParseDocument(data []byte) (*Document, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse transcription document: %w", err)
	}
	_, hasText := probe["text"]
	_, hasWords := probe["words"]
	if !hasText && !hasWords {
		return nil, ErrInvalidDocument
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse transcription document: %w", err)
	}
	return &doc, nil
}

// Tokens returns the word array in the generic token form the
// transcript algorithms consume.
func (d *Document) Tokens() []any {
	tokens := make([]any, len(d.Words))
	for i, word := range d.Words {
		tokens[i] = word
	}
	return tokens
}
