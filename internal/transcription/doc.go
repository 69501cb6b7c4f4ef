// Package transcription calls the hosted speech-to-text API and parses
// its response documents. Responses carry the full transcript text plus
// word-level tokens with timestamps and speaker labels; raw response
// JSON is cached per audio-content hash so unchanged inputs are never
// re-transcribed.
package transcription
