// Package transcript turns word-level speech-to-text tokens into
// human-facing outputs: a speaker-grouped plain-text transcript, SRT
// subtitle cues packed under duration/length/speaker constraints, and a
// list of quality warnings flagging statistically anomalous token
// timing.
//
// All functions in this package are pure and single-pass over the token
// sequence. Tokens with missing fields are skipped rather than rejected,
// since upstream transcription output routinely omits timestamps for
// certain token kinds.
package transcript
