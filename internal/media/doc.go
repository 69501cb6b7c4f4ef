// Package media wraps the external ffprobe/ffmpeg binaries: container
// inspection (duration, streams) and conversion of arbitrary inputs
// into speech-to-text-ready audio. A missing binary surfaces as an
// error with install guidance rather than a bare exec failure.
package media
