// Package logging builds the slog loggers used across valuebell. Two
// output formats are supported: a compact console format for
// interactive use and JSON for log shipping. Output can fan out to
// stdout plus a log file under the configured log directory.
package logging
