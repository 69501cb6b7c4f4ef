// Package config loads, normalizes, and validates the valuebell TOML
// configuration. Load applies repository defaults first, then the
// config file, then environment-variable overrides for secrets, and
// finally expands all path fields to absolute paths.
package config
