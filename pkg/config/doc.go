// Package config handles configuration management for nexpatch.
// It layers the embedded defaults, an optional TOML config file,
// NEXPATCH_* environment variables and command-line flag overrides.
package config
