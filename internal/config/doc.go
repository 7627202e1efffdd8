// Package config loads, normalizes, and validates the TOML configuration
// that tunes the filtering core.
package config
