// Package config loads, normalizes, and validates mccread configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: working directories, the Caption Inspector binary and
// timeout, decode behaviour, language annotation, and run history.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
