// Package config loads, normalizes, and validates songbook's TOML
// configuration. Defaults apply when no config file exists; path fields are
// tilde-expanded and made absolute during normalization.
package config
