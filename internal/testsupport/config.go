package testsupport

import (
	"path/filepath"
	"testing"

	"songbook/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.BackupDir = filepath.Join(base, "backups")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithEnrichTags toggles tag enrichment on the test config.
func WithEnrichTags(enabled bool) ConfigOption {
	return func(c *config.Config) {
		c.Scanner.EnrichTags = enabled
	}
}

// WithExcludeDirs sets excluded directory names on the test config.
func WithExcludeDirs(dirs ...string) ConfigOption {
	return func(c *config.Config) {
		c.Scanner.ExcludeDirs = dirs
	}
}
