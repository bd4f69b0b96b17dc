package catalog

import (
	"context"
	"fmt"
)

// Health captures database diagnostics for the CLI.
type Health struct {
	Path          string `json:"path"`
	IntegrityOK   bool   `json:"integrity_ok"`
	IntegrityInfo string `json:"integrity_info,omitempty"`
	SongCount     int    `json:"song_count"`
	SchemaVersion int    `json:"schema_version"`
}

// CheckHealth runs an integrity check and collects basic counts.
func (s *Store) CheckHealth(ctx context.Context) (Health, error) {
	ctx = ensureContext(ctx)
	health := Health{Path: s.path}

	var result string
	if err := s.db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result); err != nil {
		return Health{}, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityOK = result == "ok"
	if !health.IntegrityOK {
		health.IntegrityInfo = result
	}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM songs").Scan(&health.SongCount); err != nil {
		return Health{}, fmt.Errorf("count songs: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&health.SchemaVersion); err != nil {
		return Health{}, fmt.Errorf("read schema version: %w", err)
	}

	return health, nil
}
