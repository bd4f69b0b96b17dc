package testsupport

import (
	"context"
	"testing"

	"songbook/internal/catalog"
	"songbook/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg.DatabasePath())
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// InsertSong adds a song row for tests using the provided store.
func InsertSong(t testing.TB, store *catalog.Store, song catalog.Song) *catalog.Song {
	t.Helper()

	if song.Filename == "" {
		song.Filename = song.RelPath
	}
	if song.Format == "" {
		song.Format = catalog.FormatMP4
	}
	song.Visible = true
	if err := store.Insert(context.Background(), &song); err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	return &song
}
