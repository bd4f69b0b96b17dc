package catalog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"songbook/internal/catalog"
	"songbook/internal/testsupport"
)

func TestBackupAndRestoreRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.InsertSong(t, store, catalog.Song{
		RelPath: "a.mp4", Artist: "Queen", Title: "Bohemian Rhapsody", Format: catalog.FormatMP4,
	})

	backupPath, err := store.Backup(ctx, cfg.Paths.BackupDir)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	backups, err := catalog.ListBackups(cfg.Paths.BackupDir)
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 || backups[0] != backupPath {
		t.Fatalf("unexpected backups: %v", backups)
	}

	// Mutate the live catalog, then restore the snapshot over it.
	testsupport.InsertSong(t, store, catalog.Song{
		RelPath: "b.mp3", Title: "Waterloo", Format: catalog.FormatCDG,
	})

	if err := store.RestoreFrom(ctx, backupPath); err != nil {
		t.Fatalf("RestoreFrom failed: %v", err)
	}

	songs, err := store.List(ctx, catalog.Filter{})
	if err != nil {
		t.Fatalf("List after restore failed: %v", err)
	}
	if len(songs) != 1 || songs[0].RelPath != "a.mp4" {
		t.Fatalf("unexpected songs after restore: %+v", songs)
	}
}

func TestRestoreRejectsNonSQLiteFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	bogus := filepath.Join(cfg.Paths.BackupDir, "bogus.db")
	testsupport.WriteFile(t, bogus, []byte("definitely not a database"))

	err := store.RestoreFrom(context.Background(), bogus)
	if !errors.Is(err, catalog.ErrInvalidBackup) {
		t.Fatalf("expected ErrInvalidBackup, got %v", err)
	}

	// The live database must remain usable after a rejected restore.
	if _, err := store.Stats(context.Background()); err != nil {
		t.Fatalf("store unusable after rejected restore: %v", err)
	}
}

func TestListBackupsMissingDir(t *testing.T) {
	backups, err := catalog.ListBackups(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("expected no backups, got %v", backups)
	}
}
