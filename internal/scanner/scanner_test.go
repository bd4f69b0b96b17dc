package scanner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"songbook/internal/catalog"
	"songbook/internal/scanner"
	"songbook/internal/testsupport"
)

func TestScanAddsAndClassifies(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	lib := cfg.Paths.LibraryDir
	ctx := context.Background()

	testsupport.WriteSong(t, lib, "song.mp3", "cdg-audio")
	testsupport.WriteSong(t, lib, "song.cdg", "cdg-timing")
	testsupport.WriteSong(t, lib, "bundle.zip", "zip")
	testsupport.WriteSong(t, lib, "clip.mp4", "video")
	testsupport.WriteSong(t, lib, "clip.ass", "subs")
	testsupport.WriteSong(t, lib, "plain.mkv", "plain")
	testsupport.WriteSong(t, lib, "Queen - Bohemian Rhapsody---dQw4w9WgXcQ.mp4", "queen")
	testsupport.WriteSong(t, lib, ".hidden.mp4", "hidden")
	testsupport.WriteSong(t, lib, "loose.mp3", "no-cdg-sibling")
	testsupport.WriteSong(t, lib, "orphan.srt", "subtitle-only")

	result, err := scanner.New(cfg, store, nil).Scan(ctx)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.Added != 5 {
		t.Fatalf("expected 5 added, got %+v", result)
	}
	if result.Enriched != 5 {
		t.Fatalf("expected all added songs enriched, got %+v", result)
	}

	expect := map[string]catalog.Format{
		"song.mp3":   catalog.FormatCDG,
		"bundle.zip": catalog.FormatZIP,
		"clip.mp4":   catalog.FormatMP4ASS,
		"plain.mkv":  catalog.FormatMP4,
		"Queen - Bohemian Rhapsody---dQw4w9WgXcQ.mp4": catalog.FormatMP4,
	}
	for relPath, format := range expect {
		song, err := store.GetByPath(ctx, relPath)
		if err != nil {
			t.Fatalf("GetByPath(%q) failed: %v", relPath, err)
		}
		if song == nil {
			t.Fatalf("expected row for %q", relPath)
		}
		if song.Format != format {
			t.Fatalf("%s: expected format %s, got %s", relPath, format, song.Format)
		}
	}

	queen, err := store.GetByPath(ctx, "Queen - Bohemian Rhapsody---dQw4w9WgXcQ.mp4")
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if queen.Artist != "Queen" || queen.Title != "Bohemian Rhapsody" || queen.YouTubeID != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected parsed metadata: %+v", queen)
	}

	for _, relPath := range []string{".hidden.mp4", "loose.mp3", "orphan.srt", "song.cdg", "clip.ass"} {
		song, err := store.GetByPath(ctx, relPath)
		if err != nil {
			t.Fatalf("GetByPath(%q) failed: %v", relPath, err)
		}
		if song != nil {
			t.Fatalf("expected no row for %q, got %+v", relPath, song)
		}
	}
}

func TestScanDetectsMove(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	lib := cfg.Paths.LibraryDir
	ctx := context.Background()
	scan := scanner.New(cfg, store, nil)

	original := testsupport.WriteSong(t, lib, "Queen - Bohemian Rhapsody---dQw4w9WgXcQ.mp4", "queen")
	if _, err := scan.Scan(ctx); err != nil {
		t.Fatalf("initial scan failed: %v", err)
	}
	before, err := store.GetByPath(ctx, "Queen - Bohemian Rhapsody---dQw4w9WgXcQ.mp4")
	if err != nil || before == nil {
		t.Fatalf("expected initial row, err=%v", err)
	}

	if err := os.MkdirAll(filepath.Join(lib, "queen"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	moved := filepath.Join(lib, "queen", "Bohemian Rhapsody.mp4")
	if err := os.Rename(original, moved); err != nil {
		t.Fatalf("rename: %v", err)
	}

	result, err := scan.Scan(ctx)
	if err != nil {
		t.Fatalf("rescan failed: %v", err)
	}
	if result.Moved != 1 || result.Added != 0 || result.Deleted != 0 {
		t.Fatalf("expected pure move, got %+v", result)
	}

	after, err := store.GetByPath(ctx, "queen/Bohemian Rhapsody.mp4")
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if after == nil || after.ID != before.ID {
		t.Fatalf("expected row carried across move: before=%+v after=%+v", before, after)
	}
	if after.Artist != "Queen" || after.YouTubeID != "dQw4w9WgXcQ" {
		t.Fatalf("expected metadata preserved across move: %+v", after)
	}
}

func TestScanDeletesVanished(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	lib := cfg.Paths.LibraryDir
	ctx := context.Background()
	scan := scanner.New(cfg, store, nil)

	path := testsupport.WriteSong(t, lib, "gone.mp4", "gone")
	if _, err := scan.Scan(ctx); err != nil {
		t.Fatalf("initial scan failed: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	result, err := scan.Scan(ctx)
	if err != nil {
		t.Fatalf("rescan failed: %v", err)
	}
	if result.Deleted != 1 {
		t.Fatalf("expected 1 deleted, got %+v", result)
	}

	song, err := store.GetByPath(ctx, "gone.mp4")
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if song != nil {
		t.Fatalf("expected row removed, got %+v", song)
	}
}

func TestScanUpdatesChangedContent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	lib := cfg.Paths.LibraryDir
	ctx := context.Background()
	scan := scanner.New(cfg, store, nil)

	testsupport.WriteSong(t, lib, "clip.mp4", "take-one")
	if _, err := scan.Scan(ctx); err != nil {
		t.Fatalf("initial scan failed: %v", err)
	}
	before, err := store.GetByPath(ctx, "clip.mp4")
	if err != nil || before == nil {
		t.Fatalf("expected initial row, err=%v", err)
	}

	testsupport.WriteSong(t, lib, "clip.mp4", "take-two-with-longer-content")

	result, err := scan.Scan(ctx)
	if err != nil {
		t.Fatalf("rescan failed: %v", err)
	}
	if result.Updated != 1 || result.Added != 0 {
		t.Fatalf("expected 1 updated, got %+v", result)
	}

	after, err := store.GetByPath(ctx, "clip.mp4")
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if after.ID != before.ID || after.Fingerprint == before.Fingerprint {
		t.Fatalf("expected same row with new fingerprint: before=%+v after=%+v", before, after)
	}
}

func TestScanRespectsExcludedDirs(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithExcludeDirs("incoming"))
	store := testsupport.MustOpenStore(t, cfg)
	lib := cfg.Paths.LibraryDir
	ctx := context.Background()

	testsupport.WriteSong(t, lib, "keep.mp4", "keep")
	testsupport.WriteSong(t, lib, "incoming/skip.mp4", "skip")

	result, err := scanner.New(cfg, store, nil).Scan(ctx)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.Added != 1 {
		t.Fatalf("expected 1 added, got %+v", result)
	}
}

func TestScanRejectedWhileLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	lock := flock.New(filepath.Join(filepath.Dir(store.Path()), "scan.lock"))
	ok, err := lock.TryLock()
	if err != nil || !ok {
		t.Fatalf("could not take lock: ok=%v err=%v", ok, err)
	}
	defer lock.Unlock()

	_, err = scanner.New(cfg, store, nil).Scan(context.Background())
	if !errors.Is(err, scanner.ErrScanInProgress) {
		t.Fatalf("expected ErrScanInProgress, got %v", err)
	}
}

func TestFingerprintTracksContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.mp4")
	b := filepath.Join(dir, "b.mp4")
	c := filepath.Join(dir, "c.mp4")
	testsupport.WriteFile(t, a, []byte("same content"))
	testsupport.WriteFile(t, b, []byte("same content"))
	testsupport.WriteFile(t, c, []byte("different content"))

	fpA, err := scanner.Fingerprint(a)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	fpB, err := scanner.Fingerprint(b)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	fpC, err := scanner.Fingerprint(c)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}

	if fpA != fpB {
		t.Fatalf("identical content should share fingerprints: %s vs %s", fpA, fpB)
	}
	if fpA == fpC {
		t.Fatal("different content should not share fingerprints")
	}

	if _, err := scanner.Fingerprint(filepath.Join(dir, "missing.mp4")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
