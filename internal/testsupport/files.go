package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path with the given contents, creating parent
// directories as needed.
func WriteFile(t testing.TB, path string, contents []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteSong creates a library file whose contents are derived from the seed,
// so two files written with the same seed share a fingerprint.
func WriteSong(t testing.TB, libraryDir, relPath, seed string) string {
	t.Helper()

	path := filepath.Join(libraryDir, filepath.FromSlash(relPath))
	WriteFile(t, path, []byte("songbook-fixture:"+seed))
	return path
}
