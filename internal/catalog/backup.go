package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	backupPrefix        = "songbook_backup_"
	backupSuffix        = ".db"
	backupTimestampFmt  = "20060102_150405"
	sqliteHeaderMagic   = "SQLite format 3"
	sqliteHeaderMinSize = 16
)

// ErrInvalidBackup indicates a restore source that is not a SQLite database.
var ErrInvalidBackup = errors.New("not a SQLite database")

// Backup snapshots the live database into backupDir and returns the snapshot
// path. VACUUM INTO produces a consistent copy without blocking readers.
func (s *Store) Backup(ctx context.Context, backupDir string) (string, error) {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := backupPrefix + time.Now().UTC().Format(backupTimestampFmt) + backupSuffix
	dest := filepath.Join(backupDir, name)

	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("backup target %s already exists", dest)
	}

	if _, err := s.execWithRetry(ctx, `VACUUM INTO ?`, dest); err != nil {
		return "", fmt.Errorf("vacuum into backup: %w", err)
	}
	return dest, nil
}

// ListBackups returns backup files in backupDir, newest first. A missing
// directory yields an empty list.
func ListBackups(backupDir string) ([]string, error) {
	entries, err := os.ReadDir(backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var backups []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, backupSuffix) {
			backups = append(backups, filepath.Join(backupDir, name))
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	return backups, nil
}

// RestoreFrom replaces the live database with the contents of sourcePath.
// The source is validated as a SQLite file first; then the connection is
// closed, WAL artifacts are cleared, the file is swapped in, and the store
// reopens against the restored database.
func (s *Store) RestoreFrom(ctx context.Context, sourcePath string) error {
	if err := validateSQLiteFile(sourcePath); err != nil {
		return err
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("close database before restore: %w", err)
		}
		s.db = nil
	}

	// Stale WAL/SHM files from the old database would corrupt the restored one.
	for _, ext := range []string{"", "-wal", "-shm"} {
		target := s.path + ext
		if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", target, err)
		}
	}

	if err := copyFile(sourcePath, s.path); err != nil {
		restoreErr := fmt.Errorf("copy restored database: %w", err)
		if db, reopenErr := openDatabase(s.path); reopenErr == nil {
			s.db = db
		}
		return restoreErr
	}

	db, err := openDatabase(s.path)
	if err != nil {
		return fmt.Errorf("reopen restored database: %w", err)
	}
	s.db = db

	if err := s.initSchema(ensureContext(ctx)); err != nil {
		return fmt.Errorf("restored database: %w", err)
	}
	return nil
}

func validateSQLiteFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open restore source: %w", err)
	}
	defer file.Close()

	header := make([]byte, sqliteHeaderMinSize)
	n, err := io.ReadFull(file, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("read restore source header: %w", err)
	}
	if !bytes.Contains(header[:n], []byte(sqliteHeaderMagic)) {
		return fmt.Errorf("%w: %s", ErrInvalidBackup, path)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
