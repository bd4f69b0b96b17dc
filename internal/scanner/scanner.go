package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"songbook/internal/catalog"
	"songbook/internal/config"
	"songbook/internal/logging"
	"songbook/internal/songname"
)

// ErrScanInProgress indicates another process is already scanning against
// the same database.
var ErrScanInProgress = errors.New("a scan is already in progress")

// Scanner reconciles the library directory with the catalog.
type Scanner struct {
	cfg    *config.Config
	store  *catalog.Store
	logger *slog.Logger
}

// Result summarizes one scan.
type Result struct {
	Added    int `json:"added"`
	Moved    int `json:"moved"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`
	Enriched int `json:"enriched"`
}

// New constructs a Scanner. A nil logger discards diagnostics.
func New(cfg *config.Config, store *catalog.Store, logger *slog.Logger) *Scanner {
	return &Scanner{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "scanner"),
	}
}

type diskFile struct {
	relPath     string
	filename    string
	format      catalog.Format
	fingerprint string
}

// Scan walks the library, reconciles the catalog, and runs the enrichment
// pass. Only one scan may run against a database at a time.
func (s *Scanner) Scan(ctx context.Context) (Result, error) {
	lock := flock.New(filepath.Join(filepath.Dir(s.store.Path()), "scan.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return Result{}, fmt.Errorf("acquire scan lock: %w", err)
	}
	if !ok {
		return Result{}, ErrScanInProgress
	}
	defer func() { _ = lock.Unlock() }()

	logger := s.logger.With(logging.String(logging.FieldSessionID, uuid.NewString()))
	logger.Info("scan started", logging.String("library", s.cfg.Paths.LibraryDir))

	disk := make(map[string]diskFile)
	if err := s.discover(ctx, s.cfg.Paths.LibraryDir, disk, logger); err != nil {
		return Result{}, err
	}

	result, err := s.reconcile(ctx, disk, logger)
	if err != nil {
		return Result{}, err
	}

	if s.cfg.Scanner.EnrichTags {
		enriched, err := s.enrich(ctx, logger)
		if err != nil {
			return Result{}, err
		}
		result.Enriched = enriched
	}

	logger.Info("scan complete",
		logging.Int("added", result.Added),
		logging.Int("moved", result.Moved),
		logging.Int("updated", result.Updated),
		logging.Int("deleted", result.Deleted),
		logging.Int("enriched", result.Enriched))
	return result, nil
}

func (s *Scanner) discover(ctx context.Context, dir string, disk map[string]diskFile, logger *slog.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if dir == s.cfg.Paths.LibraryDir {
			return fmt.Errorf("read library directory: %w", err)
		}
		logger.Warn("skipping unreadable directory",
			logging.String(logging.FieldPath, dir), logging.Error(err))
		return nil
	}

	namesLower := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			namesLower[strings.ToLower(entry.Name())] = struct{}{}
		}
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		fullPath := filepath.Join(dir, name)

		if entry.IsDir() {
			if s.excluded(name) {
				continue
			}
			if err := s.discover(ctx, fullPath, disk, logger); err != nil {
				return err
			}
			continue
		}

		format, ok := s.classify(name, namesLower)
		if !ok {
			continue
		}

		fingerprint, err := Fingerprint(fullPath)
		if err != nil {
			// The file may have vanished mid-scan; it will be picked up next time.
			logger.Warn("skipping unreadable file",
				logging.String(logging.FieldPath, fullPath), logging.Error(err))
			continue
		}

		relPath, err := filepath.Rel(s.cfg.Paths.LibraryDir, fullPath)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", fullPath, err)
		}
		relPath = filepath.ToSlash(relPath)

		disk[relPath] = diskFile{
			relPath:     relPath,
			filename:    name,
			format:      format,
			fingerprint: fingerprint,
		}
	}
	return nil
}

func (s *Scanner) excluded(dirName string) bool {
	for _, excluded := range s.cfg.Scanner.ExcludeDirs {
		if strings.EqualFold(dirName, excluded) {
			return true
		}
	}
	return false
}

// classify maps a filename to its playback format using case-insensitive
// sibling lookups within the same directory. Companion files (.cdg, .ass,
// .srt) are not cataloged on their own.
func (s *Scanner) classify(name string, namesLower map[string]struct{}) (catalog.Format, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	baseLower := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))

	switch {
	case ext == ".mp3":
		if _, ok := namesLower[baseLower+".cdg"]; ok {
			return catalog.FormatCDG, true
		}
		return "", false
	case ext == ".zip":
		return catalog.FormatZIP, true
	case s.isVideoExt(ext):
		if _, ok := namesLower[baseLower+".ass"]; ok {
			return catalog.FormatMP4ASS, true
		}
		return catalog.FormatMP4, true
	default:
		return "", false
	}
}

func (s *Scanner) isVideoExt(ext string) bool {
	for _, allowed := range s.cfg.Scanner.VideoExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (s *Scanner) reconcile(ctx context.Context, disk map[string]diskFile, logger *slog.Logger) (Result, error) {
	var result Result

	songs, err := s.store.List(ctx, catalog.Filter{})
	if err != nil {
		return Result{}, err
	}
	known := make(map[string]*catalog.Song, len(songs))
	for _, song := range songs {
		known[song.RelPath] = song
	}

	// Rows present on both sides: refresh fingerprint and format drift.
	var missing []*catalog.Song
	for relPath, song := range known {
		file, onDisk := disk[relPath]
		if !onDisk {
			missing = append(missing, song)
			continue
		}
		if song.Fingerprint != file.fingerprint || song.Format != file.format || song.Filename != file.filename {
			song.Fingerprint = file.fingerprint
			song.Format = file.format
			song.Filename = file.filename
			if err := s.store.Update(ctx, song); err != nil {
				return Result{}, err
			}
			result.Updated++
		}
	}

	missingByFingerprint := make(map[string]*catalog.Song, len(missing))
	for _, song := range missing {
		if song.Fingerprint != "" {
			missingByFingerprint[song.Fingerprint] = song
		}
	}

	for relPath, file := range disk {
		if _, ok := known[relPath]; ok {
			continue
		}
		if moved, ok := missingByFingerprint[file.fingerprint]; ok && file.fingerprint != "" {
			// Same content under a new path: carry the row and its metadata over.
			delete(missingByFingerprint, file.fingerprint)
			moved.RelPath = file.relPath
			moved.Filename = file.filename
			moved.Format = file.format
			if err := s.store.Update(ctx, moved); err != nil {
				return Result{}, err
			}
			logger.Debug("move detected",
				logging.String(logging.FieldPath, file.relPath),
				logging.String(logging.FieldFormat, string(file.format)))
			result.Moved++
			continue
		}

		parsed := songname.ParseLenient(file.filename, logger)
		song := catalog.Song{
			RelPath:        file.relPath,
			Fingerprint:    file.fingerprint,
			Filename:       file.filename,
			Artist:         parsed.Artist,
			Title:          parsed.Title,
			YouTubeID:      parsed.YouTubeID,
			Format:         file.format,
			Visible:        true,
			MetadataStatus: catalog.StatusPending,
		}
		if err := s.store.Insert(ctx, &song); err != nil {
			return Result{}, err
		}
		result.Added++
	}

	// Whatever was not claimed as a move is gone.
	for _, song := range missing {
		if song.Fingerprint != "" {
			if _, stillMissing := missingByFingerprint[song.Fingerprint]; !stillMissing {
				continue
			}
		}
		if err := s.store.Delete(ctx, song.ID); err != nil {
			return Result{}, err
		}
		logger.Debug("deleted vanished song", logging.String(logging.FieldPath, song.RelPath))
		result.Deleted++
	}

	return result, nil
}
