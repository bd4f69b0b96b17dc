package scanner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"songbook/internal/catalog"
	"songbook/internal/logging"
)

// taggableExtensions are containers dhowden/tag can read metadata from.
var taggableExtensions = map[string]struct{}{
	".mp3": {},
	".mp4": {},
	".m4a": {},
	".ogg": {},
	".flac": {},
}

// enrich fills missing artist/title from embedded tags for every pending
// song, then marks it enriched. Files without tags are enriched as-is; the
// filename parse already provided the best available metadata.
func (s *Scanner) enrich(ctx context.Context, logger *slog.Logger) (int, error) {
	pending, err := s.store.List(ctx, catalog.Filter{Status: catalog.StatusPending})
	if err != nil {
		return 0, err
	}

	enriched := 0
	for _, song := range pending {
		if err := ctx.Err(); err != nil {
			return enriched, err
		}

		if song.Artist == "" || song.Title == "" {
			fullPath := filepath.Join(s.cfg.Paths.LibraryDir, filepath.FromSlash(song.RelPath))
			if artist, title := readTags(fullPath, logger); artist != "" || title != "" {
				if song.Artist == "" {
					song.Artist = artist
				}
				if song.Title == "" {
					song.Title = title
				}
			}
		}

		song.MetadataStatus = catalog.StatusEnriched
		if err := s.store.Update(ctx, song); err != nil {
			return enriched, err
		}
		enriched++
	}
	return enriched, nil
}

func readTags(path string, logger *slog.Logger) (artist, title string) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := taggableExtensions[ext]; !ok {
		return "", ""
	}

	file, err := os.Open(path)
	if err != nil {
		logger.Debug("tag read skipped", logging.String(logging.FieldPath, path), logging.Error(err))
		return "", ""
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		// Most library files carry no tags at all; that is not a problem.
		logger.Debug("no tags found", logging.String(logging.FieldPath, path))
		return "", ""
	}
	return strings.TrimSpace(meta.Artist()), strings.TrimSpace(meta.Title())
}
