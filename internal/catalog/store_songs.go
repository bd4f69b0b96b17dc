package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const songColumns = `id, rel_path, fingerprint, filename, artist, title, youtube_id,
    format, search_blob, visible, metadata_status, added_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(row rowScanner) (*Song, error) {
	var (
		song      Song
		visible   int
		addedAt   string
		updatedAt string
	)
	err := row.Scan(
		&song.ID,
		&song.RelPath,
		&song.Fingerprint,
		&song.Filename,
		&song.Artist,
		&song.Title,
		&song.YouTubeID,
		&song.Format,
		&song.SearchBlob,
		&visible,
		&song.MetadataStatus,
		&addedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	song.Visible = visible != 0
	song.AddedAt = parseTimestamp(addedAt)
	song.UpdatedAt = parseTimestamp(updatedAt)
	return &song, nil
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

// Insert adds a new song row and fills in its assigned ID and timestamps.
func (s *Store) Insert(ctx context.Context, song *Song) error {
	if song == nil {
		return errors.New("song is nil")
	}
	if strings.TrimSpace(song.RelPath) == "" {
		return errors.New("song rel_path is required")
	}
	if song.Format == "" {
		return errors.New("song format is required")
	}
	if song.MetadataStatus == "" {
		song.MetadataStatus = StatusPending
	}
	song.SearchBlob = BuildSearchBlob(song.Artist, song.Title, song.Filename, song.YouTubeID)

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO songs (
            rel_path, fingerprint, filename, artist, title, youtube_id,
            format, search_blob, visible, metadata_status, added_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		song.RelPath,
		song.Fingerprint,
		song.Filename,
		song.Artist,
		song.Title,
		song.YouTubeID,
		string(song.Format),
		song.SearchBlob,
		boolToInt(song.Visible),
		string(song.MetadataStatus),
		timestamp,
		timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert song: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	song.ID = id
	song.AddedAt = now
	song.UpdatedAt = now
	return nil
}

// Update persists changes to an existing song row.
func (s *Store) Update(ctx context.Context, song *Song) error {
	if song == nil {
		return errors.New("song is nil")
	}
	if song.ID == 0 {
		return errors.New("song has no id")
	}
	song.SearchBlob = BuildSearchBlob(song.Artist, song.Title, song.Filename, song.YouTubeID)
	song.UpdatedAt = time.Now().UTC()

	_, err := s.execWithRetry(
		ctx,
		`UPDATE songs SET
            rel_path = ?, fingerprint = ?, filename = ?, artist = ?, title = ?,
            youtube_id = ?, format = ?, search_blob = ?, visible = ?,
            metadata_status = ?, updated_at = ?
        WHERE id = ?`,
		song.RelPath,
		song.Fingerprint,
		song.Filename,
		song.Artist,
		song.Title,
		song.YouTubeID,
		string(song.Format),
		song.SearchBlob,
		boolToInt(song.Visible),
		string(song.MetadataStatus),
		song.UpdatedAt.Format(time.RFC3339Nano),
		song.ID,
	)
	if err != nil {
		return fmt.Errorf("update song: %w", err)
	}
	return nil
}

// Delete removes a song row by ID.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.execWithRetry(ctx, `DELETE FROM songs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	return nil
}

// GetByID fetches a song by identifier. A missing row returns (nil, nil).
func (s *Store) GetByID(ctx context.Context, id int64) (*Song, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT `+songColumns+` FROM songs WHERE id = ?`, id)
	song, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get song: %w", err)
	}
	return song, nil
}

// GetByPath fetches a song by its library-relative path. A missing row
// returns (nil, nil).
func (s *Store) GetByPath(ctx context.Context, relPath string) (*Song, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT `+songColumns+` FROM songs WHERE rel_path = ?`, relPath)
	song, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get song by path: %w", err)
	}
	return song, nil
}

// List returns songs matching the filter, ordered by artist then title.
func (s *Store) List(ctx context.Context, filter Filter) ([]*Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs`
	var (
		clauses []string
		args    []any
	)
	if filter.Format != "" {
		clauses = append(clauses, "format = ?")
		args = append(args, string(filter.Format))
	}
	if filter.Status != "" {
		clauses = append(clauses, "metadata_status = ?")
		args = append(args, string(filter.Status))
	}
	if trimmed := strings.TrimSpace(filter.Query); trimmed != "" {
		clauses = append(clauses, "search_blob LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(foldForSearch(trimmed))+"%")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY artist, title, rel_path"

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	var songs []*Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

// Stats returns aggregate counts for the catalog.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByFormat: make(map[Format]int)}

	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT format, COUNT(1) FROM songs GROUP BY format`)
	if err != nil {
		return Stats{}, fmt.Errorf("stats by format: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			format string
			count  int
		)
		if err := rows.Scan(&format, &count); err != nil {
			return Stats{}, fmt.Errorf("scan stats: %w", err)
		}
		stats.ByFormat[Format(format)] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate stats: %w", err)
	}

	err = s.db.QueryRowContext(ensureContext(ctx),
		`SELECT COUNT(1) FROM songs WHERE metadata_status = ?`, string(StatusPending),
	).Scan(&stats.Pending)
	if err != nil {
		return Stats{}, fmt.Errorf("count pending: %w", err)
	}
	return stats, nil
}

// ResetMetadataStatus marks every song pending so the next scan re-enriches
// the whole catalog.
func (s *Store) ResetMetadataStatus(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx,
		`UPDATE songs SET metadata_status = ?`, string(StatusPending))
	if err != nil {
		return 0, fmt.Errorf("reset metadata status: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}
