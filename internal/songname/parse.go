package songname

import (
	"log/slog"
	"strings"

	"songbook/internal/logging"
)

// idLength is the length of a YouTube video ID.
const idLength = 11

// Reference is the metadata parsed from a single library filename.
// YouTubeID and Artist are empty when absent.
type Reference struct {
	YouTubeID string `json:"youtube_id,omitempty"`
	Artist    string `json:"artist,omitempty"`
	Title     string `json:"title"`
	CleanName string `json:"clean_name"`
}

// artistSeparator splits "Artist - Title" names. Only the first occurrence
// is significant; titles may themselves contain " - ".
const artistSeparator = " - "

func isIDChar(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-':
		return true
	}
	return false
}

// ValidID reports whether s is exactly 11 characters from [A-Za-z0-9_-].
func ValidID(s string) bool {
	if len(s) != idLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIDChar(s[i]) {
			return false
		}
	}
	return true
}

// ExtractID returns the YouTube ID embedded in name, or "" when none is
// present. The triple-dash convention is checked first; when several "---"
// groups appear, the last group with a well-formed ID wins. Failing that, the
// first bracketed 11-character run is returned. A candidate followed by a
// twelfth ID character is rejected as a partial match.
func ExtractID(name string) string {
	if id := lastTripleDashID(name); id != "" {
		return id
	}
	return firstBracketID(name)
}

func lastTripleDashID(name string) string {
	found := ""
	for i := 0; i+3+idLength <= len(name); i++ {
		if name[i] != '-' || name[i+1] != '-' || name[i+2] != '-' {
			continue
		}
		candidate := name[i+3 : i+3+idLength]
		if !ValidID(candidate) {
			continue
		}
		if end := i + 3 + idLength; end < len(name) && isIDChar(name[end]) {
			continue
		}
		found = candidate
	}
	return found
}

func firstBracketID(name string) string {
	for i := 0; i+2+idLength <= len(name); i++ {
		if name[i] != '[' || name[i+1+idLength] != ']' {
			continue
		}
		candidate := name[i+1 : i+1+idLength]
		if ValidID(candidate) {
			return candidate
		}
	}
	return ""
}

// StripID removes the file extension and a trailing ID suffix in either
// convention, returning the trimmed display name. Only end-anchored suffixes
// are stripped; an ID pattern in the middle of the name is preserved.
// Stripping is idempotent.
func StripID(name string) string {
	base := stripExtension(name)

	if n := len(base); n >= 3+idLength {
		tail := base[n-3-idLength:]
		if tail[0] == '-' && tail[1] == '-' && tail[2] == '-' && ValidID(tail[3:]) {
			return strings.TrimSpace(base[:n-3-idLength])
		}
	}

	if n := len(base); n >= 2+idLength && base[n-1] == ']' {
		if base[n-2-idLength] == '[' && ValidID(base[n-1-idLength:n-1]) {
			return strings.TrimSpace(base[:n-2-idLength])
		}
	}

	return strings.TrimSpace(base)
}

func stripExtension(name string) string {
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		return name[:idx]
	}
	return name
}

// SplitArtistTitle splits a stripped name on the first " - ". When the
// separator is absent, or either side trims to empty, the whole name is the
// title and the artist is empty.
func SplitArtistTitle(clean string) (artist, title string) {
	idx := strings.Index(clean, artistSeparator)
	if idx < 0 {
		return "", strings.TrimSpace(clean)
	}
	artist = strings.TrimSpace(clean[:idx])
	title = strings.TrimSpace(clean[idx+len(artistSeparator):])
	if artist == "" || title == "" {
		return "", strings.TrimSpace(clean)
	}
	return artist, title
}

// Parse builds a Reference from a raw filename. The ID is extracted from the
// raw name before stripping; artist and title come from the stripped name.
func Parse(name string) Reference {
	id := ExtractID(name)
	clean := StripID(name)
	artist, title := SplitArtistTitle(clean)
	return Reference{
		YouTubeID: id,
		Artist:    artist,
		Title:     title,
		CleanName: clean,
	}
}

// ParseLenient parses name and degrades to a bare extension-stripped title
// when parsing produces nothing usable or fails unexpectedly. Diagnostics go
// to the supplied logger; nil discards them.
func ParseLenient(name string, logger *slog.Logger) (ref Reference) {
	if logger == nil {
		logger = logging.NewNop()
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("filename parse failed",
				logging.String(logging.FieldPath, name),
				logging.Any("panic", r))
			ref = fallbackReference(name)
		}
	}()

	ref = Parse(name)
	if ref.Title == "" && strings.TrimSpace(name) != "" {
		logger.Warn("filename yields empty title, using raw name",
			logging.String(logging.FieldPath, name))
		fallback := fallbackReference(name)
		fallback.YouTubeID = ref.YouTubeID
		ref = fallback
	}
	return ref
}

func fallbackReference(name string) Reference {
	title := strings.TrimSpace(stripExtension(name))
	return Reference{Title: title, CleanName: title}
}
