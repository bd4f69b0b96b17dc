package catalog

import "time"

// Format classifies how a library entry is played.
type Format string

const (
	// FormatCDG is an .mp3 audio file paired with a .cdg lyric-timing file.
	FormatCDG Format = "CDG"
	// FormatZIP is a zipped CDG+MP3 bundle.
	FormatZIP Format = "ZIP"
	// FormatMP4 is a self-contained karaoke video.
	FormatMP4 Format = "MP4"
	// FormatMP4ASS is a karaoke video with a sidecar .ass subtitle file.
	FormatMP4ASS Format = "MP4+ASS"
)

// MetadataStatus tracks whether a song has been through the enrichment pass.
type MetadataStatus string

const (
	StatusPending  MetadataStatus = "pending"
	StatusEnriched MetadataStatus = "enriched"
)

// Song is one catalog row. RelPath is relative to the library root and
// unique; Fingerprint identifies content across moves and renames.
type Song struct {
	ID             int64          `json:"id"`
	RelPath        string         `json:"rel_path"`
	Fingerprint    string         `json:"fingerprint,omitempty"`
	Filename       string         `json:"filename"`
	Artist         string         `json:"artist,omitempty"`
	Title          string         `json:"title"`
	YouTubeID      string         `json:"youtube_id,omitempty"`
	Format         Format         `json:"format"`
	SearchBlob     string         `json:"-"`
	Visible        bool           `json:"visible"`
	MetadataStatus MetadataStatus `json:"metadata_status"`
	AddedAt        time.Time      `json:"added_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Filter narrows ListSongs results. Zero values match everything.
type Filter struct {
	// Query is matched as a case-folded substring of the search blob.
	Query string
	// Format restricts results to one playback format.
	Format Format
	// Status restricts results to one metadata status.
	Status MetadataStatus
}

// Stats summarizes catalog contents.
type Stats struct {
	Total    int            `json:"total"`
	ByFormat map[Format]int `json:"by_format"`
	Pending  int            `json:"pending"`
}
