package songname_test

import (
	"strings"
	"testing"

	"songbook/internal/songname"
)

func TestExtractID(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"triple dash", "Song---dQw4w9WgXcQ.mp4", "dQw4w9WgXcQ"},
		{"triple dash with artist", "The Beatles - Hey Jude---dQw4w9WgXcQ.mp4", "dQw4w9WgXcQ"},
		{"bracketed", "Never Gonna Give You Up [dQw4w9WgXcQ].mp4", "dQw4w9WgXcQ"},
		{"bracketed no space", "Song[dQw4w9WgXcQ].mp4", "dQw4w9WgXcQ"},
		{"too short", "Short---abc.mp4", ""},
		{"too long run", "Song---abcdefghijkl.mp4", ""},
		{"bad charset", "Song---abc$efghijk.mp4", ""},
		{"last group wins", "Multiple---IDs---dQw4w9WgXcQ.mp4", "dQw4w9WgXcQ"},
		{"mid string id", "Song---dQw4w9WgXcQ end.mp4", "dQw4w9WgXcQ"},
		{"triple dash beats bracket", "Song [aaaaaaaaaaa]---dQw4w9WgXcQ.mp4", "dQw4w9WgXcQ"},
		{"first bracket wins", "Song [aaaaaaaaaaa] [bbbbbbbbbbb].mp4", "aaaaaaaaaaa"},
		{"bracket twelve chars", "Song [abcdefghijkl].mp4", ""},
		{"quadruple dash", "Song----dQw4w9WgXcQ.mp4", "dQw4w9WgXcQ"},
		{"no extension", "Song---dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"unicode name", "みんなのうた---dQw4w9WgXcQ.mp4", "dQw4w9WgXcQ"},
		{"nothing", "Just A Song.mp4", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := songname.ExtractID(tc.input); got != tc.want {
				t.Fatalf("ExtractID(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestExtractIDNeverMalformed(t *testing.T) {
	inputs := []string{
		"a---bcdefghijkl mnop.mp4",
		"---",
		"[]",
		"[---abcdefgh]",
		strings.Repeat("-", 40),
	}
	for _, input := range inputs {
		if got := songname.ExtractID(input); got != "" && !songname.ValidID(got) {
			t.Fatalf("ExtractID(%q) returned malformed id %q", input, got)
		}
	}
}

func TestStripID(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"triple dash suffix", "Song---dQw4w9WgXcQ.mp4", "Song"},
		{"bracket suffix", "Never Gonna Give You Up [dQw4w9WgXcQ].mp4", "Never Gonna Give You Up"},
		{"bracket without space", "Song[dQw4w9WgXcQ].mp4", "Song"},
		{"no id", "Just A Song.mp4", "Just A Song"},
		{"short code kept", "Short---abc.mp4", "Short---abc"},
		{"multiple groups", "Multiple---IDs---dQw4w9WgXcQ.mp4", "Multiple---IDs"},
		{"mid string preserved", "Song---dQw4w9WgXcQ end.mp4", "Song---dQw4w9WgXcQ end"},
		{"no extension", "Song---dQw4w9WgXcQ", "Song"},
		{"whitespace trimmed", "  Song  .mp4", "Song"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := songname.StripID(tc.input)
			if got != tc.want {
				t.Fatalf("StripID(%q) = %q, want %q", tc.input, got, tc.want)
			}
			if again := songname.StripID(got); again != got {
				t.Fatalf("StripID not idempotent for %q: %q -> %q", tc.input, got, again)
			}
		})
	}
}

func TestSplitArtistTitle(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		wantArtist string
		wantTitle  string
	}{
		{"plain split", "The Beatles - Hey Jude", "The Beatles", "Hey Jude"},
		{"no separator", "Bohemian Rhapsody", "", "Bohemian Rhapsody"},
		{"first separator wins", "A - B - C", "A", "B - C"},
		{"empty artist side", " - Title", "", "- Title"},
		{"empty title side", "Artist - ", "", "Artist -"},
		{"dash without spaces", "AC-DC Thunderstruck", "", "AC-DC Thunderstruck"},
		{"empty", "", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			artist, title := songname.SplitArtistTitle(tc.input)
			if artist != tc.wantArtist || title != tc.wantTitle {
				t.Fatalf("SplitArtistTitle(%q) = (%q, %q), want (%q, %q)",
					tc.input, artist, title, tc.wantArtist, tc.wantTitle)
			}
		})
	}
}

func TestSplitArtistTitleRoundTrip(t *testing.T) {
	inputs := []string{
		"The Beatles - Hey Jude",
		"Queen - Don't Stop Me Now",
		"A - B - C",
	}
	for _, input := range inputs {
		artist, title := songname.SplitArtistTitle(input)
		if artist == "" || title == "" {
			continue
		}
		again, againTitle := songname.SplitArtistTitle(artist + " - " + title)
		if again != artist || againTitle != title {
			t.Fatalf("round trip diverged for %q: (%q, %q) -> (%q, %q)",
				input, artist, title, again, againTitle)
		}
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  songname.Reference
	}{
		{
			name:  "id only",
			input: "Song---dQw4w9WgXcQ.mp4",
			want:  songname.Reference{YouTubeID: "dQw4w9WgXcQ", Title: "Song", CleanName: "Song"},
		},
		{
			name:  "artist and id",
			input: "The Beatles - Hey Jude---dQw4w9WgXcQ.mp4",
			want: songname.Reference{
				YouTubeID: "dQw4w9WgXcQ",
				Artist:    "The Beatles",
				Title:     "Hey Jude",
				CleanName: "The Beatles - Hey Jude",
			},
		},
		{
			name:  "bracketed id",
			input: "Never Gonna Give You Up [dQw4w9WgXcQ].mp4",
			want: songname.Reference{
				YouTubeID: "dQw4w9WgXcQ",
				Title:     "Never Gonna Give You Up",
				CleanName: "Never Gonna Give You Up",
			},
		},
		{
			name:  "short code is not an id",
			input: "Short---abc.mp4",
			want:  songname.Reference{Title: "Short---abc", CleanName: "Short---abc"},
		},
		{
			name:  "multiple dash groups",
			input: "Multiple---IDs---dQw4w9WgXcQ.mp4",
			want: songname.Reference{
				YouTubeID: "dQw4w9WgXcQ",
				Title:     "Multiple---IDs",
				CleanName: "Multiple---IDs",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := songname.Parse(tc.input); got != tc.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseLenientFallsBackOnEmptyTitle(t *testing.T) {
	ref := songname.ParseLenient("[dQw4w9WgXcQ].mp4", nil)
	if ref.Title == "" {
		t.Fatal("expected non-empty fallback title")
	}
	if ref.YouTubeID != "dQw4w9WgXcQ" {
		t.Fatalf("expected id preserved, got %q", ref.YouTubeID)
	}
}

func TestValidID(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"dQw4w9WgXcQ", true},
		{"abc-def_123", true},
		{"", false},
		{"short", false},
		{"abcdefghijkl", false},
		{"abc$efghijk", false},
		{"abcdefghijé", false},
	}
	for _, tc := range cases {
		if got := songname.ValidID(tc.input); got != tc.want {
			t.Fatalf("ValidID(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
