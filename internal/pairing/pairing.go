package pairing

import (
	"os"
	"strings"
)

// Prober answers read-only existence checks. The default implementation hits
// the real filesystem; tests substitute an in-memory map.
type Prober interface {
	Exists(path string) bool
}

type osProber struct{}

func (osProber) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// OS returns a Prober backed by os.Stat.
func OS() Prober {
	return osProber{}
}

// subtitleExtensions are checked in preference order.
var subtitleExtensions = []string{".ass", ".srt"}

// AudioForCDG returns the .mp3 path backing a CDG lyric-timing file, or ""
// when no audio sibling exists.
func AudioForCDG(cdgPath string, probe Prober) string {
	return sibling(cdgPath, ".mp3", probe)
}

// CDGForAudio returns the .cdg path paired with an audio file, or "" when no
// lyric-timing sibling exists.
func CDGForAudio(audioPath string, probe Prober) string {
	return sibling(audioPath, ".cdg", probe)
}

// SubtitleForVideo returns the subtitle sibling for a video file, preferring
// .ass over .srt, or "" when neither exists.
func SubtitleForVideo(videoPath string, probe Prober) string {
	for _, ext := range subtitleExtensions {
		if path := sibling(videoPath, ext, probe); path != "" {
			return path
		}
	}
	return ""
}

// Companion resolves the complementary file for a known path: audio for a
// .cdg, lyric timing for an .mp3, subtitles for anything else. An empty
// result means no pairing was found.
func Companion(path string, probe Prober) string {
	switch strings.ToLower(extensionOf(path)) {
	case ".cdg":
		return AudioForCDG(path, probe)
	case ".mp3":
		return CDGForAudio(path, probe)
	default:
		return SubtitleForVideo(path, probe)
	}
}

func sibling(path, ext string, probe Prober) string {
	if probe == nil {
		probe = OS()
	}
	base := strings.TrimSuffix(path, extensionOf(path))
	if base == "" {
		return ""
	}
	candidate := base + ext
	if candidate == path {
		return ""
	}
	if probe.Exists(candidate) {
		return candidate
	}
	return ""
}

func extensionOf(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 || strings.ContainsAny(path[idx:], "/\\") {
		return ""
	}
	return path[idx:]
}
