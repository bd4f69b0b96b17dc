// Package pairing resolves sibling files that form a logical karaoke unit:
// a .cdg lyric-timing file with its .mp3 audio, or a video with its .ass or
// .srt subtitles. Lookups are pure existence probes; nothing is created,
// moved, or cached, and a file vanishing between probes simply reads as "no
// pairing found".
package pairing
