// Package songname extracts structured song metadata from karaoke filenames.
//
// Library files carry an optional 11-character YouTube video ID in one of two
// conventions: a triple-dash suffix ("Song---dQw4w9WgXcQ.mp4") or a bracketed
// suffix ("Song [dQw4w9WgXcQ].mp4"). Parsing removes the ID and extension,
// then splits the remainder into artist and title on the first " - ".
//
// All functions are pure and total; a missing ID or artist is an empty
// string, never an error.
package songname
