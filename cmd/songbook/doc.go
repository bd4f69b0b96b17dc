// Command songbook manages a karaoke song library: it catalogs the library
// directory into SQLite, parses artist/title/YouTube ID conventions out of
// filenames, resolves companion files (.cdg audio, video subtitles), and can
// watch the library for changes.
package main
