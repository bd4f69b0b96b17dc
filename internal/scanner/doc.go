// Package scanner synchronizes the catalog with the song library on disk.
//
// A scan walks the library, classifies files into playback formats, and
// fingerprints their content (size plus leading bytes). Reconciliation then
// compares disk against catalog rows: changed rows are updated, fingerprint
// matches between new and missing paths are treated as moves, the remainder
// are inserts and deletes. New rows get artist/title/YouTube ID from
// filename parsing; an optional enrichment pass reads embedded tags to fill
// what the filename lacks.
//
// A lock file next to the database rejects concurrent scans. Each scan
// carries a session ID that tags all of its log output.
package scanner
