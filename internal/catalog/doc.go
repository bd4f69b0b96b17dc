// Package catalog persists the karaoke song library in SQLite.
//
// The Store owns the database connection, schema initialization, and song
// CRUD. Rows track a content fingerprint so the scanner can tell a moved
// file from a new one, and a case-folded search blob for substring queries.
// Backups snapshot the live database with VACUUM INTO; restore validates the
// uploaded file header and swaps it in after clearing WAL artifacts.
//
// Schema changes bump schemaVersion in schema.go; a version mismatch is
// reported as an error telling the user to rebuild the catalog.
package catalog
