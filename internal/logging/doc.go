// Package logging builds slog loggers for the CLI and background watcher.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for log files or collectors. Attribute helpers and field name
// constants keep structured keys consistent across packages; components that
// accept a logger treat a nil logger as "discard" via NewNop.
package logging
