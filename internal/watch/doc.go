// Package watch rescans the library automatically when its files change.
//
// The watcher registers the library root and every subdirectory with
// fsnotify, debounces bursts of events into a single trigger, and invokes
// the scanner once the library has been quiet for the configured interval.
// Newly created directories are added to the watch set as they appear.
package watch
