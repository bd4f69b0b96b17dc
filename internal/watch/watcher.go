package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"songbook/internal/config"
	"songbook/internal/logging"
	"songbook/internal/scanner"
)

// ScanFunc runs one library scan. It matches (*scanner.Scanner).Scan.
type ScanFunc func(context.Context) (scanner.Result, error)

// Watcher triggers library scans when files change under the library root.
type Watcher struct {
	root     string
	excluded []string
	debounce time.Duration
	scan     ScanFunc
	logger   *slog.Logger
}

// New constructs a Watcher from the configuration. A nil logger discards
// diagnostics.
func New(cfg *config.Config, scan ScanFunc, logger *slog.Logger) *Watcher {
	return &Watcher{
		root:     cfg.Paths.LibraryDir,
		excluded: cfg.Scanner.ExcludeDirs,
		debounce: time.Duration(cfg.Scanner.DebounceSeconds) * time.Second,
		scan:     scan,
		logger:   logging.NewComponentLogger(logger, "watch"),
	}
}

// Run scans once, then blocks watching the library until ctx is cancelled.
// File events are debounced so a burst of copies produces a single rescan.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	w.addRecursive(fsw, w.root)
	w.logger.Info("watching library", logging.String(logging.FieldPath, w.root))

	w.runScan(ctx)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.addRecursive(fsw, event.Name)
				}
			}
			if w.relevant(event) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", logging.Error(err))
		case <-timer.C:
			if !w.runScan(ctx) {
				// Another process holds the scan lock; try again after the
				// same quiet period.
				timer.Reset(w.debounce)
			}
		}
	}
}

// runScan reports false when the scan was skipped because one is already
// running elsewhere.
func (w *Watcher) runScan(ctx context.Context) bool {
	result, err := w.scan(ctx)
	switch {
	case errors.Is(err, scanner.ErrScanInProgress):
		w.logger.Debug("scan already in progress, deferring")
		return false
	case errors.Is(err, context.Canceled):
		return true
	case err != nil:
		w.logger.Error("scan failed", logging.Error(err))
	default:
		w.logger.Info("library rescanned",
			logging.Int("added", result.Added),
			logging.Int("moved", result.Moved),
			logging.Int("updated", result.Updated),
			logging.Int("deleted", result.Deleted))
	}
	return true
}

// relevant filters events down to the ones worth a rescan. Removes and
// renames always count because the affected path no longer exists to
// inspect.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
		return true
	}
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return false
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		for _, excluded := range w.excluded {
			if strings.EqualFold(part, excluded) {
				return false
			}
		}
	}
	return true
}

func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("watch walk error",
				logging.String(logging.FieldPath, path), logging.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || w.excludedDir(name)) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			w.logger.Warn("watch add failed",
				logging.String(logging.FieldPath, path), logging.Error(err))
		}
		return nil
	})
}

func (w *Watcher) excludedDir(name string) bool {
	for _, excluded := range w.excluded {
		if strings.EqualFold(name, excluded) {
			return true
		}
	}
	return false
}
