package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"songbook/internal/logging"
)

func TestNewConsoleWritesComponentPrefix(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "songbook.log")
	logger, err := logging.New(logging.Options{
		Level:       "debug",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	scoped := logging.NewComponentLogger(logger, "scanner")
	scoped.Info("scan complete", logging.Int("added", 3), logging.String("dir", "/tmp/songs dir"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO scanner: scan complete") {
		t.Fatalf("unexpected log line: %q", line)
	}
	if !strings.Contains(line, "added=3") {
		t.Fatalf("expected added attr in %q", line)
	}
	if !strings.Contains(line, `dir="/tmp/songs dir"`) {
		t.Fatalf("expected quoted dir attr in %q", line)
	}
}

func TestNewJSONFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "songbook.log")
	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "json",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Warn("tag read failed", logging.String(logging.FieldPath, "a.mp3"))
	logger.Debug("suppressed")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, `"msg":"tag read failed"`) {
		t.Fatalf("unexpected json output: %q", line)
	}
	if strings.Contains(line, "suppressed") {
		t.Fatalf("debug record should be filtered: %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("ignored", logging.Error(nil))

	if logging.NewComponentLogger(nil, "catalog") == nil {
		t.Fatal("expected non-nil component logger from nil base")
	}
}
