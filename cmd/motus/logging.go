package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// maxLogSize triggers rotation of the previous run's log
const maxLogSize = 10 * 1024 * 1024

// setupLogging routes slog to path when debug is set, otherwise discards
// The terminal owns stdout and stderr once it starts, so logs never go there;
// a log file that cannot be opened is reported on errOut before the screen
// takes over and logging falls back to discard
// Returns the open file for the caller to close, nil when disabled
func setupLogging(path string, debug bool, errOut io.Writer) (*os.File, *slog.Logger) {
	discard := func() (*os.File, *slog.Logger) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		slog.SetDefault(logger)
		return nil, logger
	}
	if !debug {
		return discard()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		fmt.Fprintf(errOut, "motus: logging disabled: %v\n", err)
		return discard()
	}
	rotateLog(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(errOut, "motus: logging disabled: %v\n", err)
		return discard()
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
	return f, logger
}

// rotateLog moves an oversized log aside with a timestamp suffix
func rotateLog(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	ext := filepath.Ext(path)
	base := path[:len(path)-len(ext)]
	rotated := fmt.Sprintf("%s-%s%s", base, time.Now().Format("20060102-150405"), ext)
	_ = os.Rename(path, rotated)
}
