// Package logging configures the process logger. Output goes to a file
// (or stderr as fallback) — never stdout, which belongs to the MCP
// stdio transport.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	root     *slog.Logger
	levelVar = new(slog.LevelVar)
	logFile  *os.File
	mu       sync.Mutex
	initDone bool
)

// DefaultLogPath returns the log file path under the user's home.
func DefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".specdeck", "specdeck.log"), nil
}

// SetDebug enables or disables debug level logging.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Init opens the log file and installs the root logger. Safe to call
// more than once; only the first call wins. On file errors the logger
// falls back to stderr rather than failing startup.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}

	var err error
	out := os.Stderr
	if path != "" {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr == nil {
			if f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); openErr == nil {
				logFile = f
				out = f
			} else {
				err = fmt.Errorf("opening log file %s: %w", path, openErr)
			}
		} else {
			err = fmt.Errorf("creating log directory: %w", mkErr)
		}
	}

	root = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: levelVar}))
	initDone = true
	return err
}

// WithComponent returns a logger tagged with the component name.
func WithComponent(name string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if !initDone {
		root = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}))
		initDone = true
	}
	return root.With("component", name)
}

// Close flushes and closes the log file if one is open.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
