// Package logger routes slog output to the vgrep log file.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "VGREP_LOG"

// DefaultPath returns the per-user log file location.
func DefaultPath(appName string) string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

// ParseLevel maps a level name to a slog level. Unknown names yield info
// and ok == false.
func ParseLevel(s string) (l slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return slog.LevelDebug, true
	case "info", "inf", "":
		return slog.LevelInfo, true
	case "warn", "wrn", "warning":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Init installs a text handler appending to the file at path as the
// default slog logger. The returned closer releases the file.
func Init(path, level string) (io.Closer, error) {
	lvl, ok := ParseLevel(level)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	// slog defaults to logging in the order of time, level, msg, and other attributes.
	handler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))

	if !ok {
		slog.Warn("Unknown log level, using info", "level", level)
	}
	return logFile, nil
}

// Discard silences the default logger, for when no log file can be opened.
func Discard() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
