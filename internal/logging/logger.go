// Package logging provides structured logging for jiq.
//
// The TUI owns the terminal for its entire lifetime, so unlike a typical
// CLI this package never writes to stderr by default — doing so would
// corrupt the alternate screen buffer bubbletea draws into. Instead,
// when a log directory is configured, logs go to a file named for the
// day the Logger was created; otherwise they are discarded. Nothing in
// this package writes to stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level mirrors slog's severity ordering for callers that don't want to
// import log/slog directly in config-parsing code.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel accepts "debug"|"info"|"warn"|"error" case-insensitively,
// defaulting to LevelInfo for anything else.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Config configures a Logger. The zero value logs Debug+ to io.Discard.
type Config struct {
	Level Level
	// LogDir, when set, enables file logging to "{Service}_{YYYY-MM-DD}.log".
	LogDir  string
	Service string
}

// Logger wraps slog.Logger with a Close method that flushes the backing file.
type Logger struct {
	*slog.Logger
	mu   sync.Mutex
	file *os.File
}

// New builds a Logger per Config. File-open failures degrade to discard
// rather than failing startup — logging is never load-bearing.
func New(cfg Config) *Logger {
	var w io.Writer = io.Discard
	l := &Logger{}

	if cfg.LogDir != "" {
		dir := expandHome(cfg.LogDir)
		if err := os.MkdirAll(dir, 0o750); err == nil {
			name := cfg.Service + "_" + time.Now().Format("2006-01-02") + ".log"
			if f, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640); err == nil {
				l.file = f
				w = f
			}
		}
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.Level.slog()})
	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	l.Logger = logger
	return l
}

// Discard returns a Logger that drops everything; used for tests.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Close flushes and closes the backing file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
