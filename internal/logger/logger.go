// Package logger provides the small leveled logger used across the
// organizer: off (silent), normal (info and up), verbose (debug included).
// Safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level controls verbosity.
type Level int

const (
	// LevelOff disables all output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose additionally enables debug output.
	LevelVerbose
)

// ParseLevel maps a string ("off", "normal", "verbose") to a Level.
// Unrecognized values get LevelNormal.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "quiet":
		return LevelOff
	case "verbose", "debug":
		return LevelVerbose
	default:
		return LevelNormal
	}
}

// Logger is a leveled logger over the standard log package.
type Logger struct {
	mu    sync.Mutex
	level Level
	out   *log.Logger
}

// New creates a logger writing to out, or os.Stderr when out is nil.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		level: level,
		out:   log.New(out, "", log.Ltime),
	}
}

// SetLevel changes the level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Debug logs at debug level, visible only in verbose mode.
func (l *Logger) Debug(format string, args ...any) {
	l.logf(LevelVerbose, "[DBG]", format, args...)
}

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) {
	l.logf(LevelNormal, "[INF]", format, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.logf(LevelNormal, "[WRN]", format, args...)
}

// Error logs at error level.
func (l *Logger) Error(format string, args ...any) {
	l.logf(LevelNormal, "[ERR]", format, args...)
}

func (l *Logger) logf(min Level, tag, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.level < min {
		return
	}
	l.out.Output(3, tag+" "+fmt.Sprintf(format, args...))
}
