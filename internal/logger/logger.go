package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/lmittmann/tint"
)

// Level represents a log level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of a log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

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

// ParseLevel parses a log level string
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// Logger is a leveled printf-style logger backed by slog.
type Logger struct {
	mu      sync.Mutex
	level   *slog.LevelVar
	handler slog.Handler
	file    *os.File
}

// Default is the process-wide logger.
var Default *Logger

func init() {
	Default = New()
}

// New creates a logger configured from LISTWIZ_LOG_LEVEL and LISTWIZ_LOG_FILE.
// Without a log file output is discarded so the terminal UI stays clean.
func New() *Logger {
	l := &Logger{level: new(slog.LevelVar)}
	l.level.Set(slog.LevelInfo)

	if levelStr := os.Getenv("LISTWIZ_LOG_LEVEL"); levelStr != "" {
		if level, err := ParseLevel(levelStr); err == nil {
			l.level.Set(level.slog())
		}
	}

	var w io.Writer = io.Discard
	if logFile := os.Getenv("LISTWIZ_LOG_FILE"); logFile != "" {
		if f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			l.file = f
			w = f
		}
	}
	l.handler = l.newHandler(w)
	return l
}

func (l *Logger) newHandler(w io.Writer) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      l.level,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	})
}

// Close closes the logger and any open file handles
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level.slog())
}

// SetOutput sets the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = l.newHandler(w)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...any) {
	l.log(LevelDebug, format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...any) {
	l.log(LevelInfo, format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...any) {
	l.log(LevelWarn, format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...any) {
	l.log(LevelError, format, v...)
}

// Slog exposes the underlying structured logger for libraries that want one.
func (l *Logger) Slog() *slog.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slog.New(l.handler)
}

func (l *Logger) log(level Level, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx := context.Background()
	if !l.handler.Enabled(ctx, level.slog()) {
		return
	}
	slog.New(l.handler).Log(ctx, level.slog(), fmt.Sprintf(format, v...))
}

// Debug logs a debug message using the default logger
func Debug(format string, v ...any) {
	Default.Debug(format, v...)
}

// Info logs an info message using the default logger
func Info(format string, v ...any) {
	Default.Info(format, v...)
}

// Warn logs a warning message using the default logger
func Warn(format string, v ...any) {
	Default.Warn(format, v...)
}

// Error logs an error message using the default logger
func Error(format string, v ...any) {
	Default.Error(format, v...)
}

// Close closes the default logger
func Close() error {
	return Default.Close()
}

// Configure applies a level and optional log file to the default logger.
// Settings left empty keep what the environment selected.
func Configure(level, file string) error {
	if level != "" {
		lvl, err := ParseLevel(level)
		if err != nil {
			return err
		}
		Default.SetLevel(lvl)
	}
	if file == "" {
		return nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	if err := Default.Close(); err != nil {
		_ = f.Close()
		return err
	}
	Default.mu.Lock()
	Default.file = f
	Default.handler = Default.newHandler(f)
	Default.mu.Unlock()
	return nil
}
