// Package loggy is the analyzer's structured logger, a thin layer over log/slog
// with a process-wide default and per-component instances
package loggy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	globalLogger *Logger
	globalMu     sync.RWMutex
	once         sync.Once
)

// Config configures the logger
type Config struct {
	Level      slog.Level
	Format     string // "json" or "text"
	Output     string // "stdout", "stderr", or a file path
	AddSource  bool   // Include source code position in logs
	TimeFormat string // Time format for logs (empty uses RFC3339)
}

// DefaultConfig logs to stderr so command output on stdout stays machine readable
func DefaultConfig() Config {
	return Config{
		Level:      slog.LevelInfo,
		Format:     "text",
		Output:     "stderr",
		TimeFormat: time.RFC3339,
	}
}

// Logger wraps slog.Logger
type Logger struct {
	slogger   *slog.Logger
	addSource bool
}

// New builds a logger from cfg without touching the global logger
func New(cfg Config) (*Logger, error) {
	output, err := openOutput(cfg.Output)
	if err != nil {
		return nil, err
	}
	return newLogger(output, cfg), nil
}

// NewWriterLogger builds a text logger writing to w
func NewWriterLogger(w io.Writer, level slog.Level) *Logger {
	return newLogger(w, Config{Level: level, Format: "text"})
}

func newLogger(w io.Writer, cfg Config) *Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.Level}

	if cfg.TimeFormat != "" {
		handlerOpts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				if t, ok := a.Value.Any().(time.Time); ok {
					return slog.String(a.Key, t.Format(cfg.TimeFormat))
				}
			}
			return a
		}
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return &Logger{slogger: slog.New(handler), addSource: cfg.AddSource}
}

func openOutput(output string) (io.Writer, error) {
	switch output {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// Init initializes the global logger once; later calls are no-ops
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		var l *Logger
		l, err = New(cfg)
		if err != nil {
			// fall back to discarding output so callers never see a nil global
			NewNoopLogger()
			return
		}
		SetGlobalLogger(l)
	})
	return err
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
}

// NewNoopLogger creates and sets a logger that discards all output, useful for testing
func NewNoopLogger() *Logger {
	noopLogger := NewWriterLogger(io.Discard, slog.LevelError)
	SetGlobalLogger(noopLogger)
	return noopLogger
}

// Debug logs at debug level on the global logger
func Debug(msg string, args ...any) {
	GetGlobalLogger().log(slog.LevelDebug, msg, args...)
}

// Info logs at info level on the global logger
func Info(msg string, args ...any) {
	GetGlobalLogger().log(slog.LevelInfo, msg, args...)
}

// Warn logs at warn level on the global logger
func Warn(msg string, args ...any) {
	GetGlobalLogger().log(slog.LevelWarn, msg, args...)
}

// Error logs at error level on the global logger
func Error(msg string, args ...any) {
	GetGlobalLogger().log(slog.LevelError, msg, args...)
}

// With returns a child of the global logger
func With(args ...any) *Logger {
	return GetGlobalLogger().With(args...)
}

func (l *Logger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

// Enabled reports whether records at level would be written
func (l *Logger) Enabled(level slog.Level) bool {
	return l != nil && l.slogger != nil && l.slogger.Enabled(context.Background(), level)
}

// log skips three frames (runtime.Callers, log, and the exported wrapper) to find the caller
func (l *Logger) log(level slog.Level, msg string, args ...any) {
	if !l.Enabled(level) {
		return
	}

	r := slog.NewRecord(time.Now(), level, msg, 0)
	if l.addSource {
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		frame, _ := runtime.CallersFrames(pcs[:]).Next()
		r.AddAttrs(slog.String("source", fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)))
	}
	r.Add(args...)
	_ = l.slogger.Handler().Handle(context.Background(), r)
}

// With returns a Logger that includes args in every record
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.slogger == nil {
		return l
	}
	return &Logger{slogger: l.slogger.With(args...), addSource: l.addSource}
}

// WithGroup returns a Logger that nests later attributes under name
func (l *Logger) WithGroup(name string) *Logger {
	if l == nil || l.slogger == nil {
		return l
	}
	return &Logger{slogger: l.slogger.WithGroup(name), addSource: l.addSource}
}

// WithError adds error details to a logger
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.With("error", err.Error(), "error_type", fmt.Sprintf("%T", err))
}

// Handler returns the underlying slog.Handler
func (l *Logger) Handler() slog.Handler {
	return l.slogger.Handler()
}
