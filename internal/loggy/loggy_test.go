package loggy

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, slog.LevelInfo)

	l.Debug("hidden")
	l.Info("shown", "files", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "files=3")
	assert.True(t, l.Enabled(slog.LevelWarn))
	assert.False(t, l.Enabled(slog.LevelDebug))
}

func TestLogger_WithAndWithError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, slog.LevelDebug).With("component", "scanner")

	l.WithError(errors.New("boom")).Warn("skipped")
	assert.Contains(t, buf.String(), "component=scanner")
	assert.Contains(t, buf.String(), "error=boom")

	assert.Same(t, l, l.WithError(nil))
}

func TestLogger_NilSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Info("nothing")
		_ = l.With("a", 1)
	})
	assert.False(t, l.Enabled(slog.LevelError))
}

func TestNew_JSONWithSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "analyzer.log")
	l, err := New(Config{Level: slog.LevelInfo, Format: "json", Output: path, AddSource: true})
	require.NoError(t, err)

	l.Info("parsed", "path", "a.ts")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"parsed"`)
	assert.Contains(t, string(data), `"source":"loggy_test.go:`)
}

func TestNoopLoggerBecomesGlobal(t *testing.T) {
	l := NewNoopLogger()
	assert.Same(t, l, GetGlobalLogger())
	assert.NotPanics(t, func() { Info("discarded") })
}

func TestContext(t *testing.T) {
	global := NewNoopLogger()
	assert.Same(t, global, FromContext(context.Background()))

	var buf bytes.Buffer
	l := NewWriterLogger(&buf, slog.LevelInfo)
	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))

	ctx = WithScanID(ctx, "scan-123")
	assert.Equal(t, "scan-123", ScanID(ctx))
	FromContext(ctx).Info("walking")
	assert.Contains(t, buf.String(), "scan_id=scan-123")

	assert.Empty(t, ScanID(context.Background()))
}
