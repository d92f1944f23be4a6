package loggy

import "context"

type contextKey string

const (
	loggerKey contextKey = "logger"
	scanIDKey contextKey = "scan_id"
)

// FromContext retrieves the logger from the context, falling back to the global logger
func FromContext(ctx context.Context) *Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*Logger); ok && logger != nil {
			return logger
		}
	}
	return GetGlobalLogger()
}

// WithLogger returns a new context with the logger attached
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// WithScanID tags the context's logger with a scan identifier
func WithScanID(ctx context.Context, scanID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, scanIDKey, scanID)
	return WithLogger(ctx, FromContext(ctx).With("scan_id", scanID))
}

// ScanID returns the scan identifier stored by WithScanID
func ScanID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(scanIDKey).(string)
	return id
}
