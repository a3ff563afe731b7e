package logging

import "context"

type contextKey struct{}

var logDataKey contextKey

// WithLogData attaches a LogData to the context.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, logDataKey, logData)
}

// GetLogData returns the request's LogData, or nil when the request was not
// routed through the logging middleware.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(logDataKey).(*LogData)
	return logData
}
