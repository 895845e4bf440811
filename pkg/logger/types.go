package logger

// Logger interface defines the contract for all loggers
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)

	// Additional utility methods
	WithField(key string, value any) Logger
	WithFields(fields map[string]any) Logger
	Sync() error
}
