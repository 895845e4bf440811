package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mdnishan/reportcron/internal/types"
)

// ZapLogger implements Logger on top of a zap sugared logger
type ZapLogger struct {
	config *types.LoggerConfig
	sugar  *zap.SugaredLogger
}

// New creates a new ZapLogger with the specified log level
func New(level string) *ZapLogger {
	config := DefaultConfig()
	config.Level = level
	return NewWithConfig(config)
}

// NewWithConfig builds a logger from the full configuration
func NewWithConfig(config *types.LoggerConfig) *ZapLogger {
	// Ensure file path exists if using file output
	if config.Output == "file" && config.FilePath == "" {
		config.FilePath = getDefaultLogPath()
	}

	core := newCore(config, createSyncer(config))

	opts := []zap.Option{}
	if config.ShowCaller {
		// Skip the facade frame so the caller points at user code
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	return &ZapLogger{
		config: config,
		sugar:  zap.New(core, opts...).Sugar(),
	}
}

// NewWithWriter creates a logger writing to an arbitrary writer (useful for tests)
func NewWithWriter(w io.Writer, level string) *ZapLogger {
	config := DefaultConfig()
	config.Level = level
	config.Colors = false

	return &ZapLogger{
		config: config,
		sugar:  zap.New(newCore(config, zapcore.AddSync(w))).Sugar(),
	}
}

// NewNullLogger creates a logger that discards all output (useful for testing)
func NewNullLogger() *ZapLogger {
	return &ZapLogger{
		config: DefaultConfig(),
		sugar:  zap.NewNop().Sugar(),
	}
}

// DefaultLogger returns a pre-configured logger with reasonable defaults
func DefaultLogger() *ZapLogger {
	return New("INFO")
}

func newCore(config *types.LoggerConfig, ws zapcore.WriteSyncer) zapcore.Core {
	encCfg := zap.NewProductionEncoderConfig()
	if config.TimestampFormat != "" {
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(config.TimestampFormat)
	} else {
		encCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	}

	var enc zapcore.Encoder
	if config.Format == "json" {
		encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		if config.Colors && (config.Output == "stdout" || config.Output == "stderr") {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	return zapcore.NewCore(enc, ws, ParseLogLevel(config.Level))
}

// createSyncer creates the appropriate write syncer based on configuration
func createSyncer(config *types.LoggerConfig) zapcore.WriteSyncer {
	switch config.Output {
	case "stdout":
		return zapcore.Lock(os.Stdout)
	case "stderr":
		return zapcore.Lock(os.Stderr)
	case "file":
		// Create directory if it doesn't exist
		dir := filepath.Dir(config.FilePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Printf("Warning: Failed to create log directory %s: %v", dir, err)
			return zapcore.Lock(os.Stdout)
		}

		file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Printf("Warning: Failed to open log file %s: %v", config.FilePath, err)
			return zapcore.Lock(os.Stdout)
		}

		return zapcore.AddSync(file)
	case "null":
		return zapcore.AddSync(io.Discard)
	default:
		return zapcore.Lock(os.Stdout)
	}
}

// Debug logs a debug message
func (l *ZapLogger) Debug(msg string, args ...any) {
	l.sugar.Debugf(msg, args...)
}

// Info logs an info message
func (l *ZapLogger) Info(msg string, args ...any) {
	l.sugar.Infof(msg, args...)
}

// Warn logs a warning message
func (l *ZapLogger) Warn(msg string, args ...any) {
	l.sugar.Warnf(msg, args...)
}

// Error logs an error message
func (l *ZapLogger) Error(msg string, args ...any) {
	l.sugar.Errorf(msg, args...)
}

// Fatal logs a fatal message and exits the program
func (l *ZapLogger) Fatal(msg string, args ...any) {
	l.sugar.Fatalf(msg, args...)
}

// WithField returns a new logger with an additional field
func (l *ZapLogger) WithField(key string, value any) Logger {
	return &ZapLogger{
		config: l.config,
		sugar:  l.sugar.With(key, value),
	}
}

// WithFields returns a new logger with additional fields
func (l *ZapLogger) WithFields(fields map[string]any) Logger {
	// Sort keys for consistent output
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(fields)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}

	return &ZapLogger{
		config: l.config,
		sugar:  l.sugar.With(args...),
	}
}

// Sync flushes any buffered log entries
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
