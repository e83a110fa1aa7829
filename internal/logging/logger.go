package logging

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured logging for patch operations.
type Logger struct {
	zap *zap.Logger
}

// New creates a Logger that appends JSON records to a file.
// If logPath is empty, logging is disabled.
// If development is true, uses development encoder config with readable output.
func New(logPath string, development bool) (*Logger, error) {
	if logPath == "" {
		return &Logger{zap: zap.NewNop()}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	var encoderConfig zapcore.EncoderConfig
	if development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		zapcore.InfoLevel,
	)

	return &Logger{zap: zap.New(core)}, nil
}

// Close syncs the logger (should be called on shutdown).
func (l *Logger) Close() error {
	return l.zap.Sync()
}

// PatchApplied logs a successful patch application.
func (l *Logger) PatchApplied(locator string, chunks int, duration time.Duration) {
	l.zap.Info("patch applied",
		zap.String("symbol", locator),
		zap.Int("chunks", chunks),
		zap.Duration("duration", duration),
	)
}

// PatchRejected logs a patch that failed validation.
func (l *Logger) PatchRejected(locator string, chunkIndex int, reason string) {
	l.zap.Info("patch rejected",
		zap.String("symbol", locator),
		zap.Int("failing_chunk_index", chunkIndex),
		zap.String("reason", reason),
	)
}

// Error logs an error.
func (l *Logger) Error(msg string, err error) {
	l.zap.Error(msg, zap.Error(err))
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}
