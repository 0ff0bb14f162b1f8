// Package logging provides structured logging for the agency document
// backend.
//
// logger.go implements the Logger organism that wraps zap.Logger. It
// composes:
//   - multi_core.go: tee output to console + rotating file
//   - file_writer.go: log rotation via lumberjack
//   - redact.go: personal-data redaction for document text previews
//
// Example:
//
//	logger, err := logging.NewLogger(true, "extract.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	logger.Info("document processed", zap.String("job_id", jobID))
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with environment-aware configuration.
type Logger struct {
	// zap is the underlying structured logger
	zap *zap.Logger

	// sugar is the sugared logger for printf-style logging
	sugar *zap.SugaredLogger

	// isDevelopment indicates if running in development mode
	isDevelopment bool
}

// NewLogger creates a Logger for the given environment.
//
//   - isDevelopment: colored console output at debug level when true,
//     JSON output at info level when false
//   - logFilePath: rotating log file location (50MB max, 5 backups,
//     30 days retention, compressed)
func NewLogger(isDevelopment bool, logFilePath string) (*Logger, error) {
	return NewLoggerWithConfig(isDevelopment, logFilePath, DefaultFileWriterConfig())
}

// NewLoggerWithConfig creates a Logger with custom file rotation
// configuration.
func NewLoggerWithConfig(isDevelopment bool, logFilePath string, fileConfig FileWriterConfig) (*Logger, error) {
	var level zapcore.Level
	if isDevelopment {
		level = zapcore.DebugLevel
	} else {
		level = zapcore.InfoLevel
	}

	core := NewMultiCoreWithWriters(level,
		zapcore.Lock(zapcore.AddSync(os.Stdout)),
		NewFileWriterWithConfig(logFilePath, fileConfig),
		isDevelopment,
	)

	zapLogger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	)

	return &Logger{
		zap:           zapLogger,
		sugar:         zapLogger.Sugar(),
		isDevelopment: isDevelopment,
	}, nil
}

// Zap returns the underlying zap.Logger for packages that take one
// directly.
func (l *Logger) Zap() *zap.Logger {
	return l.zap.WithOptions(zap.AddCallerSkip(-1))
}

// Debug logs a message at debug level with structured fields.
func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zap.Debug(msg, fields...) }

// Info logs a message at info level with structured fields.
func (l *Logger) Info(msg string, fields ...zap.Field) { l.zap.Info(msg, fields...) }

// Warn logs a message at warn level with structured fields.
func (l *Logger) Warn(msg string, fields ...zap.Field) { l.zap.Warn(msg, fields...) }

// Error logs a message at error level with structured fields.
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zap.Error(msg, fields...) }

// Fatal logs a message at fatal level and exits.
func (l *Logger) Fatal(msg string, fields ...zap.Field) { l.zap.Fatal(msg, fields...) }

// Debugf logs a printf-style message at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }

// Infof logs a printf-style message at info level.
func (l *Logger) Infof(format string, args ...interface{}) { l.sugar.Infof(format, args...) }

// Warnf logs a printf-style message at warn level.
func (l *Logger) Warnf(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }

// Errorf logs a printf-style message at error level.
func (l *Logger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// Sync flushes buffered log entries. Call before process exit.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// IsDevelopment reports whether the logger runs in development mode.
func (l *Logger) IsDevelopment() bool {
	return l.isDevelopment
}
