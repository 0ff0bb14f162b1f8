// Package logging provides structured logging for the agency document
// backend, built on zap with log-file rotation and redaction of
// personal data found in document text.
//
// encoder_config.go defines the encoder configuration atoms shared by
// the console and file cores.
package logging

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// Standard field names for structured logging output.
const (
	// FieldTimestamp is the key for the log entry timestamp
	FieldTimestamp = "timestamp"

	// FieldLevel is the key for the log level
	FieldLevel = "level"

	// FieldMessage is the key for the log message
	FieldMessage = "message"

	// FieldCaller is the key for the calling source location
	FieldCaller = "caller"

	// FieldStacktrace is the key for stack traces on error/fatal
	FieldStacktrace = "stacktrace"
)

// NewEncoderConfig returns a zapcore.EncoderConfig for JSON output with
// standardized field names, ISO8601 timestamps and lowercase levels.
//
// This is a pure function returning a consistent configuration.
func NewEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       FieldTimestamp,
		LevelKey:      FieldLevel,
		CallerKey:     FieldCaller,
		MessageKey:    FieldMessage,
		StacktraceKey: FieldStacktrace,
		LineEnding:    zapcore.DefaultLineEnding,

		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// NewConsoleEncoderConfig returns a zapcore.EncoderConfig for
// human-readable console output with colored levels and compact
// timestamps.
func NewConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := NewEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = shortTimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

// shortTimeEncoder encodes time as 15:04:05.000 for console output.
func shortTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05.000"))
}
