// Package logging provides structured logging for the agency document
// backend.
//
// multi_core.go implements the core that tees log output to both the
// console and the rotating log file. The file always receives JSON for
// downstream processing; the console format depends on dev mode.
package logging

import (
	"os"

	"go.uber.org/zap/zapcore"
)

// NewMultiCore creates a zapcore.Core writing to both stdout and a
// rotating file at filePath.
//
//   - level: minimum level for both outputs
//   - filePath: log file location (created on first write)
//   - isDev: human-readable colored console when true, JSON otherwise
func NewMultiCore(level zapcore.Level, filePath string, isDev bool) zapcore.Core {
	return NewMultiCoreWithWriters(level, zapcore.AddSync(os.Stdout), NewFileWriter(filePath), isDev)
}

// NewMultiCoreWithWriters creates a tee core over the provided writers.
// Useful for capturing output in tests.
func NewMultiCoreWithWriters(level zapcore.Level, consoleWriter, fileWriter zapcore.WriteSyncer, isDev bool) zapcore.Core {
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(NewEncoderConfig()),
		fileWriter,
		level,
	)

	var consoleEncoder zapcore.Encoder
	if isDev {
		consoleEncoder = zapcore.NewConsoleEncoder(NewConsoleEncoderConfig())
	} else {
		consoleEncoder = zapcore.NewJSONEncoder(NewEncoderConfig())
	}

	consoleCore := zapcore.NewCore(consoleEncoder, consoleWriter, level)

	return zapcore.NewTee(consoleCore, fileCore)
}
