// Package logging provides structured logging for the agency document
// backend.
//
// file_writer.go implements the rotating log-file writer molecule backed
// by lumberjack.
package logging

import (
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Default rotation settings for the extraction log.
const (
	// DefaultMaxSizeMB is the maximum log size in megabytes before rotation
	DefaultMaxSizeMB = 50

	// DefaultMaxBackups is the number of rotated files to retain
	DefaultMaxBackups = 5

	// DefaultMaxAgeDays is the maximum age of rotated files in days
	DefaultMaxAgeDays = 30

	// DefaultCompress enables gzip compression of rotated files
	DefaultCompress = true
)

// FileWriterConfig holds rotation configuration. Zero values select the
// defaults.
type FileWriterConfig struct {
	// MaxSizeMB is the maximum size in megabytes before rotation
	MaxSizeMB int

	// MaxBackups is the maximum number of rotated files to retain
	MaxBackups int

	// MaxAgeDays is the maximum number of days to retain rotated files
	MaxAgeDays int

	// Compress gzips rotated files
	Compress bool
}

// DefaultFileWriterConfig returns a FileWriterConfig with default values.
func DefaultFileWriterConfig() FileWriterConfig {
	return FileWriterConfig{
		MaxSizeMB:  DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAgeDays: DefaultMaxAgeDays,
		Compress:   DefaultCompress,
	}
}

// NewFileWriter returns a WriteSyncer that appends to path with default
// rotation.
func NewFileWriter(path string) zapcore.WriteSyncer {
	return NewFileWriterWithConfig(path, DefaultFileWriterConfig())
}

// NewFileWriterWithConfig returns a WriteSyncer that appends to path
// with the given rotation configuration.
func NewFileWriterWithConfig(path string, config FileWriterConfig) zapcore.WriteSyncer {
	if config.MaxSizeMB <= 0 {
		config.MaxSizeMB = DefaultMaxSizeMB
	}
	if config.MaxBackups <= 0 {
		config.MaxBackups = DefaultMaxBackups
	}
	if config.MaxAgeDays <= 0 {
		config.MaxAgeDays = DefaultMaxAgeDays
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    config.MaxSizeMB,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAgeDays,
		Compress:   config.Compress,
	})
}
