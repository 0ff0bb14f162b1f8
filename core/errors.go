package core

import (
	"fmt"
)

// ConfigError represents a configuration-related error with actionable instructions.
type ConfigError struct {
	Code    string // Error code for programmatic handling
	Message string // Human-readable error message
	Action  string // Actionable instruction for resolution
}

func (e *ConfigError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Action)
	}
	return e.Message
}

// Error codes for configuration errors
const (
	ErrCodeEnvFileMissing   = "ENV_FILE_MISSING"
	ErrCodeInvalidDirectory = "INVALID_DIRECTORY"
	ErrCodeInvalidTemplates = "INVALID_TEMPLATES"
	ErrCodeInvalidWindow    = "INVALID_PLAUSIBILITY_WINDOW"
	ErrCodeInvalidLimit     = "INVALID_LIMIT"
	ErrCodeMissingConfig    = "MISSING_CONFIG"
)

// ErrEnvFileMissing returns an error for missing .env file
func ErrEnvFileMissing(path string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeEnvFileMissing,
		Message: fmt.Sprintf("Configuration file not found: %s", path),
		Action:  "Copy example.env to .env and configure the required values",
	}
}

// ErrInvalidDirectory returns an error for an unusable watch or output directory
func ErrInvalidDirectory(varName, path, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidDirectory,
		Message: fmt.Sprintf("Invalid %s directory '%s': %s", varName, path, reason),
		Action:  fmt.Sprintf("Set %s to an existing, writable directory", varName),
	}
}

// ErrInvalidTemplates returns an error for an unreadable or malformed templates file
func ErrInvalidTemplates(path, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidTemplates,
		Message: fmt.Sprintf("Cannot load extraction templates from '%s': %s", path, reason),
		Action:  "Fix TEMPLATES_PATH or remove it to use the built-in template table",
	}
}

// ErrInvalidWindow returns an error for an inverted or degenerate plausibility window
func ErrInvalidWindow(minVar, maxVar string, min, max float64) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidWindow,
		Message: fmt.Sprintf("Invalid plausibility window: %s (%.2f) must be less than %s (%.2f)", minVar, min, maxVar, max),
		Action:  fmt.Sprintf("Set %s below %s", minVar, maxVar),
	}
}

// ErrInvalidLimit returns an error for an out-of-range numeric limit
func ErrInvalidLimit(varName string, value int, min, max int) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidLimit,
		Message: fmt.Sprintf("Invalid %s: %d (must be between %d and %d)", varName, value, min, max),
		Action:  fmt.Sprintf("Set %s to a value between %d and %d", varName, min, max),
	}
}

// ErrMissingConfig returns an error for missing required configuration
func ErrMissingConfig(varName string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeMissingConfig,
		Message: fmt.Sprintf("Missing required configuration: %s", varName),
		Action:  fmt.Sprintf("Set %s in your .env file", varName),
	}
}

// IsConfigError checks if an error is a ConfigError and returns it if so
func IsConfigError(err error) (*ConfigError, bool) {
	if configErr, ok := err.(*ConfigError); ok {
		return configErr, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an error if it's a ConfigError
func GetErrorCode(err error) string {
	if configErr, ok := IsConfigError(err); ok {
		return configErr.Code
	}
	return ""
}
