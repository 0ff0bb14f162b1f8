package core

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{
			name: "with action",
			err:  &ConfigError{Code: "X", Message: "something broke", Action: "fix it"},
			want: "something broke. fix it",
		},
		{
			name: "without action",
			err:  &ConfigError{Code: "X", Message: "something broke"},
			want: "something broke",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigError
		wantCode string
		wantIn   string
	}{
		{
			name:     "env file missing",
			err:      ErrEnvFileMissing("/app/.env"),
			wantCode: ErrCodeEnvFileMissing,
			wantIn:   "/app/.env",
		},
		{
			name:     "invalid directory",
			err:      ErrInvalidDirectory("WATCH_DIR", "/nope", "not a directory"),
			wantCode: ErrCodeInvalidDirectory,
			wantIn:   "WATCH_DIR",
		},
		{
			name:     "invalid templates",
			err:      ErrInvalidTemplates("templates.yaml", "yaml: bad indent"),
			wantCode: ErrCodeInvalidTemplates,
			wantIn:   "templates.yaml",
		},
		{
			name:     "invalid window",
			err:      ErrInvalidWindow("AMOUNT_MIN", "AMOUNT_MAX", 500, 100),
			wantCode: ErrCodeInvalidWindow,
			wantIn:   "AMOUNT_MIN",
		},
		{
			name:     "invalid limit",
			err:      ErrInvalidLimit("MAX_CONCURRENT", 0, 1, 64),
			wantCode: ErrCodeInvalidLimit,
			wantIn:   "MAX_CONCURRENT",
		},
		{
			name:     "missing config",
			err:      ErrMissingConfig("OUTPUT_DIR"),
			wantCode: ErrCodeMissingConfig,
			wantIn:   "OUTPUT_DIR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.wantCode)
			}
			if !strings.Contains(tt.err.Error(), tt.wantIn) {
				t.Errorf("Error() = %q, want it to contain %q", tt.err.Error(), tt.wantIn)
			}
			if tt.err.Action == "" {
				t.Error("Action is empty, want actionable instruction")
			}
		})
	}
}

func TestIsConfigError(t *testing.T) {
	t.Run("config error", func(t *testing.T) {
		err := ErrMissingConfig("WATCH_DIR")
		configErr, ok := IsConfigError(err)
		if !ok {
			t.Fatal("IsConfigError() = false, want true")
		}
		if configErr.Code != ErrCodeMissingConfig {
			t.Errorf("Code = %q, want %q", configErr.Code, ErrCodeMissingConfig)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		if _, ok := IsConfigError(errors.New("plain")); ok {
			t.Error("IsConfigError() = true for plain error, want false")
		}
	})
}

func TestGetErrorCode(t *testing.T) {
	if code := GetErrorCode(ErrInvalidLimit("MAX_CONCURRENT", 99, 1, 64)); code != ErrCodeInvalidLimit {
		t.Errorf("GetErrorCode() = %q, want %q", code, ErrCodeInvalidLimit)
	}
	if code := GetErrorCode(errors.New("plain")); code != "" {
		t.Errorf("GetErrorCode() = %q for plain error, want empty", code)
	}
}
