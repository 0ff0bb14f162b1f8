package core

import "testing"

func TestExitCodeName(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
	}{
		{name: "success", code: ExitCodeSuccess, want: "success"},
		{name: "error", code: ExitCodeError, want: "error"},
		{name: "sigint", code: ExitCodeSIGINT, want: "interrupted (SIGINT)"},
		{name: "sigterm", code: ExitCodeSIGTERM, want: "terminated (SIGTERM)"},
		{name: "unknown", code: 42, want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeName(tt.code); got != tt.want {
				t.Errorf("ExitCodeName(%d) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestIsSignalExit(t *testing.T) {
	tests := []struct {
		name string
		code int
		want bool
	}{
		{name: "sigint", code: ExitCodeSIGINT, want: true},
		{name: "sigterm", code: ExitCodeSIGTERM, want: true},
		{name: "success", code: ExitCodeSuccess, want: false},
		{name: "error", code: ExitCodeError, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSignalExit(tt.code); got != tt.want {
				t.Errorf("IsSignalExit(%d) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
