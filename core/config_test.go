package core

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.WatchDir != "./inbox" {
		t.Errorf("WatchDir = %q, want %q", cfg.WatchDir, "./inbox")
	}
	if cfg.OutputDir != "./out" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "./out")
	}
	if cfg.TemplatesPath != "" {
		t.Errorf("TemplatesPath = %q, want empty", cfg.TemplatesPath)
	}
	if cfg.MaxFileSize != 52428800 {
		t.Errorf("MaxFileSize = %d, want 52428800", cfg.MaxFileSize)
	}
	if cfg.AmountMin != 1 || cfg.AmountMax != 1000000 {
		t.Errorf("amount window = [%v, %v], want [1, 1000000]", cfg.AmountMin, cfg.AmountMax)
	}
	if cfg.CandidateMin != 10 || cfg.CandidateMax != 100000 {
		t.Errorf("candidate window = [%v, %v], want [10, 100000]", cfg.CandidateMin, cfg.CandidateMax)
	}
	if cfg.MaxConcurrent != 4 {
		t.Errorf("MaxConcurrent = %d, want 4", cfg.MaxConcurrent)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("PollInterval = %v, want 5s", cfg.PollInterval)
	}
	if cfg.DevMode {
		t.Error("DevMode = true, want false by default")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("WATCH_DIR", "/data/incoming")
	t.Setenv("OUTPUT_DIR", "/data/results")
	t.Setenv("TEMPLATES_PATH", "/etc/extract/templates.yaml")
	t.Setenv("AMOUNT_MIN", "50")
	t.Setenv("AMOUNT_MAX", "5000")
	t.Setenv("MAX_CONCURRENT", "8")
	t.Setenv("DEV_MODE", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.WatchDir != "/data/incoming" {
		t.Errorf("WatchDir = %q, want %q", cfg.WatchDir, "/data/incoming")
	}
	if cfg.OutputDir != "/data/results" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "/data/results")
	}
	if cfg.TemplatesPath != "/etc/extract/templates.yaml" {
		t.Errorf("TemplatesPath = %q, want override", cfg.TemplatesPath)
	}
	if cfg.AmountMin != 50 || cfg.AmountMax != 5000 {
		t.Errorf("amount window = [%v, %v], want [50, 5000]", cfg.AmountMin, cfg.AmountMax)
	}
	if cfg.MaxConcurrent != 8 {
		t.Errorf("MaxConcurrent = %d, want 8", cfg.MaxConcurrent)
	}
	if !cfg.DevMode {
		t.Error("DevMode = false, want true")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name     string
		envKey   string
		envValue string
		wantCode string
	}{
		{name: "inverted amount window", envKey: "AMOUNT_MIN", envValue: "2000000", wantCode: ErrCodeInvalidWindow},
		{name: "inverted candidate window", envKey: "CANDIDATE_MAX", envValue: "5", wantCode: ErrCodeInvalidWindow},
		{name: "zero concurrency", envKey: "MAX_CONCURRENT", envValue: "0", wantCode: ErrCodeInvalidLimit},
		{name: "excessive concurrency", envKey: "MAX_CONCURRENT", envValue: "500", wantCode: ErrCodeInvalidLimit},
		{name: "negative file size", envKey: "MAX_FILE_SIZE", envValue: "-1", wantCode: ErrCodeInvalidLimit},
		{name: "zero client name length", envKey: "MAX_CLIENT_NAME_LEN", envValue: "0", wantCode: ErrCodeInvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envKey, tt.envValue)

			_, err := LoadConfig()
			if err == nil {
				t.Fatal("LoadConfig() error = nil, want validation error")
			}
			if code := GetErrorCode(err); code != tt.wantCode {
				t.Errorf("error code = %q, want %q (err: %v)", code, tt.wantCode, err)
			}
		})
	}
}
