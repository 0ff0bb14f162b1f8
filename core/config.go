package core

import (
	"time"
)

// Config holds all configuration values for the extraction backend.
type Config struct {
	// Directories
	WatchDir  string // Directory polled for new PDFs in watch mode
	OutputDir string // Directory where extraction results are written

	// Extraction Configuration
	TemplatesPath string // Optional YAML template table (empty = built-in table)
	MaxFileSize   int64  // Maximum PDF size in bytes
	MaxPages      int    // Maximum pages read per PDF (0 = unlimited)

	// Plausibility window for amount correction
	AmountMin    float64 // Lower bound for plausible invoice/contract amounts
	AmountMax    float64 // Upper bound for plausible invoice/contract amounts
	CandidateMin float64 // Lower bound for replacement candidates
	CandidateMax float64 // Upper bound for replacement candidates

	// Client name sanity limits
	MaxClientNameLen   int // Maximum client name length in characters
	MaxClientNameWords int // Maximum client name length in words

	// Processing Configuration
	MaxConcurrent int           // Maximum documents processed in parallel
	PollInterval  time.Duration // Watch-mode polling interval

	// Logging Configuration
	LogFilePath string // Rotating log file location
	DevMode     bool   // Colored debug console output when true
}

// LoadConfig loads configuration from environment variables with sensible
// defaults for zero-config batch extraction. No variable is strictly
// required; defaults suit a local run against ./inbox and ./out.
func LoadConfig() (*Config, error) {
	watchDir := GetEnvOrDefault("WATCH_DIR", "./inbox")
	outputDir := GetEnvOrDefault("OUTPUT_DIR", "./out")
	templatesPath := GetEnvOrDefault("TEMPLATES_PATH", "")

	// 50MB limit handles multi-page scanned agreements while preventing abuse
	maxFileSize := ParseInt64Env("MAX_FILE_SIZE", 52428800)
	maxPages := ParseIntEnv("MAX_PAGES", 0)

	// Plausibility window defaults match the correction pass: amounts
	// outside [1, 1000000] are replaced by the median candidate in
	// [10, 100000] found in the document text.
	amountMin := ParseFloat64Env("AMOUNT_MIN", 1)
	amountMax := ParseFloat64Env("AMOUNT_MAX", 1000000)
	candidateMin := ParseFloat64Env("CANDIDATE_MIN", 10)
	candidateMax := ParseFloat64Env("CANDIDATE_MAX", 100000)

	maxClientNameLen := ParseIntEnv("MAX_CLIENT_NAME_LEN", 60)
	maxClientNameWords := ParseIntEnv("MAX_CLIENT_NAME_WORDS", 4)

	// 4 concurrent extractions balances throughput against PDF parser
	// memory usage on typical agency documents
	maxConcurrent := ParseIntEnv("MAX_CONCURRENT", 4)
	pollInterval := ParseDurationEnv("POLL_INTERVAL", 5)

	logFilePath := GetEnvOrDefault("LOG_FILE", "extract.log")
	devMode := ParseBoolEnv("DEV_MODE", false)

	// Validate plausibility windows
	if amountMin >= amountMax {
		return nil, ErrInvalidWindow("AMOUNT_MIN", "AMOUNT_MAX", amountMin, amountMax)
	}
	if candidateMin >= candidateMax {
		return nil, ErrInvalidWindow("CANDIDATE_MIN", "CANDIDATE_MAX", candidateMin, candidateMax)
	}

	// Validate processing limits
	if maxConcurrent < 1 || maxConcurrent > 64 {
		return nil, ErrInvalidLimit("MAX_CONCURRENT", maxConcurrent, 1, 64)
	}
	if maxFileSize < 1 {
		return nil, ErrInvalidLimit("MAX_FILE_SIZE", int(maxFileSize), 1, int(^uint(0)>>1))
	}
	if maxClientNameLen < 1 {
		return nil, ErrInvalidLimit("MAX_CLIENT_NAME_LEN", maxClientNameLen, 1, 1000)
	}
	if maxClientNameWords < 1 {
		return nil, ErrInvalidLimit("MAX_CLIENT_NAME_WORDS", maxClientNameWords, 1, 100)
	}

	return &Config{
		WatchDir:           watchDir,
		OutputDir:          outputDir,
		TemplatesPath:      templatesPath,
		MaxFileSize:        maxFileSize,
		MaxPages:           maxPages,
		AmountMin:          amountMin,
		AmountMax:          amountMax,
		CandidateMin:       candidateMin,
		CandidateMax:       candidateMax,
		MaxClientNameLen:   maxClientNameLen,
		MaxClientNameWords: maxClientNameWords,
		MaxConcurrent:      maxConcurrent,
		PollInterval:       pollInterval,
		LogFilePath:        logFilePath,
		DevMode:            devMode,
	}, nil
}
