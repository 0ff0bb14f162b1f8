package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"agency_backend/core"
	"agency_backend/docextract"
	"agency_backend/logging"
	"agency_backend/metrics"
	"agency_backend/shutdown"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Service management commands (install/uninstall/...) short-circuit
	// before any other initialization
	if HandleServiceCommand(os.Args) {
		return
	}

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Use fmt here since logger isn't initialized yet
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	// Determine if running in development mode
	isDevelopment := os.Getenv("DEV_MODE") == "true"

	// Initialize structured logger early
	logger, err := logging.NewLogger(isDevelopment, core.GetEnvOrDefault("LOG_FILE", "extract.log"))
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(core.ExitCodeError)
	}

	logger.Info("Starting document extraction backend",
		zap.String("version", core.GetVersionInfo()),
	)

	// Load configuration
	config, err := core.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Log configuration values
	logger.Info("Configuration loaded",
		zap.String("watch_dir", config.WatchDir),
		zap.String("output_dir", config.OutputDir),
		zap.String("templates_path", config.TemplatesPath),
		zap.Int64("max_file_size", config.MaxFileSize),
		zap.Int("max_concurrent", config.MaxConcurrent),
		zap.Duration("poll_interval", config.PollInterval),
		zap.Float64("amount_min", config.AmountMin),
		zap.Float64("amount_max", config.AmountMax),
		zap.Bool("dev_mode", isDevelopment),
	)

	// Create output directory
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		logger.Fatal("Failed to create output directory", zap.Error(err))
	}

	// Build the extraction pipeline from configuration
	processor, err := buildProcessor(config, logger)
	if err != nil {
		logger.Fatal("Failed to build extraction pipeline", zap.Error(err))
	}

	collector := metrics.NewStore(metrics.StoreConfig{
		HistoryCapacity: 100,
		Version:         core.GetVersion(),
	}, time.Now())

	// Graceful shutdown: first signal drains in-flight jobs, second
	// forces exit
	manager := shutdown.NewManager(logger.Zap())
	runner := NewRunner(processor, config, logger, collector, manager)

	manager.Register("run-summary", 10, func(context.Context) error {
		runner.LogSummary()
		return nil
	})

	manager.Start()

	// With file arguments, run a one-shot batch; otherwise poll the watch
	// directory until interrupted
	var exitCode int
	args := os.Args[1:]
	if len(args) > 0 && args[0] != "watch" {
		exitCode = runner.RunBatch(manager.Context(), args)
	} else {
		exitCode = runner.Watch(manager.Context())
	}

	if err := manager.Shutdown(); err != nil {
		logger.Warn("Shutdown finished with errors", zap.Error(err))
	}
	if sigCode := manager.ExitCode(); sigCode != core.ExitCodeSuccess {
		exitCode = sigCode
	}

	logger.Info("Shutdown complete",
		zap.String("exit", core.ExitCodeName(exitCode)))
	_ = logger.Sync()

	if exitCode != core.ExitCodeSuccess {
		os.Exit(exitCode)
	}
}

// buildProcessor wires the document processor from runtime configuration:
// plausibility windows, page limits and the template table.
func buildProcessor(config *core.Config, logger *logging.Logger) (*docextract.Processor, error) {
	procConfig := docextract.DefaultProcessorConfig()
	procConfig.TextExtractorConfig.MaxPages = config.MaxPages
	procConfig.PostProcessorConfig = docextract.PostProcessorConfig{
		AmountMin:          config.AmountMin,
		AmountMax:          config.AmountMax,
		CandidateMin:       config.CandidateMin,
		CandidateMax:       config.CandidateMax,
		MaxClientNameLen:   config.MaxClientNameLen,
		MaxClientNameWords: config.MaxClientNameWords,
	}

	if config.TemplatesPath != "" {
		templates, err := docextract.LoadTemplates(config.TemplatesPath)
		if err != nil {
			return nil, core.ErrInvalidTemplates(config.TemplatesPath, err.Error())
		}
		logger.Info("Loaded extraction templates",
			zap.String("path", config.TemplatesPath))
		procConfig.Templates = templates
	}

	return docextract.NewProcessorWithLogger(procConfig, logger.Zap()), nil
}
