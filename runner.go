package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"agency_backend/core"
	"agency_backend/docextract"
	"agency_backend/logging"
	"agency_backend/metrics"
	"agency_backend/shutdown"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner coordinates document extraction jobs. It drives both the
// one-shot batch mode and the polling watch mode of the CLI.
type Runner struct {
	processor *docextract.Processor
	extractor docextract.TextExtractor
	config    *core.Config
	logger    *logging.Logger
	collector metrics.Collector
	guard     *shutdown.Manager

	// seen tracks files already processed in watch mode, keyed by path
	// with the modification time at processing
	seen    map[string]time.Time
	seenMux sync.RWMutex
}

// NewRunner creates a new Runner instance. Jobs are tracked through the
// shutdown manager so termination waits for in-flight documents.
func NewRunner(processor *docextract.Processor, cfg *core.Config, logger *logging.Logger, collector metrics.Collector, guard *shutdown.Manager) *Runner {
	return &Runner{
		processor: processor,
		extractor: docextract.NewPDFTextExtractor(docextract.TextExtractorConfig{
			SkipEmptyPages:  true,
			PageSeparator:   "\n\n",
			ContinueOnError: true,
			MaxPages:        cfg.MaxPages,
		}),
		config:    cfg,
		logger:    logger,
		collector: collector,
		guard:     guard,
		seen:      make(map[string]time.Time),
	}
}

// RunBatch processes the given files concurrently and returns an exit
// code. Individual failures are logged and counted; one bad file never
// aborts the rest of the batch.
func (r *Runner) RunBatch(ctx context.Context, files []string) int {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.MaxConcurrent)

	var failed int64
	for _, f := range files {
		file := f
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			if err := r.processTracked(ctx, file); err != nil {
				atomic.AddInt64(&failed, 1)
				r.logger.Error("Document processing failed",
					zap.String("file", file),
					zap.Error(err))
				color.New(color.FgRed).Fprintf(os.Stderr, "  %s failed: %v\n", filepath.Base(file), err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if n := atomic.LoadInt64(&failed); n > 0 {
		r.logger.Warn("Batch completed with failures",
			zap.Int64("failed", n),
			zap.Int("total", len(files)))
		return core.ExitCodeError
	}

	r.logger.Info("Batch completed", zap.Int("total", len(files)))
	return core.ExitCodeSuccess
}

// Watch polls the configured watch directory for new or changed PDFs and
// processes each one, until the context is cancelled.
func (r *Runner) Watch(ctx context.Context) int {
	r.logger.Info("Watching for documents",
		zap.String("dir", r.config.WatchDir),
		zap.Duration("interval", r.config.PollInterval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Warn("Stopping watcher due to context cancellation")
			return core.ExitCodeSuccess
		case <-time.After(r.config.PollInterval):
			if err := r.sweep(ctx); err != nil {
				r.logger.Error("Watch sweep failed", zap.Error(err))
			}
		}
	}
}

// sweep scans the watch directory once and processes anything new.
func (r *Runner) sweep(ctx context.Context) error {
	entries, err := os.ReadDir(r.config.WatchDir)
	if err != nil {
		return fmt.Errorf("failed to read watch directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.MaxConcurrent)

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		path := filepath.Join(r.config.WatchDir, entry.Name())
		if !r.markSeen(path, info.ModTime()) {
			continue
		}

		g.Go(func() error {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			if err := r.processTracked(ctx, path); err != nil {
				r.logger.Error("Document processing failed",
					zap.String("file", path),
					zap.Error(err))
			}
			return nil
		})
	}

	return g.Wait()
}

// processTracked runs ProcessFile as a tracked in-flight job so shutdown
// waits for it. Jobs arriving after shutdown begins are skipped quietly.
func (r *Runner) processTracked(ctx context.Context, path string) error {
	if r.guard == nil {
		return r.ProcessFile(path)
	}
	err := r.guard.WrapJob(ctx, filepath.Base(path), func(context.Context) error {
		return r.ProcessFile(path)
	})
	if errors.Is(err, shutdown.ErrTrackerClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// markSeen records a file as processed. Returns true if the file is new
// or has been modified since it was last processed.
func (r *Runner) markSeen(path string, modTime time.Time) bool {
	r.seenMux.Lock()
	defer r.seenMux.Unlock()

	if last, ok := r.seen[path]; ok && !modTime.After(last) {
		return false
	}
	r.seen[path] = modTime
	return true
}

// ProcessFile extracts structured data from a single PDF and writes the
// result as JSON next to the configured output directory.
func (r *Runner) ProcessFile(path string) error {
	jobID := uuid.NewString()
	start := time.Now()

	r.logger.Info("Processing document",
		zap.String("job_id", jobID),
		zap.String("file", path))

	info, err := os.Stat(path)
	if err != nil {
		r.recordFailure(jobID, path, "", start, err)
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() > r.config.MaxFileSize {
		err := fmt.Errorf("file size %d exceeds limit %d", info.Size(), r.config.MaxFileSize)
		r.recordFailure(jobID, path, "", start, err)
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		r.recordFailure(jobID, path, "", start, err)
		return fmt.Errorf("failed to read file: %w", err)
	}

	text, err := r.extractor.ExtractText(data)
	if err != nil {
		r.recordFailure(jobID, path, "", start, err)
		return fmt.Errorf("failed to extract text: %w", err)
	}

	docType := classifyDocument(text, path)
	result := &docextract.Result{Type: docType}
	fieldsFound := make(map[string]bool)

	switch docType {
	case docextract.DocumentTypeContract:
		record := r.processor.ExtractContractText(text)
		result.Contract = record
		fieldsFound["creatorName"] = record.CreatorName != nil
		fieldsFound["clientName"] = record.ClientName != nil
		fieldsFound["amount"] = record.Amount != nil
		fieldsFound["videoCount"] = record.VideoCount != nil
		fieldsFound["startDate"] = record.StartDate != nil
		fieldsFound["endDate"] = record.EndDate != nil
	default:
		record := r.processor.ExtractInvoiceText(text)
		result.Invoice = record
		fieldsFound["creatorName"] = record.CreatorName != nil
		fieldsFound["clientName"] = record.ClientName != nil
		fieldsFound["amount"] = record.Amount != nil
		fieldsFound["videoCount"] = record.VideoCount != nil
		fieldsFound["dueDate"] = record.DueDate != nil
	}

	outPath, err := r.writeResult(path, result)
	if err != nil {
		r.recordFailure(jobID, path, string(docType), start, err)
		return err
	}

	r.collector.RecordExtraction(metrics.ExtractionRecord{
		ID:          jobID,
		File:        filepath.Base(path),
		DocType:     string(docType),
		Status:      metrics.StatusSuccess,
		StartTime:   start,
		EndTime:     time.Now(),
		Duration:    time.Since(start),
		FieldsFound: fieldsFound,
	})

	r.logger.Info("Document processed",
		zap.String("job_id", jobID),
		zap.String("file", path),
		zap.String("doc_type", string(docType)),
		zap.String("output", outPath),
		zap.Duration("duration", time.Since(start)))
	color.New(color.FgGreen).Printf("  %s -> %s (%s)\n", filepath.Base(path), filepath.Base(outPath), docType)

	return nil
}

// writeResult serializes the extraction result to the output directory,
// named after the source file.
func (r *Runner) writeResult(srcPath string, result *docextract.Result) (string, error) {
	base := filepath.Base(srcPath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
	outPath := filepath.Join(r.config.OutputDir, name)

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize result: %w", err)
	}
	if err := os.WriteFile(outPath, payload, 0644); err != nil {
		return "", fmt.Errorf("failed to write result: %w", err)
	}

	return outPath, nil
}

// recordFailure logs a failed extraction into the metrics collector.
func (r *Runner) recordFailure(jobID, path, docType string, start time.Time, cause error) {
	r.collector.RecordExtraction(metrics.ExtractionRecord{
		ID:        jobID,
		File:      filepath.Base(path),
		DocType:   docType,
		Status:    metrics.StatusError,
		StartTime: start,
		EndTime:   time.Now(),
		Duration:  time.Since(start),
		ErrorMsg:  cause.Error(),
	})
}

// LogSummary logs aggregate run statistics and per-field hit rates.
func (r *Runner) LogSummary() {
	summary := r.collector.GetExtractionMetrics()
	if summary.TotalProcessed == 0 {
		return
	}

	r.logger.Info("Run summary",
		zap.Int64("processed", summary.TotalProcessed),
		zap.Int64("succeeded", summary.TotalSuccess),
		zap.Int64("failed", summary.TotalErrors))

	for docType, typed := range summary.ByType {
		r.logger.Info("Document type summary",
			zap.String("doc_type", docType),
			zap.Int64("count", typed.Count),
			zap.Float64("success_rate", typed.SuccessRate),
			zap.Duration("avg_duration", typed.AvgDuration))
	}

	for _, hit := range r.collector.GetFieldHitRates() {
		r.logger.Debug("Field hit rate",
			zap.String("field", hit.Field),
			zap.Int64("seen", hit.Seen),
			zap.Int64("found", hit.Found),
			zap.Float64("rate", hit.Rate))
	}
}

// classifyDocument decides the document type from its text, falling back
// to file-name hints when the text matches neither family.
func classifyDocument(text, path string) docextract.DocumentType {
	if docextract.IsUGCContract(text) {
		return docextract.DocumentTypeContract
	}
	if docextract.IsCreatorInvoice(text) {
		return docextract.DocumentTypeInvoice
	}

	name := strings.ToLower(filepath.Base(path))
	if strings.Contains(name, "contract") || strings.Contains(name, "agreement") {
		return docextract.DocumentTypeContract
	}
	return docextract.DocumentTypeInvoice
}
