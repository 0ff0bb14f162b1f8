// Package metrics provides pure data types for extraction run statistics.
// This file contains atom-level type definitions with no behavior.
package metrics

import "time"

// ExtractionRecord represents a single document extraction.
// This is a pure data structure for tracking individual processing operations.
type ExtractionRecord struct {
	// ID is the unique identifier for this extraction job
	ID string `json:"id"`

	// File is the source file name (base name, no directory)
	File string `json:"file"`

	// DocType identifies the document kind: "Invoice" or "Contract"
	DocType string `json:"docType"`

	// Status indicates the outcome: "success", "error", "processing"
	Status string `json:"status"`

	// StartTime is when the extraction began
	StartTime time.Time `json:"startTime"`

	// EndTime is when the extraction completed (zero value if still processing)
	EndTime time.Time `json:"endTime,omitempty"`

	// Duration is the total extraction time
	Duration time.Duration `json:"duration"`

	// ErrorMsg contains error details if Status is "error"
	ErrorMsg string `json:"errorMsg,omitempty"`

	// FieldsFound maps field names to whether extraction produced a value.
	// Used to compute per-field hit rates across a run.
	FieldsFound map[string]bool `json:"fieldsFound,omitempty"`
}

// ExtractionMetrics represents aggregated extraction statistics.
// This is a pure data structure with no behavior.
type ExtractionMetrics struct {
	// TotalProcessed is the total number of documents processed
	TotalProcessed int64 `json:"totalProcessed"`

	// TotalSuccess is the count of successful extractions
	TotalSuccess int64 `json:"totalSuccess"`

	// TotalErrors is the count of failed extractions
	TotalErrors int64 `json:"totalErrors"`

	// ByType contains per-document-type statistics
	ByType map[string]*DocTypeMetrics `json:"byType"`
}

// DocTypeMetrics represents statistics for a specific document type.
// This is a pure data structure with no behavior.
type DocTypeMetrics struct {
	// Count is the total number of documents of this type
	Count int64 `json:"count"`

	// SuccessRate is the percentage of successful extractions (0-100)
	SuccessRate float64 `json:"successRate"`

	// AvgDuration is the average extraction time for this type
	AvgDuration time.Duration `json:"avgDuration"`
}

// FieldHitRate represents how often a field was populated across a run.
// This is a pure data structure with no behavior.
type FieldHitRate struct {
	// Field is the extraction field name (e.g. "clientName")
	Field string `json:"field"`

	// Seen is the number of documents where the field applied
	Seen int64 `json:"seen"`

	// Found is the number of documents where a value was extracted
	Found int64 `json:"found"`

	// Rate is Found/Seen as a percentage (0-100)
	Rate float64 `json:"rate"`
}

// SystemStatus represents the overall run health and status.
// This is a pure data structure with no behavior.
type SystemStatus struct {
	// Health indicates the run state: "running", "error", "stopped"
	Health string `json:"health"`

	// Version is the application version string
	Version string `json:"version"`

	// Uptime is the duration since the run started
	Uptime time.Duration `json:"uptime"`

	// LastCheck is the timestamp of the last health check
	LastCheck time.Time `json:"lastCheck"`
}

// Status constants for ExtractionRecord
const (
	StatusSuccess    = "success"
	StatusError      = "error"
	StatusProcessing = "processing"
)

// Health constants for SystemStatus
const (
	SystemHealthRunning = "running"
	SystemHealthError   = "error"
	SystemHealthStopped = "stopped"
)
