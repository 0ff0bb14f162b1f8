// Package metrics provides the Collector interface for aggregating
// extraction statistics. This is a molecule that composes the atom-level
// types from types.go.
package metrics

// Collector defines the interface for collecting extraction metrics.
//
// Implementation strategy:
// - Implementations aggregate ExtractionRecord atoms across a run
// - Methods must be concurrency-safe; extractions run in parallel
// - Zero values are returned for unavailable metrics
type Collector interface {
	// RecordExtraction logs a completed document extraction.
	RecordExtraction(record ExtractionRecord)

	// GetExtractionMetrics returns aggregated extraction statistics.
	GetExtractionMetrics() ExtractionMetrics

	// GetRecentExtractions returns the N most recent extraction records,
	// most recent first.
	GetRecentExtractions(limit int) []ExtractionRecord

	// GetFieldHitRates returns per-field population rates across the run,
	// sorted by field name.
	GetFieldHitRates() []FieldHitRate

	// GetSystemStatus returns the overall run health status.
	GetSystemStatus() SystemStatus
}
