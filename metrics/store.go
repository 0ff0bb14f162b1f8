// Package metrics provides the Store organism for in-memory metrics
// storage. This file contains the Store which implements the Collector
// interface.
package metrics

import (
	"sort"
	"sync"
	"time"
)

// Store is an in-memory storage organism for extraction run metrics.
// It implements the Collector interface and provides thread-safe access
// to extraction records, per-type aggregates and field hit rates.
//
// Usage:
//
//	store := NewStore(DefaultStoreConfig(), time.Now())
//	store.RecordExtraction(record)
//	summary := store.GetExtractionMetrics()
type Store struct {
	mu sync.RWMutex

	// Extraction history (circular buffer)
	history []ExtractionRecord
	cap     int
	head    int
	size    int

	// Aggregation
	totalProcessed int64
	totalSuccess   int64
	totalErrors    int64
	byType         map[string]*docTypeStats

	// Field hit tracking
	fieldSeen  map[string]int64
	fieldFound map[string]int64

	// Run metadata
	startTime time.Time
	version   string
}

// docTypeStats holds per-document-type aggregation data
type docTypeStats struct {
	count         int64
	successCount  int64
	totalDuration time.Duration
}

// StoreConfig configures the Store behavior.
type StoreConfig struct {
	// HistoryCapacity is the max number of records to retain in history
	HistoryCapacity int
	// Version is the application version string
	Version string
}

// DefaultStoreConfig returns a default configuration.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		HistoryCapacity: 100,
		Version:         "0.0.0",
	}
}

// NewStore creates a new Store with the specified configuration.
// The startTime is used to calculate uptime.
func NewStore(config StoreConfig, startTime time.Time) *Store {
	cap := config.HistoryCapacity
	if cap < 1 {
		cap = 100
	}

	return &Store{
		history:    make([]ExtractionRecord, cap),
		cap:        cap,
		byType:     make(map[string]*docTypeStats),
		fieldSeen:  make(map[string]int64),
		fieldFound: make(map[string]int64),
		startTime:  startTime,
		version:    config.Version,
	}
}

// RecordExtraction logs a completed document extraction.
// This implements part of the Collector interface.
func (s *Store) RecordExtraction(record ExtractionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Add to circular buffer
	s.history[s.head] = record
	s.head = (s.head + 1) % s.cap
	if s.size < s.cap {
		s.size++
	}

	// Update aggregations
	s.totalProcessed++

	if record.Status == StatusSuccess {
		s.totalSuccess++
	} else if record.Status == StatusError {
		s.totalErrors++
	}

	// Update per-type stats
	stats, ok := s.byType[record.DocType]
	if !ok {
		stats = &docTypeStats{}
		s.byType[record.DocType] = stats
	}
	stats.count++
	if record.Status == StatusSuccess {
		stats.successCount++
	}
	stats.totalDuration += record.Duration

	// Update field hit counters
	for field, found := range record.FieldsFound {
		s.fieldSeen[field]++
		if found {
			s.fieldFound[field]++
		}
	}
}

// GetExtractionMetrics returns aggregated extraction statistics.
// This implements part of the Collector interface.
func (s *Store) GetExtractionMetrics() ExtractionMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := ExtractionMetrics{
		TotalProcessed: s.totalProcessed,
		TotalSuccess:   s.totalSuccess,
		TotalErrors:    s.totalErrors,
		ByType:         make(map[string]*DocTypeMetrics),
	}

	for docType, stats := range s.byType {
		var successRate float64
		if stats.count > 0 {
			successRate = float64(stats.successCount) / float64(stats.count) * 100
		}

		var avgDuration time.Duration
		if stats.count > 0 {
			avgDuration = stats.totalDuration / time.Duration(stats.count)
		}

		summary.ByType[docType] = &DocTypeMetrics{
			Count:       stats.count,
			SuccessRate: successRate,
			AvgDuration: avgDuration,
		}
	}

	return summary
}

// GetRecentExtractions returns the N most recent extraction records.
// If limit exceeds available records, all available are returned.
// This implements part of the Collector interface.
func (s *Store) GetRecentExtractions(limit int) []ExtractionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || s.size == 0 {
		return []ExtractionRecord{}
	}

	if limit > s.size {
		limit = s.size
	}

	// Work backwards from head to get most recent first
	result := make([]ExtractionRecord, limit)
	for i := 0; i < limit; i++ {
		idx := (s.head - 1 - i + s.cap) % s.cap
		result[i] = s.history[idx]
	}

	return result
}

// GetFieldHitRates returns per-field population rates across the run,
// sorted by field name for stable output.
// This implements part of the Collector interface.
func (s *Store) GetFieldHitRates() []FieldHitRate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields := make([]string, 0, len(s.fieldSeen))
	for field := range s.fieldSeen {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	result := make([]FieldHitRate, 0, len(fields))
	for _, field := range fields {
		seen := s.fieldSeen[field]
		found := s.fieldFound[field]

		var rate float64
		if seen > 0 {
			rate = float64(found) / float64(seen) * 100
		}

		result = append(result, FieldHitRate{
			Field: field,
			Seen:  seen,
			Found: found,
			Rate:  rate,
		})
	}

	return result
}

// GetSystemStatus returns the overall run health status.
// This implements part of the Collector interface.
func (s *Store) GetSystemStatus() SystemStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// A run where everything failed reports error health
	health := SystemHealthRunning
	if s.totalProcessed > 0 && s.totalSuccess == 0 {
		health = SystemHealthError
	}

	return SystemStatus{
		Health:    health,
		Version:   s.version,
		Uptime:    time.Since(s.startTime),
		LastCheck: time.Now(),
	}
}

// Verify Store implements Collector interface
var _ Collector = (*Store)(nil)
