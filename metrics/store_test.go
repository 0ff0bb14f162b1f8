package metrics

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func successRecord(id, docType string, duration time.Duration) ExtractionRecord {
	return ExtractionRecord{
		ID:       id,
		File:     id + ".pdf",
		DocType:  docType,
		Status:   StatusSuccess,
		Duration: duration,
	}
}

func TestStoreRecordExtraction(t *testing.T) {
	store := NewStore(DefaultStoreConfig(), time.Now())

	store.RecordExtraction(successRecord("a", "Invoice", 10*time.Millisecond))
	store.RecordExtraction(successRecord("b", "Contract", 20*time.Millisecond))
	store.RecordExtraction(ExtractionRecord{
		ID:       "c",
		DocType:  "Invoice",
		Status:   StatusError,
		ErrorMsg: "malformed PDF",
	})

	summary := store.GetExtractionMetrics()
	if summary.TotalProcessed != 3 {
		t.Errorf("TotalProcessed = %d, want 3", summary.TotalProcessed)
	}
	if summary.TotalSuccess != 2 {
		t.Errorf("TotalSuccess = %d, want 2", summary.TotalSuccess)
	}
	if summary.TotalErrors != 1 {
		t.Errorf("TotalErrors = %d, want 1", summary.TotalErrors)
	}

	invoice, ok := summary.ByType["Invoice"]
	if !ok {
		t.Fatal("missing Invoice type metrics")
	}
	if invoice.Count != 2 {
		t.Errorf("Invoice count = %d, want 2", invoice.Count)
	}
	if invoice.SuccessRate != 50 {
		t.Errorf("Invoice success rate = %v, want 50", invoice.SuccessRate)
	}

	contract, ok := summary.ByType["Contract"]
	if !ok {
		t.Fatal("missing Contract type metrics")
	}
	if contract.SuccessRate != 100 {
		t.Errorf("Contract success rate = %v, want 100", contract.SuccessRate)
	}
	if contract.AvgDuration != 20*time.Millisecond {
		t.Errorf("Contract avg duration = %v, want 20ms", contract.AvgDuration)
	}
}

func TestStoreGetRecentExtractions(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		records  int
		limit    int
		wantLen  int
		wantLast string // most recent ID expected at index 0
	}{
		{name: "fewer than limit", capacity: 10, records: 3, limit: 5, wantLen: 3, wantLast: "2"},
		{name: "exact limit", capacity: 10, records: 5, limit: 5, wantLen: 5, wantLast: "4"},
		{name: "buffer wrapped", capacity: 4, records: 10, limit: 4, wantLen: 4, wantLast: "9"},
		{name: "zero limit", capacity: 10, records: 3, limit: 0, wantLen: 0},
		{name: "empty store", capacity: 10, records: 0, limit: 5, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(StoreConfig{HistoryCapacity: tt.capacity}, time.Now())
			for i := 0; i < tt.records; i++ {
				store.RecordExtraction(successRecord(fmt.Sprintf("%d", i), "Invoice", 0))
			}

			got := store.GetRecentExtractions(tt.limit)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0].ID != tt.wantLast {
				t.Errorf("most recent ID = %q, want %q", got[0].ID, tt.wantLast)
			}
		})
	}
}

func TestStoreFieldHitRates(t *testing.T) {
	store := NewStore(DefaultStoreConfig(), time.Now())

	store.RecordExtraction(ExtractionRecord{
		ID: "a", DocType: "Invoice", Status: StatusSuccess,
		FieldsFound: map[string]bool{"clientName": true, "amount": true, "dueDate": false},
	})
	store.RecordExtraction(ExtractionRecord{
		ID: "b", DocType: "Invoice", Status: StatusSuccess,
		FieldsFound: map[string]bool{"clientName": true, "amount": false, "dueDate": false},
	})

	rates := store.GetFieldHitRates()
	if len(rates) != 3 {
		t.Fatalf("len(rates) = %d, want 3", len(rates))
	}

	// Sorted by field name: amount, clientName, dueDate
	want := []FieldHitRate{
		{Field: "amount", Seen: 2, Found: 1, Rate: 50},
		{Field: "clientName", Seen: 2, Found: 2, Rate: 100},
		{Field: "dueDate", Seen: 2, Found: 0, Rate: 0},
	}
	for i, w := range want {
		if rates[i] != w {
			t.Errorf("rates[%d] = %+v, want %+v", i, rates[i], w)
		}
	}
}

func TestStoreSystemStatus(t *testing.T) {
	t.Run("healthy run", func(t *testing.T) {
		store := NewStore(StoreConfig{Version: "1.2.3"}, time.Now().Add(-time.Minute))
		store.RecordExtraction(successRecord("a", "Invoice", 0))

		status := store.GetSystemStatus()
		if status.Health != SystemHealthRunning {
			t.Errorf("Health = %q, want %q", status.Health, SystemHealthRunning)
		}
		if status.Version != "1.2.3" {
			t.Errorf("Version = %q, want %q", status.Version, "1.2.3")
		}
		if status.Uptime < time.Minute {
			t.Errorf("Uptime = %v, want >= 1m", status.Uptime)
		}
	})

	t.Run("all failures reports error", func(t *testing.T) {
		store := NewStore(DefaultStoreConfig(), time.Now())
		store.RecordExtraction(ExtractionRecord{ID: "a", DocType: "Invoice", Status: StatusError})

		if status := store.GetSystemStatus(); status.Health != SystemHealthError {
			t.Errorf("Health = %q, want %q", status.Health, SystemHealthError)
		}
	})

	t.Run("empty run is running", func(t *testing.T) {
		store := NewStore(DefaultStoreConfig(), time.Now())
		if status := store.GetSystemStatus(); status.Health != SystemHealthRunning {
			t.Errorf("Health = %q, want %q", status.Health, SystemHealthRunning)
		}
	})
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore(StoreConfig{HistoryCapacity: 50}, time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				store.RecordExtraction(ExtractionRecord{
					ID:          fmt.Sprintf("%d-%d", n, j),
					DocType:     "Invoice",
					Status:      StatusSuccess,
					FieldsFound: map[string]bool{"amount": j%2 == 0},
				})
				store.GetExtractionMetrics()
				store.GetRecentExtractions(10)
				store.GetFieldHitRates()
			}
		}(i)
	}
	wg.Wait()

	summary := store.GetExtractionMetrics()
	if summary.TotalProcessed != 200 {
		t.Errorf("TotalProcessed = %d, want 200", summary.TotalProcessed)
	}
}
