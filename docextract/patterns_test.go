package docextract

import (
	"testing"
	"time"
)

func TestFirstMatch(t *testing.T) {
	table := []fieldPattern{
		pat(`(?i)client:\s*(\w+)`),
		pat(`(?i)customer:\s*(\w+)`),
	}

	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{name: "first pattern", text: "Client: Acme", want: "Acme", ok: true},
		{name: "second pattern", text: "Customer: Brandco", want: "Brandco", ok: true},
		{
			name: "earlier pattern wins even when both match",
			text: "Customer: Second\nClient: First",
			want: "First",
			ok:   true,
		},
		{name: "no match", text: "nothing labeled", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstMatch(tt.text, table)
			if ok != tt.ok {
				t.Fatalf("firstMatch ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("firstMatch = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFirstDateStopsAtFirstMatchingPattern(t *testing.T) {
	// The first pattern matches an unparseable span; the second would
	// match a valid date. The scan must not fall through.
	table := []fieldPattern{
		pat(`(?i)due:\s*(\w+)`),
		pat(`(\d{2}/\d{2}/\d{4})`),
	}
	text := "Due: soon\n03/01/2025"

	if _, ok := firstDate(text, table); ok {
		t.Error("firstDate fell through to a later pattern after an unparseable match")
	}
}

func TestFirstDate(t *testing.T) {
	table := []fieldPattern{pat(`(?i)due:\s*([0-9/]+)`)}

	got, ok := firstDate("Due: 03/01/2025", table)
	if !ok {
		t.Fatal("firstDate failed")
	}
	if want := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("firstDate = %v, want %v", got, want)
	}
}

func TestFirstAmount(t *testing.T) {
	table := []fieldPattern{pat(`(?i)total:\s*\$?([0-9,.]+)`)}

	got, ok := firstAmount("Total: $1,963.00", table)
	if !ok {
		t.Fatal("firstAmount failed")
	}
	if got != 1963.00 {
		t.Errorf("firstAmount = %v, want 1963.00", got)
	}

	if _, ok := firstAmount("Total: pending", table); ok {
		t.Error("firstAmount succeeded on non-numeric span")
	}
}

func TestFirstInt(t *testing.T) {
	table := []fieldPattern{pat(`(?i)count:\s*(\w+)`)}

	got, ok := firstInt("Count: 7", table)
	if !ok || got != 7 {
		t.Errorf("firstInt = %d, %v, want 7, true", got, ok)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{name: "plain digits", input: "3", want: 3, ok: true},
		{name: "trailing junk", input: "3x", want: 3, ok: true},
		{name: "surrounding whitespace", input: " 12 ", want: 12, ok: true},
		{name: "zero is not a count", input: "0", ok: false},
		{name: "zero with trailing junk", input: "0x", ok: false},
		{name: "no digits", input: "three", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseCount(tt.input)
			if ok != tt.ok {
				t.Fatalf("parseCount(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("parseCount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
