package docextract

import "testing"

func TestCountDeliverables(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
		ok   bool
	}{
		{
			name: "count before term",
			text: "Please deliver 3 videos by Friday",
			want: 3,
			ok:   true,
		},
		{
			name: "labeled count after term",
			text: "Videos: 4",
			want: 4,
			ok:   true,
		},
		{
			name: "multiplier form",
			text: "video x 2 plus revisions",
			want: 2,
			ok:   true,
		},
		{
			name: "reels",
			text: "2 reels and a photo set",
			want: 2,
			ok:   true,
		},
		{
			name: "first pattern wins over later mentions",
			text: "2 reels and 3 videos",
			want: 2,
			ok:   true,
		},
		{
			name: "proximity fallback",
			text: "content x 5",
			want: 5,
			ok:   true,
		},
		{
			name: "stated zero is not a count",
			text: "Deliverables: 0 videos this period",
			ok:   false,
		},
		{
			name: "zero skipped in favor of a later real count",
			text: "0 videos carried over; deliver 3 videos this month",
			want: 3,
			ok:   true,
		},
		{
			name: "term without any number",
			text: "no deliverables mentioned here",
			ok:   false,
		},
		{
			name: "number without any term",
			text: "invoice 42 attached",
			ok:   false,
		},
		{
			name: "empty text",
			text: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CountDeliverables(tt.text)
			if ok != tt.ok {
				t.Fatalf("CountDeliverables(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("CountDeliverables(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func BenchmarkCountDeliverables(b *testing.B) {
	text := "The creator will deliver 3 videos and 2 reels for the campaign"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CountDeliverables(text)
	}
}
