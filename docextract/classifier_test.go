package docextract

import "testing"

func TestIsUGCContract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "ugc term plus contract term",
			text: "This UGC agreement covers content production",
			want: true,
		},
		{
			name: "influencer with contract vocabulary",
			text: "Influencer services contract between the parties",
			want: true,
		},
		{
			name: "ugc term alone is not enough",
			text: "influencer marketing overview",
			want: false,
		},
		{
			name: "contract term alone is not enough",
			text: "standard terms and conditions apply",
			want: false,
		},
		{
			name: "case insensitive",
			text: "USER-GENERATED CONTENT obligations of the artist",
			want: true,
		},
		{
			name: "empty text",
			text: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUGCContract(tt.text); got != tt.want {
				t.Errorf("IsUGCContract(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsCreatorInvoice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "invoice term plus creator term",
			text: "Invoice for video production services",
			want: true,
		},
		{
			name: "bill to with usage rights",
			text: "Bill to: Brand Co, includes usage rights",
			want: true,
		},
		{
			name: "invoice vocabulary alone is not enough",
			text: "invoice number 42, amount due on receipt",
			want: false,
		},
		{
			name: "creator vocabulary alone is not enough",
			text: "three videos and two photos delivered",
			want: false,
		},
		{
			name: "empty text",
			text: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCreatorInvoice(tt.text); got != tt.want {
				t.Errorf("IsCreatorInvoice(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestContainsAny(t *testing.T) {
	terms := []string{"alpha", "beta"}

	if !containsAny("has beta inside", terms) {
		t.Error("containsAny missed a present term")
	}
	if containsAny("gamma delta", terms) {
		t.Error("containsAny matched absent terms")
	}
	if containsAny("anything", nil) {
		t.Error("containsAny matched against empty term list")
	}
}
