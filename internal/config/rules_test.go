package config

import "testing"

func TestCategorize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Categories.Rules = map[string]string{
		"whole foods": "groceries",
		"foods":       "dining",
		"shell":       "fuel",
		"NETFLIX":     "subscriptions",
	}

	tests := []struct {
		merchant string
		want     string
	}{
		{"WHOLE FOODS MARKET #123", "groceries"}, // longest pattern wins over "foods"
		{"Shell Oil 57442", "fuel"},
		{"netflix.com", "subscriptions"},
		{"Corner Bakery", Uncategorized},
		{"", Uncategorized},
	}

	for _, tt := range tests {
		if got := cfg.Categorize(tt.merchant); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.merchant, got, tt.want)
		}
	}
}

func TestCategorize_NoRules(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Categorize("Anything"); got != Uncategorized {
		t.Errorf("Categorize with no rules = %q, want %q", got, Uncategorized)
	}
}
