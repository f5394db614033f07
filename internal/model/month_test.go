package model

import (
	"testing"
	"time"
)

func TestMonthOf(t *testing.T) {
	got := MonthOf(time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC))
	if got != "2025-03" {
		t.Errorf("MonthOf = %s, want 2025-03", got)
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"2025-03", true},
		{"2024-12", true},
		{"2025-3", false},
		{"2025-13", false},
		{"march", false},
		{"", false},
	}

	for _, tt := range tests {
		_, err := ParseMonth(tt.in)
		if (err == nil) != tt.valid {
			t.Errorf("ParseMonth(%q) err = %v, want valid=%v", tt.in, err, tt.valid)
		}
	}
}

func TestDays(t *testing.T) {
	tests := []struct {
		key  MonthKey
		want int
	}{
		{"2025-01", 31},
		{"2025-02", 28},
		{"2028-02", 29},
		{"2025-04", 30},
	}

	for _, tt := range tests {
		if got := tt.key.Days(); got != tt.want {
			t.Errorf("%s.Days() = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestContains(t *testing.T) {
	k := MonthKey("2025-03")
	if !k.Contains(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("first day should be contained")
	}
	if !k.Contains(time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC)) {
		t.Error("last day should be contained")
	}
	if k.Contains(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("next month should not be contained")
	}
}

func TestPrev(t *testing.T) {
	tests := []struct {
		key  MonthKey
		want MonthKey
	}{
		{"2025-03", "2025-02"},
		{"2025-01", "2024-12"},
	}

	for _, tt := range tests {
		if got := tt.key.Prev(); got != tt.want {
			t.Errorf("%s.Prev() = %s, want %s", tt.key, got, tt.want)
		}
	}
}
