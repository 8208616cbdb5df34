package service

import (
	"testing"
	"time"
)

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"dd-mm-yyyy", "15-08-2024", time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)},
		{"yyyy-mm-dd", "2024-08-15", time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2024-08-15T10:30:00Z", time.Date(2024, time.August, 15, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFlexibleDate(tt.raw); !got.Equal(tt.want) {
				t.Errorf("parseFlexibleDate(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseFlexibleDateFallback(t *testing.T) {
	before := time.Now()
	got := parseFlexibleDate("not-a-date")
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Errorf("parseFlexibleDate fallback = %v, want a time between %v and %v", got, before, after)
	}
}
