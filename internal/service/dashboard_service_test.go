package service

import (
	"testing"
	"time"
)

func TestWeekdaysSince(t *testing.T) {
	// 2024-08-05 is a Monday.
	monday := time.Date(2024, time.August, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same day", monday, monday, 0},
		{"one weekday", monday, monday.AddDate(0, 0, 1), 1},
		{"full work week", monday, monday.AddDate(0, 0, 5), 4}, // Tue..Fri, Sat excluded
		{"spans weekend", monday, monday.AddDate(0, 0, 7), 5},  // Tue..Fri + next Mon
		{"to before from", monday, monday.AddDate(0, 0, -3), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := weekdaysSince(tt.from, tt.to); got != tt.want {
				t.Errorf("weekdaysSince = %d, want %d", got, tt.want)
			}
		})
	}
}
