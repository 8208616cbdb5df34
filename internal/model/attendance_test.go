package model

import "testing"

func TestEngagementPercent(t *testing.T) {
	tests := []struct {
		name                 string
		present, late, total int
		want                 int
	}{
		{"empty roster", 0, 0, 0, 0},
		{"all present", 10, 0, 10, 100},
		{"late counts as engaged", 5, 5, 10, 100},
		{"all absent", 0, 0, 10, 0},
		{"rounds up", 2, 0, 3, 67},
		{"rounds down", 1, 0, 3, 33},
		{"half up", 1, 0, 2, 50},
		{"negative total guarded", 1, 1, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EngagementPercent(tt.present, tt.late, tt.total); got != tt.want {
				t.Errorf("EngagementPercent(%d, %d, %d) = %d, want %d", tt.present, tt.late, tt.total, got, tt.want)
			}
		})
	}
}

func TestAttendanceStatusValid(t *testing.T) {
	for _, s := range []AttendanceStatus{AttendancePresent, AttendanceAbsent, AttendanceLate} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []AttendanceStatus{"", "present", "EXCUSED"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}
