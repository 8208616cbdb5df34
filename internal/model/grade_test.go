package model

import "testing"

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A+"},
		{90, "A+"},
		{89.99, "A"},
		{80, "A"},
		{79.5, "B"},
		{70, "B"},
		{69, "C"},
		{60, "C"},
		{59.9, "D"},
		{50, "D"},
		{49.99, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		if got := LetterGrade(tt.score); got != tt.want {
			t.Errorf("LetterGrade(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
