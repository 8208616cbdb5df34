package model

import "testing"

func TestUtilizationPercent(t *testing.T) {
	tests := []struct {
		name               string
		enrolled, capacity int
		want               int
	}{
		{"zero capacity", 10, 0, 0},
		{"negative capacity", 10, -5, 0},
		{"empty course", 0, 60, 0},
		{"full course", 60, 60, 100},
		{"over capacity", 66, 60, 110},
		{"rounds", 55, 60, 92},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UtilizationPercent(tt.enrolled, tt.capacity); got != tt.want {
				t.Errorf("UtilizationPercent(%d, %d) = %d, want %d", tt.enrolled, tt.capacity, got, tt.want)
			}
		})
	}
}

func TestTierForUtilization(t *testing.T) {
	tests := []struct {
		percent int
		want    UtilizationTier
	}{
		{100, TierCritical},
		{90, TierCritical},
		{89, TierWarning},
		{70, TierWarning},
		{69, TierNominal},
		{0, TierNominal},
	}
	for _, tt := range tests {
		if got := TierForUtilization(tt.percent); got != tt.want {
			t.Errorf("TierForUtilization(%d) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}
