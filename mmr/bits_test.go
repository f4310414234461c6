package mmr

import (
	"testing"
)

func TestPeakIndex(t *testing.T) {
	tests := []struct {
		name   string
		size   uint64
		height int
		want   int
		peak   bool
	}{
		// 11 = 0b1011: peaks at heights 3, 1 and 0
		{"11 h3", 11, 3, 0, true},
		{"11 h2", 11, 2, 1, false},
		{"11 h1", 11, 1, 1, true},
		{"11 h0", 11, 0, 2, true},
		{"8 h3", 8, 3, 0, true},
		{"8 h0", 8, 0, 1, false},
		{"7 h0", 7, 0, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PeakIndex(tt.size, tt.height); got != tt.want {
				t.Errorf("PeakIndex() = %v, want %v", got, tt.want)
			}
			if got := IsPeakHeight(tt.size, tt.height); got != tt.peak {
				t.Errorf("IsPeakHeight() = %v, want %v", got, tt.peak)
			}
		})
	}
}

func TestLayerAndPeakCount(t *testing.T) {
	tests := []struct {
		size          uint64
		layers, peaks int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{2, 2, 1},
		{3, 2, 2},
		{5, 3, 2},
		{17, 5, 2},
		{31, 5, 5},
	}
	for _, tt := range tests {
		if got := LayerCount(tt.size); got != tt.layers {
			t.Errorf("LayerCount(%d) = %v, want %v", tt.size, got, tt.layers)
		}
		if got := PeakCount(tt.size); got != tt.peaks {
			t.Errorf("PeakCount(%d) = %v, want %v", tt.size, got, tt.peaks)
		}
	}
}
