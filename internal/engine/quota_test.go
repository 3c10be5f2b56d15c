package engine

import "testing"

func TestEstimateSearchUnits(t *testing.T) {
	tests := []struct {
		fetchTotal int
		want       int
	}{
		{1, 101},
		{50, 101},
		{100, 202},
		{120, 303},
		{500, 1010},
		{9999, 1010}, // clamped to the pipeline cap
	}
	for _, tt := range tests {
		if got := EstimateSearchUnits(tt.fetchTotal); got != tt.want {
			t.Errorf("EstimateSearchUnits(%d) = %d, want %d", tt.fetchTotal, got, tt.want)
		}
	}
}

func TestEstimateTrendingUnits(t *testing.T) {
	if got := EstimateTrendingUnits(200); got != 4 {
		t.Errorf("got %d, want 4", got)
	}
}

func TestEstimateBoardUnits(t *testing.T) {
	if got := EstimateBoardUnits(8); got != 8*303 {
		t.Errorf("got %d, want %d", got, 8*303)
	}
}
