package terminal

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		v, limit, least int
		want            int
	}{
		{40, 80, 10, 40},
		{120, 80, 10, 80},
		{40, 5, 10, 10},
		{3, 80, 10, 10},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.limit, tt.least); got != tt.want {
			t.Errorf("clamp(%d, %d, %d) = %d, want %d", tt.v, tt.limit, tt.least, got, tt.want)
		}
	}
}

func TestFitMapHonorsMinimum(t *testing.T) {
	w, h := FitMap(1, 1, 0, 12)
	if w != 12 || h != 12 {
		t.Errorf("FitMap(1, 1, 0, 12) = %d, %d, want 12, 12", w, h)
	}
}
