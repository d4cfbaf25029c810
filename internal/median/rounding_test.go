package median

import "testing"

func TestHalfUp(t *testing.T) {
	tests := []struct {
		sum, n int64
		want   int64
	}{
		{150, 2, 75},
		{3, 2, 2},
		{5, 2, 3},
		{4, 2, 2},
		{0, 2, 0},
		{10, 3, 3},
		{11, 3, 4},
		{7, 1, 7},
	}

	for _, tt := range tests {
		if got := HalfUp(tt.sum, tt.n); got != tt.want {
			t.Errorf("HalfUp(%d, %d) = %d, want %d", tt.sum, tt.n, got, tt.want)
		}
	}
}

func TestHalfEven(t *testing.T) {
	tests := []struct {
		sum, n int64
		want   int64
	}{
		{300, 2, 150},
		{3, 2, 2},
		{5, 2, 2},
		{7, 2, 4},
		{1, 2, 0},
		{10, 3, 3},
		{11, 3, 4},
	}

	for _, tt := range tests {
		if got := HalfEven(tt.sum, tt.n); got != tt.want {
			t.Errorf("HalfEven(%d, %d) = %d, want %d", tt.sum, tt.n, got, tt.want)
		}
	}
}

func TestRoundingByName(t *testing.T) {
	if r, ok := RoundingByName("half_up"); !ok || r(5, 2) != 3 {
		t.Error("half_up did not resolve to HalfUp")
	}
	if r, ok := RoundingByName("half_even"); !ok || r(5, 2) != 2 {
		t.Error("half_even did not resolve to HalfEven")
	}
	if _, ok := RoundingByName("bankers"); ok {
		t.Error("unknown mode resolved")
	}
}

func TestMidpoint_AtMaxAmount(t *testing.T) {
	tests := []struct {
		a, b int64
		want int64
	}{
		{MaxAmount, MaxAmount, MaxAmount},
		{MaxAmount - 1, MaxAmount, MaxAmount},
		{0, MaxAmount, MaxAmount / 2},
	}

	for _, tt := range tests {
		if got := midpoint(tt.a, tt.b); got != tt.want {
			t.Errorf("midpoint(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
