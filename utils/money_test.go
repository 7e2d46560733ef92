package utils

import "testing"

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{100, 100},
		{350.505, 350.51},
		{350.504, 350.5},
		{0.005, 0.01},
		{-1.005, -1},
		{799.999, 800},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
