package core

import "testing"

func TestNearlyEqual(t *testing.T) {
	cases := []struct {
		a, b, eps float64
		want      bool
	}{
		{1, 1, 1e-9, true},
		{0, 0, 1e-9, true},
		{1, 1 + 1e-10, 1e-9, true},
		{1, 1.1, 1e-3, false},
		{-2, 2, 1e-6, false},
		// Relative comparison for large magnitudes.
		{1e9, 1e9 + 1, 1e-6, true},
		{1e9, 1.1e9, 1e-6, false},
	}
	for _, tc := range cases {
		if got := NearlyEqual(tc.a, tc.b, tc.eps); got != tc.want {
			t.Fatalf("NearlyEqual(%v, %v, %v) = %v, want %v", tc.a, tc.b, tc.eps, got, tc.want)
		}
	}
}

func TestNearlyEqualDefaultEpsilon(t *testing.T) {
	// A non-positive eps falls back to the internal default.
	if !NearlyEqual(1, 1, 0) {
		t.Fatal("NearlyEqual(1, 1, 0) = false, want true")
	}
	if NearlyEqual(1, 2, -1) {
		t.Fatal("NearlyEqual(1, 2, -1) = true, want false")
	}
}
