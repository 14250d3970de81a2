package loss

import (
	"errors"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		want Function
	}{
		{"l1", L1},
		{"l2", L2},
		{"", L2},
	}
	for _, tc := range cases {
		f, err := Parse(tc.name)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tc.name, err)
		}
		if f != tc.want {
			t.Fatalf("Parse(%q) = %v, want %v", tc.name, f, tc.want)
		}
	}

	if _, err := Parse("huber"); !errors.Is(err, ErrUnknownFunction) {
		t.Fatalf("error = %v, want ErrUnknownFunction", err)
	}
}

func TestL2(t *testing.T) {
	for _, delta := range []float64{-2, -0.5, 0, 0.5, 3} {
		if got := L2.Loss(delta); got != delta*delta {
			t.Fatalf("L2.Loss(%v) = %v, want %v", delta, got, delta*delta)
		}
		for _, d := range []float64{-1, 0, 0.25, 2} {
			if got := L2.Gradient(delta, d); got != 2*d*delta {
				t.Fatalf("L2.Gradient(%v, %v) = %v, want %v", delta, d, got, 2*d*delta)
			}
		}
	}
}

func TestL1(t *testing.T) {
	for _, delta := range []float64{-2, -0.5, 0.5, 3} {
		if got := L1.Loss(delta); got != math.Abs(delta) {
			t.Fatalf("L1.Loss(%v) = %v, want %v", delta, got, math.Abs(delta))
		}
		want := math.Copysign(1, delta)
		if got := L1.Gradient(delta, 1); got != want {
			t.Fatalf("L1.Gradient(%v, 1) = %v, want %v", delta, got, want)
		}
		if got := L1.Gradient(delta, -0.5); got != -0.5*want {
			t.Fatalf("L1.Gradient(%v, -0.5) = %v, want %v", delta, got, -0.5*want)
		}
	}
}

// At exact equality the L1 subgradient is indeterminate; zero keeps the
// parameter still for that sample, whatever the derivative.
func TestL1ZeroDelta(t *testing.T) {
	for _, d := range []float64{-100, -1, 0, 1e-9, 42} {
		if got := L1.Gradient(0, d); got != 0 {
			t.Fatalf("L1.Gradient(0, %v) = %v, want 0", d, got)
		}
	}
}
