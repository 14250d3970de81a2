package proc

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fit/dsp/core"
)

// finiteDiff renders p twice with the single parameter nudged by ±h and
// returns the central difference per frame.
func finiteDiff(t *testing.T, p Processor, addr string, in []float64, h float64) []float64 {
	t.Helper()

	v, err := p.ParamValue(addr)
	if err != nil {
		t.Fatalf("ParamValue() error = %v", err)
	}

	up := p.Clone()
	if err := up.SetParamValue(addr, v+h); err != nil {
		t.Fatalf("SetParamValue() error = %v", err)
	}
	down := p.Clone()
	if err := down.SetParamValue(addr, v-h); err != nil {
		t.Fatalf("SetParamValue() error = %v", err)
	}

	a := render1(t, up, in)
	b := render1(t, down, in)

	diff := make([]float64, len(in))
	for i := range diff {
		diff[i] = (a[i] - b[i]) / (2 * h)
	}
	return diff
}

func checkDerivative(t *testing.T, p Processor, addr string, in []float64) {
	t.Helper()

	d, ok := p.(Differentiable)
	if !ok {
		t.Fatal("processor is not differentiable")
	}
	grad, err := d.Differentiate()
	if err != nil {
		t.Fatalf("Differentiate() error = %v", err)
	}
	if grad.Outputs() != len(p.ParamAddresses()) {
		t.Fatalf("derivative outputs = %d, want %d", grad.Outputs(), len(p.ParamAddresses()))
	}
	if layout, ok := grad.(DerivativeLayout); ok {
		got := layout.DerivativeAddresses()
		if len(got) != 1 || got[0] != addr {
			t.Fatalf("derivative addresses = %v, want [%s]", got, addr)
		}
	}

	analytic := render1(t, grad, in)
	numeric := finiteDiff(t, p, addr, in, 1e-6)

	for i := range analytic {
		if !core.NearlyEqual(analytic[i], numeric[i], 1e-5) {
			t.Fatalf("frame %d: analytic %v, finite difference %v", i, analytic[i], numeric[i])
		}
	}
}

func testInput(n int) []float64 {
	in := make([]float64, n)
	for i := range in {
		in[i] = math.Sin(0.37 * float64(i))
	}
	return in
}

func TestGainDerivative(t *testing.T) {
	checkDerivative(t, NewGain(0.7), GainLevelAddr, testInput(64))
}

func TestDCOffsetDerivative(t *testing.T) {
	checkDerivative(t, NewDCOffset(0.2), OffsetAddr, testInput(64))
}

func TestOnePoleDerivative(t *testing.T) {
	checkDerivative(t, NewOnePole(0.4), OnePoleCoeffAddr, testInput(64))
}

// The one-pole derivative recursion depends on the live coefficient; a
// parameter update must steer it.
func TestOnePoleDerivativeTracksParam(t *testing.T) {
	p := NewOnePole(0.4)
	d, err := p.Differentiate()
	if err != nil {
		t.Fatalf("Differentiate() error = %v", err)
	}

	if err := d.SetParamValue(OnePoleCoeffAddr, 0.8); err != nil {
		t.Fatalf("SetParamValue() error = %v", err)
	}
	if err := p.SetParamValue(OnePoleCoeffAddr, 0.8); err != nil {
		t.Fatalf("SetParamValue() error = %v", err)
	}

	in := testInput(64)
	analytic := render1(t, d, in)
	numeric := finiteDiff(t, p, OnePoleCoeffAddr, in, 1e-6)
	for i := range analytic {
		if !core.NearlyEqual(analytic[i], numeric[i], 1e-5) {
			t.Fatalf("frame %d: analytic %v, finite difference %v", i, analytic[i], numeric[i])
		}
	}
}
