package residual

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fit/fit/report"
)

// ErrEmpty is returned when a summary is requested before any frame was
// collected.
var ErrEmpty = errors.New("residual: no frames collected")

// minSpectrumLen is the smallest tail window worth analyzing; shorter runs
// report no dominant frequency.
const minSpectrumLen = 64

// Collector accumulates the per-frame residual of a fitting run.
type Collector struct {
	deltas []float64
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Begin implements the trace sink contract.
func (c *Collector) Begin([]string) error { return nil }

// Frame records one frame's residual.
func (c *Collector) Frame(f report.Frame) error {
	c.deltas = append(c.deltas, f.Learned-f.GroundTruth)
	return nil
}

// Close implements the trace sink contract.
func (c *Collector) Close() error { return nil }

// Frames returns the number of collected frames.
func (c *Collector) Frames() int { return len(c.deltas) }

// Summary describes the collected residual.
type Summary struct {
	Frames int
	RMS    float64
	Peak   float64

	// DominantHz is the frequency of the strongest non-DC bin in the tail
	// window, or 0 when the run was too short to analyze.
	DominantHz float64
}

// Summary reduces the collected residual. The sample rate converts the
// dominant spectrum bin into Hertz.
func (c *Collector) Summary(sampleRate float64) (Summary, error) {
	n := len(c.deltas)
	if n == 0 {
		return Summary{}, ErrEmpty
	}

	sq := make([]float64, n)
	vecmath.MulBlock(sq, c.deltas, c.deltas)

	sum := 0.0
	peak := 0.0
	for i, v := range sq {
		sum += v
		if a := math.Abs(c.deltas[i]); a > peak {
			peak = a
		}
	}

	s := Summary{
		Frames: n,
		RMS:    math.Sqrt(sum / float64(n)),
		Peak:   peak,
	}

	if sampleRate > 0 {
		hz, err := c.dominantFrequency(sampleRate)
		if err != nil {
			return Summary{}, err
		}
		s.DominantHz = hz
	}
	return s, nil
}

// dominantFrequency analyzes the largest power-of-two tail of the residual.
func (c *Collector) dominantFrequency(sampleRate float64) (float64, error) {
	fftSize := prevPowerOf2(len(c.deltas))
	if fftSize < minSpectrumLen {
		return 0, nil
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("residual: create FFT plan: %w", err)
	}

	tail := c.deltas[len(c.deltas)-fftSize:]
	in := make([]complex128, fftSize)
	for i, v := range tail {
		in[i] = complex(v, 0)
	}

	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, in); err != nil {
		return 0, fmt.Errorf("residual: forward FFT: %w", err)
	}

	half := fftSize / 2
	re := make([]float64, half)
	im := make([]float64, half)
	for i := 0; i < half; i++ {
		re[i] = real(freq[i])
		im[i] = imag(freq[i])
	}
	mag := make([]float64, half)
	vecmath.Magnitude(mag, re, im)

	maxBin := 0
	maxMag := 0.0
	for i := 1; i < half; i++ {
		if mag[i] > maxMag {
			maxMag = mag[i]
			maxBin = i
		}
	}
	if maxBin == 0 {
		return 0, nil
	}
	return float64(maxBin) * sampleRate / float64(fftSize), nil
}

func prevPowerOf2(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}
