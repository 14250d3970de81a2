package proc

import (
	"math"
	"math/rand"
)

// SineOsc is a stateful sine oscillator generator (0 in, 1 out). The phase
// advances once per rendered frame, so independent branches of a graph must
// each own their own clone.
type SineOsc struct {
	noParams
	freqHz     float64
	amplitude  float64
	sampleRate float64
	phase      float64
}

// NewSineOsc creates a sine generator at the given frequency and amplitude.
func NewSineOsc(freqHz, amplitude, sampleRate float64) *SineOsc {
	return &SineOsc{freqHz: freqHz, amplitude: amplitude, sampleRate: sampleRate}
}

// Clone returns an independent copy, including the current phase.
func (o *SineOsc) Clone() Processor {
	c := *o
	return &c
}

func (o *SineOsc) Inputs() int  { return 0 }
func (o *SineOsc) Outputs() int { return 1 }

func (o *SineOsc) Process(_, out [][]float64) {
	step := 2 * math.Pi * o.freqHz / o.sampleRate
	dst := out[0]
	for i := range dst {
		dst[i] = o.amplitude * math.Sin(o.phase)
		o.phase += step
		if o.phase >= 2*math.Pi {
			o.phase -= 2 * math.Pi
		}
	}
}

// Noise is a deterministic white-noise generator (0 in, 1 out). Cloning
// duplicates the generator state so clones emit identical streams.
type Noise struct {
	noParams
	amplitude float64
	seed      int64
	rng       *rand.Rand
	drawn     int64
}

// NewNoise creates a seeded white-noise generator in [-amplitude, amplitude].
func NewNoise(amplitude float64, seed int64) *Noise {
	return &Noise{amplitude: amplitude, seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Clone replays the source stream up to the current position so the copy
// continues from the same point independently.
func (n *Noise) Clone() Processor {
	c := &Noise{amplitude: n.amplitude, seed: n.seed, rng: rand.New(rand.NewSource(n.seed)), drawn: n.drawn}
	for i := int64(0); i < n.drawn; i++ {
		c.rng.Float64()
	}
	return c
}

func (n *Noise) Inputs() int  { return 0 }
func (n *Noise) Outputs() int { return 1 }

func (n *Noise) Process(_, out [][]float64) {
	dst := out[0]
	for i := range dst {
		dst[i] = (n.rng.Float64()*2 - 1) * n.amplitude
		n.drawn++
	}
}

// Constant emits a fixed value on one channel (0 in, 1 out).
type Constant struct {
	noParams
	value float64
}

// NewConstant creates a constant-signal generator.
func NewConstant(value float64) *Constant {
	return &Constant{value: value}
}

func (c *Constant) Clone() Processor {
	cp := *c
	return &cp
}

func (c *Constant) Inputs() int  { return 0 }
func (c *Constant) Outputs() int { return 1 }

func (c *Constant) Process(_, out [][]float64) {
	dst := out[0]
	for i := range dst {
		dst[i] = c.value
	}
}

// NewSilence creates a generator that emits zeros.
func NewSilence() *Constant {
	return &Constant{}
}
