// Package render drives a composed processor in fixed-size blocks, standing
// in for a real audio driver. It owns the per-channel output buffers and
// feeds silence to any open input channels.
package render

import (
	"errors"

	"github.com/cwbudde/algo-fit/dsp/core"
	"github.com/cwbudde/algo-fit/dsp/proc"
)

// ErrNoOutputs is returned when the rendered processor has no output
// channels.
var ErrNoOutputs = errors.New("render: processor has no output channels")

// Renderer pulls blocks of audio through a processor. Output buffers are
// reused across Render calls; their contents are valid until the next call.
type Renderer struct {
	p   proc.Processor
	cfg core.ProcessorConfig
	in  [][]float64
	out [][]float64
}

// New creates a renderer for p with the given options.
func New(p proc.Processor, opts ...core.ProcessorOption) (*Renderer, error) {
	if p.Outputs() == 0 {
		return nil, ErrNoOutputs
	}

	cfg := core.ApplyProcessorOptions(opts...)

	r := &Renderer{
		p:   p,
		cfg: cfg,
		in:  make([][]float64, p.Inputs()),
		out: make([][]float64, p.Outputs()),
	}
	for i := range r.in {
		r.in[i] = make([]float64, cfg.BlockSize)
	}
	for i := range r.out {
		r.out[i] = make([]float64, cfg.BlockSize)
	}
	return r, nil
}

// Render advances the processor by one block.
func (r *Renderer) Render() {
	for _, ch := range r.in {
		core.Zero(ch)
	}
	r.p.Process(r.in, r.out)
}

// Output returns the per-channel buffers filled by the last Render call.
func (r *Renderer) Output() [][]float64 { return r.out }

// BlockSize returns the number of frames per rendered block.
func (r *Renderer) BlockSize() int { return r.cfg.BlockSize }

// SampleRate returns the configured sample rate.
func (r *Renderer) SampleRate() float64 { return r.cfg.SampleRate }
