package proc

import (
	vecmath "github.com/cwbudde/algo-vecmath"
)

// GainLevelAddr is the parameter address of the gain level control.
const GainLevelAddr = "/gain/level"

// Gain multiplies its input by a learnable level (1 in, 1 out).
type Gain struct {
	params paramTable
}

// NewGain creates a gain stage with the given initial level.
func NewGain(level float64) *Gain {
	return &Gain{params: newParamTable(paramDef{GainLevelAddr, level})}
}

func (g *Gain) Clone() Processor {
	return &Gain{params: g.params.clone()}
}

func (g *Gain) Inputs() int  { return 1 }
func (g *Gain) Outputs() int { return 1 }

func (g *Gain) Process(in, out [][]float64) {
	level, _ := g.params.ParamValue(GainLevelAddr)
	vecmath.ScaleBlock(out[0], in[0], level)
}

func (g *Gain) ParamAddresses() []string { return g.params.ParamAddresses() }

func (g *Gain) ParamValue(addr string) (float64, error) { return g.params.ParamValue(addr) }

func (g *Gain) SetParamValue(addr string, v float64) error { return g.params.SetParamValue(addr, v) }

// Differentiate returns the derivative of the gain output with respect to
// the level: d(level*x)/d(level) = x, so the variant passes its input through.
func (g *Gain) Differentiate() (Processor, error) {
	return &gainGrad{}, nil
}

type gainGrad struct {
	noParams
}

func (d *gainGrad) Clone() Processor {
	c := *d
	return &c
}

func (d *gainGrad) Inputs() int  { return 1 }
func (d *gainGrad) Outputs() int { return 1 }

func (d *gainGrad) Process(in, out [][]float64) {
	copy(out[0], in[0])
}

func (d *gainGrad) DerivativeAddresses() []string { return []string{GainLevelAddr} }
