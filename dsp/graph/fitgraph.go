package graph

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fit/dsp/proc"
)

// Output channel layout of a fitting graph. Derivative channels follow the
// first two, one per learnable parameter in discovery order.
const (
	ChanGroundTruth = 0
	ChanLearned     = 1
	ChanDerivative  = 2
)

// ErrDerivativeCount is returned when the differentiated processor's output
// channel count does not match the adjustable processor's parameter count.
var ErrDerivativeCount = errors.New("derivative channel count mismatch")

// ErrDerivativeOrder is returned when the differentiated processor reports
// per-channel parameter addresses that disagree with the adjustable
// processor's discovery order.
var ErrDerivativeOrder = errors.New("derivative channel order mismatch")

// FitGraph is the composed training graph. Channel 0 carries the ground
// truth branch, channel 1 the adjustable branch, and channels [2, 2+P) one
// derivative per learnable parameter.
type FitGraph struct {
	proc.Processor

	learnable  proc.Processor
	adjustable proc.Processor
	addrs      []string
}

// NewFitGraph builds the training graph from the four leaf processors. Each
// branch receives its own clone of the input generator: generators carry
// state (oscillator phase, noise position) that must advance identically and
// independently down every branch, and a shared instance consumed three
// times per block would corrupt that state.
//
// The differentiated processor must expose one output channel per learnable
// parameter of the adjustable processor. When it also reports which address
// each channel differentiates, the reported order must match the adjustable
// processor's discovery order.
func NewFitGraph(input, groundTruth, adjustable, differentiated proc.Processor) (*FitGraph, error) {
	addrs := adjustable.ParamAddresses()

	if got := differentiated.Outputs(); got != len(addrs) {
		return nil, fmt.Errorf("graph: %d learnable parameters but %d derivative channels: %w",
			len(addrs), got, ErrDerivativeCount)
	}
	if layout, ok := differentiated.(proc.DerivativeLayout); ok {
		derivAddrs := layout.DerivativeAddresses()
		if len(derivAddrs) != len(addrs) {
			return nil, fmt.Errorf("graph: %d learnable parameters but %d tagged derivative channels: %w",
				len(addrs), len(derivAddrs), ErrDerivativeCount)
		}
		for i, a := range addrs {
			if derivAddrs[i] != a {
				return nil, fmt.Errorf("graph: derivative channel %d differentiates %q, parameter %d is %q: %w",
					i, derivAddrs[i], i, a, ErrDerivativeOrder)
			}
		}
	}

	branchGT, err := Sequential(input.Clone(), groundTruth)
	if err != nil {
		return nil, fmt.Errorf("graph: ground truth branch: %w", err)
	}
	branchAdj, err := Sequential(input.Clone(), adjustable)
	if err != nil {
		return nil, fmt.Errorf("graph: adjustable branch: %w", err)
	}
	branchGrad, err := Sequential(input.Clone(), differentiated)
	if err != nil {
		return nil, fmt.Errorf("graph: derivative branch: %w", err)
	}

	tail, err := Parallel(branchAdj, branchGrad)
	if err != nil {
		return nil, err
	}
	root, err := Parallel(branchGT, tail)
	if err != nil {
		return nil, err
	}

	return &FitGraph{Processor: root, learnable: tail, adjustable: adjustable, addrs: addrs}, nil
}

// SetParamValue routes a parameter update to the adjustable and derivative
// branches only. The ground truth branch may be built from the same
// processor type and then shares the address; it must never move during a
// fit.
func (g *FitGraph) SetParamValue(addr string, v float64) error {
	return g.learnable.SetParamValue(addr, v)
}

// ParamValue reads from the same subtree SetParamValue writes to.
func (g *FitGraph) ParamValue(addr string) (float64, error) {
	return g.learnable.ParamValue(addr)
}

// Adjustable returns the live adjustable leaf inside the graph.
func (g *FitGraph) Adjustable() proc.Processor { return g.adjustable }

// LearnableAddresses returns the adjustable processor's parameter addresses
// in discovery order, matching the derivative channel order.
func (g *FitGraph) LearnableAddresses() []string {
	return append([]string(nil), g.addrs...)
}
