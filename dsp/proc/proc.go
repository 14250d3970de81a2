// Package proc defines the processor contract shared by every node of a
// fitting graph, plus a small library of built-in processors.
//
// A Processor is an instantiated signal-processing program: it has a fixed
// number of input and output channels, a block-processing entry point, and a
// set of named scalar parameters addressed by hierarchical paths such as
// "/gain/level". Any value satisfying the interface can participate in graph
// composition and fitting, including synthetic test doubles.
package proc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownParam is returned when a parameter address does not exist.
var ErrUnknownParam = errors.New("unknown parameter address")

// Processor is an instantiated signal processor.
//
// Process fills out[c][i] for every output channel c and frame i from the
// per-channel input buffers in. All buffers across in and out share one frame
// count per call. Implementations may carry internal state across calls;
// Clone must duplicate that state so that the copy advances independently.
type Processor interface {
	// Clone returns an independent copy, including any internal state.
	Clone() Processor

	// Inputs returns the number of input channels.
	Inputs() int

	// Outputs returns the number of output channels.
	Outputs() int

	// Process renders one block. len(in) == Inputs(), len(out) == Outputs().
	Process(in, out [][]float64)

	// ParamAddresses returns the parameter addresses in a fixed discovery
	// order. The order is stable across calls and across clones.
	ParamAddresses() []string

	// ParamValue returns the current value of the parameter at addr.
	ParamValue(addr string) (float64, error)

	// SetParamValue sets the parameter at addr.
	SetParamValue(addr string, value float64) error
}

// Differentiable is implemented by processors that can produce their own
// differentiated variant: a processor with the same inputs whose output
// channels carry, per frame, the partial derivative of the original output
// with respect to each parameter, one channel per parameter in
// ParamAddresses order.
type Differentiable interface {
	Differentiate() (Processor, error)
}

// DerivativeLayout is optionally implemented by differentiated processors to
// report which parameter address each output channel differentiates. When
// available it lets graph construction verify channel order instead of
// trusting a bare count check.
type DerivativeLayout interface {
	DerivativeAddresses() []string
}

// ShortName returns the last segment of a hierarchical parameter address,
// used as a human-readable label in reports.
func ShortName(addr string) string {
	if i := strings.LastIndexByte(addr, '/'); i >= 0 {
		return addr[i+1:]
	}
	return addr
}

// paramTable is the common parameter storage for built-in processors.
type paramTable struct {
	addrs  []string
	values map[string]float64
}

// paramDef declares one parameter with its initial value.
type paramDef struct {
	addr  string
	value float64
}

func newParamTable(defs ...paramDef) paramTable {
	t := paramTable{values: make(map[string]float64, len(defs))}
	for _, d := range defs {
		t.addrs = append(t.addrs, d.addr)
		t.values[d.addr] = d.value
	}
	return t
}

func (t *paramTable) clone() paramTable {
	c := paramTable{
		addrs:  append([]string(nil), t.addrs...),
		values: make(map[string]float64, len(t.values)),
	}
	for k, v := range t.values {
		c.values[k] = v
	}
	return c
}

func (t *paramTable) ParamAddresses() []string {
	return append([]string(nil), t.addrs...)
}

func (t *paramTable) ParamValue(addr string) (float64, error) {
	v, ok := t.values[addr]
	if !ok {
		return 0, fmt.Errorf("proc: %q: %w", addr, ErrUnknownParam)
	}
	return v, nil
}

func (t *paramTable) SetParamValue(addr string, value float64) error {
	if _, ok := t.values[addr]; !ok {
		return fmt.Errorf("proc: %q: %w", addr, ErrUnknownParam)
	}
	t.values[addr] = value
	return nil
}

// noParams is embedded by processors that expose no parameters.
type noParams struct{}

func (noParams) ParamAddresses() []string { return nil }

func (noParams) ParamValue(addr string) (float64, error) {
	return 0, fmt.Errorf("proc: %q: %w", addr, ErrUnknownParam)
}

func (noParams) SetParamValue(addr string, _ float64) error {
	return fmt.Errorf("proc: %q: %w", addr, ErrUnknownParam)
}
