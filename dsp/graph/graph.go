// Package graph composes processors into signal graphs with two operators:
// Sequential feeds one processor's outputs into another's inputs, and
// Parallel runs two processors side by side on the same input, concatenating
// their output channels. Composites are processors themselves, so graphs
// nest to arbitrary trees. Channel counts are validated at construction;
// there is no runtime routing.
package graph

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fit/dsp/core"
	"github.com/cwbudde/algo-fit/dsp/proc"
)

// ErrChannelMismatch is returned when composed processors disagree on
// channel counts.
var ErrChannelMismatch = errors.New("channel count mismatch")

// sequential feeds every output channel of a into the corresponding input
// channel of b. It owns both children.
type sequential struct {
	a, b proc.Processor
	mid  [][]float64
}

// Sequential composes a into b. Construction fails unless a's output channel
// count equals b's input channel count.
func Sequential(a, b proc.Processor) (proc.Processor, error) {
	if a.Outputs() != b.Inputs() {
		return nil, fmt.Errorf("graph: sequential: %d outputs feeding %d inputs: %w",
			a.Outputs(), b.Inputs(), ErrChannelMismatch)
	}
	return &sequential{a: a, b: b, mid: make([][]float64, a.Outputs())}, nil
}

func (s *sequential) Clone() proc.Processor {
	c, err := Sequential(s.a.Clone(), s.b.Clone())
	if err != nil {
		// Children were validated at construction; clones keep their shape.
		panic(err)
	}
	return c
}

func (s *sequential) Inputs() int  { return s.a.Inputs() }
func (s *sequential) Outputs() int { return s.b.Outputs() }

func (s *sequential) Process(in, out [][]float64) {
	frames := 0
	if len(out) > 0 {
		frames = len(out[0])
	} else if len(in) > 0 {
		frames = len(in[0])
	}
	for i := range s.mid {
		s.mid[i] = core.EnsureLen(s.mid[i], frames)
	}
	s.a.Process(in, s.mid)
	s.b.Process(s.mid, out)
}

func (s *sequential) ParamAddresses() []string {
	return mergeAddresses(s.a, s.b)
}

func (s *sequential) ParamValue(addr string) (float64, error) {
	return childParamValue(addr, s.a, s.b)
}

func (s *sequential) SetParamValue(addr string, v float64) error {
	return setChildParamValue(addr, v, s.a, s.b)
}

// parallel feeds the same input channels to both children and concatenates
// their output channels, a's outputs first.
type parallel struct {
	a, b proc.Processor
}

// Parallel composes a and b side by side. The composite consumes the wider
// of the two input channel sets; a child with fewer inputs sees a prefix of
// the shared input.
func Parallel(a, b proc.Processor) (proc.Processor, error) {
	return &parallel{a: a, b: b}, nil
}

func (p *parallel) Clone() proc.Processor {
	c, err := Parallel(p.a.Clone(), p.b.Clone())
	if err != nil {
		panic(err)
	}
	return c
}

func (p *parallel) Inputs() int {
	if p.a.Inputs() > p.b.Inputs() {
		return p.a.Inputs()
	}
	return p.b.Inputs()
}

func (p *parallel) Outputs() int { return p.a.Outputs() + p.b.Outputs() }

func (p *parallel) Process(in, out [][]float64) {
	p.a.Process(in[:p.a.Inputs()], out[:p.a.Outputs()])
	p.b.Process(in[:p.b.Inputs()], out[p.a.Outputs():])
}

func (p *parallel) ParamAddresses() []string {
	return mergeAddresses(p.a, p.b)
}

func (p *parallel) ParamValue(addr string) (float64, error) {
	return childParamValue(addr, p.a, p.b)
}

func (p *parallel) SetParamValue(addr string, v float64) error {
	return setChildParamValue(addr, v, p.a, p.b)
}

// mergeAddresses concatenates child addresses in child order, dropping
// duplicates after their first occurrence. Branches built from the same
// program description expose the same addresses; they remain one logical
// parameter.
func mergeAddresses(children ...proc.Processor) []string {
	var addrs []string
	seen := make(map[string]struct{})
	for _, c := range children {
		for _, a := range c.ParamAddresses() {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			addrs = append(addrs, a)
		}
	}
	return addrs
}

func childParamValue(addr string, children ...proc.Processor) (float64, error) {
	for _, c := range children {
		if v, err := c.ParamValue(addr); err == nil {
			return v, nil
		}
	}
	return 0, fmt.Errorf("graph: %q: %w", addr, proc.ErrUnknownParam)
}

// setChildParamValue sets addr on every child that exposes it, so one update
// reaches both an adjustable processor and its differentiated twin.
func setChildParamValue(addr string, v float64, children ...proc.Processor) error {
	found := false
	for _, c := range children {
		if err := c.SetParamValue(addr, v); err == nil {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("graph: %q: %w", addr, proc.ErrUnknownParam)
	}
	return nil
}
