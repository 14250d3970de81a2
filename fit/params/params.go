// Package params holds the table of learnable parameters discovered on an
// adjustable processor: per parameter the hierarchical address, the current
// value, and the gradient computed for the current frame.
package params

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fit/dsp/proc"
)

// ErrNoParams is returned when the adjustable processor exposes no
// learnable parameters.
var ErrNoParams = errors.New("params: adjustable processor has no parameters")

// Param is one learnable parameter.
type Param struct {
	Address  string
	Value    float64
	Gradient float64
}

// Store is the ordered table of learnable parameters. The order is the
// adjustable processor's discovery order and is never re-sorted; derivative
// channels of the fitting graph follow the same order. The store is mutated
// by a single goroutine.
type Store struct {
	params []Param
	index  map[string]int
	live   proc.Processor
}

// NewStore snapshots every parameter of adjustable, zeroing gradients.
// Updates are propagated to live, normally the composed graph, so that a new
// value reaches both the adjustable processor and its differentiated twin
// before the next render.
func NewStore(adjustable, live proc.Processor) (*Store, error) {
	addrs := adjustable.ParamAddresses()
	if len(addrs) == 0 {
		return nil, ErrNoParams
	}

	s := &Store{
		params: make([]Param, 0, len(addrs)),
		index:  make(map[string]int, len(addrs)),
		live:   live,
	}
	for _, addr := range addrs {
		v, err := adjustable.ParamValue(addr)
		if err != nil {
			return nil, fmt.Errorf("params: read %q: %w", addr, err)
		}
		s.index[addr] = len(s.params)
		s.params = append(s.params, Param{Address: addr, Value: v})
	}
	return s, nil
}

// Len returns the number of learnable parameters.
func (s *Store) Len() int { return len(s.params) }

// At returns the parameter at position i in discovery order.
func (s *Store) At(i int) Param { return s.params[i] }

// Addresses returns the parameter addresses in discovery order.
func (s *Store) Addresses() []string {
	addrs := make([]string, len(s.params))
	for i, p := range s.params {
		addrs[i] = p.Address
	}
	return addrs
}

// SetGradient records the gradient computed for the current frame.
func (s *Store) SetGradient(i int, g float64) {
	s.params[i].Gradient = g
}

// Update sets the value of parameter i and pushes it to the live processor
// so the next render reflects it.
func (s *Store) Update(i int, value float64) error {
	p := &s.params[i]
	if err := s.live.SetParamValue(p.Address, value); err != nil {
		return fmt.Errorf("params: update %q: %w", p.Address, err)
	}
	p.Value = value
	return nil
}

// Snapshot returns a copy of the parameters in discovery order.
func (s *Store) Snapshot() []Param {
	return append([]Param(nil), s.params...)
}
