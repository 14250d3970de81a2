// Package report delivers the per-frame fitting trace to sinks: a
// fixed-width console trace, a CSV log for downstream analysis, or any
// combination.
package report

import "github.com/cwbudde/algo-fit/fit/params"

// Frame is the state reported after every processed frame. On frames where
// no update occurred, Params carries the last-computed gradient and value
// per parameter, unchanged.
type Frame struct {
	Iteration   int
	GroundTruth float64
	Learned     float64
	Loss        float64

	// Updated reports whether this frame's loss exceeded the sensitivity
	// threshold and the parameters were stepped.
	Updated bool

	// Params holds the learnable parameters in store order.
	Params []params.Param

	// Derivs holds the derivative sample per parameter for this frame, in
	// store order. Valid only when Updated.
	Derivs []float64
}

// Reporter receives the fitting trace. Begin is called once before the first
// frame with the parameter addresses in store order; Close once after the
// last frame.
type Reporter interface {
	Begin(addresses []string) error
	Frame(f Frame) error
	Close() error
}

// Nop is a Reporter that discards everything.
type Nop struct{}

func (Nop) Begin([]string) error { return nil }
func (Nop) Frame(Frame) error    { return nil }
func (Nop) Close() error         { return nil }

// Multi fans the trace out to several reporters in order.
type Multi []Reporter

func (m Multi) Begin(addresses []string) error {
	for _, r := range m {
		if err := r.Begin(addresses); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Frame(f Frame) error {
	for _, r := range m {
		if err := r.Frame(f); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Close() error {
	var firstErr error
	for _, r := range m {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
