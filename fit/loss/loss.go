// Package loss provides the per-sample loss functions driving gradient
// descent: the absolute error (L1) and the squared error (L2).
package loss

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownFunction is returned for an unrecognized loss function name.
var ErrUnknownFunction = errors.New("loss: unknown function")

// Function selects a loss variant.
type Function int

const (
	// L1 is the absolute error |delta|.
	L1 Function = iota
	// L2 is the squared error delta^2. It is the default.
	L2
)

// Parse maps "l1" or "l2" to a Function. The empty string selects L2.
func Parse(name string) (Function, error) {
	switch name {
	case "l1":
		return L1, nil
	case "l2", "":
		return L2, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
}

func (f Function) String() string {
	switch f {
	case L1:
		return "l1"
	case L2:
		return "l2"
	default:
		return fmt.Sprintf("loss(%d)", int(f))
	}
}

// Loss converts the per-frame error delta into a loss value.
func (f Function) Loss(delta float64) float64 {
	switch f {
	case L1:
		return math.Abs(delta)
	default:
		return delta * delta
	}
}

// Gradient combines delta with a derivative sample d (the adjustable
// output's partial derivative with respect to one parameter) into that
// parameter's gradient.
//
// For L1 the true subgradient at delta == 0 is indeterminate; zero is used
// so the parameter holds still on exact-match frames.
func (f Function) Gradient(delta, d float64) float64 {
	switch f {
	case L1:
		if delta == 0 {
			return 0
		}
		return d * delta / math.Abs(delta)
	default:
		return 2 * d * delta
	}
}
