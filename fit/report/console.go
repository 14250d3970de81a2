package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-fit/dsp/proc"
)

// Console writes a fixed-width per-frame trace. Frames that stepped the
// parameters are followed by one line per parameter with the derivative
// sample, gradient, and new value.
type Console struct {
	w     *tabwriter.Writer
	names []string
}

// NewConsole creates a console reporter writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: tabwriter.NewWriter(w, 5, 0, 2, ' ', tabwriter.AlignRight)}
}

func (c *Console) Begin(addresses []string) error {
	c.names = make([]string, len(addresses))
	for i, addr := range addresses {
		c.names[i] = proc.ShortName(addr)
	}
	return nil
}

func (c *Console) Frame(f Frame) error {
	fmt.Fprintf(c.w, "%d\tSig GT: \t%.10f\tSig Learn: \t%.10f\tLoss: \t%.10f\t\n",
		f.Iteration, f.GroundTruth, f.Learned, f.Loss)

	if f.Updated {
		for i, p := range f.Params {
			fmt.Fprintf(c.w, ".\t%s: ds/dp: \t%.10f\tGrad: \t%.10f\tValue: \t%.10f\t\n",
				c.names[i], f.Derivs[i], p.Gradient, p.Value)
		}
	}

	return c.w.Flush()
}

func (c *Console) Close() error { return c.w.Flush() }
