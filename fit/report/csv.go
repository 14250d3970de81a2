package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cwbudde/algo-fit/dsp/proc"
)

// CSV writes the persisted fitting log. The header is
// "iteration,loss" followed by "gradient_<name>,<name>" per parameter in
// store order; this column layout is a compatibility contract for analysis
// tooling. Every frame emits one row, whether or not it stepped the
// parameters.
type CSV struct {
	w   *csv.Writer
	c   io.Closer
	row []string
}

// NewCSV creates a CSV reporter writing to w.
func NewCSV(w io.Writer) *CSV {
	return &CSV{w: csv.NewWriter(w)}
}

// CreateCSV creates the log file at path, truncating any existing file.
func CreateCSV(path string) (*CSV, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("report: create csv log: %w", err)
	}
	return &CSV{w: csv.NewWriter(f), c: f}, nil
}

func (c *CSV) Begin(addresses []string) error {
	header := make([]string, 0, 2+2*len(addresses))
	header = append(header, "iteration", "loss")
	for _, addr := range addresses {
		name := proc.ShortName(addr)
		header = append(header, "gradient_"+name, name)
	}
	c.row = make([]string, 0, cap(header))
	return c.w.Write(header)
}

func (c *CSV) Frame(f Frame) error {
	c.row = c.row[:0]
	c.row = append(c.row, strconv.Itoa(f.Iteration), formatSample(f.Loss))
	for _, p := range f.Params {
		c.row = append(c.row, formatSample(p.Gradient), formatSample(p.Value))
	}
	return c.w.Write(c.row)
}

func (c *CSV) Close() error {
	c.w.Flush()
	err := c.w.Error()
	if c.c != nil {
		if cerr := c.c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func formatSample(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
