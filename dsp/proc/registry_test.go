package proc

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-fit/dsp/core"
)

func TestBuildSpecs(t *testing.T) {
	cfg := core.DefaultProcessorConfig()

	cases := []struct {
		spec    string
		inputs  int
		outputs int
		params  int
	}{
		{"sine:440", 0, 1, 0},
		{"sine:440,0.5", 0, 1, 0},
		{"noise", 0, 1, 0},
		{"noise:0.5,7", 0, 1, 0},
		{"const:1", 0, 1, 0},
		{"silence", 0, 1, 0},
		{"gain:0.5", 1, 1, 1},
		{"offset:0.1", 1, 1, 1},
		{"onepole:0.3", 1, 1, 1},
	}
	for _, tc := range cases {
		p, err := Build(tc.spec, cfg)
		if err != nil {
			t.Fatalf("Build(%q) error = %v", tc.spec, err)
		}
		if p.Inputs() != tc.inputs || p.Outputs() != tc.outputs {
			t.Fatalf("Build(%q): %d in / %d out, want %d / %d",
				tc.spec, p.Inputs(), p.Outputs(), tc.inputs, tc.outputs)
		}
		if len(p.ParamAddresses()) != tc.params {
			t.Fatalf("Build(%q): %d params, want %d", tc.spec, len(p.ParamAddresses()), tc.params)
		}
	}
}

func TestBuildInitialValue(t *testing.T) {
	p, err := Build("gain:0.25", core.DefaultProcessorConfig())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	v, err := p.ParamValue(GainLevelAddr)
	if err != nil {
		t.Fatalf("ParamValue() error = %v", err)
	}
	if v != 0.25 {
		t.Fatalf("value = %v, want 0.25", v)
	}
}

func TestBuildUnknownSpec(t *testing.T) {
	if _, err := Build("reverb:0.3", core.DefaultProcessorConfig()); !errors.Is(err, ErrUnknownSpec) {
		t.Fatalf("error = %v, want ErrUnknownSpec", err)
	}
}

func TestBuildBadArgs(t *testing.T) {
	for _, spec := range []string{"gain", "gain:abc", "sine", "const"} {
		if _, err := Build(spec, core.DefaultProcessorConfig()); err == nil {
			t.Fatalf("Build(%q) expected error", spec)
		}
	}
}
