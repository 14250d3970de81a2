package proc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-fit/dsp/core"
)

// ErrUnknownSpec is returned when a processor spec names an unregistered type.
var ErrUnknownSpec = errors.New("unknown processor spec")

// Build instantiates a built-in processor from a textual spec of the form
// "name" or "name:arg[,arg...]". Known specs:
//
//	sine:<freqHz>[,<amplitude>]   stateful sine generator
//	noise[:<amplitude>[,<seed>]]  deterministic white noise generator
//	const:<value>                 constant signal
//	silence                       zero signal
//	gain:<level>                  learnable gain stage
//	offset:<dc>                   learnable DC offset stage
//	onepole:<coeff>               learnable one-pole lowpass
//
// Generators take their sample rate from cfg.
func Build(spec string, cfg core.ProcessorConfig) (Processor, error) {
	name, argPart, _ := strings.Cut(spec, ":")
	name = strings.ToLower(strings.TrimSpace(name))

	var args []float64
	if argPart != "" {
		for _, s := range strings.Split(argPart, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("proc: spec %q: %w", spec, err)
			}
			args = append(args, v)
		}
	}

	arg := func(i int, def float64) float64 {
		if i < len(args) {
			return args[i]
		}
		return def
	}

	switch name {
	case "sine":
		if len(args) < 1 {
			return nil, fmt.Errorf("proc: spec %q: sine requires a frequency", spec)
		}
		return NewSineOsc(arg(0, 440), arg(1, 1), cfg.SampleRate), nil
	case "noise":
		return NewNoise(arg(0, 1), int64(arg(1, 1))), nil
	case "const":
		if len(args) < 1 {
			return nil, fmt.Errorf("proc: spec %q: const requires a value", spec)
		}
		return NewConstant(args[0]), nil
	case "silence":
		return NewSilence(), nil
	case "gain":
		if len(args) < 1 {
			return nil, fmt.Errorf("proc: spec %q: gain requires a level", spec)
		}
		return NewGain(args[0]), nil
	case "offset":
		if len(args) < 1 {
			return nil, fmt.Errorf("proc: spec %q: offset requires a dc value", spec)
		}
		return NewDCOffset(args[0]), nil
	case "onepole":
		if len(args) < 1 {
			return nil, fmt.Errorf("proc: spec %q: onepole requires a coefficient", spec)
		}
		return NewOnePole(args[0]), nil
	default:
		return nil, fmt.Errorf("proc: %q: %w", name, ErrUnknownSpec)
	}
}
