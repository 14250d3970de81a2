package proc

// OnePoleCoeffAddr is the parameter address of the one-pole smoothing
// coefficient.
const OnePoleCoeffAddr = "/onepole/coeff"

// OnePole is a learnable one-pole lowpass (1 in, 1 out):
//
//	y[n] = a*x[n] + (1-a)*y[n-1]
//
// with the coefficient a as its single learnable parameter.
type OnePole struct {
	params paramTable
	y1     float64
}

// NewOnePole creates a one-pole lowpass with the given initial coefficient.
func NewOnePole(coeff float64) *OnePole {
	return &OnePole{params: newParamTable(paramDef{OnePoleCoeffAddr, coeff})}
}

func (p *OnePole) Clone() Processor {
	return &OnePole{params: p.params.clone(), y1: p.y1}
}

func (p *OnePole) Inputs() int  { return 1 }
func (p *OnePole) Outputs() int { return 1 }

func (p *OnePole) Process(in, out [][]float64) {
	a, _ := p.params.ParamValue(OnePoleCoeffAddr)
	src, dst := in[0], out[0]
	for i := range dst {
		p.y1 = a*src[i] + (1-a)*p.y1
		dst[i] = p.y1
	}
}

func (p *OnePole) ParamAddresses() []string { return p.params.ParamAddresses() }

func (p *OnePole) ParamValue(addr string) (float64, error) { return p.params.ParamValue(addr) }

func (p *OnePole) SetParamValue(addr string, v float64) error {
	return p.params.SetParamValue(addr, v)
}

// Differentiate returns the recursive derivative of the filter output with
// respect to the coefficient:
//
//	d[n] = x[n] - y[n-1] + (1-a)*d[n-1]
//
// The variant tracks the filter state itself and exposes the same parameter
// address so live coefficient updates reach the derivative recursion.
func (p *OnePole) Differentiate() (Processor, error) {
	return &onePoleGrad{params: p.params.clone()}, nil
}

type onePoleGrad struct {
	params paramTable
	y1     float64
	d1     float64
}

func (g *onePoleGrad) Clone() Processor {
	return &onePoleGrad{params: g.params.clone(), y1: g.y1, d1: g.d1}
}

func (g *onePoleGrad) Inputs() int  { return 1 }
func (g *onePoleGrad) Outputs() int { return 1 }

func (g *onePoleGrad) Process(in, out [][]float64) {
	a, _ := g.params.ParamValue(OnePoleCoeffAddr)
	src, dst := in[0], out[0]
	for i := range dst {
		g.d1 = src[i] - g.y1 + (1-a)*g.d1
		g.y1 = a*src[i] + (1-a)*g.y1
		dst[i] = g.d1
	}
}

func (g *onePoleGrad) ParamAddresses() []string { return g.params.ParamAddresses() }

func (g *onePoleGrad) ParamValue(addr string) (float64, error) { return g.params.ParamValue(addr) }

func (g *onePoleGrad) SetParamValue(addr string, v float64) error {
	return g.params.SetParamValue(addr, v)
}

func (g *onePoleGrad) DerivativeAddresses() []string { return []string{OnePoleCoeffAddr} }
