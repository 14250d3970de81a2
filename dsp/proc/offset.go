package proc

// OffsetAddr is the parameter address of the DC offset control.
const OffsetAddr = "/offset/dc"

// DCOffset adds a learnable constant to its input (1 in, 1 out).
type DCOffset struct {
	params paramTable
}

// NewDCOffset creates an offset stage with the given initial offset.
func NewDCOffset(offset float64) *DCOffset {
	return &DCOffset{params: newParamTable(paramDef{OffsetAddr, offset})}
}

func (o *DCOffset) Clone() Processor {
	return &DCOffset{params: o.params.clone()}
}

func (o *DCOffset) Inputs() int  { return 1 }
func (o *DCOffset) Outputs() int { return 1 }

func (o *DCOffset) Process(in, out [][]float64) {
	offset, _ := o.params.ParamValue(OffsetAddr)
	src, dst := in[0], out[0]
	for i := range dst {
		dst[i] = src[i] + offset
	}
}

func (o *DCOffset) ParamAddresses() []string { return o.params.ParamAddresses() }

func (o *DCOffset) ParamValue(addr string) (float64, error) { return o.params.ParamValue(addr) }

func (o *DCOffset) SetParamValue(addr string, v float64) error {
	return o.params.SetParamValue(addr, v)
}

// Differentiate returns the derivative with respect to the offset:
// d(x+c)/dc = 1 for every frame.
func (o *DCOffset) Differentiate() (Processor, error) {
	return &offsetGrad{}, nil
}

type offsetGrad struct {
	noParams
}

func (d *offsetGrad) Clone() Processor {
	c := *d
	return &c
}

func (d *offsetGrad) Inputs() int  { return 1 }
func (d *offsetGrad) Outputs() int { return 1 }

func (d *offsetGrad) Process(_, out [][]float64) {
	dst := out[0]
	for i := range dst {
		dst[i] = 1
	}
}

func (d *offsetGrad) DerivativeAddresses() []string { return []string{OffsetAddr} }
