package params

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-fit/dsp/proc"
)

// fake is a parameter-only processor with a fixed discovery order.
type fake struct {
	addrs []string
	vals  map[string]float64
}

func newFake(pairs map[string]float64, order ...string) *fake {
	vals := make(map[string]float64, len(order))
	for _, a := range order {
		vals[a] = pairs[a]
	}
	return &fake{addrs: order, vals: vals}
}

func (f *fake) Clone() proc.Processor {
	c := newFake(f.vals, f.addrs...)
	return c
}

func (f *fake) Inputs() int              { return 1 }
func (f *fake) Outputs() int             { return 1 }
func (f *fake) Process(_, _ [][]float64) {}

func (f *fake) ParamAddresses() []string { return f.addrs }

func (f *fake) ParamValue(addr string) (float64, error) {
	v, ok := f.vals[addr]
	if !ok {
		return 0, proc.ErrUnknownParam
	}
	return v, nil
}

func (f *fake) SetParamValue(addr string, v float64) error {
	if _, ok := f.vals[addr]; !ok {
		return proc.ErrUnknownParam
	}
	f.vals[addr] = v
	return nil
}

func TestNewStorePreservesDiscoveryOrder(t *testing.T) {
	// Deliberately not in lexical order.
	adj := newFake(map[string]float64{"/z": 3, "/a": 1, "/m": 2}, "/z", "/a", "/m")

	s, err := NewStore(adj, adj)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	want := []string{"/z", "/a", "/m"}
	got := s.Addresses()
	if len(got) != len(want) {
		t.Fatalf("addresses = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("addresses[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if p := s.At(0); p.Value != 3 || p.Gradient != 0 {
		t.Fatalf("At(0) = %+v, want value 3 gradient 0", p)
	}
}

func TestStoreUpdatePropagatesToLive(t *testing.T) {
	adj := newFake(map[string]float64{"/p": 1}, "/p")
	live := newFake(map[string]float64{"/p": 1}, "/p")

	s, err := NewStore(adj, live)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	if err := s.Update(0, 0.5); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if s.At(0).Value != 0.5 {
		t.Fatalf("store value = %v, want 0.5", s.At(0).Value)
	}
	v, err := live.ParamValue("/p")
	if err != nil {
		t.Fatalf("ParamValue() error = %v", err)
	}
	if v != 0.5 {
		t.Fatalf("live value = %v, want 0.5", v)
	}
	// The enumeration source is not the update target.
	v, _ = adj.ParamValue("/p")
	if v != 1 {
		t.Fatalf("adjustable value = %v, want 1", v)
	}
}

func TestStoreSetGradient(t *testing.T) {
	adj := newFake(map[string]float64{"/p": 1}, "/p")
	s, err := NewStore(adj, adj)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	s.SetGradient(0, -2)
	if g := s.At(0).Gradient; g != -2 {
		t.Fatalf("gradient = %v, want -2", g)
	}
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	adj := newFake(map[string]float64{"/p": 1}, "/p")
	s, err := NewStore(adj, adj)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	snap := s.Snapshot()
	snap[0].Value = 99
	if s.At(0).Value != 1 {
		t.Fatalf("store value = %v, want 1", s.At(0).Value)
	}
}

func TestNewStoreEmpty(t *testing.T) {
	adj := newFake(nil)
	if _, err := NewStore(adj, adj); !errors.Is(err, ErrNoParams) {
		t.Fatalf("error = %v, want ErrNoParams", err)
	}
}
