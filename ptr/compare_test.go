package ptr

import "testing"

func TestGuaranteedEq(t *testing.T) {
	buf := make([]int32, 4)
	p := FromSlice(buf)
	other := FromSlice(make([]int32, 4))
	sym := Symbolic[int32](16)
	sym2 := Symbolic[int32](16)

	tests := []struct {
		name   string
		a, b   Ptr[int32]
		eq, ne bool
	}{
		{"self", p, p, true, false},
		{"same address", p.Add(2), p.Add(1).Add(1), true, false},
		{"different element", p, p.Add(1), false, true},
		{"different allocation", p, other, false, true},
		{"null", Null[int32](), Null[int32](), true, false},
		{"symbolic self", sym, sym, true, false},
		{"symbolic same offset", sym.Add(1), sym.Add(1), true, false},
		{"symbolic different offset", sym, sym.Add(1), false, true},
		{"symbolic different regions", sym, sym2, false, false},
		{"symbolic against real", sym, p, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.GuaranteedEq(tc.b); got != tc.eq {
				t.Errorf("GuaranteedEq = %v, want %v", got, tc.eq)
			}
			if got := tc.a.GuaranteedNe(tc.b); got != tc.ne {
				t.Errorf("GuaranteedNe = %v, want %v", got, tc.ne)
			}
			if tc.a.GuaranteedEq(tc.b) && tc.a.GuaranteedNe(tc.b) {
				t.Error("GuaranteedEq and GuaranteedNe both true")
			}
		})
	}
}

func TestSymbolicIsNeverNull(t *testing.T) {
	p := Symbolic[byte](8)
	if p.IsNull() {
		t.Error("symbolic pointer reported null")
	}
	if p.AsRef() != nil {
		t.Error("symbolic pointer must not dereference")
	}
	if _, ok := p.Read(); ok {
		t.Error("symbolic pointer must not be readable")
	}
}
