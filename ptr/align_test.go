package ptr

import "testing"

func TestAlignOffset(t *testing.T) {
	buf := make([]byte, 64)
	base := FromSlice(buf)

	for i := uint(0); i < 16; i++ {
		p := base.Add(i)
		for _, align := range []uintptr{1, 2, 4, 8, 16} {
			k := p.AlignOffset(align)
			if k == NoAlignOffset {
				t.Fatalf("byte pointer +%d align %d: no offset", i, align)
			}
			if k >= align {
				t.Errorf("byte pointer +%d align %d: offset %d not minimal", i, align, k)
			}
			if (p.Addr()+k)%align != 0 {
				t.Errorf("byte pointer +%d align %d: %#x+%d not aligned", i, align, p.Addr(), k)
			}
		}
	}
}

func TestAlignOffsetStride(t *testing.T) {
	tests := []struct {
		name   string
		addr   uintptr
		stride uintptr
		align  uintptr
		want   uintptr
	}{
		{"already aligned", 16, 4, 8, 0},
		{"one step", 12, 4, 8, 1},
		{"odd stride", 1, 3, 4, 1},
		{"odd stride wraps", 2, 3, 4, 2},
		{"odd stride large", 5, 7, 16, 13},
		{"even stride odd addr", 1, 2, 4, NoAlignOffset},
		{"zero stride misaligned", 3, 0, 4, NoAlignOffset},
		{"zero stride aligned", 8, 0, 4, 0},
		{"stride equals align", 4, 8, 8, NoAlignOffset},
		{"gcd divides gap", 2, 6, 8, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := alignOffset(tc.addr, tc.stride, tc.align)
			if got != tc.want {
				t.Fatalf("alignOffset(%d, %d, %d) = %d, want %d", tc.addr, tc.stride, tc.align, got, tc.want)
			}
			if got != NoAlignOffset && (tc.addr+got*tc.stride)%tc.align != 0 {
				t.Errorf("result %d does not align", got)
			}
		})
	}
}

func TestAlignOffsetUnreachable(t *testing.T) {
	buf := make([]byte, 16)
	odd := Cast[uint16](FromSlice(buf).ByteAdd(1))
	if got := odd.AlignOffset(2); got != NoAlignOffset {
		t.Errorf("odd uint16 pointer: got %d, want NoAlignOffset", got)
	}
	if odd.IsAligned() {
		t.Error("odd uint16 pointer should not be aligned")
	}
}

func TestAlignOffsetPanics(t *testing.T) {
	for _, align := range []uintptr{0, 3, 6, 12} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("align %d: expected panic", align)
				}
			}()
			FromSlice(make([]byte, 4)).AlignOffset(align)
		}()
	}
}

func TestSymbolicAlignOffset(t *testing.T) {
	p := Symbolic[byte](32)
	for _, align := range []uintptr{1, 2, 8} {
		if got := p.Add(3).AlignOffset(align); got != NoAlignOffset {
			t.Errorf("align %d: got %d, want NoAlignOffset", align, got)
		}
	}
	if !p.IsAligned() {
		t.Error("start of a symbolic byte region is aligned")
	}
}

func TestModInverse(t *testing.T) {
	for _, m := range []uintptr{2, 8, 1 << 12, 1 << 31} {
		for s := uintptr(1); s < 64; s += 2 {
			if got := (s * modInverse(s, m)) & (m - 1); got != 1 {
				t.Fatalf("s=%d m=%d: s*inv = %d", s, m, got)
			}
		}
	}
}
