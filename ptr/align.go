package ptr

import "math/bits"

// NoAlignOffset is the AlignOffset result when no usable offset exists.
// Callers fall back to an unaligned-safe path; it is not an error.
const NoAlignOffset = ^uintptr(0)

// AlignOffset returns the number of elements of T that p must be advanced by
// for its address to be a multiple of align, or NoAlignOffset when that
// cannot be achieved. Symbolic pointers always get NoAlignOffset.
//
// The result says nothing about whether the advanced pointer is still in
// its region. AlignOffset panics when align is not a power of two.
func (p Ptr[T]) AlignOffset(align uintptr) uintptr {
	if align == 0 || align&(align-1) != 0 {
		panic("ptr: AlignOffset: align is not a power-of-two")
	}
	if p.symbolic {
		return NoAlignOffset
	}
	return alignOffset(p.Addr(), sizeOf[T](), align)
}

// IsAligned reports whether the address of p is a multiple of T's alignment.
func (p Ptr[T]) IsAligned() bool {
	if p.symbolic {
		return p.off%alignOf[T]() == 0
	}
	return p.Addr()%alignOf[T]() == 0
}

// alignOffset solves addr + k*stride ≡ 0 (mod align) for the smallest k.
func alignOffset(addr, stride, align uintptr) uintptr {
	mask := align - 1
	if addr&mask == 0 {
		return 0
	}
	if stride == 0 {
		return NoAlignOffset
	}

	gap := (align - (addr & mask)) & mask

	// k*stride ≡ gap has a solution iff gcd(stride, align) divides gap.
	shift := uint(bits.TrailingZeros64(uint64(stride)))
	gcd := uintptr(1) << shift
	if gcd >= align || gap&(gcd-1) != 0 {
		return NoAlignOffset
	}

	m := align >> shift
	s := (stride >> shift) & (m - 1)
	g := gap >> shift
	return (g * modInverse(s, m)) & (m - 1)
}

// modInverse returns the inverse of odd s modulo the power of two m.
func modInverse(s, m uintptr) uintptr {
	// Newton's iteration doubles the number of correct low bits each step;
	// any odd s is its own inverse modulo 8.
	x := s
	for i := 0; i < 5; i++ {
		x *= 2 - s*x
	}
	return x & (m - 1)
}
