package ptr

import "unsafe"

// InBounds reports whether a whole T at p lies inside its region.
func (p Ptr[T]) InBounds() bool {
	if p.base == nil || p.symbolic || p.off > p.size {
		return false
	}
	return sizeOf[T]() <= p.size-p.off
}

// AsRef returns p as a Go pointer, or nil when p is null, has no region, is
// out of its region or is misaligned for T.
func (p Ptr[T]) AsRef() *T {
	if !p.InBounds() || p.Addr()%alignOf[T]() != 0 {
		return nil
	}
	if sizeOf[T]() == 0 {
		// One past the end is not a valid Go pointer; any address will do.
		return new(T)
	}
	return (*T)(unsafe.Add(p.base, p.off))
}

// UncheckedRef returns p as a Go pointer without any check. The caller
// guarantees p is in its region and aligned for T; anything else is
// undefined behaviour.
func (p Ptr[T]) UncheckedRef() *T {
	return (*T)(unsafe.Add(p.base, p.off))
}

// Read copies the T at p. It reports false when AsRef would return nil.
func (p Ptr[T]) Read() (T, bool) {
	ref := p.AsRef()
	if ref == nil {
		var zero T
		return zero, false
	}
	return *ref, true
}

// ReadUnaligned copies the T at p without requiring alignment. It reports
// false when the value is not inside the region.
func (p Ptr[T]) ReadUnaligned() (T, bool) {
	var v T
	if !p.InBounds() {
		return v, false
	}
	if ref := p.AsRef(); ref != nil {
		return *ref, true
	}
	// Misaligned: Go never stores pointer-carrying values unaligned, so a
	// byte copy is enough.
	sz := sizeOf[T]()
	dst := unsafe.Slice((*byte)(unsafe.Pointer(&v)), sz)
	copy(dst, unsafe.Slice((*byte)(unsafe.Add(p.base, p.off)), sz))
	return v, true
}

// Write stores v at p. It reports false when AsRef would return nil.
func (p Ptr[T]) Write(v T) bool {
	ref := p.AsRef()
	if ref == nil {
		return false
	}
	*ref = v
	return true
}

// CopyTo copies count elements from p to dst. The ranges may overlap. It
// reports false, copying nothing, when either range leaves its region.
func (p Ptr[T]) CopyTo(dst Ptr[T], count int) bool {
	if count < 0 {
		return false
	}
	if count == 0 {
		return true
	}
	if src, ok := p.elems(count); ok {
		if out, ok := dst.elems(count); ok {
			copy(out, src)
			return true
		}
	}
	n, ok := span[T](count)
	if !ok {
		return false
	}
	src, ok := p.bytes(n)
	if !ok {
		return false
	}
	out, ok := dst.bytes(n)
	if !ok {
		return false
	}
	copy(out, src)
	return true
}

// CopyToNonoverlapping is CopyTo for ranges that must not overlap. It
// reports false, copying nothing, when they do.
func (p Ptr[T]) CopyToNonoverlapping(dst Ptr[T], count int) bool {
	if count > 0 && p.SameRegion(dst) {
		n, ok := span[T](count)
		if !ok {
			return false
		}
		a, b := p.off, dst.off
		if a < b+n && b < a+n {
			return false
		}
	}
	return p.CopyTo(dst, count)
}

// bytes returns the n bytes at p when they lie inside the region.
func (p Ptr[T]) bytes(n uintptr) ([]byte, bool) {
	if p.base == nil || p.symbolic || p.off > p.size || n > p.size-p.off {
		return nil, false
	}
	if n == 0 {
		return nil, true
	}
	return unsafe.Slice((*byte)(unsafe.Add(p.base, p.off)), n), true
}

// elems returns count elements at p when they lie inside the region and p
// is aligned for T.
func (p Ptr[T]) elems(count int) ([]T, bool) {
	sz := sizeOf[T]()
	if sz == 0 || p.Addr()%alignOf[T]() != 0 {
		return nil, false
	}
	n, ok := span[T](count)
	if !ok {
		return nil, false
	}
	if _, ok := p.bytes(n); !ok {
		return nil, false
	}
	return unsafe.Slice((*T)(unsafe.Add(p.base, p.off)), count), true
}

// span returns count*size_of(T) in bytes, or false when it overflows.
func span[T any](count int) (uintptr, bool) {
	sz := sizeOf[T]()
	if count < 0 || (sz != 0 && uintptr(count) > ^uintptr(0)/sz) {
		return 0, false
	}
	return uintptr(count) * sz, true
}
