package ptr

import (
	"strconv"
	"unsafe"
)

// Ptr is a pointer to T that remembers the region it was derived from.
// The zero value is the null pointer.
type Ptr[T any] struct {
	base     unsafe.Pointer
	size     uintptr
	off      uintptr
	symbolic bool
}

type symbol struct{ _ byte }

func sizeOf[T any]() uintptr {
	var z T
	return unsafe.Sizeof(z)
}

func alignOf[T any]() uintptr {
	var z T
	return unsafe.Alignof(z)
}

// Null returns the null pointer.
func Null[T any]() Ptr[T] {
	return Ptr[T]{}
}

// FromRef returns a pointer whose region is exactly the value ref points to.
func FromRef[T any](ref *T) Ptr[T] {
	if ref == nil {
		return Ptr[T]{}
	}
	return Ptr[T]{base: unsafe.Pointer(ref), size: sizeOf[T]()}
}

// FromSlice returns a pointer to the first element of s. The region spans
// the capacity of s.
func FromSlice[T any](s []T) Ptr[T] {
	data := unsafe.SliceData(s)
	if data == nil {
		return Ptr[T]{}
	}
	return Ptr[T]{base: unsafe.Pointer(data), size: uintptr(cap(s)) * sizeOf[T]()}
}

// FromBytes returns a T-typed pointer to the start of b. The region spans
// the capacity of b.
func FromBytes[T any](b []byte) Ptr[T] {
	return Cast[T](FromSlice(b))
}

// FromAddr returns a pointer to addr with no region. It can be compared,
// offset and printed, but the checked accessors never dereference it.
func FromAddr[T any](addr uintptr) Ptr[T] {
	return Ptr[T]{off: addr}
}

// Symbolic returns a pointer to the start of a fresh region of size bytes
// that has no address yet.
func Symbolic[T any](size uintptr) Ptr[T] {
	return Ptr[T]{base: unsafe.Pointer(new(symbol)), size: size, symbolic: true}
}

// Cast reinterprets p as a pointer to U, keeping its address and region.
func Cast[U, T any](p Ptr[T]) Ptr[U] {
	return Ptr[U]{base: p.base, size: p.size, off: p.off, symbolic: p.symbolic}
}

// Addr returns the address part of p. For symbolic pointers it is the
// offset from the start of the region.
func (p Ptr[T]) Addr() uintptr {
	if p.symbolic {
		return p.off
	}
	return uintptr(p.base) + p.off
}

// WithAddr returns a pointer to addr that keeps the region of p. It behaves
// as if p had been moved there with a wrapping byte offset.
func (p Ptr[T]) WithAddr(addr uintptr) Ptr[T] {
	p.off += addr - p.Addr()
	return p
}

// IsNull reports whether p is the null address. Symbolic pointers are never null.
func (p Ptr[T]) IsNull() bool {
	return !p.symbolic && p.Addr() == 0
}

// IsSymbolic reports whether p belongs to a region created by Symbolic.
func (p Ptr[T]) IsSymbolic() bool {
	return p.symbolic
}

// HasProvenance reports whether p carries a region.
func (p Ptr[T]) HasProvenance() bool {
	return p.base != nil
}

// SameRegion reports whether p and other were derived from the same region.
func (p Ptr[T]) SameRegion(other Ptr[T]) bool {
	return p.base != nil && p.base == other.base && p.symbolic == other.symbolic
}

// RegionSize returns the length in bytes of the region of p.
func (p Ptr[T]) RegionSize() uintptr {
	return p.size
}

// RegionOffset returns the byte distance from the start of the region to p.
// It exceeds RegionSize once p has wrapped out of its region.
func (p Ptr[T]) RegionOffset() uintptr {
	return p.off
}

func (p Ptr[T]) String() string {
	if p.symbolic {
		return "sym+0x" + strconv.FormatUint(uint64(p.off), 16)
	}
	return "0x" + strconv.FormatUint(uint64(p.Addr()), 16)
}
