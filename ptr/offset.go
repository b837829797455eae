package ptr

import "math"

// Offset moves p by count elements of T, backwards when count is negative.
//
// The result must stay inside the region of p (one past the end included) and
// count*size_of(T) must fit in an int. Neither is checked.
func (p Ptr[T]) Offset(count int) Ptr[T] {
	p.off += uintptr(count) * sizeOf[T]()
	return p
}

// Add is Offset for a non-negative count.
func (p Ptr[T]) Add(count uint) Ptr[T] {
	p.off += uintptr(count) * sizeOf[T]()
	return p
}

// Sub is Offset by -count.
func (p Ptr[T]) Sub(count uint) Ptr[T] {
	p.off -= uintptr(count) * sizeOf[T]()
	return p
}

// ByteAdd moves p by n bytes under the same rules as Add.
func (p Ptr[T]) ByteAdd(n uintptr) Ptr[T] {
	p.off += n
	return p
}

// ByteSub moves p back by n bytes under the same rules as Sub.
func (p Ptr[T]) ByteSub(n uintptr) Ptr[T] {
	p.off -= n
	return p
}

// WrappingOffset moves p by count elements with wrapping arithmetic. The
// result may leave the region; it stays tied to it regardless.
func (p Ptr[T]) WrappingOffset(count int) Ptr[T] {
	p.off += uintptr(count) * sizeOf[T]()
	return p
}

// WrappingAdd is WrappingOffset for a non-negative count.
func (p Ptr[T]) WrappingAdd(count uint) Ptr[T] {
	p.off += uintptr(count) * sizeOf[T]()
	return p
}

// WrappingSub is WrappingOffset by -count.
func (p Ptr[T]) WrappingSub(count uint) Ptr[T] {
	p.off -= uintptr(count) * sizeOf[T]()
	return p
}

// CheckedOffset is Offset with its preconditions checked. It reports false
// when p or the result lies outside the region, or the byte distance
// overflows an int. Pointers without a region only accept a zero count.
func (p Ptr[T]) CheckedOffset(count int) (Ptr[T], bool) {
	if p.base == nil {
		return p, count == 0
	}
	if p.off > p.size {
		return p, false
	}
	delta, ok := mulInt(count, int(sizeOf[T]()))
	if !ok {
		return p, false
	}
	cur := int(p.off)
	if delta > int(p.size)-cur || delta < -cur {
		return p, false
	}
	p.off = uintptr(cur + delta)
	return p, true
}

// OffsetFrom returns the distance from origin to p in elements of T.
//
// Both pointers must come from the same region and their distance must be
// an exact multiple of size_of(T); otherwise the result is meaningless.
// OffsetFrom panics when T is zero-sized.
func (p Ptr[T]) OffsetFrom(origin Ptr[T]) int {
	sz := sizeOf[T]()
	if sz == 0 || sz > math.MaxInt {
		panic("ptr: OffsetFrom on a zero-sized element type")
	}
	return int(p.Addr()-origin.Addr()) / int(sz)
}

// ByteOffsetFrom returns the distance from origin to p in bytes. Both
// pointers must come from the same region.
func (p Ptr[T]) ByteOffsetFrom(origin Ptr[T]) int {
	return int(p.Addr() - origin.Addr())
}

func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, false
	}
	return c, true
}
