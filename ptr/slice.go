package ptr

// Slice is a pointer to count consecutive elements of T.
type Slice[T any] struct {
	data Ptr[T]
	n    int
}

// SliceFromParts builds a Slice from a data pointer and a length.
func SliceFromParts[T any](data Ptr[T], n int) Slice[T] {
	return Slice[T]{data: data, n: n}
}

// SliceOf returns a Slice over the elements of s.
func SliceOf[T any](s []T) Slice[T] {
	return Slice[T]{data: FromSlice(s), n: len(s)}
}

// Len returns the number of elements, not bytes. It never dereferences.
func (s Slice[T]) Len() int {
	return s.n
}

// AsPtr returns the pointer to the first element.
func (s Slice[T]) AsPtr() Ptr[T] {
	return s.data
}

// GetUnchecked returns a pointer to element i without a bounds check.
func (s Slice[T]) GetUnchecked(i int) Ptr[T] {
	return s.data.Offset(i)
}

// Get returns a pointer to element i, or false when i is out of range.
func (s Slice[T]) Get(i int) (Ptr[T], bool) {
	if i < 0 || i >= s.n {
		return Ptr[T]{}, false
	}
	return s.data.Offset(i), true
}

// AsSlice returns the elements as a Go slice when they all lie inside the
// region and are aligned.
func (s Slice[T]) AsSlice() ([]T, bool) {
	if s.n < 0 {
		return nil, false
	}
	if s.n == 0 {
		return nil, true
	}
	return s.data.elems(s.n)
}
