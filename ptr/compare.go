package ptr

// GuaranteedEq reports whether p and other are certainly equal.
//
// For pointers with real addresses it answers like ==. For symbolic
// pointers it only answers true for the same offset in the same region. A
// false result implies nothing; use it to skip work, never to change what a
// program computes.
func (p Ptr[T]) GuaranteedEq(other Ptr[T]) bool {
	if p.symbolic || other.symbolic {
		return p.base == other.base && p.symbolic == other.symbolic && p.off == other.off
	}
	return p.Addr() == other.Addr()
}

// GuaranteedNe reports whether p and other are certainly different. It is
// the mirror of GuaranteedEq, not its inverse: both may answer false.
func (p Ptr[T]) GuaranteedNe(other Ptr[T]) bool {
	if p.symbolic || other.symbolic {
		return p.base == other.base && p.symbolic == other.symbolic && p.off != other.off
	}
	return p.Addr() != other.Addr()
}
