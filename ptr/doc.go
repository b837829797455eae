// Package ptr provides provenance-preserving pointer arithmetic.
//
// A Ptr[T] is a fat pointer. Besides the address it carries the region it
// was derived from: the base of the allocation and its length in bytes. The
// region travels with every derived pointer, so arithmetic never loses track
// of which memory a pointer may legally touch.
//
//	┌──────────────── region (base, size) ────────────────┐
//	│                                                      │
//	base ───── off ─────▶ address                          │
//	└──────────────────────────────────────────────────────┘
//
// # In-bounds and Wrapping Arithmetic
//
// Offset, Add, Sub and ByteAdd require the result to stay inside the region
// (one past the end is allowed) and the byte distance to fit in an int. This
// is a precondition, not a runtime check. CheckedOffset is the checked form.
//
// WrappingOffset, WrappingAdd and WrappingSub are always safe to compute. The
// result keeps the original region even when its address happens to equal
// an address inside some other region; such a pointer never becomes usable
// for that other region.
//
// Because the region base is kept as a real Go pointer and the offset as an
// integer, computing an out-of-region pointer never produces an invalid
// unsafe.Pointer. A Go pointer is only materialized on dereference.
//
// # Addresses
//
// Addr extracts the address. WithAddr builds a pointer with a new address
// and the old region, as if WrappingOffset had been applied. FromAddr builds
// a pointer with no region at all; it compares and prints but never
// dereferences through the checked API.
//
// # Symbolic Regions
//
// Symbolic creates a region that has identity and size but no address, for
// planning layouts ahead of allocation. Offsets within it are exact.
// AlignOffset always answers NoAlignOffset and GuaranteedEq only answers true
// for the same offset in the same symbolic region.
//
// # Dereferencing
//
//	AsRef, Read, Write     checked: nil/false when out of region or misaligned
//	ReadUnaligned          checked bounds, any alignment
//	UncheckedRef           no checks; undefined behaviour on misuse
//
// # Panics
//
// AlignOffset panics when align is not a power of two. OffsetFrom panics for
// zero-sized element types, where a distance in elements has no meaning.
// Nothing else in this package panics.
package ptr
