// Package layout computes Canonical ABI size, alignment and field offsets
// of WIT types.
//
// The rules:
//   - Primitives: size equals alignment (u8=1, u32=4, u64=8, ...)
//   - Records and tuples: members in order, each padded to its alignment
//   - Variants: discriminant followed by the largest payload case
//   - Lists and strings: a (pointer, length) pair of u32s
//
// # Usage
//
//	info := layout.Calc(witType)
//	// info.Size, info.Align, info.Offsets
//
// Only wasmview uses this package.
package layout
