// Package wasmview reads and writes reflected Go structs inside WebAssembly
// linear memory.
//
// A struct is viewable when the Canonical ABI places every visible field at
// the same offset, with the same size, as the Go compiler does:
//
//	Go type                       WIT type
//	bool                          bool
//	int8 .. int64, uint8 .. u64   s8 .. s64, u8 .. u64
//	int, uint, uintptr            s64/u64 or s32/u32 by host word size
//	float32, float64              f32, f64
//	[N]T                          tuple<T, ... T>
//	struct                        record, fields kebab-cased
//	string                        string (described, never viewable)
//
// Record maps a registered struct to its WIT record, Check compares the two
// layouts, and View copies records between Go values and memory. Memory is
// satisfied by wazero's api.Memory.
//
// Linear memory is little-endian; views are refused on big-endian hosts.
package wasmview
