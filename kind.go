package introspect

// Kind identifies the shape of a described type.
type Kind uint8

const (
	KindStruct Kind = iota
	KindUnion
	KindEnum
	KindTuple
	KindArray
	KindSlice
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct { ... }"
	case KindUnion:
		return "union { ... }"
	case KindEnum:
		return "enum { ... }"
	case KindTuple:
		return "tuple ( ... )"
	case KindArray:
		return "array [type; n]"
	case KindSlice:
		return "slice [type]"
	case KindFunction:
		return "fn (...)"
	default:
		return "unknown"
	}
}

// Keyword returns the short lowercase name of k, as used in generated code
// and tool output.
func (k Kind) Keyword() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	case KindTuple:
		return "tuple"
	case KindArray:
		return "array"
	case KindSlice:
		return "slice"
	case KindFunction:
		return "func"
	default:
		return "unknown"
	}
}
