package layout

import (
	"go.bytecodealliance.org/wit"
)

// Info is the Canonical ABI placement of one WIT type.
type Info struct {
	// FieldOffs maps record field names to byte offsets.
	FieldOffs map[string]uint32
	// Offsets holds record field or tuple member offsets in declaration order.
	Offsets []uint32
	Size    uint32
	Align   uint32
}

// Calculator caches layouts of named type definitions. It is not safe for
// concurrent use.
type Calculator struct {
	cache map[*wit.TypeDef]Info
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*wit.TypeDef]Info),
	}
}

// Calc computes the layout of t with a throwaway calculator.
func Calc(t wit.Type) Info {
	return NewCalculator().Calculate(t)
}

func (c *Calculator) Calculate(t wit.Type) Info {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Info{Size: 1, Align: 1}
	case wit.U16, wit.S16:
		return Info{Size: 2, Align: 2}
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return Info{Size: 4, Align: 4}
	case wit.U64, wit.S64, wit.F64:
		return Info{Size: 8, Align: 8}
	case wit.String:
		return Info{Size: 8, Align: 4}
	case *wit.TypeDef:
		return c.typeDef(typ)
	default:
		return Info{Size: 0, Align: 1}
	}
}

func (c *Calculator) typeDef(t *wit.TypeDef) Info {
	if cached, ok := c.cache[t]; ok {
		return cached
	}

	var info Info
	switch kind := t.Kind.(type) {
	case *wit.Record:
		types := make([]wit.Type, len(kind.Fields))
		for i, f := range kind.Fields {
			types[i] = f.Type
		}
		info = c.sequence(types)
		info.FieldOffs = make(map[string]uint32, len(kind.Fields))
		for i, f := range kind.Fields {
			info.FieldOffs[f.Name] = info.Offsets[i]
		}
	case *wit.Tuple:
		info = c.sequence(kind.Types)
	case *wit.Variant:
		if len(kind.Cases) == 0 {
			info = Info{Size: 0, Align: 1}
			break
		}
		payloads := make([]wit.Type, 0, len(kind.Cases))
		for _, cs := range kind.Cases {
			if cs.Type != nil {
				payloads = append(payloads, cs.Type)
			}
		}
		info = c.tagged(DiscriminantSize(len(kind.Cases)), payloads)
	case *wit.Enum:
		size := DiscriminantSize(len(kind.Cases))
		info = Info{Size: size, Align: size}
	case *wit.Option:
		info = c.tagged(1, []wit.Type{kind.Type})
	case *wit.Result:
		var payloads []wit.Type
		if kind.OK != nil {
			payloads = append(payloads, kind.OK)
		}
		if kind.Err != nil {
			payloads = append(payloads, kind.Err)
		}
		info = c.tagged(1, payloads)
	case *wit.List:
		info = Info{Size: 8, Align: 4}
	case *wit.Flags:
		info = flags(len(kind.Flags))
	case wit.Type:
		info = c.Calculate(kind)
	default:
		info = Info{Size: 0, Align: 1}
	}

	c.cache[t] = info
	return info
}

// sequence lays out members one after another.
func (c *Calculator) sequence(types []wit.Type) Info {
	if len(types) == 0 {
		return Info{Size: 0, Align: 1}
	}

	offsets := make([]uint32, len(types))
	maxAlign := uint32(1)
	offset := uint32(0)
	for i, typ := range types {
		member := c.Calculate(typ)
		offset = AlignTo(offset, member.Align)
		offsets[i] = offset
		if member.Align > maxAlign {
			maxAlign = member.Align
		}
		offset += member.Size
	}

	return Info{
		Size:    AlignTo(offset, maxAlign),
		Align:   maxAlign,
		Offsets: offsets,
	}
}

// tagged lays out a discriminant of discSize bytes followed by the largest
// payload.
func (c *Calculator) tagged(discSize uint32, payloads []wit.Type) Info {
	maxAlign := discSize
	maxSize := uint32(0)
	for _, p := range payloads {
		l := c.Calculate(p)
		maxAlign = max(maxAlign, l.Align)
		maxSize = max(maxSize, l.Size)
	}

	payloadOffset := AlignTo(discSize, maxAlign)
	return Info{
		Size:  AlignTo(payloadOffset+maxSize, maxAlign),
		Align: maxAlign,
	}
}

func flags(n int) Info {
	switch {
	case n == 0:
		return Info{Size: 0, Align: 1}
	case n <= 8:
		return Info{Size: 1, Align: 1}
	case n <= 16:
		return Info{Size: 2, Align: 2}
	case n <= 32:
		return Info{Size: 4, Align: 4}
	case n <= 64:
		return Info{Size: 8, Align: 8}
	}
	// more than 64 flags take one u32 per 32
	return Info{Size: uint32((n+31)/32) * 4, Align: 4}
}

// AlignTo rounds offset up to a multiple of align. An align of 0 or 1
// leaves offset unchanged.
func AlignTo(offset, align uint32) uint32 {
	if align <= 1 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// DiscriminantSize is the byte width of a case index for numCases cases.
func DiscriminantSize(numCases int) uint32 {
	if numCases <= 256 {
		return 1
	} else if numCases <= 65536 {
		return 2
	}
	return 4
}
