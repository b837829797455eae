package introspect

import (
	"reflect"
	"unsafe"
)

// The Any* types are owned, type-erased copies of descriptors, keyed by
// reflect.Type. They are built once, never mutated, and implement the
// matching *Info interface so visitors accept them unchanged.

// AnyStruct is the erased form of a StructInfo.
type AnyStruct struct {
	typ        reflect.Type
	kind       Kind
	name       string
	attrs      []Attribute
	fields     []*AnyField
	infos      []FieldInfo
	fieldsType reflect.Type
}

// AnyField is the erased form of a FieldInfo.
type AnyField struct {
	owner  reflect.Type
	typ    reflect.Type
	index  int
	name   string
	offset uintptr
	attrs  []Attribute
}

// AnyEnum is the erased form of an EnumInfo.
type AnyEnum struct {
	typ          reflect.Type
	name         string
	attrs        []Attribute
	intType      reflect.Type
	variants     []*AnyVariant
	infos        []VariantInfo
	variantsType reflect.Type
}

// AnyVariant is the erased form of a VariantInfo.
type AnyVariant struct {
	owner        reflect.Type
	typ          reflect.Type
	index        int
	name         string
	attrs        []Attribute
	fields       []*AnyField
	infos        []FieldInfo
	fieldsType   reflect.Type
	raw          uint64
	hasRaw       bool
	discriminant any
}

// AnyFunction is the erased form of a FunctionInfo.
type AnyFunction struct {
	typ        reflect.Type
	name       string
	attrs      []Attribute
	params     []*AnyParameter
	infos      []ParameterInfo
	paramsType reflect.Type
	returnType reflect.Type
}

// AnyParameter is the erased form of a ParameterInfo.
type AnyParameter struct {
	owner string
	typ   reflect.Type
	index int
	name  string
	attrs []Attribute
}

var (
	_ StructInfo    = (*AnyStruct)(nil)
	_ FieldInfo     = (*AnyField)(nil)
	_ EnumInfo      = (*AnyEnum)(nil)
	_ VariantInfo   = (*AnyVariant)(nil)
	_ FunctionInfo  = (*AnyFunction)(nil)
	_ ParameterInfo = (*AnyParameter)(nil)
)

// NewAnyField builds a field mirror from its parts.
func NewAnyField(owner, typ reflect.Type, index int, name string, offset uintptr, attrs []Attribute) *AnyField {
	return &AnyField{owner: owner, typ: typ, index: index, name: name, offset: offset, attrs: attrs}
}

// NewAnyStruct builds a struct mirror from its parts. Without a descriptor
// there is no field list type, so FieldsType reports []*AnyField for a
// struct with fields.
func NewAnyStruct(typ reflect.Type, kind Kind, name string, attrs []Attribute, fields []*AnyField) *AnyStruct {
	ft := noType
	if len(fields) > 0 {
		ft = reflect.TypeOf(fields)
	}
	return newAnyStruct(typ, kind, name, attrs, fields, ft)
}

func newAnyStruct(typ reflect.Type, kind Kind, name string, attrs []Attribute, fields []*AnyField, fieldsType reflect.Type) *AnyStruct {
	infos := make([]FieldInfo, len(fields))
	for i, f := range fields {
		infos[i] = f
	}
	return &AnyStruct{
		typ:        typ,
		kind:       kind,
		name:       name,
		attrs:      attrs,
		fields:     fields,
		infos:      infos,
		fieldsType: fieldsType,
	}
}

// MirrorStruct copies s into an AnyStruct.
func MirrorStruct(s StructInfo) *AnyStruct {
	if a, ok := s.(*AnyStruct); ok {
		return a
	}
	return newAnyStruct(s.Type(), s.Kind(), s.Name(), s.Attributes(), mirrorFields(s.Fields()), s.FieldsType())
}

func mirrorFields(fields []FieldInfo) []*AnyField {
	if len(fields) == 0 {
		return nil
	}
	out := make([]*AnyField, len(fields))
	for i, f := range fields {
		out[i] = MirrorField(f)
	}
	return out
}

// MirrorField copies f into an AnyField.
func MirrorField(f FieldInfo) *AnyField {
	if a, ok := f.(*AnyField); ok {
		return a
	}
	return NewAnyField(f.OwnerType(), f.Type(), f.DeclarationIndex(), f.Name(), f.ByteOffset(), f.Attributes())
}

// MirrorEnum copies d into an AnyEnum. Each variant keeps its
// Discriminant[E], retrievable through AnyVariant.Discriminant.
func MirrorEnum[E any](d EnumDescriptor[E]) *AnyEnum {
	type discriminated interface {
		Discriminant() Discriminant[E]
	}
	e := mirrorEnum(d)
	for i, v := range d.Variants() {
		if dv, ok := v.(discriminated); ok {
			e.variants[i].discriminant = dv.Discriminant()
		}
	}
	return e
}

// MirrorEnumInfo copies e into an AnyEnum without discriminants.
func MirrorEnumInfo(e EnumInfo) *AnyEnum {
	if a, ok := e.(*AnyEnum); ok {
		return a
	}
	return mirrorEnum(e)
}

func mirrorEnum(e EnumInfo) *AnyEnum {
	variants := e.Variants()
	out := &AnyEnum{
		typ:          e.Type(),
		name:         e.Name(),
		attrs:        e.Attributes(),
		intType:      e.IntegerType(),
		variants:     make([]*AnyVariant, len(variants)),
		infos:        make([]VariantInfo, len(variants)),
		variantsType: e.VariantsType(),
	}
	for i, v := range variants {
		raw, hasRaw := v.RawValue()
		fields := mirrorFields(v.Fields())
		av := &AnyVariant{
			owner:      v.OwnerType(),
			typ:        v.Type(),
			index:      v.DeclarationIndex(),
			name:       v.Name(),
			attrs:      v.Attributes(),
			fields:     fields,
			infos:      make([]FieldInfo, len(fields)),
			fieldsType: v.FieldsType(),
			raw:        raw,
			hasRaw:     hasRaw,
		}
		for j, f := range fields {
			av.infos[j] = f
		}
		out.variants[i] = av
		out.infos[i] = av
	}
	return out
}

// MirrorFunction copies f into an AnyFunction.
func MirrorFunction(f FunctionInfo) *AnyFunction {
	if a, ok := f.(*AnyFunction); ok {
		return a
	}
	params := f.Parameters()
	out := &AnyFunction{
		typ:        f.Type(),
		name:       f.Name(),
		attrs:      f.Attributes(),
		params:     make([]*AnyParameter, len(params)),
		infos:      make([]ParameterInfo, len(params)),
		paramsType: f.ParametersType(),
		returnType: f.ReturnType(),
	}
	for i, p := range params {
		ap := &AnyParameter{
			owner: p.OwnerName(),
			typ:   p.Type(),
			index: p.ParameterIndex(),
			name:  p.Name(),
			attrs: p.Attributes(),
		}
		out.params[i] = ap
		out.infos[i] = ap
	}
	return out
}

func (s *AnyStruct) Kind() Kind               { return s.kind }
func (s *AnyStruct) Name() string             { return s.name }
func (s *AnyStruct) Attributes() []Attribute  { return s.attrs }
func (s *AnyStruct) Type() reflect.Type       { return s.typ }
func (s *AnyStruct) FieldCount() int          { return len(s.fields) }
func (s *AnyStruct) Fields() []FieldInfo      { return s.infos }
func (s *AnyStruct) FieldsType() reflect.Type { return s.fieldsType }

// AnyFields returns the field mirrors in declaration order.
func (s *AnyStruct) AnyFields() []*AnyField { return s.fields }

// Field returns the field named name.
func (s *AnyStruct) Field(name string) (*AnyField, bool) {
	for _, f := range s.fields {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

func (f *AnyField) DeclarationIndex() int   { return f.index }
func (f *AnyField) Name() string            { return f.name }
func (f *AnyField) ByteOffset() uintptr     { return f.offset }
func (f *AnyField) Attributes() []Attribute { return f.attrs }
func (f *AnyField) OwnerType() reflect.Type { return f.owner }
func (f *AnyField) Type() reflect.Type      { return f.typ }

// Pointer returns the address of this field inside the value at owner,
// which must be of the owner type.
func (f *AnyField) Pointer(owner unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(owner, f.offset)
}

// Value returns the field of owner, a pointer to the owner type, as a
// reflect.Value. It panics when owner has the wrong type.
func (f *AnyField) Value(owner any) reflect.Value {
	ov := reflect.ValueOf(owner)
	if ov.Kind() != reflect.Pointer || ov.Type().Elem() != f.owner {
		panic("introspect: AnyField.Value: owner is not a *" + f.owner.String())
	}
	return reflect.NewAt(f.typ, f.Pointer(ov.UnsafePointer())).Elem()
}

func (e *AnyEnum) Kind() Kind                 { return KindEnum }
func (e *AnyEnum) Name() string               { return e.name }
func (e *AnyEnum) Attributes() []Attribute    { return e.attrs }
func (e *AnyEnum) Type() reflect.Type         { return e.typ }
func (e *AnyEnum) IntegerType() reflect.Type  { return e.intType }
func (e *AnyEnum) VariantCount() int          { return len(e.variants) }
func (e *AnyEnum) Variants() []VariantInfo    { return e.infos }
func (e *AnyEnum) VariantsType() reflect.Type { return e.variantsType }

// AnyVariants returns the variant mirrors in declaration order.
func (e *AnyEnum) AnyVariants() []*AnyVariant { return e.variants }

// Variant returns the variant named name.
func (e *AnyEnum) Variant(name string) (*AnyVariant, bool) {
	for _, v := range e.variants {
		if v.name == name {
			return v, true
		}
	}
	return nil, false
}

// VariantByValue returns the variant of an integer enum with the given raw
// value.
func (e *AnyEnum) VariantByValue(raw uint64) (*AnyVariant, bool) {
	for _, v := range e.variants {
		if v.hasRaw && v.raw == raw {
			return v, true
		}
	}
	return nil, false
}

func (v *AnyVariant) DeclarationIndex() int    { return v.index }
func (v *AnyVariant) Name() string             { return v.name }
func (v *AnyVariant) Attributes() []Attribute  { return v.attrs }
func (v *AnyVariant) OwnerType() reflect.Type  { return v.owner }
func (v *AnyVariant) Type() reflect.Type       { return v.typ }
func (v *AnyVariant) FieldCount() int          { return len(v.fields) }
func (v *AnyVariant) Fields() []FieldInfo      { return v.infos }
func (v *AnyVariant) FieldsType() reflect.Type { return v.fieldsType }
func (v *AnyVariant) RawValue() (uint64, bool) { return v.raw, v.hasRaw }

// AnyFields returns the field mirrors of the variant.
func (v *AnyVariant) AnyFields() []*AnyField { return v.fields }

// Discriminant returns the Discriminant[E] of the variant as an any, or nil
// when the mirror was built without one. Check OwnerType before asserting.
func (v *AnyVariant) Discriminant() any { return v.discriminant }

func (f *AnyFunction) Kind() Kind                   { return KindFunction }
func (f *AnyFunction) Name() string                 { return f.name }
func (f *AnyFunction) Attributes() []Attribute      { return f.attrs }
func (f *AnyFunction) Type() reflect.Type           { return f.typ }
func (f *AnyFunction) ParameterCount() int          { return len(f.params) }
func (f *AnyFunction) Parameters() []ParameterInfo  { return f.infos }
func (f *AnyFunction) ParametersType() reflect.Type { return f.paramsType }
func (f *AnyFunction) ReturnType() reflect.Type     { return f.returnType }

// AnyParameters returns the parameter mirrors in declaration order.
func (f *AnyFunction) AnyParameters() []*AnyParameter { return f.params }

func (p *AnyParameter) ParameterIndex() int     { return p.index }
func (p *AnyParameter) Name() string            { return p.name }
func (p *AnyParameter) Attributes() []Attribute { return p.attrs }
func (p *AnyParameter) OwnerName() string       { return p.owner }
func (p *AnyParameter) Type() reflect.Type      { return p.typ }
