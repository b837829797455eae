package introspect

import (
	"reflect"
	"strconv"
)

// AggregateDescriptor is implemented by every struct, union, tuple, enum and
// function descriptor.
type AggregateDescriptor interface {
	Kind() Kind
	// Name is the fully qualified name, import/path.Type.
	Name() string
	Attributes() []Attribute
}

// StructInfo describes a struct, union or tuple.
type StructInfo interface {
	AggregateDescriptor
	Type() reflect.Type
	FieldCount() int
	// Fields lists the visible fields in declaration order.
	Fields() []FieldInfo
	// FieldsType is the struct type listing the field descriptor types in
	// order, or NoType when there are no fields.
	FieldsType() reflect.Type
}

// StructDescriptor is a StructInfo bound to the Go type T it describes.
// Owner is a type marker; it returns nil.
type StructDescriptor[T any] interface {
	StructInfo
	Owner() *T
}

// FieldInfo describes one field of a struct, union, tuple or enum variant.
type FieldInfo interface {
	// DeclarationIndex is the position of the field among the visible fields.
	DeclarationIndex() int
	// Name is empty for unnamed members.
	Name() string
	// ByteOffset is the distance from the start of the owner.
	ByteOffset() uintptr
	Attributes() []Attribute
	OwnerType() reflect.Type
	Type() reflect.Type
}

// FieldDescriptor is a FieldInfo bound to its owner type O and field type T.
type FieldDescriptor[O, T any] interface {
	FieldInfo
	Of(owner *O) *T
}

// EnumInfo describes an integer enum or a sum enum.
type EnumInfo interface {
	AggregateDescriptor
	Type() reflect.Type
	// IntegerType is the underlying integer type of an integer enum, or
	// NoType for a sum enum.
	IntegerType() reflect.Type
	VariantCount() int
	Variants() []VariantInfo
	// VariantsType is the struct type listing the variant descriptor types
	// in order, or NoType when there are no variants.
	VariantsType() reflect.Type
}

// EnumDescriptor is an EnumInfo bound to the enum type E. DiscriminantOf
// reports false for values that match no declared variant.
type EnumDescriptor[E any] interface {
	EnumInfo
	DiscriminantOf(v E) (Discriminant[E], bool)
}

// VariantInfo describes one variant of an enum.
type VariantInfo interface {
	DeclarationIndex() int
	Name() string
	Attributes() []Attribute
	// OwnerType is the enum type.
	OwnerType() reflect.Type
	// Type is the variant type of a sum enum, or NoType for an integer enum.
	Type() reflect.Type
	FieldCount() int
	// Fields have offsets relative to the start of Type.
	Fields() []FieldInfo
	// FieldsType is NoType for unit-like variants.
	FieldsType() reflect.Type
	// RawValue is the integer value converted to uint64, sign-extended for
	// signed enums. It reports false for sum enums.
	RawValue() (uint64, bool)
}

// VariantDescriptor is a VariantInfo bound to its enum type E and integer
// type I. I is NoType for sum enums, whose IntegerValue reports false.
type VariantDescriptor[E, I any] interface {
	VariantInfo
	Discriminant() Discriminant[E]
	IntegerValue() (I, bool)
}

// FunctionInfo describes a function.
type FunctionInfo interface {
	AggregateDescriptor
	Type() reflect.Type
	ParameterCount() int
	Parameters() []ParameterInfo
	// ParametersType is the struct type listing the parameter descriptor
	// types in order, or NoType when there are no parameters.
	ParametersType() reflect.Type
	// ReturnType is NoType for functions without results, the result type
	// for a single result, and a tuple struct for several.
	ReturnType() reflect.Type
}

// FunctionDescriptor is a FunctionInfo bound to the function type F.
type FunctionDescriptor[F any] interface {
	FunctionInfo
	Func() F
}

// ParameterInfo describes one function parameter.
type ParameterInfo interface {
	ParameterIndex() int
	// Name is empty for blank or unnamed parameters.
	Name() string
	Attributes() []Attribute
	// OwnerName is the name of the function.
	OwnerName() string
	Type() reflect.Type
}

// Discriminant identifies a variant of the enum E. Values are only
// comparable with discriminants of the same enum.
type Discriminant[E any] struct {
	key uint64
}

// NewDiscriminant returns the discriminant with the given key. Integer enums
// use the variant value; sum enums use the declaration index.
func NewDiscriminant[E any](key uint64) Discriminant[E] {
	return Discriminant[E]{key: key}
}

func (d Discriminant[E]) String() string {
	return "Discriminant(" + strconv.FormatUint(d.key, 10) + ")"
}

// Defaults supplies the default members of every descriptor contract.
// Descriptors embed it and override what they describe.
type Defaults struct{}

func (Defaults) Attributes() []Attribute      { return nil }
func (Defaults) FieldCount() int              { return 0 }
func (Defaults) Fields() []FieldInfo          { return nil }
func (Defaults) FieldsType() reflect.Type     { return noType }
func (Defaults) VariantCount() int            { return 0 }
func (Defaults) Variants() []VariantInfo      { return nil }
func (Defaults) VariantsType() reflect.Type   { return noType }
func (Defaults) IntegerType() reflect.Type    { return noType }
func (Defaults) ParameterCount() int          { return 0 }
func (Defaults) Parameters() []ParameterInfo  { return nil }
func (Defaults) ParametersType() reflect.Type { return noType }
func (Defaults) ReturnType() reflect.Type     { return noType }
func (Defaults) RawValue() (uint64, bool)     { return 0, false }
