package introspect

import "reflect"

// NoType stands for an absent type: the fields of a unit variant, the
// parameter list of a function without parameters, the result of a function
// that returns nothing, or the integer value of a non-integer enum.
//
// NoType describes itself as a struct with no fields.
type NoType struct{}

var noType = reflect.TypeFor[NoType]()

// NoTypeOf returns the reflect.Type of NoType.
func NoTypeOf() reflect.Type { return noType }

// IsNoType reports whether t is NoType.
func IsNoType(t reflect.Type) bool { return t == noType }

func (NoType) Kind() Kind               { return KindStruct }
func (NoType) Name() string             { return "introspect.NoType" }
func (NoType) Attributes() []Attribute  { return nil }
func (NoType) Type() reflect.Type       { return noType }
func (NoType) FieldCount() int          { return 0 }
func (NoType) Fields() []FieldInfo      { return nil }
func (NoType) FieldsType() reflect.Type { return noType }
func (NoType) Owner() *NoType           { return nil }
func (NoType) String() string           { return "introspect.NoType" }
