package gen

import (
	"go/constant"
	"go/token"
	"go/types"

	"github.com/wippyai/introspect"
)

// Package is the set of annotated declarations of one Go package.
type Package struct {
	Name string
	Path string
	// Dir is the package directory, empty when built from memory.
	Dir   string
	Decls []Decl
	// taken holds package-scope names declared outside generated files.
	taken map[string]bool
	types *types.Package
}

// Decl is one annotated declaration: *Struct, *Enum or *Func.
type Decl interface {
	DeclName() string
	Exported() bool
}

type Struct struct {
	Name   string
	Attrs  []introspect.Attribute
	Fields []*Field
	Type   types.Type
}

type Field struct {
	Name     string
	Type     types.Type
	Attrs    []introspect.Attribute
	exported bool
}

type Enum struct {
	Name  string
	Attrs []introspect.Attribute
	Type  types.Type
	// Integer is the underlying basic type of an integer enum, nil for sum
	// enums.
	Integer  *types.Basic
	Variants []*Variant
}

type Variant struct {
	Name  string
	Attrs []introspect.Attribute
	// Type is the implementing type of a sum enum variant.
	Type types.Type
	// Pointer is true when only *Type implements the enum interface.
	Pointer bool
	Fields  []*Field
	// Value is the constant of an integer enum variant.
	Value    constant.Value
	exported bool
}

type Func struct {
	Name   string
	Attrs  []introspect.Attribute
	Sig    *types.Signature
	Params []*Param
}

type Param struct {
	// Name is empty for blank and unnamed parameters.
	Name string
	Type types.Type
}

func (s *Struct) DeclName() string { return s.Name }
func (s *Struct) Exported() bool   { return token.IsExported(s.Name) }
func (e *Enum) DeclName() string   { return e.Name }
func (e *Enum) Exported() bool     { return token.IsExported(e.Name) }
func (f *Func) DeclName() string   { return f.Name }
func (f *Func) Exported() bool     { return token.IsExported(f.Name) }

// Exported reports whether the field can be named outside its package.
func (f *Field) Exported() bool { return f.exported }

// Exported reports whether the variant can be named outside its package.
func (v *Variant) Exported() bool { return v.exported }

// sameValue reports whether o is an integer variant with v's value.
func (v *Variant) sameValue(o *Variant) bool {
	return v.Value != nil && o.Value != nil && constant.Compare(v.Value, token.EQL, o.Value)
}

// Lookup returns the declaration named name.
func (p *Package) Lookup(name string) (Decl, bool) {
	for _, d := range p.Decls {
		if d.DeclName() == name {
			return d, true
		}
	}
	return nil, false
}
