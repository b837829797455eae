package introspect

import (
	"fmt"
	"io"
	"iter"
	"reflect"
)

// StructVisitor is called once per described struct, union or tuple.
type StructVisitor[Out any] interface {
	VisitStruct(s StructInfo) Out
}

// StructVisitorMut is the optional mutating form of StructVisitor.
type StructVisitorMut[Out any] interface {
	VisitStructMut(s StructInfo) Out
}

// EnumVisitor is called once per described enum.
type EnumVisitor[Out any] interface {
	VisitEnum(e EnumInfo) Out
}

// EnumVisitorMut is the optional mutating form of EnumVisitor.
type EnumVisitorMut[Out any] interface {
	VisitEnumMut(e EnumInfo) Out
}

// FunctionVisitor is called once per described function.
type FunctionVisitor[Out any] interface {
	VisitFunction(f FunctionInfo) Out
}

// FunctionVisitorMut is the optional mutating form of FunctionVisitor.
type FunctionVisitorMut[Out any] interface {
	VisitFunctionMut(f FunctionInfo) Out
}

// FieldVisitor is called once per field with its declaration index.
type FieldVisitor[Out any] interface {
	VisitField(index int, f FieldInfo) Out
}

// FieldVisitorMut is the optional mutating form of FieldVisitor.
type FieldVisitorMut[Out any] interface {
	VisitFieldMut(index int, f FieldInfo) Out
}

// VariantVisitor is called once per variant with its declaration index.
type VariantVisitor[Out any] interface {
	VisitVariant(index int, v VariantInfo) Out
}

// VariantVisitorMut is the optional mutating form of VariantVisitor.
type VariantVisitorMut[Out any] interface {
	VisitVariantMut(index int, v VariantInfo) Out
}

// ParameterVisitor is called once per parameter with its position.
type ParameterVisitor[Out any] interface {
	VisitParameter(index int, p ParameterInfo) Out
}

// ParameterVisitorMut is the optional mutating form of ParameterVisitor.
type ParameterVisitorMut[Out any] interface {
	VisitParameterMut(index int, p ParameterInfo) Out
}

// DescriptorVisitor handles every kind of descriptor.
type DescriptorVisitor[Out any] interface {
	StructVisitor[Out]
	EnumVisitor[Out]
	FunctionVisitor[Out]
	FieldVisitor[Out]
	VariantVisitor[Out]
	ParameterVisitor[Out]
}

// The drivers below take the descriptor as a type argument and pass its zero
// value to the visitor. D must be a concrete descriptor type.
//
// The Mut drivers call the mutating method when v has one and fall back to
// the plain method otherwise.

// VisitStruct passes the struct descriptor D to v.
func VisitStruct[D StructInfo, Out any](v StructVisitor[Out]) Out {
	var d D
	return v.VisitStruct(d)
}

// VisitStructMut prefers VisitStructMut when v implements it.
func VisitStructMut[D StructInfo, Out any](v StructVisitor[Out]) Out {
	var d D
	if m, ok := v.(StructVisitorMut[Out]); ok {
		return m.VisitStructMut(d)
	}
	return v.VisitStruct(d)
}

// VisitEnum passes the enum descriptor D to v.
func VisitEnum[D EnumInfo, Out any](v EnumVisitor[Out]) Out {
	var d D
	return v.VisitEnum(d)
}

// VisitEnumMut prefers VisitEnumMut when v implements it.
func VisitEnumMut[D EnumInfo, Out any](v EnumVisitor[Out]) Out {
	var d D
	if m, ok := v.(EnumVisitorMut[Out]); ok {
		return m.VisitEnumMut(d)
	}
	return v.VisitEnum(d)
}

// VisitFunction passes the function descriptor D to v.
func VisitFunction[D FunctionInfo, Out any](v FunctionVisitor[Out]) Out {
	var d D
	return v.VisitFunction(d)
}

// VisitFunctionMut prefers VisitFunctionMut when v implements it.
func VisitFunctionMut[D FunctionInfo, Out any](v FunctionVisitor[Out]) Out {
	var d D
	if m, ok := v.(FunctionVisitorMut[Out]); ok {
		return m.VisitFunctionMut(d)
	}
	return v.VisitFunction(d)
}

// VisitField passes the field descriptor D to v with its declaration index.
func VisitField[D FieldInfo, Out any](v FieldVisitor[Out]) Out {
	var d D
	return v.VisitField(d.DeclarationIndex(), d)
}

// VisitFieldMut prefers VisitFieldMut when v implements it.
func VisitFieldMut[D FieldInfo, Out any](v FieldVisitor[Out]) Out {
	var d D
	if m, ok := v.(FieldVisitorMut[Out]); ok {
		return m.VisitFieldMut(d.DeclarationIndex(), d)
	}
	return v.VisitField(d.DeclarationIndex(), d)
}

// VisitVariant passes the variant descriptor D to v with its declaration
// index.
func VisitVariant[D VariantInfo, Out any](v VariantVisitor[Out]) Out {
	var d D
	return v.VisitVariant(d.DeclarationIndex(), d)
}

// VisitVariantMut prefers VisitVariantMut when v implements it.
func VisitVariantMut[D VariantInfo, Out any](v VariantVisitor[Out]) Out {
	var d D
	if m, ok := v.(VariantVisitorMut[Out]); ok {
		return m.VisitVariantMut(d.DeclarationIndex(), d)
	}
	return v.VisitVariant(d.DeclarationIndex(), d)
}

// VisitParameter passes the parameter descriptor D to v with its position.
func VisitParameter[D ParameterInfo, Out any](v ParameterVisitor[Out]) Out {
	var d D
	return v.VisitParameter(d.ParameterIndex(), d)
}

// VisitParameterMut prefers VisitParameterMut when v implements it.
func VisitParameterMut[D ParameterInfo, Out any](v ParameterVisitor[Out]) Out {
	var d D
	if m, ok := v.(ParameterVisitorMut[Out]); ok {
		return m.VisitParameterMut(d.ParameterIndex(), d)
	}
	return v.VisitParameter(d.ParameterIndex(), d)
}

// OverFields visits the fields of s in declaration order, yielding each
// index with the visitor's result. Stopping the iteration stops visiting.
func OverFields[Out any](s StructInfo, v FieldVisitor[Out]) iter.Seq2[int, Out] {
	return func(yield func(int, Out) bool) {
		for i, f := range s.Fields() {
			if !yield(i, v.VisitField(i, f)) {
				return
			}
		}
	}
}

// OverVariantFields is OverFields for the fields of an enum variant.
func OverVariantFields[Out any](vr VariantInfo, v FieldVisitor[Out]) iter.Seq2[int, Out] {
	return func(yield func(int, Out) bool) {
		for i, f := range vr.Fields() {
			if !yield(i, v.VisitField(i, f)) {
				return
			}
		}
	}
}

// OverVariants visits the variants of e in declaration order.
func OverVariants[Out any](e EnumInfo, v VariantVisitor[Out]) iter.Seq2[int, Out] {
	return func(yield func(int, Out) bool) {
		for i, vr := range e.Variants() {
			if !yield(i, v.VisitVariant(i, vr)) {
				return
			}
		}
	}
}

// OverParameters visits the parameters of f in declaration order.
func OverParameters[Out any](f FunctionInfo, v ParameterVisitor[Out]) iter.Seq2[int, Out] {
	return func(yield func(int, Out) bool) {
		for i, p := range f.Parameters() {
			if !yield(i, v.VisitParameter(i, p)) {
				return
			}
		}
	}
}

// Walk dispatches d to the visitor method for its kind. It reports false
// when d does not implement the contract its kind promises.
func Walk[Out any](d AggregateDescriptor, v DescriptorVisitor[Out]) (Out, bool) {
	var zero Out
	switch d.Kind() {
	case KindStruct, KindUnion, KindTuple:
		if s, ok := d.(StructInfo); ok {
			return v.VisitStruct(s), true
		}
	case KindEnum:
		if e, ok := d.(EnumInfo); ok {
			return v.VisitEnum(e), true
		}
	case KindFunction:
		if f, ok := d.(FunctionInfo); ok {
			return v.VisitFunction(f), true
		}
	}
	return zero, false
}

// Printer writes a plain-text outline of the descriptors it visits.
//
//	struct example.com/cats.Meow, with 2 fields:
//		PurrLevel (int32, 0)
//		ScratchCouch (time.Duration, 8)
type Printer struct {
	W io.Writer
}

var _ DescriptorVisitor[error] = Printer{}

func (p Printer) VisitStruct(s StructInfo) error {
	if _, err := fmt.Fprintf(p.W, "%s %s, with %d fields:\n", s.Kind().Keyword(), s.Name(), s.FieldCount()); err != nil {
		return err
	}
	for _, err := range OverFields[error](s, p) {
		if err != nil {
			return err
		}
	}
	return nil
}

func (p Printer) VisitField(_ int, f FieldInfo) error {
	_, err := fmt.Fprintf(p.W, "\t%s (%s, %d)\n", displayName(f.Name()), f.Type(), f.ByteOffset())
	return err
}

func (p Printer) VisitEnum(e EnumInfo) error {
	if _, err := fmt.Fprintf(p.W, "enum %s, with %d variants:\n", e.Name(), e.VariantCount()); err != nil {
		return err
	}
	for _, err := range OverVariants[error](e, p) {
		if err != nil {
			return err
		}
	}
	return nil
}

func (p Printer) VisitVariant(_ int, v VariantInfo) error {
	if raw, ok := v.RawValue(); ok {
		_, err := fmt.Fprintf(p.W, "\t%s = %s\n", v.Name(), formatRaw(v.OwnerType(), raw))
		return err
	}
	if IsNoType(v.FieldsType()) {
		_, err := fmt.Fprintf(p.W, "\t%s\n", v.Name())
		return err
	}
	if _, err := fmt.Fprintf(p.W, "\t%s, with %d fields:\n", v.Name(), v.FieldCount()); err != nil {
		return err
	}
	for _, f := range v.Fields() {
		if _, err := fmt.Fprintf(p.W, "\t\t%s (%s, %d)\n", displayName(f.Name()), f.Type(), f.ByteOffset()); err != nil {
			return err
		}
	}
	return nil
}

func (p Printer) VisitFunction(f FunctionInfo) error {
	if _, err := fmt.Fprintf(p.W, "fn %s, with %d parameters:\n", f.Name(), f.ParameterCount()); err != nil {
		return err
	}
	for _, err := range OverParameters[error](f, p) {
		if err != nil {
			return err
		}
	}
	if IsNoType(f.ReturnType()) {
		return nil
	}
	_, err := fmt.Fprintf(p.W, "\treturns %s\n", f.ReturnType())
	return err
}

func (p Printer) VisitParameter(_ int, prm ParameterInfo) error {
	_, err := fmt.Fprintf(p.W, "\t%s (%s)\n", displayName(prm.Name()), prm.Type())
	return err
}

func displayName(name string) string {
	if name == "" {
		return "_"
	}
	return name
}

// formatRaw renders a RawValue in the signedness of the enum type t.
func formatRaw(t reflect.Type, raw uint64) string {
	if t != nil {
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return fmt.Sprint(int64(raw))
		}
	}
	return fmt.Sprint(raw)
}
