package introspect_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/wippyai/introspect"
	"github.com/wippyai/introspect/examples/cats"
	"github.com/wippyai/introspect/examples/cats/catinfo"
)

func TestMirrorStruct(t *testing.T) {
	s := introspect.MirrorStruct(catinfo.Meow{})
	if introspect.MirrorStruct(s) != s {
		t.Error("mirroring a mirror should return it")
	}
	if s.Type() != reflect.TypeFor[cats.Meow]() || s.FieldCount() != 2 {
		t.Fatalf("mirror = %v with %d fields", s.Type(), s.FieldCount())
	}
	if s.FieldsType() != (catinfo.Meow{}).FieldsType() {
		t.Error("FieldsType should be copied")
	}
	if err := introspect.ValidateStruct(s); err != nil {
		t.Errorf("mirror should validate: %v", err)
	}

	m := cats.NewMeow(4, 1, 3*time.Hour)
	f, ok := s.Field("ScratchCouch")
	if !ok {
		t.Fatal("ScratchCouch missing")
	}
	v := f.Value(&m)
	if v.Interface().(time.Duration) != 3*time.Hour {
		t.Errorf("Value = %v", v)
	}
	v.SetInt(int64(time.Minute))
	if m.ScratchCouch != time.Minute {
		t.Error("Value should be addressable and settable")
	}

	defer func() {
		if recover() == nil {
			t.Error("Value with a wrong owner should panic")
		}
	}()
	f.Value(&cats.Yarn{})
}

func TestNewAnyStruct(t *testing.T) {
	empty := introspect.NewAnyStruct(reflect.TypeFor[struct{}](), introspect.KindStruct, "empty", nil, nil)
	if !introspect.IsNoType(empty.FieldsType()) {
		t.Errorf("empty FieldsType = %v", empty.FieldsType())
	}

	type pair struct{ A, B int16 }
	pt := reflect.TypeFor[pair]()
	fields := []*introspect.AnyField{
		introspect.NewAnyField(pt, reflect.TypeFor[int16](), 0, "A", 0, nil),
		introspect.NewAnyField(pt, reflect.TypeFor[int16](), 1, "B", 2, nil),
	}
	s := introspect.NewAnyStruct(pt, introspect.KindTuple, "pair", nil, fields)
	if s.Kind() != introspect.KindTuple || s.FieldCount() != 2 {
		t.Errorf("s = %v/%d", s.Kind(), s.FieldCount())
	}
	if err := introspect.ValidateStruct(s); err != nil {
		t.Errorf("ValidateStruct: %v", err)
	}
}

func TestMirrorEnum(t *testing.T) {
	e := introspect.MirrorEnum[cats.Mood](catinfo.Mood{})
	if e.VariantCount() != 4 || e.IntegerType() != reflect.TypeFor[int8]() {
		t.Fatalf("mirror = %d variants, %v", e.VariantCount(), e.IntegerType())
	}
	for _, v := range e.AnyVariants() {
		d, ok := v.Discriminant().(introspect.Discriminant[cats.Mood])
		if !ok {
			t.Fatalf("%s: discriminant %T", v.Name(), v.Discriminant())
		}
		raw, _ := v.RawValue()
		want, _ := catinfo.Mood{}.DiscriminantOf(cats.Mood(int8(raw)))
		if d != want {
			t.Errorf("%s: discriminant %v, want %v", v.Name(), d, want)
		}
	}
	if v, ok := e.VariantByValue(1); !ok || v.Name() != "MoodPlayful" {
		t.Errorf("VariantByValue(1) = %v, %v", v, ok)
	}
	if _, ok := e.VariantByValue(3); ok {
		t.Error("VariantByValue(3) should fail")
	}
	if err := introspect.ValidateEnum(e); err != nil {
		t.Errorf("ValidateEnum: %v", err)
	}

	toy := introspect.MirrorEnumInfo(catinfo.Toy{})
	yarn, ok := toy.Variant("Yarn")
	if !ok || len(yarn.AnyFields()) != 2 || yarn.AnyFields()[1].ByteOffset() != 16 {
		t.Errorf("Yarn mirror = %+v", yarn)
	}
	if yarn.Discriminant() != nil {
		t.Error("MirrorEnumInfo keeps no discriminants")
	}
}

func TestMirrorFunction(t *testing.T) {
	f := introspect.MirrorFunction(catinfo.Pet{})
	if f.Kind() != introspect.KindFunction || f.ParameterCount() != 2 {
		t.Fatalf("mirror = %v/%d", f.Kind(), f.ParameterCount())
	}
	if p := f.AnyParameters()[1]; p.Name() != "strokes" || p.Type() != reflect.TypeFor[int]() {
		t.Errorf("parameter 1 = %s %v", p.Name(), p.Type())
	}
	if f.ReturnType() != reflect.TypeFor[cats.Mood]() {
		t.Errorf("ReturnType = %v", f.ReturnType())
	}
	if err := introspect.ValidateFunction(f); err != nil {
		t.Errorf("ValidateFunction: %v", err)
	}
}
