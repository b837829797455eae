package introspect_test

import (
	"reflect"
	"testing"
	"time"
	"unsafe"

	"github.com/wippyai/introspect"
	"github.com/wippyai/introspect/examples/cats"
	"github.com/wippyai/introspect/examples/cats/catinfo"
	"github.com/wippyai/introspect/ptr"
)

func TestMeowForeignScope(t *testing.T) {
	var info catinfo.Meow

	if got, want := info.Name(), "github.com/wippyai/introspect/examples/cats.Meow"; got != want {
		t.Errorf("Name = %q, want %q", got, want)
	}
	if info.Kind() != introspect.KindStruct {
		t.Errorf("Kind = %v", info.Kind())
	}
	if info.FieldCount() != 2 {
		t.Fatalf("FieldCount = %d, want 2", info.FieldCount())
	}

	want := []struct {
		name   string
		typ    reflect.Type
		offset uintptr
	}{
		{"PurrLevel", reflect.TypeFor[int32](), 0},
		{"ScratchCouch", reflect.TypeFor[time.Duration](), 8},
	}
	for i, f := range info.Fields() {
		if f.DeclarationIndex() != i {
			t.Errorf("field %d: DeclarationIndex = %d", i, f.DeclarationIndex())
		}
		if f.Name() != want[i].name || f.Type() != want[i].typ || f.ByteOffset() != want[i].offset {
			t.Errorf("field %d = %s (%s, %d), want %s (%s, %d)", i,
				f.Name(), f.Type(), f.ByteOffset(), want[i].name, want[i].typ, want[i].offset)
		}
		if f.OwnerType() != reflect.TypeFor[cats.Meow]() {
			t.Errorf("field %d: OwnerType = %v", i, f.OwnerType())
		}
		if f.Name() == "hairballs" {
			t.Error("unexported field visible outside its package")
		}
	}

	if !introspect.HasAttribute(info.Attributes(), "serializable") {
		t.Errorf("Attributes = %v", info.Attributes())
	}
	if got := info.FieldsType().NumField(); got != 2 {
		t.Errorf("FieldsType has %d fields", got)
	}
	if err := introspect.ValidateStruct(info); err != nil {
		t.Errorf("ValidateStruct: %v", err)
	}
	var _ introspect.StructDescriptor[cats.Meow] = info
}

func TestMeowDefiningScope(t *testing.T) {
	var info cats.MeowInfo
	if info.FieldCount() != 3 {
		t.Fatalf("FieldCount = %d, want 3", info.FieldCount())
	}
	names := make([]string, 0, 3)
	for _, f := range info.Fields() {
		names = append(names, f.Name())
	}
	if !reflect.DeepEqual(names, []string{"PurrLevel", "hairballs", "ScratchCouch"}) {
		t.Errorf("names = %v", names)
	}
	if off := info.Fields()[2].ByteOffset(); off != 8 {
		t.Errorf("ScratchCouch offset = %d, want 8", off)
	}
	if err := introspect.ValidateStruct(info); err != nil {
		t.Errorf("ValidateStruct: %v", err)
	}
}

func TestGetField(t *testing.T) {
	m := cats.NewMeow(7, 3, 90*time.Second)

	level := introspect.GetField[catinfo.MeowPurrLevel, cats.Meow, int32](&m)
	if level != m.PurrLevel {
		t.Errorf("PurrLevel = %d, want %d", level, m.PurrLevel)
	}
	couch := introspect.GetField[catinfo.MeowScratchCouch, cats.Meow, time.Duration](&m)
	if couch != m.ScratchCouch {
		t.Errorf("ScratchCouch = %v, want %v", couch, m.ScratchCouch)
	}

	p := introspect.GetFieldMut[catinfo.MeowPurrLevel, cats.Meow, int32](&m)
	if p != &m.PurrLevel {
		t.Fatal("GetFieldMut should point into the owner")
	}
	*p = 9
	if m.PurrLevel != 9 {
		t.Errorf("write through GetFieldMut lost: %d", m.PurrLevel)
	}
	if m.Hairballs() != 3 {
		t.Error("neighbouring field changed")
	}

	if got := (catinfo.MeowPurrLevel{}).Of(&m); got != p {
		t.Error("Of and GetFieldMut disagree")
	}
}

func TestFieldPtr(t *testing.T) {
	meows := []cats.Meow{cats.NewMeow(1, 0, time.Second), cats.NewMeow(2, 0, time.Minute)}
	second := ptr.FromSlice(meows).Add(1)

	couch := introspect.FieldPtr[catinfo.MeowScratchCouch, cats.Meow, time.Duration](second)
	if got := couch.AsRef(); got != &meows[1].ScratchCouch {
		t.Fatalf("FieldPtr = %p, want %p", got, &meows[1].ScratchCouch)
	}
	if !couch.SameRegion(ptr.Cast[time.Duration](second)) {
		t.Error("FieldPtr should keep the owner's region")
	}
	if v, ok := couch.Read(); !ok || v != time.Minute {
		t.Errorf("Read = %v, %v", v, ok)
	}

	f := catinfo.MeowScratchCouch{}
	addr := introspect.FieldOf(f, unsafe.Pointer(&meows[0]))
	if *(*time.Duration)(addr) != time.Second {
		t.Error("FieldOf points at the wrong field")
	}
}

func TestIntegerEnumRoundTrip(t *testing.T) {
	var info catinfo.Mood
	variants := []introspect.VariantDescriptor[cats.Mood, int8]{
		catinfo.MoodSleepy{}, catinfo.MoodPlayful{}, catinfo.MoodHungry{}, catinfo.MoodGrumpy{},
	}
	if info.VariantCount() != len(variants) {
		t.Fatalf("VariantCount = %d", info.VariantCount())
	}
	if info.IntegerType() != reflect.TypeFor[int8]() {
		t.Errorf("IntegerType = %v", info.IntegerType())
	}

	for i, v := range variants {
		if v.DeclarationIndex() != i || info.Variants()[i].Name() != v.Name() {
			t.Errorf("variant %d out of order: %s", i, v.Name())
		}
		n, ok := v.IntegerValue()
		if !ok {
			t.Fatalf("%s has no integer value", v.Name())
		}
		d, ok := info.DiscriminantOf(cats.Mood(n))
		if !ok {
			t.Fatalf("%s: value %d not recognised", v.Name(), n)
		}
		if d != v.Discriminant() {
			t.Errorf("%s: discriminant %v, want %v", v.Name(), d, v.Discriminant())
		}
		if !introspect.IsNoType(v.FieldsType()) || v.FieldCount() != 0 {
			t.Errorf("%s should be unit-like", v.Name())
		}
	}

	if _, ok := info.DiscriminantOf(cats.Mood(2)); ok {
		t.Error("undeclared value should not have a discriminant")
	}
	a, _ := info.DiscriminantOf(cats.MoodHungry)
	b, _ := info.DiscriminantOf(cats.MoodSleepy)
	if a == b {
		t.Error("distinct variants share a discriminant")
	}
	if err := introspect.ValidateEnum(info); err != nil {
		t.Errorf("ValidateEnum: %v", err)
	}
}

func TestSumEnumUnitVariant(t *testing.T) {
	var info catinfo.Toy
	if !introspect.IsNoType(info.IntegerType()) {
		t.Errorf("sum enum IntegerType = %v", info.IntegerType())
	}

	var laser introspect.VariantDescriptor[cats.Toy, introspect.NoType] = catinfo.ToyLaser{}
	if !introspect.IsNoType(laser.FieldsType()) {
		t.Errorf("Laser FieldsType = %v, want NoType", laser.FieldsType())
	}
	if laser.FieldCount() != 0 || laser.Fields() != nil {
		t.Error("Laser should have no fields")
	}
	if _, ok := laser.IntegerValue(); ok {
		t.Error("sum enum variants have no integer value")
	}
	if _, ok := laser.RawValue(); ok {
		t.Error("sum enum variants have no raw value")
	}

	var yarn introspect.VariantDescriptor[cats.Toy, introspect.NoType] = catinfo.ToyYarn{}
	if yarn.FieldCount() != 2 || introspect.IsNoType(yarn.FieldsType()) {
		t.Errorf("Yarn fields = %d (%v)", yarn.FieldCount(), yarn.FieldsType())
	}
	length := yarn.Fields()[1]
	if length.OwnerType() != reflect.TypeFor[cats.Yarn]() {
		t.Errorf("Yarn field owner = %v", length.OwnerType())
	}
	y := cats.Yarn{Color: "red", Length: 2.5}
	if got := introspect.GetField[catinfo.ToyYarnLength, cats.Yarn, float32](&y); got != 2.5 {
		t.Errorf("Length = %v", got)
	}

	for _, tc := range []struct {
		toy  cats.Toy
		want introspect.Discriminant[cats.Toy]
	}{
		{cats.Yarn{}, yarn.Discriminant()},
		{&cats.Yarn{}, yarn.Discriminant()},
		{cats.Laser{}, laser.Discriminant()},
	} {
		got, ok := info.DiscriminantOf(tc.toy)
		if !ok || got != tc.want {
			t.Errorf("DiscriminantOf(%T) = %v, %v", tc.toy, got, ok)
		}
	}
	if _, ok := info.DiscriminantOf(nil); ok {
		t.Error("nil toy has no discriminant")
	}
	if err := introspect.ValidateEnum(info); err != nil {
		t.Errorf("ValidateEnum: %v", err)
	}
}

func TestFunctionDescriptors(t *testing.T) {
	var pet catinfo.Pet
	if pet.ParameterCount() != 2 || pet.ReturnType() != reflect.TypeFor[cats.Mood]() {
		t.Errorf("Pet: %d parameters, returns %v", pet.ParameterCount(), pet.ReturnType())
	}
	m := cats.NewMeow(9, 0, 0)
	if mood := pet.Func()(&m, 5); mood != cats.MoodSleepy || m.PurrLevel != 10 {
		t.Errorf("Func() call: mood %v, purr %d", mood, m.PurrLevel)
	}
	for i, p := range pet.Parameters() {
		if p.ParameterIndex() != i || p.OwnerName() != pet.Name() {
			t.Errorf("parameter %d: index %d owner %q", i, p.ParameterIndex(), p.OwnerName())
		}
	}

	var feed catinfo.Feed
	if feed.Parameters()[2].Name() != "" {
		t.Error("blank parameter should have an empty name")
	}
	if rt := feed.ReturnType(); rt.Kind() != reflect.Struct || rt.NumField() != 2 {
		t.Errorf("Feed ReturnType = %v", rt)
	}
	for _, f := range []introspect.FunctionInfo{pet, feed} {
		if err := introspect.ValidateFunction(f); err != nil {
			t.Errorf("ValidateFunction(%s): %v", f.Name(), err)
		}
	}
}

// bare only implements what a struct without fields must.
type bare struct{ introspect.Defaults }

func (bare) Kind() introspect.Kind { return introspect.KindStruct }
func (bare) Name() string          { return "test.bare" }
func (bare) Type() reflect.Type    { return reflect.TypeFor[struct{}]() }
func (bare) Owner() *struct{}      { return nil }

func TestDefaults(t *testing.T) {
	var d introspect.StructDescriptor[struct{}] = bare{}
	if d.FieldCount() != 0 || d.Fields() != nil || d.Attributes() != nil {
		t.Error("defaults should describe an empty struct")
	}
	if !introspect.IsNoType(d.FieldsType()) {
		t.Error("default FieldsType should be NoType")
	}
	if err := introspect.ValidateStruct(d); err != nil {
		t.Errorf("empty struct should validate: %v", err)
	}

	var def introspect.Defaults
	if def.VariantCount() != 0 || def.ParameterCount() != 0 || !introspect.IsNoType(def.ReturnType()) {
		t.Error("Defaults should report no members")
	}
	if _, ok := def.RawValue(); ok {
		t.Error("Defaults should have no raw value")
	}
}
