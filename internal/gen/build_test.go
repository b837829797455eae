package gen

import (
	"go/types"
	"reflect"
	"testing"

	"github.com/wippyai/introspect"
	"github.com/wippyai/introspect/errors"
)

func declNames(decls []Decl) []string {
	var out []string
	for _, d := range decls {
		out = append(out, d.DeclName())
	}
	return out
}

func TestBuild(t *testing.T) {
	pkg := mustCheck(t, petsSource)

	if pkg.Name != "pets" || pkg.Path != "example.com/pets" {
		t.Errorf("package: got %s %s", pkg.Name, pkg.Path)
	}
	if got, want := declNames(pkg.Decls), []string{"Dog", "Size", "Shape", "Walk", "hidden"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("decls: got %v, want %v", got, want)
	}
	for _, name := range []string{"Dog", "person", "Small", "Walk"} {
		if !pkg.taken[name] {
			t.Errorf("%s should be taken", name)
		}
	}
	if pkg.taken["area"] {
		t.Error("methods must not take package names")
	}
}

func TestBuildStruct(t *testing.T) {
	pkg := mustCheck(t, petsSource)
	d, _ := pkg.Lookup("Dog")
	s := d.(*Struct)

	if want := []introspect.Attribute{{Name: "serializable"}}; !reflect.DeepEqual(s.Attrs, want) {
		t.Errorf("attrs: got %v, want %v", s.Attrs, want)
	}

	tests := []struct {
		name     string
		typ      string
		exported bool
	}{
		{"Name", "string", true},
		{"age", "int", false},
		{"Tags", "[]string", true},
		{"Best", "*example.com/pets.person", true},
		{"owner", "*example.com/pets.person", false},
	}
	if len(s.Fields) != len(tests) {
		t.Fatalf("fields: got %d, want %d", len(s.Fields), len(tests))
	}
	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := s.Fields[i]
			if f.Name != tc.name {
				t.Errorf("name: got %q, want %q", f.Name, tc.name)
			}
			if got := f.Type.String(); got != tc.typ {
				t.Errorf("type: got %s, want %s", got, tc.typ)
			}
			if f.Exported() != tc.exported {
				t.Errorf("exported: got %v, want %v", f.Exported(), tc.exported)
			}
		})
	}

	doc, ok := introspect.LookupAttribute(s.Fields[0].Attrs, "doc")
	if !ok || doc.Value != "good boy" {
		t.Errorf("tag attribute: got %v, %v", doc, ok)
	}
}

func TestBuildIntegerEnum(t *testing.T) {
	pkg := mustCheck(t, petsSource)
	d, _ := pkg.Lookup("Size")
	e := d.(*Enum)

	if e.Integer == nil || e.Integer.Kind() != types.Uint8 {
		t.Fatalf("integer type: got %v", e.Integer)
	}
	var names []string
	for _, v := range e.Variants {
		names = append(names, v.Name)
	}
	// Aliases stay in the model; each scope drops its own.
	if want := []string{"Small", "Medium", "Large", "Huge", "tiny"}; !reflect.DeepEqual(names, want) {
		t.Errorf("variants: got %v, want %v", names, want)
	}
	if v := e.Variants[2]; v.Value.String() != "3" || !v.Exported() {
		t.Errorf("Large: got value %v exported %v", v.Value, v.Exported())
	}
	if !e.Variants[2].sameValue(e.Variants[3]) || e.Variants[1].sameValue(e.Variants[2]) {
		t.Error("Huge should share Large's value, Medium should not")
	}
	if e.Variants[4].Exported() {
		t.Error("tiny should be unexported")
	}
}

func TestDeclExported(t *testing.T) {
	pkg := mustCheck(t, petsSource)

	tests := []struct {
		name string
		want bool
	}{
		{"Dog", true},
		{"Size", true},
		{"Shape", true},
		{"Walk", true},
		{"hidden", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := pkg.Lookup(tc.name)
			if !ok {
				t.Fatalf("%s not found", tc.name)
			}
			if got := d.Exported(); got != tc.want {
				t.Errorf("Exported: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuildSumEnum(t *testing.T) {
	pkg := mustCheck(t, petsSource)
	d, _ := pkg.Lookup("Shape")
	e := d.(*Enum)

	if e.Integer != nil {
		t.Fatal("sum enum has no integer type")
	}
	if !introspect.HasAttribute(e.Attrs, "closed") {
		t.Errorf("attrs: got %v", e.Attrs)
	}

	tests := []struct {
		name    string
		pointer bool
		fields  int
	}{
		{"Circle", false, 1},
		{"Square", true, 1},
		{"blob", false, 0},
	}
	if len(e.Variants) != len(tests) {
		t.Fatalf("variants: got %d, want %d", len(e.Variants), len(tests))
	}
	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := e.Variants[i]
			if v.Name != tc.name {
				t.Errorf("name: got %q, want %q", v.Name, tc.name)
			}
			if v.Pointer != tc.pointer {
				t.Errorf("pointer: got %v, want %v", v.Pointer, tc.pointer)
			}
			if len(v.Fields) != tc.fields {
				t.Errorf("fields: got %d, want %d", len(v.Fields), tc.fields)
			}
		})
	}
}

func TestBuildFunc(t *testing.T) {
	pkg := mustCheck(t, petsSource)
	d, _ := pkg.Lookup("Walk")
	f := d.(*Func)

	var names []string
	for _, p := range f.Params {
		names = append(names, p.Name)
	}
	if want := []string{"d", "", "steps"}; !reflect.DeepEqual(names, want) {
		t.Errorf("params: got %q, want %q", names, want)
	}
	if !f.Sig.Variadic() || f.Sig.Results().Len() != 2 {
		t.Errorf("signature: got %s", f.Sig)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *errors.Error
	}{
		{
			name: "reflect on non-struct",
			src:  "package pets\n\n//introspect:reflect\ntype Count int\n",
			want: &errors.Error{Phase: errors.PhaseGenerate, Kind: errors.KindUnsupported},
		},
		{
			name: "generic struct",
			src:  "package pets\n\n//introspect:reflect\ntype Box[T any] struct{ V T }\n",
			want: &errors.Error{Phase: errors.PhaseGenerate, Kind: errors.KindUnsupported},
		},
		{
			name: "generic func",
			src:  "package pets\n\n//introspect:func\nfunc Id[T any](v T) T { return v }\n",
			want: &errors.Error{Phase: errors.PhaseGenerate, Kind: errors.KindUnsupported},
		},
		{
			name: "float enum",
			src:  "package pets\n\n//introspect:enum\ntype Ratio float64\n",
			want: &errors.Error{Phase: errors.PhaseGenerate, Kind: errors.KindUnsupported},
		},
		{
			name: "func marked reflect",
			src:  "package pets\n\n//introspect:reflect\nfunc Run() {}\n",
			want: &errors.Error{Phase: errors.PhaseGenerate, Kind: errors.KindUnsupported},
		},
		{
			name: "bad tag",
			src:  "package pets\n\n//introspect:reflect\ntype Dog struct {\n\tName string 'introspect:\"=x\"'\n}\n",
			want: &errors.Error{Phase: errors.PhaseParse, Kind: errors.KindInvalidAttribute},
		},
		{
			name: "unknown directive",
			src:  "package pets\n\n//introspect:serialize\ntype Dog struct{}\n",
			want: &errors.Error{Phase: errors.PhaseParse, Kind: errors.KindInvalidAttribute},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := check(t, tc.src)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %s/%s error, got %v", tc.want.Phase, tc.want.Kind, err)
			}
		})
	}
}

func TestBuildSkipsGeneratedFiles(t *testing.T) {
	src := generatedHeader + "\n\npackage pets\n\n//introspect:reflect\ntype Dog struct{}\n"
	pkg := mustCheck(t, src)
	if len(pkg.Decls) != 0 {
		t.Errorf("generated file should be ignored, got %v", declNames(pkg.Decls))
	}
	if pkg.taken["Dog"] {
		t.Error("generated names must not count as taken")
	}
}
