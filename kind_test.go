package introspect

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind    Kind
		str     string
		keyword string
	}{
		{KindStruct, "struct { ... }", "struct"},
		{KindUnion, "union { ... }", "union"},
		{KindEnum, "enum { ... }", "enum"},
		{KindTuple, "tuple ( ... )", "tuple"},
		{KindArray, "array [type; n]", "array"},
		{KindSlice, "slice [type]", "slice"},
		{KindFunction, "fn (...)", "func"},
		{Kind(99), "unknown", "unknown"},
	}
	for _, tc := range tests {
		t.Run(tc.keyword, func(t *testing.T) {
			if got := tc.kind.String(); got != tc.str {
				t.Errorf("String() = %q, want %q", got, tc.str)
			}
			if got := tc.kind.Keyword(); got != tc.keyword {
				t.Errorf("Keyword() = %q, want %q", got, tc.keyword)
			}
		})
	}
}

func TestNoType(t *testing.T) {
	var n NoType
	if n.Kind() != KindStruct {
		t.Errorf("Kind = %v", n.Kind())
	}
	if n.Name() != "introspect.NoType" || n.String() != "introspect.NoType" {
		t.Errorf("Name = %q", n.Name())
	}
	if n.FieldCount() != 0 || n.Fields() != nil {
		t.Error("NoType has no fields")
	}
	if !IsNoType(n.Type()) || !IsNoType(n.FieldsType()) {
		t.Error("NoType describes itself")
	}
	if err := ValidateStruct(n); err != nil {
		t.Errorf("NoType should validate: %v", err)
	}
	var _ StructDescriptor[NoType] = n
}
