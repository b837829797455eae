package wasmview

import (
	"reflect"
	"strings"
	"unicode"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/introspect"
	"github.com/wippyai/introspect/errors"
)

// Record describes the visible fields of s as a WIT record. Field names are
// the kebab-cased Go names.
func Record(s *introspect.AnyStruct) (*wit.TypeDef, error) {
	if s == nil {
		return nil, errors.InvalidInput(errors.PhaseLayout, "nil struct")
	}
	fields := make([]wit.Field, 0, s.FieldCount())
	for _, f := range s.AnyFields() {
		t, err := witType(f.Type(), []string{s.Name(), f.Name()})
		if err != nil {
			return nil, err
		}
		fields = append(fields, wit.Field{Name: kebab(f.Name()), Type: t})
	}
	return &wit.TypeDef{Kind: &wit.Record{Fields: fields}}, nil
}

// WitType maps a Go type to the WIT type with the same value set.
func WitType(t reflect.Type) (wit.Type, error) {
	return witType(t, []string{t.String()})
}

func witType(t reflect.Type, path []string) (wit.Type, error) {
	switch t.Kind() {
	case reflect.Bool:
		return wit.Bool{}, nil
	case reflect.Int8:
		return wit.S8{}, nil
	case reflect.Uint8:
		return wit.U8{}, nil
	case reflect.Int16:
		return wit.S16{}, nil
	case reflect.Uint16:
		return wit.U16{}, nil
	case reflect.Int32:
		return wit.S32{}, nil
	case reflect.Uint32:
		return wit.U32{}, nil
	case reflect.Int64:
		return wit.S64{}, nil
	case reflect.Uint64:
		return wit.U64{}, nil
	case reflect.Int:
		if t.Size() == 4 {
			return wit.S32{}, nil
		}
		return wit.S64{}, nil
	case reflect.Uint, reflect.Uintptr:
		if t.Size() == 4 {
			return wit.U32{}, nil
		}
		return wit.U64{}, nil
	case reflect.Float32:
		return wit.F32{}, nil
	case reflect.Float64:
		return wit.F64{}, nil
	case reflect.String:
		return wit.String{}, nil
	case reflect.Array:
		elem, err := witType(t.Elem(), append(path, "[]"))
		if err != nil {
			return nil, err
		}
		types := make([]wit.Type, t.Len())
		for i := range types {
			types[i] = elem
		}
		return &wit.TypeDef{Kind: &wit.Tuple{Types: types}}, nil
	case reflect.Struct:
		fields := make([]wit.Field, t.NumField())
		for i := range fields {
			sf := t.Field(i)
			ft, err := witType(sf.Type, append(path, sf.Name))
			if err != nil {
				return nil, err
			}
			fields[i] = wit.Field{Name: kebab(sf.Name), Type: ft}
		}
		return &wit.TypeDef{Kind: &wit.Record{Fields: fields}}, nil
	}
	return nil, errors.New(errors.PhaseLayout, errors.KindUnsupported).
		Path(path...).
		GoType(t.String()).
		Detail("no WIT counterpart for %s", t.Kind()).
		Build()
}

// TypeName renders t the way WIT source spells it.
func TypeName(t wit.Type) string {
	switch t := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.S8:
		return "s8"
	case wit.U8:
		return "u8"
	case wit.S16:
		return "s16"
	case wit.U16:
		return "u16"
	case wit.S32:
		return "s32"
	case wit.U32:
		return "u32"
	case wit.S64:
		return "s64"
	case wit.U64:
		return "u64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		switch k := t.Kind.(type) {
		case *wit.Record:
			names := make([]string, len(k.Fields))
			for i, f := range k.Fields {
				names[i] = f.Name + ": " + TypeName(f.Type)
			}
			return "record { " + strings.Join(names, ", ") + " }"
		case *wit.Tuple:
			names := make([]string, len(k.Types))
			for i, e := range k.Types {
				names[i] = TypeName(e)
			}
			return "tuple<" + strings.Join(names, ", ") + ">"
		}
	}
	return "unknown"
}

// kebab turns a Go identifier into a WIT identifier: PurrLevel becomes
// purr-level and HTTPServer becomes http-server.
func kebab(name string) string {
	name = strings.TrimLeft(name, "_")
	if name == "" {
		return "field"
	}
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if r == '_' {
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
			continue
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prev != '_' && (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower)) {
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.TrimSuffix(b.String(), "-")
}
