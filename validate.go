package introspect

import (
	"reflect"
	"strconv"

	"github.com/wippyai/introspect/errors"
)

// ValidateStruct checks that s keeps the descriptor contract: indices match
// positions, the count matches the field list, and every field lies inside
// its owner at an offset aligned for its type. All violations are reported.
func ValidateStruct(s StructInfo) error {
	v := &errors.Violations{Subject: s.Name()}
	checkName(v, s.Name())
	switch s.Kind() {
	case KindStruct, KindUnion, KindTuple:
	default:
		v.Add(errors.New(errors.PhaseValidate, errors.KindTypeMismatch).
			Path(s.Name()).
			Detail("struct descriptor reports kind %q", s.Kind().Keyword()).
			Build())
	}
	checkAttributes(v, []string{s.Name()}, s.Attributes())
	checkFields(v, []string{s.Name()}, s.Type(), s.FieldCount(), s.Fields(), s.FieldsType())
	return v.Err()
}

// ValidateEnum checks e and the fields of every variant.
func ValidateEnum(e EnumInfo) error {
	v := &errors.Violations{Subject: e.Name()}
	checkName(v, e.Name())
	if e.Kind() != KindEnum {
		v.Add(errors.New(errors.PhaseValidate, errors.KindTypeMismatch).
			Path(e.Name()).
			Detail("enum descriptor reports kind %q", e.Kind().Keyword()).
			Build())
	}
	checkAttributes(v, []string{e.Name()}, e.Attributes())

	variants := e.Variants()
	checkCount(v, []string{e.Name()}, "variant", e.VariantCount(), len(variants), e.VariantsType())

	integer := !IsNoType(e.IntegerType())
	names := make(map[string]bool, len(variants))
	values := make(map[uint64]string, len(variants))
	for i, vr := range variants {
		path := []string{e.Name(), vr.Name()}
		if vr.DeclarationIndex() != i {
			v.Add(errors.IndexMismatch(errors.PhaseValidate, path, vr.DeclarationIndex(), i))
		}
		if vr.Name() == "" {
			v.Add(errors.InvalidInput(errors.PhaseValidate, "variant "+strconv.Itoa(i)+" has no name"))
		} else if names[vr.Name()] {
			v.Add(errors.Duplicate(errors.PhaseValidate, "variant", vr.Name()))
		}
		names[vr.Name()] = true
		if vr.OwnerType() != e.Type() {
			v.Add(errors.TypeMismatch(errors.PhaseValidate, path, typeString(vr.OwnerType()), typeString(e.Type())))
		}
		checkAttributes(v, path, vr.Attributes())

		raw, hasRaw := vr.RawValue()
		switch {
		case integer && !hasRaw:
			v.Add(errors.New(errors.PhaseValidate, errors.KindInvalidInput).
				Path(path...).
				Detail("integer enum variant without a value").
				Build())
		case !integer && hasRaw:
			v.Add(errors.New(errors.PhaseValidate, errors.KindInvalidInput).
				Path(path...).
				Detail("sum enum variant with an integer value").
				Build())
		case hasRaw:
			if prev, dup := values[raw]; dup {
				v.Add(errors.New(errors.PhaseValidate, errors.KindDuplicate).
					Path(path...).
					Detail("value %d already used by %s", raw, prev).
					Build())
			}
			values[raw] = vr.Name()
		}

		checkFields(v, path, vr.Type(), vr.FieldCount(), vr.Fields(), vr.FieldsType())
	}
	return v.Err()
}

// ValidateFunction checks f and its parameters against the function type.
func ValidateFunction(f FunctionInfo) error {
	v := &errors.Violations{Subject: f.Name()}
	checkName(v, f.Name())
	if f.Kind() != KindFunction {
		v.Add(errors.New(errors.PhaseValidate, errors.KindTypeMismatch).
			Path(f.Name()).
			Detail("function descriptor reports kind %q", f.Kind().Keyword()).
			Build())
	}
	checkAttributes(v, []string{f.Name()}, f.Attributes())

	params := f.Parameters()
	checkCount(v, []string{f.Name()}, "parameter", f.ParameterCount(), len(params), f.ParametersType())

	ft := f.Type()
	isFunc := ft != nil && ft.Kind() == reflect.Func
	if isFunc && ft.NumIn() != len(params) {
		v.Add(errors.CountMismatch(errors.PhaseValidate, []string{f.Name()}, "signature parameter", ft.NumIn(), len(params)))
	}
	for i, p := range params {
		path := []string{f.Name(), displayName(p.Name())}
		if p.ParameterIndex() != i {
			v.Add(errors.IndexMismatch(errors.PhaseValidate, path, p.ParameterIndex(), i))
		}
		if p.OwnerName() != f.Name() {
			v.Add(errors.New(errors.PhaseValidate, errors.KindTypeMismatch).
				Path(path...).
				Detail("parameter owned by %q", p.OwnerName()).
				Build())
		}
		if isFunc && i < ft.NumIn() && ft.In(i) != p.Type() {
			v.Add(errors.TypeMismatch(errors.PhaseValidate, path, typeString(p.Type()), typeString(ft.In(i))))
		}
		checkAttributes(v, path, p.Attributes())
	}

	if isFunc {
		rt := f.ReturnType()
		switch ft.NumOut() {
		case 0:
			if !IsNoType(rt) {
				v.Add(errors.TypeMismatch(errors.PhaseValidate, []string{f.Name(), "return"}, typeString(rt), "introspect.NoType"))
			}
		case 1:
			if rt != ft.Out(0) {
				v.Add(errors.TypeMismatch(errors.PhaseValidate, []string{f.Name(), "return"}, typeString(rt), typeString(ft.Out(0))))
			}
		default:
			if rt == nil || rt.Kind() != reflect.Struct || rt.NumField() != ft.NumOut() {
				v.Add(errors.New(errors.PhaseValidate, errors.KindTypeMismatch).
					Path(f.Name(), "return").
					GoType(typeString(rt)).
					Detail("expected a tuple of %d results", ft.NumOut()).
					Build())
			}
		}
	}
	return v.Err()
}

func checkName(v *errors.Violations, name string) {
	if name == "" {
		v.Add(errors.InvalidInput(errors.PhaseValidate, "descriptor has no name"))
	}
}

func checkAttributes(v *errors.Violations, path []string, attrs []Attribute) {
	for _, a := range attrs {
		if a.Name == "" {
			v.Add(errors.InvalidAttribute(path, a.String(), "empty name"))
		}
	}
}

// checkCount ties a declared count to the member list and its list type.
func checkCount(v *errors.Violations, path []string, what string, declared, actual int, listType reflect.Type) {
	if declared != actual {
		v.Add(errors.CountMismatch(errors.PhaseValidate, path, what, declared, actual))
	}
	switch {
	case listType == nil:
		v.Add(errors.InvalidInput(errors.PhaseValidate, what+" list type is nil"))
	case IsNoType(listType) != (actual == 0):
		v.Add(errors.New(errors.PhaseValidate, errors.KindCountMismatch).
			Path(path...).
			GoType(typeString(listType)).
			Detail("%s list type does not agree with %d %ss", what, actual, what).
			Build())
	case !IsNoType(listType) && listType.Kind() == reflect.Struct && listType.NumField() != actual:
		v.Add(errors.CountMismatch(errors.PhaseValidate, path, what+" list type", listType.NumField(), actual))
	}
}

func checkFields(v *errors.Violations, path []string, owner reflect.Type, count int, fields []FieldInfo, fieldsType reflect.Type) {
	checkCount(v, path, "field", count, len(fields), fieldsType)

	var ownerSize uintptr
	if owner != nil {
		ownerSize = owner.Size()
	}
	names := make(map[string]bool, len(fields))
	for i, f := range fields {
		fpath := append(append([]string(nil), path...), displayName(f.Name()))
		if f.DeclarationIndex() != i {
			v.Add(errors.IndexMismatch(errors.PhaseValidate, fpath, f.DeclarationIndex(), i))
		}
		if f.Name() != "" {
			if names[f.Name()] {
				v.Add(errors.Duplicate(errors.PhaseValidate, "field", f.Name()))
			}
			names[f.Name()] = true
		}
		if f.OwnerType() != owner {
			v.Add(errors.TypeMismatch(errors.PhaseValidate, fpath, typeString(f.OwnerType()), typeString(owner)))
		}
		checkAttributes(v, fpath, f.Attributes())

		ft := f.Type()
		if ft == nil {
			v.Add(errors.InvalidInput(errors.PhaseValidate, "field "+strconv.Itoa(i)+" has no type"))
			continue
		}
		off, size := f.ByteOffset(), ft.Size()
		if owner != nil && (off > ownerSize || size > ownerSize-off) {
			v.Add(errors.OffsetOutOfBounds(errors.PhaseValidate, fpath, off, size, ownerSize))
		}
		if align := uintptr(ft.Align()); off%align != 0 {
			v.Add(errors.Misaligned(errors.PhaseValidate, fpath, ft.String(), off, align))
		}
	}
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
