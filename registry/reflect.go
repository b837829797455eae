package registry

import (
	"reflect"

	"github.com/wippyai/introspect"
	"github.com/wippyai/introspect/errors"
)

// reflectStruct describes t from reflection. Only exported fields are
// visible; indices count visible fields only.
func reflectStruct(t reflect.Type) (*introspect.AnyStruct, error) {
	if t.Kind() != reflect.Struct {
		return nil, errors.New(errors.PhaseReflect, errors.KindUnsupported).
			GoType(t.String()).
			Detail("only struct types can be described").
			Build()
	}

	name := qualifiedName(t)
	fields := make([]*introspect.AnyField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		attrs, err := introspect.TagAttributes(sf.Tag)
		if err != nil {
			return nil, errors.New(errors.PhaseReflect, errors.KindInvalidAttribute).
				Path(name, sf.Name).
				GoType(sf.Type.String()).
				Cause(err).
				Build()
		}
		fields = append(fields, introspect.NewAnyField(t, sf.Type, len(fields), sf.Name, sf.Offset, attrs))
	}
	return introspect.NewAnyStruct(t, introspect.KindStruct, name, nil, fields), nil
}

// qualifiedName returns import/path.Type, or the type literal for unnamed
// types.
func qualifiedName(t reflect.Type) string {
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
