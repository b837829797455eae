package wasmview

import (
	"reflect"
	"strconv"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/introspect"
	"github.com/wippyai/introspect/errors"
	"github.com/wippyai/introspect/wasmview/internal/layout"
)

// Layout is the Canonical ABI placement of a viewable struct.
type Layout struct {
	// Offsets holds one offset per visible field, in descriptor order.
	Offsets []uint32
	Size    uint32
	Align   uint32
}

// Check reports whether every visible field of s sits at the same offset,
// with the same size, in Go memory and in the Canonical ABI record that
// Record builds. All disagreements are collected.
func Check(s *introspect.AnyStruct) (Layout, error) {
	def, err := Record(s)
	if err != nil {
		return Layout{}, err
	}
	calc := layout.NewCalculator()
	info := calc.Calculate(def)
	out := Layout{Size: info.Size, Align: info.Align, Offsets: info.Offsets}

	v := errors.Violations{Subject: s.Name()}
	fields := def.Kind.(*wit.Record).Fields
	for i, f := range s.AnyFields() {
		path := []string{s.Name(), f.Name()}
		checkMember(calc, &v, path, f.Type(), fields[i].Type, f.ByteOffset(), info.Offsets[i])
	}
	if len(v.Errs) > 0 {
		Logger().Debug("layout mismatch", zap.String("struct", s.Name()), zap.Int("violations", len(v.Errs)))
	}
	return out, v.Err()
}

// checkMember compares one member and, for records and tuples, its
// members in turn.
func checkMember(calc *layout.Calculator, v *errors.Violations, path []string, goType reflect.Type, wt wit.Type, goOff uintptr, witOff uint32) {
	if goOff != uintptr(witOff) {
		v.Add(errors.LayoutMismatch(path, goType.String(), TypeName(wt), goOff, witOff))
		return
	}
	info := calc.Calculate(wt)
	if uintptr(info.Size) != goType.Size() {
		v.Add(errors.New(errors.PhaseLayout, errors.KindTypeMismatch).
			Path(path...).
			GoType(goType.String()).
			WitType(TypeName(wt)).
			Detail("Go size %d, canonical size %d", goType.Size(), info.Size).
			Build())
		return
	}

	def, ok := wt.(*wit.TypeDef)
	if !ok {
		return
	}
	switch k := def.Kind.(type) {
	case *wit.Record:
		for i, f := range k.Fields {
			sf := goType.Field(i)
			checkMember(calc, v, append(path[:len(path):len(path)], sf.Name), sf.Type, f.Type,
				goOff+sf.Offset, witOff+info.Offsets[i])
		}
	case *wit.Tuple:
		stride := goType.Elem().Size()
		for i, e := range k.Types {
			checkMember(calc, v, append(path[:len(path):len(path)], "["+strconv.Itoa(i)+"]"), goType.Elem(), e,
				goOff+uintptr(i)*stride, witOff+info.Offsets[i])
		}
	}
}
