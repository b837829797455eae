package wasmview

import (
	"encoding/binary"
	"reflect"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/introspect"
	"github.com/wippyai/introspect/errors"
	"github.com/wippyai/introspect/ptr"
	"github.com/wippyai/introspect/registry"
)

// View copies T records between Go values and linear memory. Only the
// visible fields of T's struct descriptor are transferred; hidden fields
// are left zero on Load and untouched in memory on Store.
type View[T any] struct {
	mem    Memory
	info   *introspect.AnyStruct
	layout Layout
}

// Option configures NewView.
type Option func(*config)

type config struct {
	registry *registry.Registry
	info     *introspect.AnyStruct
}

// WithRegistry resolves T through r instead of registry.Default.
func WithRegistry(r *registry.Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithStruct uses s as T's descriptor, bypassing any registry.
func WithStruct(s *introspect.AnyStruct) Option {
	return func(c *config) { c.info = s }
}

// NewView resolves T's struct descriptor and checks that its Go and
// Canonical ABI layouts agree.
func NewView[T any](mem Memory, opts ...Option) (*View[T], error) {
	if mem == nil {
		return nil, errors.InvalidInput(errors.PhaseMemory, "nil memory")
	}
	if binary.NativeEndian.Uint16([]byte{1, 0}) != 1 {
		return nil, errors.Unsupported(errors.PhaseMemory, "big-endian host")
	}

	cfg := config{registry: registry.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	info := cfg.info
	if info == nil {
		var err error
		info, err = registry.StructFor[T](cfg.registry)
		if err != nil {
			return nil, err
		}
	}
	if got, want := info.Type(), reflect.TypeFor[T](); got != want {
		return nil, errors.TypeMismatch(errors.PhaseMemory, []string{info.Name()}, want.String(), got.String())
	}

	l, err := Check(info)
	if err != nil {
		return nil, err
	}

	Logger().Debug("view ready",
		zap.String("struct", info.Name()),
		zap.Uint32("size", l.Size),
		zap.Uint32("align", l.Align),
		zap.Int("fields", info.FieldCount()))
	return &View[T]{mem: mem, info: info, layout: l}, nil
}

// Struct returns the descriptor the view was built from.
func (v *View[T]) Struct() *introspect.AnyStruct { return v.info }

// Layout returns the record's Canonical ABI layout.
func (v *View[T]) Layout() Layout { return v.layout }

// Load reads the record at addr.
func (v *View[T]) Load(addr uint32) (T, error) {
	var out T
	data, err := read(v.mem, []string{v.info.Name()}, addr, v.layout.Size)
	if err != nil {
		return out, err
	}
	v.decode(data, &out)
	return out, nil
}

// LoadAll reads n consecutive records starting at addr, the layout of a
// Canonical ABI list<T> payload.
func (v *View[T]) LoadAll(addr uint32, n int) ([]T, error) {
	if n < 0 {
		return nil, errors.InvalidInput(errors.PhaseMemory, "negative record count")
	}
	total := uint64(v.layout.Size) * uint64(n)
	if uint64(addr)+total > uint64(v.mem.Size()) {
		return nil, errors.OutOfBounds(errors.PhaseMemory, []string{v.info.Name()}, uint64(addr), total, uint64(v.mem.Size()))
	}
	data, err := read(v.mem, []string{v.info.Name()}, addr, uint32(total))
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	for i := range out {
		start := uint32(i) * v.layout.Size
		v.decode(data[start:start+v.layout.Size], &out[i])
	}
	return out, nil
}

// Store writes the visible fields of *val to the record at addr.
func (v *View[T]) Store(addr uint32, val *T) error {
	path := []string{v.info.Name()}
	if err := bounds(v.mem, path, addr, v.layout.Size); err != nil {
		return err
	}
	src := ptr.Cast[byte](ptr.FromRef(val))
	for i, f := range v.info.AnyFields() {
		b, ok := ptr.SliceFromParts(src.ByteAdd(f.ByteOffset()), int(f.Type().Size())).AsSlice()
		if !ok {
			return errors.OutOfBounds(errors.PhaseMemory, append(path, f.Name()),
				uint64(f.ByteOffset()), uint64(f.Type().Size()), uint64(src.RegionSize()))
		}
		if err := write(v.mem, append(path, f.Name()), addr+v.layout.Offsets[i], b); err != nil {
			return err
		}
	}
	return nil
}

// Field reads one visible field of the record at addr by name.
func (v *View[T]) Field(addr uint32, name string) (any, error) {
	for i, f := range v.info.AnyFields() {
		if f.Name() != name {
			continue
		}
		path := []string{v.info.Name(), name}
		if err := bounds(v.mem, path, addr, v.layout.Size); err != nil {
			return nil, err
		}
		data, err := read(v.mem, path, addr+v.layout.Offsets[i], uint32(f.Type().Size()))
		if err != nil {
			return nil, err
		}
		out := reflect.New(f.Type())
		dst := ptr.FromBytes[byte](unsafe.Slice((*byte)(out.UnsafePointer()), len(data)))
		ptr.FromSlice(data).CopyToNonoverlapping(dst, len(data))
		fixBools(out.UnsafePointer(), f.Type())
		return out.Elem().Interface(), nil
	}
	return nil, errors.NotFound(errors.PhaseMemory, "field", v.info.Name()+"."+name)
}

// LoadField reads the field F describes from the record at addr. F must
// name a field visible to the view.
func LoadField[F introspect.FieldDescriptor[O, T], O, T any](v *View[O], addr uint32) (T, error) {
	var (
		desc F
		out  T
	)
	f, ok := v.info.Field(desc.Name())
	if !ok || f.ByteOffset() != desc.ByteOffset() {
		return out, errors.NotFound(errors.PhaseMemory, "field", v.info.Name()+"."+desc.Name())
	}
	path := []string{v.info.Name(), desc.Name()}
	if err := bounds(v.mem, path, addr, v.layout.Size); err != nil {
		return out, err
	}
	data, err := read(v.mem, path, addr+uint32(desc.ByteOffset()), uint32(unsafe.Sizeof(out)))
	if err != nil {
		return out, err
	}
	out, _ = ptr.FromBytes[T](data).ReadUnaligned()
	fixBools(unsafe.Pointer(&out), reflect.TypeFor[T]())
	return out, nil
}

// decode copies the visible fields out of one record's bytes.
func (v *View[T]) decode(data []byte, out *T) {
	src := ptr.FromSlice(data)
	dst := ptr.Cast[byte](ptr.FromRef(out))
	for i, f := range v.info.AnyFields() {
		field := dst.ByteAdd(f.ByteOffset())
		src.ByteAdd(uintptr(v.layout.Offsets[i])).CopyToNonoverlapping(field, int(f.Type().Size()))
		fixBools(unsafe.Pointer(field.AsRef()), f.Type())
	}
}

// fixBools rewrites every bool stored in the value of type t at p to 0 or
// 1. Linear memory treats any non-zero byte as true; Go does not.
func fixBools(p unsafe.Pointer, t reflect.Type) {
	switch t.Kind() {
	case reflect.Bool:
		if b := (*byte)(p); *b > 1 {
			*b = 1
		}
	case reflect.Array:
		for i := range t.Len() {
			fixBools(unsafe.Add(p, uintptr(i)*t.Elem().Size()), t.Elem())
		}
	case reflect.Struct:
		for i := range t.NumField() {
			sf := t.Field(i)
			fixBools(unsafe.Add(p, sf.Offset), sf.Type)
		}
	}
}
