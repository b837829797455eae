package registry

import (
	"reflect"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/introspect"
	"github.com/wippyai/introspect/errors"
)

// Entry is one registered descriptor in a Registry snapshot.
type Entry struct {
	Descriptor introspect.AggregateDescriptor
	Type       reflect.Type
	Name       string
	Kind       introspect.Kind
	// Reflected is true for structs described by the reflection fallback.
	Reflected bool
}

// Registry maps Go types to erased descriptors. It is safe for concurrent
// use.
type Registry struct {
	mu        sync.RWMutex
	structs   map[reflect.Type]*introspect.AnyStruct
	enums     map[reflect.Type]*introspect.AnyEnum
	funcs     map[string]*introspect.AnyFunction
	reflected map[reflect.Type]bool
	byName    map[string]introspect.AggregateDescriptor
	fallback  bool
	validate  bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithFallback enables or disables describing unregistered structs through
// reflection. It is enabled by default.
func WithFallback(enabled bool) Option {
	return func(r *Registry) { r.fallback = enabled }
}

// WithValidation enables or disables contract checks on registration. It is
// enabled by default.
func WithValidation(enabled bool) Option {
	return func(r *Registry) { r.validate = enabled }
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{fallback: true, validate: true}
	r.init()
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) init() {
	r.structs = make(map[reflect.Type]*introspect.AnyStruct)
	r.enums = make(map[reflect.Type]*introspect.AnyEnum)
	r.funcs = make(map[string]*introspect.AnyFunction)
	r.reflected = make(map[reflect.Type]bool)
	r.byName = make(map[string]introspect.AggregateDescriptor)
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry used by generated code.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// RegisterStruct validates s and publishes its mirror. Registering an
// equivalent descriptor again is a no-op; a different descriptor for the
// same type or name is an error.
func (r *Registry) RegisterStruct(s introspect.StructInfo) error {
	if r.validate {
		if err := introspect.ValidateStruct(s); err != nil {
			return errors.Wrap(errors.PhaseRegister, errors.KindInvalidInput, err, "struct "+s.Name())
		}
	}
	m := introspect.MirrorStruct(s)

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.structs[m.Type()]; ok && !r.reflected[m.Type()] {
		if sameStruct(prev, m) {
			return nil
		}
		return errors.Duplicate(errors.PhaseRegister, "struct", m.Name())
	}
	if err := r.claimName(m.Name(), m.Type()); err != nil {
		return err
	}
	r.structs[m.Type()] = m
	delete(r.reflected, m.Type())
	r.byName[m.Name()] = m

	Logger().Debug("registered struct",
		zap.String("name", m.Name()),
		zap.Int("fields", m.FieldCount()))
	return nil
}

// RegisterEnum validates e and publishes its mirror without discriminants.
// Use RegisterEnumOf to keep them.
func (r *Registry) RegisterEnum(e introspect.EnumInfo) error {
	return r.registerEnum(e, func() *introspect.AnyEnum { return introspect.MirrorEnumInfo(e) })
}

// RegisterEnumOf is RegisterEnum for a typed descriptor. The mirror keeps
// the Discriminant[E] of every variant.
func RegisterEnumOf[E any](r *Registry, d introspect.EnumDescriptor[E]) error {
	return r.registerEnum(d, func() *introspect.AnyEnum { return introspect.MirrorEnum[E](d) })
}

// MustRegisterEnum is RegisterEnumOf that panics on error. It is meant for
// init functions of generated code.
func MustRegisterEnum[E any](r *Registry, d introspect.EnumDescriptor[E]) {
	if err := RegisterEnumOf[E](r, d); err != nil {
		panic(err)
	}
}

func (r *Registry) registerEnum(e introspect.EnumInfo, mirror func() *introspect.AnyEnum) error {
	if r.validate {
		if err := introspect.ValidateEnum(e); err != nil {
			return errors.Wrap(errors.PhaseRegister, errors.KindInvalidInput, err, "enum "+e.Name())
		}
	}
	m := mirror()

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.enums[m.Type()]; ok {
		if sameEnum(prev, m) {
			return nil
		}
		return errors.Duplicate(errors.PhaseRegister, "enum", m.Name())
	}
	if err := r.claimName(m.Name(), m.Type()); err != nil {
		return err
	}
	r.enums[m.Type()] = m
	r.byName[m.Name()] = m

	Logger().Debug("registered enum",
		zap.String("name", m.Name()),
		zap.Int("variants", m.VariantCount()))
	return nil
}

// RegisterFunction validates f and publishes its mirror. Functions are keyed
// by name since many functions share a signature.
func (r *Registry) RegisterFunction(f introspect.FunctionInfo) error {
	if r.validate {
		if err := introspect.ValidateFunction(f); err != nil {
			return errors.Wrap(errors.PhaseRegister, errors.KindInvalidInput, err, "function "+f.Name())
		}
	}
	m := introspect.MirrorFunction(f)

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.funcs[m.Name()]; ok {
		if prev.Type() == m.Type() && prev.ParameterCount() == m.ParameterCount() {
			return nil
		}
		return errors.Duplicate(errors.PhaseRegister, "function", m.Name())
	}
	if _, taken := r.byName[m.Name()]; taken {
		return errors.Duplicate(errors.PhaseRegister, "name", m.Name())
	}
	r.funcs[m.Name()] = m
	r.byName[m.Name()] = m

	Logger().Debug("registered function",
		zap.String("name", m.Name()),
		zap.Int("parameters", m.ParameterCount()))
	return nil
}

// claimName fails when name already belongs to a different type.
// The caller holds the write lock.
func (r *Registry) claimName(name string, t reflect.Type) error {
	prev, ok := r.byName[name]
	if !ok {
		return nil
	}
	if typed, ok := prev.(interface{ Type() reflect.Type }); ok && typed.Type() == t {
		return nil
	}
	return errors.Duplicate(errors.PhaseRegister, "name", name)
}

// Register publishes each descriptor according to its kind and stops at the
// first error.
func (r *Registry) Register(descs ...introspect.AggregateDescriptor) error {
	for _, d := range descs {
		var err error
		switch d.Kind() {
		case introspect.KindStruct, introspect.KindUnion, introspect.KindTuple:
			s, ok := d.(introspect.StructInfo)
			if !ok {
				return errors.Unsupported(errors.PhaseRegister, d.Name()+": struct kind without StructInfo")
			}
			err = r.RegisterStruct(s)
		case introspect.KindEnum:
			e, ok := d.(introspect.EnumInfo)
			if !ok {
				return errors.Unsupported(errors.PhaseRegister, d.Name()+": enum kind without EnumInfo")
			}
			err = r.RegisterEnum(e)
		case introspect.KindFunction:
			f, ok := d.(introspect.FunctionInfo)
			if !ok {
				return errors.Unsupported(errors.PhaseRegister, d.Name()+": function kind without FunctionInfo")
			}
			err = r.RegisterFunction(f)
		default:
			err = errors.Unsupported(errors.PhaseRegister, d.Name()+": kind "+d.Kind().Keyword())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(descs ...introspect.AggregateDescriptor) {
	if err := r.Register(descs...); err != nil {
		panic(err)
	}
}

// Struct returns the descriptor of the struct type t. Unregistered structs
// are described by reflection when the fallback is enabled.
func (r *Registry) Struct(t reflect.Type) (*introspect.AnyStruct, error) {
	if t == nil {
		return nil, errors.InvalidInput(errors.PhaseReflect, "cannot describe a nil type")
	}

	r.mu.RLock()
	s, found := r.structs[t]
	fallback := r.fallback
	r.mu.RUnlock()
	if found {
		return s, nil
	}
	if !fallback {
		return nil, errors.NotFound(errors.PhaseReflect, "struct", t.String())
	}

	s, err := reflectStruct(t)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.structs[t]; ok {
		return prev, nil
	}
	r.structs[t] = s
	r.reflected[t] = true
	if _, taken := r.byName[s.Name()]; !taken {
		r.byName[s.Name()] = s
	}

	Logger().Debug("described struct by reflection",
		zap.String("name", s.Name()),
		zap.Int("fields", s.FieldCount()))
	return s, nil
}

// StructFor is Struct for the type argument T.
func StructFor[T any](r *Registry) (*introspect.AnyStruct, error) {
	return r.Struct(reflect.TypeFor[T]())
}

// Enum returns the registered descriptor of the enum type t.
func (r *Registry) Enum(t reflect.Type) (*introspect.AnyEnum, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.enums[t]
	return e, ok
}

// EnumFor is Enum for the type argument E.
func EnumFor[E any](r *Registry) (*introspect.AnyEnum, bool) {
	return r.Enum(reflect.TypeFor[E]())
}

// Function returns the registered function with the fully qualified name.
func (r *Registry) Function(name string) (*introspect.AnyFunction, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.funcs[name]
	return f, ok
}

// Lookup returns any registered descriptor by fully qualified name.
func (r *Registry) Lookup(name string) (introspect.AggregateDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[name]
	return d, ok
}

// Entries returns a snapshot of every descriptor, sorted by name.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	entries := make([]Entry, 0, len(r.structs)+len(r.enums)+len(r.funcs))
	for t, s := range r.structs {
		entries = append(entries, Entry{Descriptor: s, Type: t, Name: s.Name(), Kind: s.Kind(), Reflected: r.reflected[t]})
	}
	for t, e := range r.enums {
		entries = append(entries, Entry{Descriptor: e, Type: t, Name: e.Name(), Kind: introspect.KindEnum})
	}
	for _, f := range r.funcs {
		entries = append(entries, Entry{Descriptor: f, Type: f.Type(), Name: f.Name(), Kind: introspect.KindFunction})
	}
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b Entry) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return int(a.Kind) - int(b.Kind)
	})
	return entries
}

// Count returns the number of descriptors, reflected structs included.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.structs) + len(r.enums) + len(r.funcs)
}

// Reset removes every descriptor.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
}

func sameStruct(a, b *introspect.AnyStruct) bool {
	if a.Name() != b.Name() || a.FieldCount() != b.FieldCount() {
		return false
	}
	for i, f := range a.AnyFields() {
		g := b.AnyFields()[i]
		if f.Name() != g.Name() || f.ByteOffset() != g.ByteOffset() || f.Type() != g.Type() {
			return false
		}
	}
	return true
}

func sameEnum(a, b *introspect.AnyEnum) bool {
	if a.Name() != b.Name() || a.VariantCount() != b.VariantCount() {
		return false
	}
	for i, v := range a.AnyVariants() {
		w := b.AnyVariants()[i]
		av, _ := v.RawValue()
		bv, _ := w.RawValue()
		if v.Name() != w.Name() || av != bv {
			return false
		}
	}
	return true
}
