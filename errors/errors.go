package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase names the stage that failed.
type Phase string

const (
	PhaseValidate Phase = "validate" // descriptor contract checks
	PhaseRegister Phase = "register" // registry publication
	PhaseReflect  Phase = "reflect"  // reflect-based fallback
	PhaseGenerate Phase = "generate" // descriptor code generation
	PhaseParse    Phase = "parse"    // attribute and directive parsing
	PhaseLayout   Phase = "layout"   // ABI layout comparison
	PhaseMemory   Phase = "memory"   // linear memory access
)

// Kind says what went wrong.
type Kind string

const (
	KindIndexMismatch     Kind = "index_mismatch"
	KindCountMismatch     Kind = "count_mismatch"
	KindOffsetOutOfBounds Kind = "offset_out_of_bounds"
	KindMisaligned        Kind = "misaligned"
	KindDuplicate         Kind = "duplicate"
	KindNotFound          Kind = "not_found"
	KindInvalidInput      Kind = "invalid_input"
	KindInvalidAttribute  Kind = "invalid_attribute"
	KindUnsupported       Kind = "unsupported"
	KindOutOfBounds       Kind = "out_of_bounds"
	KindLayoutMismatch    Kind = "layout_mismatch"
	KindTypeMismatch      Kind = "type_mismatch"
)

// Error is returned by every package of the module.
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	GoType  string
	WitType string
	Detail  string
	Path    []string
}

// Error formats as "[phase] kind at a.b.c: Go type X, WIT type Y - detail",
// dropping the parts that are empty, with the cause appended in parentheses.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Phase, e.Kind)
	if len(e.Path) > 0 {
		b.WriteString(" at " + strings.Join(e.Path, "."))
	}

	sep := ": "
	if types := e.types(); types != "" {
		b.WriteString(sep + types)
		sep = " - "
	}
	if e.Detail != "" {
		b.WriteString(sep + e.Detail)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Cause)
	}
	return b.String()
}

func (e *Error) types() string {
	var parts []string
	if e.GoType != "" {
		parts = append(parts, "Go type "+e.GoType)
	}
	if e.WitType != "" {
		parts = append(parts, "WIT type "+e.WitType)
	}
	return strings.Join(parts, ", ")
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same phase and kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder fills in an Error field by field.
type Builder struct {
	err Error
}

// New starts an error of the given phase and kind.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{err: Error{Phase: phase, Kind: kind}}
}

func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

func (b *Builder) WitType(t string) *Builder {
	b.err.WitType = t
	return b
}

func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail formats msg with args when any are given.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

func (b *Builder) Build() *Error {
	return &b.err
}

// IndexMismatch reports a member whose declared index differs from its position
func IndexMismatch(phase Phase, path []string, declared, position int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIndexMismatch,
		Path:   path,
		Detail: fmt.Sprintf("declared index %d at position %d", declared, position),
		Value:  declared,
	}
}

// CountMismatch reports a member count that disagrees with the member list
func CountMismatch(phase Phase, path []string, what string, declared, actual int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindCountMismatch,
		Path:   path,
		Detail: fmt.Sprintf("%s count %d, %d described", what, declared, actual),
		Value:  declared,
	}
}

// OffsetOutOfBounds reports a field whose bytes do not fit inside its owner
func OffsetOutOfBounds(phase Phase, path []string, offset, size, ownerSize uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOffsetOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("offset %d + size %d exceeds owner size %d", offset, size, ownerSize),
		Value:  offset,
	}
}

// Misaligned reports an offset that is not a multiple of the required alignment
func Misaligned(phase Phase, path []string, goType string, offset, align uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMisaligned,
		Path:   path,
		GoType: goType,
		Detail: fmt.Sprintf("offset %d not aligned to %d", offset, align),
		Value:  offset,
	}
}

// Duplicate reports a second, conflicting publication of the same entity
func Duplicate(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicate,
		Detail: fmt.Sprintf("%s %q already registered", what, name),
	}
}

// NotFound reports a missing named thing.
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput reports a bad argument.
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidAttribute reports a malformed metadata entry
func InvalidAttribute(path []string, entry, reason string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidAttribute,
		Path:   path,
		Detail: fmt.Sprintf("%q: %s", entry, reason),
		Value:  entry,
	}
}

// Unsupported reports a construct the module cannot handle.
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// OutOfBounds reports an access past the end of a memory region
func OutOfBounds(phase Phase, path []string, addr, size, limit uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("address %d + %d bytes exceeds %d", addr, size, limit),
		Value:  addr,
	}
}

// LayoutMismatch reports a field placed differently by Go and by the Canonical ABI
func LayoutMismatch(path []string, goType, witType string, goOffset uintptr, witOffset uint32) *Error {
	return &Error{
		Phase:   PhaseLayout,
		Kind:    KindLayoutMismatch,
		Path:    path,
		GoType:  goType,
		WitType: witType,
		Detail:  fmt.Sprintf("Go offset %d, canonical offset %d", goOffset, witOffset),
	}
}

// TypeMismatch reports a Go type with no matching WIT type.
func TypeMismatch(phase Phase, path []string, goType, witType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTypeMismatch,
		Path:    path,
		GoType:  goType,
		WitType: witType,
	}
}

// Wrap attaches phase and kind to an error from elsewhere.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Violations collects every contract violation found while checking one entity
type Violations struct {
	Subject string
	Errs    []*Error
}

// Add appends err when it is non-nil.
func (v *Violations) Add(err *Error) {
	if err != nil {
		v.Errs = append(v.Errs, err)
	}
}

// Err returns nil when nothing was collected.
func (v *Violations) Err() error {
	if len(v.Errs) == 0 {
		return nil
	}
	return v
}

func (v *Violations) Error() string {
	if len(v.Errs) == 0 {
		return "[validate] no violations"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %d violation(s):\n", v.Subject, len(v.Errs)))

	// Group by kind for cleaner output
	byKind := make(map[Kind][]string)
	var kindOrder []Kind
	for _, e := range v.Errs {
		if _, exists := byKind[e.Kind]; !exists {
			kindOrder = append(kindOrder, e.Kind)
		}
		byKind[e.Kind] = append(byKind[e.Kind], e.Error())
	}

	for _, k := range kindOrder {
		b.WriteString("\n  ")
		b.WriteString(string(k))
		b.WriteString(":\n")
		for _, msg := range byKind[k] {
			b.WriteString("    - ")
			b.WriteString(msg)
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is matches any collected error, so errors.Is(v, &Error{Phase, Kind}) works.
func (v *Violations) Is(target error) bool {
	if _, ok := target.(*Violations); ok {
		return true
	}
	for _, e := range v.Errs {
		if e.Is(target) {
			return true
		}
	}
	return false
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (v *Violations) Unwrap() []error {
	out := make([]error, len(v.Errs))
	for i, e := range v.Errs {
		out[i] = e
	}
	return out
}

// Is forwards to the standard library errors.Is.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As forwards to the standard library errors.As.
func As(err error, target any) bool { return stderrors.As(err, target) }
