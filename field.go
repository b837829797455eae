package introspect

import (
	"unsafe"

	"github.com/wippyai/introspect/ptr"
)

// GetField returns the field described by F, read at its byte offset from
// owner. owner must be non-nil. It never allocates.
//
//	level := introspect.GetField[catinfo.MeowPurrLevel, cats.Meow, int32](&m)
func GetField[F FieldDescriptor[O, T], O, T any](owner *O) T {
	var f F
	return *(*T)(unsafe.Add(unsafe.Pointer(owner), f.ByteOffset()))
}

// GetFieldMut returns a pointer to the field described by F inside owner.
func GetFieldMut[F FieldDescriptor[O, T], O, T any](owner *O) *T {
	var f F
	return (*T)(unsafe.Add(unsafe.Pointer(owner), f.ByteOffset()))
}

// FieldPtr returns a pointer to the field described by F that keeps the
// region of owner.
func FieldPtr[F FieldDescriptor[O, T], O, T any](owner ptr.Ptr[O]) ptr.Ptr[T] {
	var f F
	return ptr.Cast[T](owner.ByteAdd(f.ByteOffset()))
}

// FieldOf returns the address of the field f inside the value at owner.
func FieldOf(f FieldInfo, owner unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(owner, f.ByteOffset())
}
