// Package introspect describes the structure of Go types without runtime
// reflection on the hot path.
//
// A descriptor is a zero-size type whose methods return constants: the name
// of a struct, the number and declaration order of its fields, the byte
// offset of each field, and the metadata attached to it. Generic code takes
// a descriptor as a type argument and can walk a type it does not own:
//
//	type MeowInfo = catinfo.Meow
//
//	var info MeowInfo
//	fmt.Printf("struct %s, with %d fields:\n", info.Name(), info.FieldCount())
//	for _, f := range info.Fields() {
//		fmt.Printf("\t%s (%s, %d)\n", f.Name(), f.Type(), f.ByteOffset())
//	}
//
// Descriptors are usually produced by the introspectgen command, which also
// emits constant assertions that break the build when a field index or count
// is inconsistent. Hand-written descriptors are checked by ValidateStruct,
// ValidateEnum and ValidateFunction.
//
// # Package layout
//
//	introspect/            Descriptor contracts, visitors, field access
//	├── ptr/               Pointers that remember the region they came from
//	├── registry/          Type-erased descriptors keyed by reflect.Type
//	├── wasmview/          Reflected structs inside WebAssembly linear memory
//	├── errors/            Structured error types
//	└── cmd/
//	    ├── introspectgen/ Descriptor generator
//	    └── inspect/       Terminal browser over the registry
//
// # Visibility
//
// A descriptor generated outside the package that defines a type only
// describes exported members. Unexported fields never appear, and their
// presence does not shift the indices of the fields that do.
//
// # Enums
//
// Go has two enum shapes. An integer enum is a named integer type with typed
// constants; every variant is unit-like and carries its integer value. A sum
// enum is an interface whose variants are the types implementing it; a
// variant declared as struct{} is unit-like and reports NoType as its fields
// type.
package introspect
