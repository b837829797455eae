// Package registry keeps type-erased descriptors for code that only knows a
// type at run time.
//
// Generated descriptor packages register themselves from init. Lookups go
// through a read-locked map keyed by reflect.Type; a struct that was never
// registered is described once from reflection, exported fields only, and
// cached.
//
//	s, err := registry.Default().Struct(reflect.TypeFor[cats.Meow]())
//	for _, f := range s.AnyFields() {
//		fmt.Println(f.Name(), f.ByteOffset())
//	}
package registry
