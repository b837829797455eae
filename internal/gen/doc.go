// Package gen builds descriptor source code for annotated Go declarations.
//
// Declarations opt in with directives in their doc comments:
//
//	//introspect:reflect        struct type
//	//introspect:enum           interface (sum enum) or integer type
//	//introspect:func           package-level function
//	//introspect:attr name=val  attribute on the declaration
//
// Struct fields carry attributes in the introspect struct tag.
//
// Generation runs in one of two scopes. In the defining scope the output
// joins the source package, descriptor names end in Info, and unexported
// members may be included. In a foreign scope the output is a separate
// package that only sees exported members.
package gen
