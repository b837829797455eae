// Package errors provides structured error types for the introspect module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: member path, Go/WIT type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindMisaligned).
//		Path("Meow", "ScratchCouch").
//		GoType("int64").
//		Detail("offset %d not aligned to %d", 4, 8).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.IndexMismatch(errors.PhaseValidate, path, 2, 1)
//	err := errors.OutOfBounds(errors.PhaseMemory, path, addr, 16, limit)
//
// Descriptor validation reports every problem at once through Violations.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
