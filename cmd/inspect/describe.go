package main

import (
	"fmt"
	"reflect"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/introspect"
	"github.com/wippyai/introspect/registry"
	"github.com/wippyai/introspect/wasmview"
)

// describe renders an entry as its outline and, for structs, the WIT record
// it maps to and whether the Go layout matches it.
func describe(e registry.Entry) string {
	var b strings.Builder
	err, ok := introspect.Walk[error](e.Descriptor, introspect.Printer{W: &b})
	if !ok {
		fmt.Fprintf(&b, "%s %s: unsupported descriptor\n", e.Kind.Keyword(), e.Name)
	}
	if err != nil {
		fmt.Fprintf(&b, "error: %v\n", err)
	}
	if e.Reflected {
		b.WriteString("\t(described by reflection)\n")
	}

	s, ok := e.Descriptor.(*introspect.AnyStruct)
	if !ok {
		return b.String()
	}
	def, err := wasmview.Record(s)
	if err != nil {
		fmt.Fprintf(&b, "wit: %v\n", err)
		return b.String()
	}
	b.WriteString("wit record:\n")
	for _, f := range def.Kind.(*wit.Record).Fields {
		fmt.Fprintf(&b, "\t%s: %s\n", f.Name, wasmview.TypeName(f.Type))
	}
	l, err := wasmview.Check(s)
	if err != nil {
		fmt.Fprintf(&b, "layout: %v\n", err)
		return b.String()
	}
	fmt.Fprintf(&b, "layout: size %d, align %d, offsets %v\n", l.Size, l.Align, l.Offsets)
	return b.String()
}

// describeVariants asks r for the payload struct of every sum enum variant,
// so the reflection fallback fills in types without descriptors.
func describeVariants(r *registry.Registry) {
	for _, e := range r.Entries() {
		en, ok := e.Descriptor.(*introspect.AnyEnum)
		if !ok {
			continue
		}
		for _, v := range en.AnyVariants() {
			t := v.Type()
			if t != nil && !introspect.IsNoType(t) && t.Kind() == reflect.Struct {
				_, _ = r.Struct(t)
			}
		}
	}
}
