package gen

import (
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/introspect"
	"github.com/wippyai/introspect/errors"
)

const generatedHeader = "// Code generated by introspectgen. DO NOT EDIT."

// Build collects the annotated declarations of a type-checked package.
// Files carrying the introspectgen header are ignored, so regenerating
// over earlier output is stable.
func Build(fset *token.FileSet, files []*ast.File, pkg *types.Package, info *types.Info) (*Package, error) {
	b := &builder{
		fset:  fset,
		pkg:   pkg,
		info:  info,
		attrs: make(map[types.Object][]introspect.Attribute),
		skip:  make(map[string]bool),
		out: &Package{
			Name:  pkg.Name(),
			Path:  pkg.Path(),
			taken: make(map[string]bool),
			types: pkg,
		},
	}

	var found []marked
	for _, f := range files {
		if isGenerated(f) {
			b.skip[fset.Position(f.Package).Filename] = true
			continue
		}
		for _, decl := range f.Decls {
			m, err := b.scan(decl)
			if err != nil {
				return nil, err
			}
			found = append(found, m...)
		}
	}

	for _, m := range found {
		d, err := b.build(m)
		if err != nil {
			return nil, err
		}
		b.out.Decls = append(b.out.Decls, d)
		Logger().Debug("collected declaration",
			zap.String("package", pkg.Path()),
			zap.String("name", d.DeclName()))
	}
	return b.out, nil
}

type builder struct {
	fset *token.FileSet
	pkg  *types.Package
	info *types.Info
	// attrs holds //introspect:attr entries of every package-level object,
	// annotated or not, so variants can carry their own metadata.
	attrs map[types.Object][]introspect.Attribute
	// skip holds the file names of earlier output.
	skip map[string]bool
	out  *Package
}

// marked is a declaration carrying reflect, enum or func.
type marked struct {
	obj types.Object
	dir directives
}

func isGenerated(f *ast.File) bool {
	for _, cg := range f.Comments {
		if cg.Pos() > f.Package {
			break
		}
		for _, c := range cg.List {
			if c.Text == generatedHeader {
				return true
			}
		}
	}
	return false
}

// scan records names and directives of one top-level declaration.
func (b *builder) scan(decl ast.Decl) ([]marked, error) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Recv != nil {
			return nil, nil
		}
		b.out.taken[d.Name.Name] = true
		return b.note(d.Doc, d.Name)
	case *ast.GenDecl:
		var out []marked
		for _, spec := range d.Specs {
			doc, names := specDoc(d, spec)
			for _, name := range names {
				b.out.taken[name.Name] = true
			}
			if d.Tok == token.IMPORT {
				continue
			}
			for _, name := range names {
				m, err := b.note(doc, name)
				if err != nil {
					return nil, err
				}
				out = append(out, m...)
			}
		}
		return out, nil
	}
	return nil, nil
}

func specDoc(d *ast.GenDecl, spec ast.Spec) (*ast.CommentGroup, []*ast.Ident) {
	var (
		doc   *ast.CommentGroup
		names []*ast.Ident
	)
	switch s := spec.(type) {
	case *ast.TypeSpec:
		doc, names = s.Doc, []*ast.Ident{s.Name}
	case *ast.ValueSpec:
		doc, names = s.Doc, s.Names
	}
	if doc == nil && len(d.Specs) == 1 {
		doc = d.Doc
	}
	return doc, names
}

func (b *builder) note(doc *ast.CommentGroup, name *ast.Ident) ([]marked, error) {
	if name.Name == "_" {
		return nil, nil
	}
	dir, err := parseDirectives(doc, b.pkg.Path(), name.Name)
	if err != nil || dir.empty() {
		return nil, err
	}
	obj := b.info.Defs[name]
	if obj == nil {
		return nil, errors.NotFound(errors.PhaseGenerate, "object", name.Name)
	}
	b.attrs[obj] = dir.attrs
	if !dir.reflect && !dir.enum && !dir.fn {
		return nil, nil
	}
	return []marked{{obj: obj, dir: dir}}, nil
}

func (b *builder) build(m marked) (Decl, error) {
	switch {
	case m.dir.reflect:
		return b.buildStruct(m.obj)
	case m.dir.enum:
		return b.buildEnum(m.obj)
	default:
		return b.buildFunc(m.obj)
	}
}

func (b *builder) unsupported(obj types.Object, detail string, args ...any) error {
	return errors.New(errors.PhaseGenerate, errors.KindUnsupported).
		Path(b.pkg.Path(), obj.Name()).
		GoType(obj.Type().String()).
		Detail(detail, args...).
		Build()
}

func (b *builder) buildStruct(obj types.Object) (*Struct, error) {
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, b.unsupported(obj, "reflect applies to struct types")
	}
	named, ok := tn.Type().(*types.Named)
	if !ok || tn.IsAlias() {
		return nil, b.unsupported(obj, "reflect applies to defined struct types")
	}
	if named.TypeParams().Len() > 0 {
		return nil, b.unsupported(obj, "generic types cannot be described")
	}
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, b.unsupported(obj, "reflect applies to struct types, not %s", named.Underlying())
	}
	fields, err := b.fields(obj.Name(), st)
	if err != nil {
		return nil, err
	}
	return &Struct{Name: obj.Name(), Attrs: b.attrs[obj], Fields: fields, Type: named}, nil
}

func (b *builder) fields(owner string, st *types.Struct) ([]*Field, error) {
	var out []*Field
	for i := 0; i < st.NumFields(); i++ {
		v := st.Field(i)
		if v.Name() == "_" {
			continue
		}
		attrs, err := introspect.TagAttributes(reflect.StructTag(st.Tag(i)))
		if err != nil {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidAttribute).
				Path(b.pkg.Path(), owner, v.Name()).
				Cause(err).
				Build()
		}
		out = append(out, &Field{Name: v.Name(), Type: v.Type(), Attrs: attrs, exported: v.Exported()})
	}
	return out, nil
}

func (b *builder) buildEnum(obj types.Object) (*Enum, error) {
	tn, ok := obj.(*types.TypeName)
	if !ok || tn.IsAlias() {
		return nil, b.unsupported(obj, "enum applies to defined types")
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil, b.unsupported(obj, "enum applies to defined types")
	}
	if named.TypeParams().Len() > 0 {
		return nil, b.unsupported(obj, "generic types cannot be described")
	}
	e := &Enum{Name: obj.Name(), Attrs: b.attrs[obj], Type: named}

	switch u := named.Underlying().(type) {
	case *types.Interface:
		variants, err := b.sumVariants(named, u)
		if err != nil {
			return nil, err
		}
		e.Variants = variants
	case *types.Basic:
		if u.Info()&types.IsInteger == 0 {
			return nil, b.unsupported(obj, "enum needs an integer or interface type, not %s", u)
		}
		e.Integer = u
		e.Variants = b.intVariants(named)
	default:
		return nil, b.unsupported(obj, "enum needs an integer or interface type, not %s", u)
	}
	return e, nil
}

// sumVariants returns the package's concrete types implementing iface, in
// declaration order.
func (b *builder) sumVariants(enum *types.Named, iface *types.Interface) ([]*Variant, error) {
	var out []*Variant
	for _, obj := range b.scopeObjects() {
		tn, ok := obj.(*types.TypeName)
		if !ok || tn.IsAlias() || types.Identical(tn.Type(), enum) {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 || types.IsInterface(named) {
			continue
		}
		value := types.Implements(named, iface)
		if !value && !types.Implements(types.NewPointer(named), iface) {
			continue
		}
		v := &Variant{
			Name:     tn.Name(),
			Attrs:    b.attrs[tn],
			Type:     named,
			Pointer:  !value,
			exported: tn.Exported(),
		}
		if st, ok := named.Underlying().(*types.Struct); ok {
			fields, err := b.fields(tn.Name(), st)
			if err != nil {
				return nil, err
			}
			v.Fields = fields
		}
		out = append(out, v)
	}
	return out, nil
}

// intVariants returns the package's constants of type enum in declaration
// order, aliases included.
func (b *builder) intVariants(enum *types.Named) []*Variant {
	var out []*Variant
	for _, obj := range b.scopeObjects() {
		c, ok := obj.(*types.Const)
		if !ok || !types.Identical(c.Type(), enum) {
			continue
		}
		out = append(out, &Variant{
			Name:     c.Name(),
			Attrs:    b.attrs[c],
			Value:    c.Val(),
			exported: c.Exported(),
		})
	}
	return out
}

// scopeObjects returns the package-level objects in declaration order.
func (b *builder) scopeObjects() []types.Object {
	scope := b.pkg.Scope()
	objs := make([]types.Object, 0, scope.Len())
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if b.skip[b.fset.Position(obj.Pos()).Filename] {
			continue
		}
		objs = append(objs, obj)
	}
	slices.SortFunc(objs, func(a, c types.Object) int {
		pa, pc := b.fset.Position(a.Pos()), b.fset.Position(c.Pos())
		if pa.Filename != pc.Filename {
			return strings.Compare(pa.Filename, pc.Filename)
		}
		return pa.Offset - pc.Offset
	})
	return objs
}

func (b *builder) buildFunc(obj types.Object) (*Func, error) {
	fn, ok := obj.(*types.Func)
	if !ok {
		return nil, b.unsupported(obj, "func applies to functions")
	}
	sig := fn.Type().(*types.Signature)
	if sig.TypeParams().Len() > 0 {
		return nil, b.unsupported(obj, "generic functions cannot be described")
	}
	f := &Func{Name: fn.Name(), Attrs: b.attrs[obj], Sig: sig}
	for i := 0; i < sig.Params().Len(); i++ {
		p := sig.Params().At(i)
		name := p.Name()
		if name == "_" {
			name = ""
		}
		f.Params = append(f.Params, &Param{Name: name, Type: p.Type()})
	}
	return f, nil
}
