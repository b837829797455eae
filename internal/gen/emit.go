package gen

import (
	"bytes"
	"fmt"
	"go/types"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/imports"

	"github.com/wippyai/introspect"
	"github.com/wippyai/introspect/errors"
)

const (
	introspectPath = "github.com/wippyai/introspect"
	registryPath   = "github.com/wippyai/introspect/registry"

	// maxLine is the longest method kept on one line.
	maxLine = 100
)

// Options control one generation run.
type Options struct {
	// Into names the destination package for foreign-scope output. Empty
	// generates into the source package.
	Into string
	// Private includes unexported declarations and members. It needs the
	// defining scope.
	Private bool
	// Register emits an init function publishing every descriptor to
	// registry.Default.
	Register bool
	// Types restricts output to the named declarations.
	Types []string
}

// Generate renders descriptors for pkg as a formatted Go source file.
func Generate(pkg *Package, opts Options) ([]byte, error) {
	if opts.Private && opts.Into != "" {
		return nil, errors.InvalidInput(errors.PhaseGenerate, "unexported members are only visible in the defining scope")
	}
	foreign := opts.Into != ""
	g := &generator{
		pkg:     pkg,
		opts:    opts,
		foreign: foreign,
		names:   newNamer(foreign, pkg.taken),
		imp:     newImportSet(),
	}

	decls, err := g.selectDecls()
	if err != nil {
		return nil, err
	}

	var registered []string
	var enums []*Enum
	for _, d := range decls {
		var desc string
		switch d := d.(type) {
		case *Struct:
			desc, err = g.emitStruct(d)
		case *Enum:
			_, err = g.emitEnum(d)
			enums = append(enums, d)
		case *Func:
			desc, err = g.emitFunc(d)
		}
		if err != nil {
			return nil, err
		}
		if desc != "" {
			registered = append(registered, desc+"{}")
		}
	}
	if opts.Register {
		g.emitInit(registered, enums)
	}

	src := g.assemble()
	out, err := imports.Process(g.destName()+"_introspect.go", src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		Logger().Error("generated source does not parse", zap.Error(err))
		return nil, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidInput, err, "formatting generated source")
	}
	Logger().Debug("generated descriptors",
		zap.String("package", pkg.Path),
		zap.Bool("foreign", foreign),
		zap.Int("declarations", len(decls)),
		zap.Int("bytes", len(out)))
	return out, nil
}

type generator struct {
	pkg     *Package
	opts    Options
	foreign bool
	names   *namer
	imp     *importSet
	body    bytes.Buffer
}

func (g *generator) destName() string {
	if g.foreign {
		return g.opts.Into
	}
	return g.pkg.Name
}

// selectDecls applies the type restriction and the scope's visibility.
func (g *generator) selectDecls() ([]Decl, error) {
	for _, name := range g.opts.Types {
		if _, ok := g.pkg.Lookup(name); !ok {
			return nil, errors.NotFound(errors.PhaseGenerate, "annotated declaration", name)
		}
	}
	var out []Decl
	for _, d := range g.pkg.Decls {
		if len(g.opts.Types) > 0 && !slices.Contains(g.opts.Types, d.DeclName()) {
			continue
		}
		if !d.Exported() && (g.foreign || !g.opts.Private) {
			Logger().Debug("skipping unexported declaration", zap.String("name", d.DeclName()))
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// visible reports whether a member is emitted in this scope.
func (g *generator) visible(exported bool) bool {
	return exported || (!g.foreign && g.opts.Private)
}

func (g *generator) printf(format string, args ...any) {
	fmt.Fprintf(&g.body, format, args...)
}

// method writes a method on a descriptor type, on one line when it fits.
func (g *generator) method(recv, sig, body string) {
	line := "func (" + recv + ") " + sig + " { " + body + " }"
	if !strings.Contains(body, "\n") && len(line) <= maxLine {
		g.printf("%s\n", line)
		return
	}
	g.printf("func (%s) %s {\n\t%s\n}\n", recv, sig, strings.ReplaceAll(body, "\n", "\n\t"))
}

func (g *generator) intro() string { return g.imp.use(introspectPath, "introspect") }
func (g *generator) refl() string  { return g.imp.use("reflect", "reflect") }

func (g *generator) qualifier(p *types.Package) string {
	if !g.foreign && p == g.pkg.types {
		return ""
	}
	return g.imp.use(p.Path(), p.Name())
}

func (g *generator) typeString(t types.Type) string {
	s := types.TypeString(t, g.qualifier)
	if strings.Contains(s, "unsafe.Pointer") {
		g.imp.use("unsafe", "unsafe")
	}
	return s
}

// src refers to a source package identifier from the destination.
func (g *generator) src(name string) string {
	if !g.foreign {
		return name
	}
	return g.imp.use(g.pkg.Path, g.pkg.Name) + "." + name
}

// display names a source identifier in comments.
func (g *generator) display(name string) string {
	if !g.foreign {
		return name
	}
	return g.pkg.Name + "." + name
}

func (g *generator) qualified(name string) string {
	return strconv.Quote(g.pkg.Path + "." + name)
}

func (g *generator) typeFor(t string) string {
	return g.refl() + ".TypeFor[" + t + "]()"
}

func (g *generator) defaults() string {
	return g.intro() + ".Defaults"
}

func (g *generator) declare(desc, what string) {
	g.printf("// %s describes %s.\n", desc, what)
	g.printf("type %s struct{ %s }\n\n", desc, g.defaults())
}

// memberKind selects the naming of a member list.
type memberKind struct {
	count, array, list, info string
}

var (
	fieldMembers     = memberKind{count: "FieldCount", array: "Fields", list: "FieldList", info: "FieldInfo"}
	variantMembers   = memberKind{count: "VariantCount", array: "Variants", list: "VariantList", info: "VariantInfo"}
	parameterMembers = memberKind{count: "ParameterCount", array: "Parameters", list: "ParameterList", info: "ParameterInfo"}
)

func indexName(desc string) string { return lowerFirst(desc) + "Index" }

// members writes the index constants, the descriptor array, the static
// count assertions and the list type of desc's members.
func (g *generator) members(desc string, kind memberKind, members []string) error {
	base := lowerFirst(desc)
	count, array, list := base+kind.count, base+kind.array, base+kind.list
	if err := g.names.claim(count, array, list); err != nil {
		return err
	}
	for _, m := range members {
		if err := g.names.claim(indexName(m)); err != nil {
			return err
		}
	}

	g.printf("const (\n")
	for i, m := range members {
		if i == 0 {
			g.printf("\t%s = iota\n", indexName(m))
			continue
		}
		g.printf("\t%s\n", indexName(m))
	}
	g.printf("\t%s\n)\n\n", count)

	g.printf("var %s = [...]%s.%s{\n", array, g.intro(), kind.info)
	for _, m := range members {
		g.printf("\t%s: %s{},\n", indexName(m), m)
	}
	g.printf("}\n\n")

	g.printf("const (\n\t_ = uint(len(%s) - %s)\n\t_ = uint(%s - len(%s))\n)\n\n", array, count, count, array)

	g.printf("type %s struct {\n", list)
	for _, m := range members {
		g.printf("\t%s\n", m)
	}
	g.printf("}\n\n")
	return nil
}

// memberMethods writes the count, list and list-type accessors.
func (g *generator) memberMethods(desc string, kind memberKind) {
	base := lowerFirst(desc)
	g.method(desc, kind.count+"() int", "return "+base+kind.count)
	g.method(desc, kind.array+"() []"+g.intro()+"."+kind.info, "return "+base+kind.array+"[:]")
	g.method(desc, kind.array+"Type() "+g.refl()+".Type", "return "+g.typeFor(base+kind.list))
}

// attributes writes desc's attribute table and returns its name, or ""
// when there is nothing to write.
func (g *generator) attributes(desc string, attrs []introspect.Attribute) (string, error) {
	if len(attrs) == 0 {
		return "", nil
	}
	name := lowerFirst(desc) + "Attributes"
	if err := g.names.claim(name); err != nil {
		return "", err
	}
	g.printf("var %s = []%s.Attribute{\n", name, g.intro())
	for _, a := range attrs {
		if a.HasValue {
			g.printf("\t{Name: %q, Value: %q, HasValue: true},\n", a.Name, a.Value)
			continue
		}
		g.printf("\t{Name: %q},\n", a.Name)
	}
	g.printf("}\n\n")
	return name, nil
}

func (g *generator) attributesMethod(desc, table string) {
	if table != "" {
		g.method(desc, "Attributes() []"+g.intro()+".Attribute", "return "+table)
	}
}

// fieldsOf filters fields to the ones this scope can see and name.
func (g *generator) fieldsOf(owner string, fields []*Field) []*Field {
	var out []*Field
	for _, f := range fields {
		if !g.visible(f.Exported()) {
			continue
		}
		if !g.nameable(f.Type) {
			Logger().Debug("skipping field with unnameable type",
				zap.String("owner", owner),
				zap.String("field", f.Name))
			continue
		}
		out = append(out, f)
	}
	return out
}

type namedField struct {
	*Field
	desc string
}

// fieldList names the descriptors of fields owned by ownerBase.
func (g *generator) fieldList(ownerBase string, ownerExported bool, fields []*Field) []namedField {
	out := make([]namedField, len(fields))
	for i, f := range fields {
		out[i] = namedField{Field: f, desc: g.names.desc(memberBase(ownerBase, f.Name), ownerExported && f.Exported())}
	}
	return out
}

func descNames(fields []namedField) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.desc
	}
	return out
}

func (g *generator) emitStruct(s *Struct) (string, error) {
	desc := g.names.desc(s.Name, s.Exported())
	if err := g.names.claim(desc); err != nil {
		return "", err
	}
	fields := g.fieldList(s.Name, s.Exported(), g.fieldsOf(s.Name, s.Fields))
	owner := g.src(s.Name)

	g.declare(desc, g.display(s.Name))
	if len(fields) > 0 {
		if err := g.members(desc, fieldMembers, descNames(fields)); err != nil {
			return "", err
		}
	}
	table, err := g.attributes(desc, s.Attrs)
	if err != nil {
		return "", err
	}

	g.method(desc, "Kind() "+g.intro()+".Kind", "return "+g.intro()+".KindStruct")
	g.method(desc, "Name() string", "return "+g.qualified(s.Name))
	g.attributesMethod(desc, table)
	g.method(desc, "Type() "+g.refl()+".Type", "return "+g.typeFor(owner))
	if len(fields) > 0 {
		g.memberMethods(desc, fieldMembers)
	}
	g.method(desc, "Owner() *"+owner, "return nil")
	g.printf("\n")

	if err := g.emitFields(s.Name, owner, fields); err != nil {
		return "", err
	}
	Logger().Debug("emitted struct descriptor", zap.String("descriptor", desc), zap.Int("fields", len(fields)))
	return desc, nil
}

func (g *generator) emitFields(ownerName, owner string, fields []namedField) error {
	for _, f := range fields {
		if err := g.names.claim(f.desc); err != nil {
			return err
		}
		typ := g.typeString(f.Type)

		g.declare(f.desc, g.display(ownerName)+"."+f.Name)
		table, err := g.attributes(f.desc, f.Attrs)
		if err != nil {
			return err
		}
		g.method(f.desc, "DeclarationIndex() int", "return "+indexName(f.desc))
		g.method(f.desc, "Name() string", "return "+strconv.Quote(f.Name))
		g.method(f.desc, "ByteOffset() uintptr", "return "+g.imp.use("unsafe", "unsafe")+".Offsetof("+owner+"{}."+f.Name+")")
		g.attributesMethod(f.desc, table)
		g.method(f.desc, "OwnerType() "+g.refl()+".Type", "return "+g.typeFor(owner))
		g.method(f.desc, "Type() "+g.refl()+".Type", "return "+g.typeFor(typ))
		g.method(f.desc, "Of(o *"+owner+") *"+typ, "return &o."+f.Name)
		g.printf("\n")
	}
	return nil
}

func (g *generator) emitEnum(e *Enum) (string, error) {
	desc := g.names.desc(e.Name, e.Exported())
	if err := g.names.claim(desc); err != nil {
		return "", err
	}
	enum := g.src(e.Name)
	disc := g.intro() + ".Discriminant[" + enum + "]"

	var variants []*Variant
	for _, v := range e.Variants {
		if !g.visible(v.Exported()) {
			continue
		}
		if v.Type != nil && !g.nameable(v.Type) {
			continue
		}
		if e.Integer != nil && slices.ContainsFunc(variants, v.sameValue) {
			Logger().Debug("skipping enum alias", zap.String("const", v.Name))
			continue
		}
		variants = append(variants, v)
	}
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = g.names.desc(variantBase(e.Name, v.Name), e.Exported() && v.Exported())
	}

	g.declare(desc, g.display(e.Name))
	if len(variants) > 0 {
		if err := g.members(desc, variantMembers, names); err != nil {
			return "", err
		}
	}
	table, err := g.attributes(desc, e.Attrs)
	if err != nil {
		return "", err
	}

	g.method(desc, "Kind() "+g.intro()+".Kind", "return "+g.intro()+".KindEnum")
	g.method(desc, "Name() string", "return "+g.qualified(e.Name))
	g.attributesMethod(desc, table)
	g.method(desc, "Type() "+g.refl()+".Type", "return "+g.typeFor(enum))
	if e.Integer != nil {
		g.method(desc, "IntegerType() "+g.refl()+".Type", "return "+g.typeFor(g.typeString(e.Integer)))
	}
	if len(variants) > 0 {
		g.memberMethods(desc, variantMembers)
	}

	var body strings.Builder
	if len(variants) > 0 {
		if e.Integer != nil {
			consts := make([]string, len(variants))
			for i, v := range variants {
				consts[i] = g.src(v.Name)
			}
			fmt.Fprintf(&body, "switch v {\ncase %s:\n\treturn %s.NewDiscriminant[%s](uint64(v)), true\n}\n",
				strings.Join(consts, ", "), g.intro(), enum)
		} else {
			body.WriteString("switch v.(type) {\n")
			for i, v := range variants {
				fmt.Fprintf(&body, "case %s:\n\treturn %s.NewDiscriminant[%s](%s), true\n",
					g.caseTypes(v), g.intro(), enum, indexName(names[i]))
			}
			body.WriteString("}\n")
		}
	}
	fmt.Fprintf(&body, "return %s{}, false", disc)
	g.method(desc, "DiscriminantOf(v "+enum+") ("+disc+", bool)", body.String())
	g.printf("\n")

	for i, v := range variants {
		if err := g.emitVariant(e, names[i], v); err != nil {
			return "", err
		}
	}
	Logger().Debug("emitted enum descriptor", zap.String("descriptor", desc), zap.Int("variants", len(variants)))
	return desc, nil
}

// caseTypes lists the type switch cases matching a sum enum variant.
func (g *generator) caseTypes(v *Variant) string {
	t := g.typeString(v.Type)
	if v.Pointer {
		return "*" + t
	}
	return t + ", *" + t
}

func (g *generator) emitVariant(e *Enum, desc string, v *Variant) error {
	if err := g.names.claim(desc); err != nil {
		return err
	}
	enum := g.src(e.Name)
	disc := g.intro() + ".Discriminant[" + enum + "]"

	if e.Integer != nil {
		g.declare(desc, g.display(v.Name))
		table, err := g.attributes(desc, v.Attrs)
		if err != nil {
			return err
		}
		value := g.src(v.Name)
		integer := g.typeString(e.Integer)

		g.method(desc, "DeclarationIndex() int", "return "+indexName(desc))
		g.method(desc, "Name() string", "return "+strconv.Quote(v.Name))
		g.attributesMethod(desc, table)
		g.method(desc, "OwnerType() "+g.refl()+".Type", "return "+g.typeFor(enum))
		g.method(desc, "Type() "+g.refl()+".Type", "return "+g.intro()+".NoTypeOf()")
		// Through a variable so negative values sign-extend instead of
		// failing constant conversion.
		g.method(desc, "RawValue() (uint64, bool)", "v := "+value+"\nreturn uint64(v), true")
		g.method(desc, "IntegerValue() ("+integer+", bool)", "return "+integer+"("+value+"), true")
		g.method(desc, "Discriminant() "+disc, "v := "+value+"\nreturn "+g.intro()+".NewDiscriminant["+enum+"](uint64(v))")
		g.printf("\n")
		return nil
	}

	typ := g.typeString(v.Type)
	fields := g.fieldList(variantBase(e.Name, v.Name), e.Exported() && v.Exported(), g.fieldsOf(v.Name, v.Fields))

	g.declare(desc, g.display(v.Name))
	if len(fields) > 0 {
		if err := g.members(desc, fieldMembers, descNames(fields)); err != nil {
			return err
		}
	}
	table, err := g.attributes(desc, v.Attrs)
	if err != nil {
		return err
	}

	g.method(desc, "DeclarationIndex() int", "return "+indexName(desc))
	g.method(desc, "Name() string", "return "+strconv.Quote(v.Name))
	g.attributesMethod(desc, table)
	g.method(desc, "OwnerType() "+g.refl()+".Type", "return "+g.typeFor(enum))
	g.method(desc, "Type() "+g.refl()+".Type", "return "+g.typeFor(typ))
	if len(fields) > 0 {
		g.memberMethods(desc, fieldMembers)
	}
	g.method(desc, "IntegerValue() ("+g.intro()+".NoType, bool)", "return "+g.intro()+".NoType{}, false")
	g.method(desc, "Discriminant() "+disc, "return "+g.intro()+".NewDiscriminant["+enum+"]("+indexName(desc)+")")
	g.printf("\n")

	return g.emitFields(v.Name, typ, fields)
}

func (g *generator) emitFunc(f *Func) (string, error) {
	for _, p := range f.Params {
		if !g.nameable(p.Type) {
			Logger().Warn("skipping function with unnameable parameter", zap.String("func", f.Name))
			return "", nil
		}
	}
	for i := 0; i < f.Sig.Results().Len(); i++ {
		if !g.nameable(f.Sig.Results().At(i).Type()) {
			Logger().Warn("skipping function with unnameable result", zap.String("func", f.Name))
			return "", nil
		}
	}

	desc := g.names.desc(f.Name, f.Exported())
	if err := g.names.claim(desc); err != nil {
		return "", err
	}
	fnType := g.funcType(f.Sig)
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = g.names.desc(paramBase(f.Name, p.Name, i), f.Exported())
	}

	g.declare(desc, g.display(f.Name))
	if len(params) > 0 {
		if err := g.members(desc, parameterMembers, params); err != nil {
			return "", err
		}
	}

	var ret string
	switch results := f.Sig.Results(); results.Len() {
	case 0:
	case 1:
		ret = g.typeFor(g.typeString(results.At(0).Type()))
	default:
		tuple := lowerFirst(desc) + "Results"
		if err := g.names.claim(tuple); err != nil {
			return "", err
		}
		g.printf("// %s is the result tuple of %s.\n", tuple, g.display(f.Name))
		g.printf("type %s struct {\n", tuple)
		for i := 0; i < results.Len(); i++ {
			g.printf("\tR%d %s\n", i, g.typeString(results.At(i).Type()))
		}
		g.printf("}\n\n")
		ret = g.typeFor(tuple)
	}

	table, err := g.attributes(desc, f.Attrs)
	if err != nil {
		return "", err
	}

	g.method(desc, "Kind() "+g.intro()+".Kind", "return "+g.intro()+".KindFunction")
	g.method(desc, "Name() string", "return "+g.qualified(f.Name))
	g.attributesMethod(desc, table)
	g.method(desc, "Type() "+g.refl()+".Type", "return "+g.typeFor(fnType))
	if len(params) > 0 {
		g.memberMethods(desc, parameterMembers)
	}
	if ret != "" {
		g.method(desc, "ReturnType() "+g.refl()+".Type", "return "+ret)
	}
	g.method(desc, "Func() "+fnType, "return "+g.src(f.Name))
	g.printf("\n")

	for i, p := range f.Params {
		if err := g.names.claim(params[i]); err != nil {
			return "", err
		}
		which := p.Name
		if which == "" {
			which = strconv.Itoa(i)
		}
		g.printf("// %s describes parameter %s of %s.\n", params[i], which, g.display(f.Name))
		g.printf("type %s struct{ %s }\n\n", params[i], g.defaults())
		g.method(params[i], "ParameterIndex() int", "return "+indexName(params[i]))
		g.method(params[i], "Name() string", "return "+strconv.Quote(p.Name))
		g.method(params[i], "OwnerName() string", "return "+g.qualified(f.Name))
		g.method(params[i], "Type() "+g.refl()+".Type", "return "+g.typeFor(g.typeString(p.Type)))
		g.printf("\n")
	}
	Logger().Debug("emitted function descriptor", zap.String("descriptor", desc), zap.Int("parameters", len(params)))
	return desc, nil
}

// funcType writes sig as a function type literal without parameter names.
func (g *generator) funcType(sig *types.Signature) string {
	var b strings.Builder
	b.WriteString("func(")
	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		t := params.At(i).Type()
		if sig.Variadic() && i == params.Len()-1 {
			if s, ok := t.(*types.Slice); ok {
				b.WriteString("..." + g.typeString(s.Elem()))
				continue
			}
		}
		b.WriteString(g.typeString(t))
	}
	b.WriteString(")")

	results := sig.Results()
	switch results.Len() {
	case 0:
	case 1:
		b.WriteString(" " + g.typeString(results.At(0).Type()))
	default:
		parts := make([]string, results.Len())
		for i := range parts {
			parts[i] = g.typeString(results.At(i).Type())
		}
		b.WriteString(" (" + strings.Join(parts, ", ") + ")")
	}
	return b.String()
}

// emitInit registers enums through MustRegisterEnum so their mirrors keep
// typed discriminants.
func (g *generator) emitInit(descs []string, enums []*Enum) {
	if len(descs) == 0 && len(enums) == 0 {
		return
	}
	reg := g.imp.use(registryPath, "registry")
	g.printf("func init() {\n\tr := %s.Default()\n", reg)
	if len(descs) > 0 {
		g.printf("\tr.MustRegister(%s)\n", strings.Join(descs, ", "))
	}
	for _, e := range enums {
		g.printf("\t%s.MustRegisterEnum[%s](r, %s{})\n", reg, g.src(e.Name), g.names.desc(e.Name, e.Exported()))
	}
	g.printf("}\n")
}

// assemble prepends the header and the import block to the body.
func (g *generator) assemble() []byte {
	var out bytes.Buffer
	out.WriteString(generatedHeader + "\n\n")
	fmt.Fprintf(&out, "package %s\n\n", g.destName())
	if block := g.imp.block(); block != "" {
		out.WriteString(block + "\n")
	}
	out.Write(g.body.Bytes())
	return out.Bytes()
}

// nameable reports whether t can be spelled in the destination package.
func (g *generator) nameable(t types.Type) bool {
	if !g.foreign {
		return true
	}
	return nameableOutside(t, make(map[types.Type]bool))
}

func nameableOutside(t types.Type, seen map[types.Type]bool) bool {
	if seen[t] {
		return true
	}
	seen[t] = true
	switch t := t.(type) {
	case *types.Basic:
		return t.Kind() != types.Invalid
	case *types.Alias:
		if obj := t.Obj(); obj.Pkg() != nil && !obj.Exported() {
			return false
		}
		return nameableOutside(types.Unalias(t), seen)
	case *types.Named:
		if obj := t.Obj(); obj.Pkg() != nil && !obj.Exported() {
			return false
		}
		for i := 0; i < t.TypeArgs().Len(); i++ {
			if !nameableOutside(t.TypeArgs().At(i), seen) {
				return false
			}
		}
		return true
	case *types.Pointer:
		return nameableOutside(t.Elem(), seen)
	case *types.Slice:
		return nameableOutside(t.Elem(), seen)
	case *types.Array:
		return nameableOutside(t.Elem(), seen)
	case *types.Chan:
		return nameableOutside(t.Elem(), seen)
	case *types.Map:
		return nameableOutside(t.Key(), seen) && nameableOutside(t.Elem(), seen)
	case *types.Signature:
		for _, tup := range []*types.Tuple{t.Params(), t.Results()} {
			for i := 0; i < tup.Len(); i++ {
				if !nameableOutside(tup.At(i).Type(), seen) {
					return false
				}
			}
		}
		return true
	case *types.Struct:
		for i := 0; i < t.NumFields(); i++ {
			f := t.Field(i)
			if !f.Exported() || !nameableOutside(f.Type(), seen) {
				return false
			}
		}
		return true
	case *types.Interface:
		for i := 0; i < t.NumExplicitMethods(); i++ {
			if !t.ExplicitMethod(i).Exported() {
				return false
			}
		}
		for i := 0; i < t.NumEmbeddeds(); i++ {
			if !nameableOutside(t.EmbeddedType(i), seen) {
				return false
			}
		}
		return true
	}
	return false
}
