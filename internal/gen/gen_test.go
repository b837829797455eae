package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"
)

// petsSource is a package exercising every kind of declaration. Quotes
// written as ' become backquotes.
const petsSource = `package pets

// Dog is described.
//
//introspect:reflect
//introspect:attr serializable
type Dog struct {
	Name  string 'introspect:"doc=\"good boy\""'
	age   int
	Tags  []string
	_     int
	Best  *person
	owner *person
}

type person struct{ Name string }

//introspect:enum
type Size uint8

const (
	Small Size = iota + 1
	Medium
	Large
	Huge = Large
	tiny Size = 0
)

//introspect:enum
//introspect:attr closed
type Shape interface{ area() float64 }

type Circle struct{ R float64 }

type Square struct{ Side float64 }

type blob struct{}

func (Circle) area() float64  { return 0 }
func (*Square) area() float64 { return 0 }
func (blob) area() float64    { return 0 }

// Walk takes the dog out.
//
//introspect:func
func Walk(d *Dog, _ int, steps ...int) (int, error) { return 0, nil }

//introspect:func
func hidden(p person) {}
`

// check type-checks src as package example.com/pets and builds its model.
func check(t *testing.T, src string) (*Package, error) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "pets.go", strings.ReplaceAll(src, "'", "`"), parser.ParseComments)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	info := &types.Info{
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
		Types: make(map[ast.Expr]types.TypeAndValue),
	}
	var conf types.Config
	pkg, err := conf.Check("example.com/pets", fset, []*ast.File{f}, info)
	if err != nil {
		t.Fatalf("type check: %v", err)
	}
	return Build(fset, []*ast.File{f}, pkg, info)
}

func mustCheck(t *testing.T, src string) *Package {
	t.Helper()
	pkg, err := check(t, src)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return pkg
}
