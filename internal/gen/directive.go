package gen

import (
	"go/ast"
	"strings"

	"github.com/wippyai/introspect"
	"github.com/wippyai/introspect/errors"
)

const directivePrefix = "//introspect:"

// directives are the introspect directives of one doc comment.
type directives struct {
	reflect bool
	enum    bool
	fn      bool
	attrs   []introspect.Attribute
}

func (d directives) empty() bool {
	return !d.reflect && !d.enum && !d.fn && len(d.attrs) == 0
}

// parseDirectives reads the directive lines of cg. Lines are taken raw:
// ast.CommentGroup.Text drops directives.
func parseDirectives(cg *ast.CommentGroup, path ...string) (directives, error) {
	var d directives
	if cg == nil {
		return d, nil
	}
	for _, c := range cg.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		verb, arg, _ := strings.Cut(strings.TrimPrefix(c.Text, directivePrefix), " ")
		arg = strings.TrimSpace(arg)
		switch verb {
		case "reflect", "enum", "func":
			if arg != "" {
				return d, errors.InvalidAttribute(path, c.Text, verb+" takes no argument")
			}
			switch verb {
			case "reflect":
				d.reflect = true
			case "enum":
				d.enum = true
			case "func":
				d.fn = true
			}
		case "attr":
			if arg == "" {
				return d, errors.InvalidAttribute(path, c.Text, "missing attribute")
			}
			attrs, err := introspect.ParseAttributes(arg)
			if err != nil {
				return d, err
			}
			d.attrs = append(d.attrs, attrs...)
		default:
			return d, errors.InvalidAttribute(path, c.Text, "unknown directive "+verb)
		}
	}
	if n := btoi(d.reflect) + btoi(d.enum) + btoi(d.fn); n > 1 {
		return d, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Path(path...).
			Detail("reflect, enum and func are exclusive").
			Build()
	}
	return d, nil
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
