package gen

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wippyai/introspect/errors"
)

// namer hands out package-level identifiers for generated code and
// refuses duplicates.
type namer struct {
	foreign bool
	// taken holds names the destination package already declares.
	taken map[string]bool
	used  map[string]bool
}

func newNamer(foreign bool, taken map[string]bool) *namer {
	if foreign {
		taken = nil
	}
	return &namer{foreign: foreign, taken: taken, used: make(map[string]bool)}
}

// desc returns the descriptor type name for base. The defining scope
// appends Info; descriptors of unexported members are unexported.
func (n *namer) desc(base string, exported bool) string {
	name := base
	if !n.foreign {
		name += "Info"
	}
	if !exported {
		name = lowerFirst(name)
	}
	return name
}

func (n *namer) claim(names ...string) error {
	for _, name := range names {
		if n.used[name] || n.taken[name] {
			return errors.New(errors.PhaseGenerate, errors.KindDuplicate).
				Detail("identifier %q declared twice", name).
				Build()
		}
		n.used[name] = true
	}
	return nil
}

// memberBase joins an owner and member name: Meow and purrLevel give
// MeowPurrLevel.
func memberBase(owner, member string) string {
	return owner + upperFirst(member)
}

// variantBase names a variant after its enum, dropping a repeated enum
// prefix: Mood and MoodSleepy give MoodSleepy, Toy and Yarn give ToyYarn.
func variantBase(enum, variant string) string {
	rest, ok := strings.CutPrefix(variant, enum)
	if ok && rest != "" {
		r, _ := utf8.DecodeRuneInString(rest)
		if unicode.IsUpper(r) || unicode.IsDigit(r) || r == '_' {
			return enum + rest
		}
	}
	return enum + upperFirst(variant)
}

// paramBase names parameter i of fn, falling back to its position.
func paramBase(fn, param string, i int) string {
	if param == "" {
		return fn + "Param" + strconv.Itoa(i)
	}
	return memberBase(fn, param)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// lowerFirst lowers the leading capital run, keeping the start of the next
// word: MeowInfo gives meowInfo, HTTPServer gives httpServer.
func lowerFirst(s string) string {
	runes := []rune(s)
	for i := range runes {
		if !unicode.IsUpper(runes[i]) {
			break
		}
		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
