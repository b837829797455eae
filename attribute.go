package introspect

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/wippyai/introspect/errors"
)

// TagKey is the struct tag key read for field attributes. Other keys, such
// as json or db, are never collected.
const TagKey = "introspect"

// Attribute is one metadata entry attached to a type, field, variant,
// function or parameter.
type Attribute struct {
	Name     string
	Value    string
	HasValue bool
}

// String renders a valued attribute as name = "value" and a flag as name.
func (a Attribute) String() string {
	if !a.HasValue {
		return a.Name
	}
	return a.Name + ` = "` + a.Value + `"`
}

// LookupAttribute returns the first attribute named name.
func LookupAttribute(attrs []Attribute, name string) (Attribute, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// HasAttribute reports whether an attribute named name is present.
func HasAttribute(attrs []Attribute, name string) bool {
	_, ok := LookupAttribute(attrs, name)
	return ok
}

// TagAttributes parses the introspect key of a struct tag.
func TagAttributes(tag reflect.StructTag) ([]Attribute, error) {
	v, ok := tag.Lookup(TagKey)
	if !ok {
		return nil, nil
	}
	return ParseAttributes(v)
}

// ParseAttributes parses a comma separated list of entries of the form
// name or name=value. A value may be a double-quoted Go string, which is the
// only way to put a comma in it.
//
//	skip,rename=purr,doc="level, 0 to 10"
func ParseAttributes(s string) ([]Attribute, error) {
	var attrs []Attribute
	rest := strings.TrimSpace(s)
	for rest != "" {
		entry, tail, err := nextEntry(rest)
		if err != nil {
			return nil, err
		}
		a, err := parseEntry(entry)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
		rest = strings.TrimSpace(tail)
	}
	return attrs, nil
}

// nextEntry splits off the first entry, honouring quoted values.
func nextEntry(s string) (entry, rest string, err error) {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && inQuote:
			i++
		case c == '"':
			inQuote = !inQuote
		case c == ',' && !inQuote:
			return s[:i], s[i+1:], nil
		}
	}
	if inQuote {
		return "", "", errors.InvalidAttribute(nil, s, "unterminated quoted value")
	}
	return s, "", nil
}

func parseEntry(entry string) (Attribute, error) {
	entry = strings.TrimSpace(entry)
	name, value, hasValue := strings.Cut(entry, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return Attribute{}, errors.InvalidAttribute(nil, entry, "empty name")
	}
	if strings.ContainsAny(name, " \t\"") {
		return Attribute{}, errors.InvalidAttribute(nil, entry, "name contains whitespace or quotes")
	}
	if !hasValue {
		return Attribute{Name: name}, nil
	}
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, `"`) {
		uq, err := strconv.Unquote(value)
		if err != nil {
			return Attribute{}, errors.InvalidAttribute(nil, entry, "malformed quoted value")
		}
		value = uq
	}
	return Attribute{Name: name, Value: value, HasValue: true}, nil
}
