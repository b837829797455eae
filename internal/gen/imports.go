package gen

import (
	"slices"
	"strconv"
	"strings"
)

// importSet records the packages generated code refers to and the name
// each one is imported under.
type importSet struct {
	names map[string]string // path -> local name
	local map[string]string // local name -> path
}

func newImportSet() *importSet {
	return &importSet{names: make(map[string]string), local: make(map[string]string)}
}

// use imports path and returns the name to qualify it with. A second
// package with the same name gets a numbered alias.
func (s *importSet) use(path, name string) string {
	if n, ok := s.names[path]; ok {
		return n
	}
	n := name
	for i := 2; ; i++ {
		if _, clash := s.local[n]; !clash {
			break
		}
		n = name + strconv.Itoa(i)
	}
	s.names[path] = n
	s.local[n] = path
	return n
}

// block renders the import declaration, standard library first.
func (s *importSet) block() string {
	if len(s.names) == 0 {
		return ""
	}
	var std, other []string
	for path := range s.names {
		if isStd(path) {
			std = append(std, path)
		} else {
			other = append(other, path)
		}
	}
	slices.Sort(std)
	slices.Sort(other)

	var b strings.Builder
	b.WriteString("import (\n")
	s.lines(&b, std)
	if len(std) > 0 && len(other) > 0 {
		b.WriteString("\n")
	}
	s.lines(&b, other)
	b.WriteString(")\n")
	return b.String()
}

func (s *importSet) lines(b *strings.Builder, paths []string) {
	for _, path := range paths {
		b.WriteString("\t")
		if n := s.names[path]; n != defaultName(path) {
			b.WriteString(n + " ")
		}
		b.WriteString(strconv.Quote(path) + "\n")
	}
}

// isStd reports whether path belongs to the standard library, whose
// first element never contains a dot.
func isStd(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}

func defaultName(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}
