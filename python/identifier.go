// Package python emits the Python wrapper source and the native cdef
// declaration block from a populated type registry. It consumes the
// registry in insertion order, so output sections follow the header's
// declaration order and diff stably across runs.
package python

import "strings"

// reservedWords are Python keywords that cannot be used as identifiers.
var reservedWords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true,
	"for": true, "from": true, "global": true, "if": true,
	"import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}

// pyIdent makes a name safe as a Python identifier: keywords get a
// trailing underscore, names starting with a digit (enum variants like
// "2D") get a leading one.
func pyIdent(name string) string {
	if name == "" {
		return name
	}
	if reservedWords[name] {
		return name + "_"
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "_" + name
	}
	return name
}

// snake converts lowerCamel names to snake_case for generated locals.
func snake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
