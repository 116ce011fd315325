package scan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gfxkit/wgpugen/ir"
)

const nullableMarker = "WGPU_NULLABLE"

var identRe = regexp.MustCompile(`^[A-Za-z_]\w*$`)
var arraySuffixRe = regexp.MustCompile(`\[\s*\w*\s*\]$`)

// parseField splits one raw declaration ("WGPU_NULLABLE WGPUBuffer
// buffer", "uint32_t const * entryCount", ...) into name, type
// reference, and qualifiers. A declaration that cannot be split into
// name+type at all is a structural error that aborts the run.
func parseField(decl string) (ir.RawField, error) {
	f := ir.RawField{}
	decl = strings.TrimSpace(decl)

	if strings.Contains(decl, nullableMarker) {
		f.Nullable = true
		decl = strings.ReplaceAll(decl, nullableMarker, "")
	}

	// A fixed-size array member degrades to a pointer to its element type.
	if arraySuffixRe.MatchString(decl) {
		f.Pointer = true
		decl = arraySuffixRe.ReplaceAllString(decl, "")
	}

	tokens, stars, isConst := splitTokens(decl)
	f.Pointer = f.Pointer || stars > 0
	f.Const = isConst

	if len(tokens) < 2 {
		return f, fmt.Errorf("cannot split field declaration %q into name and type", decl)
	}

	name := tokens[len(tokens)-1]
	if !identRe.MatchString(name) {
		return f, fmt.Errorf("field declaration %q does not end in an identifier", decl)
	}
	f.Name = name
	f.Type = ir.Ref(strings.Join(tokens[:len(tokens)-1], " "))

	// Pointers to the chain-link type are nullable whether or not the
	// header says so; extension chains are always optional.
	if strings.HasPrefix(f.Type.Name, ir.ChainStructName) && f.Pointer {
		f.Nullable = true
	}
	return f, nil
}

// parseReturn parses a return-type declaration, which carries no name.
func parseReturn(decl string) ir.RawField {
	f := ir.RawField{}
	decl = strings.ReplaceAll(decl, nullableMarker, "")
	tokens, stars, isConst := splitTokens(decl)
	f.Pointer = stars > 0
	f.Const = isConst
	if len(tokens) == 0 {
		f.Type = ir.Ref("void")
		return f
	}
	f.Type = ir.Ref(strings.Join(tokens, " "))
	return f
}

// splitTokens tokenizes a declaration, counting and dropping pointer
// stars and the const and struct keywords. Const only counts as a
// standalone token, so identifiers like "constantCount" stay plain.
func splitTokens(decl string) (tokens []string, stars int, isConst bool) {
	decl = strings.ReplaceAll(decl, "*", " * ")
	for _, tok := range strings.Fields(decl) {
		switch tok {
		case "*":
			stars++
		case "const":
			isConst = true
		case "struct":
		default:
			tokens = append(tokens, tok)
		}
	}
	return tokens, stars, isConst
}
