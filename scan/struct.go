package scan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gfxkit/wgpugen/ir"
)

var structRe = regexp.MustCompile(`(?s)typedef struct (\w+)\s*\{(.*?)\}\s*\w+\s*;`)

// Structs scans "typedef struct NAME { BODY }" declarations, parses
// each body into a flat ordered field list, classifies adjacent fields
// into semantic units, and registers a StructDescriptor per struct.
// A field that cannot be split into name and type aborts the run: the
// input no longer matches the structural conventions, and continuing
// would silently produce incorrect bindings.
func Structs(src string, reg *ir.Registry) error {
	for _, m := range structRe.FindAllStringSubmatch(src, -1) {
		name, body := m[1], m[2]

		var fields []ir.RawField
		for _, decl := range strings.Split(body, ";") {
			decl = strings.TrimSpace(decl)
			if decl == "" {
				continue
			}
			f, err := parseField(decl)
			if err != nil {
				return fmt.Errorf("struct %s: %w", name, err)
			}
			fields = append(fields, f)
		}

		d := &ir.StructDescriptor{
			Name:  name,
			Short: pyTypeName(name),
			Units: Classify(fields, reg),
		}
		if len(fields) > 0 && strings.HasPrefix(fields[0].Type.Name, ir.ChainStructName) {
			d.Chainable = true
			d.STypeVariant = d.Short
		}
		reg.Register(d)
	}
	return nil
}
