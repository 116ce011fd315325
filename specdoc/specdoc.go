// Package specdoc recovers default field values from the WebGPU
// specification document. The spec embeds WebIDL dictionary blocks
// whose members carry defaults the C header is silent about; scraping
// them is best-effort enrichment, never required for correctness. A
// lookup miss simply leaves a field with no default.
package specdoc

import (
	"regexp"
	"strings"
)

var dictRe = regexp.MustCompile(`(?s)dictionary (GPU\w+)[^{]*\{(.*?)\};`)
var memberRe = regexp.MustCompile(`(?m)^\s*(?:required\s+)?[\w<>?\[\] ]+?\s+(\w+)\s*=\s*([^;]+);`)

// Defaults maps dictionary name (without the GPU prefix) to member
// name to a Python default literal.
type Defaults map[string]map[string]string

// Parse scrapes every WebIDL dictionary block out of the spec prose.
func Parse(doc string) Defaults {
	out := Defaults{}
	for _, dm := range dictRe.FindAllStringSubmatch(doc, -1) {
		name := strings.TrimPrefix(dm[1], "GPU")
		members := map[string]string{}
		for _, mm := range memberRe.FindAllStringSubmatch(dm[2], -1) {
			members[mm[1]] = pyLiteral(strings.TrimSpace(mm[2]))
		}
		if len(members) > 0 {
			out[name] = members
		}
	}
	return out
}

// Lookup returns the default for a struct field. The C struct name is
// matched against the dictionary name with vendor prefixes removed, so
// WGPUBindGroupEntry fields resolve against dictionary GPUBindGroupEntry.
func (d Defaults) Lookup(structShort, field string) (string, bool) {
	members, ok := d[structShort]
	if !ok {
		return "", false
	}
	v, ok := members[field]
	return v, ok
}

// pyLiteral converts a WebIDL default literal to its Python form.
func pyLiteral(idl string) string {
	switch idl {
	case "true":
		return "True"
	case "false":
		return "False"
	case "null":
		return "None"
	case "{}", "[]":
		return "()"
	}
	return idl
}
