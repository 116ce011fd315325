package scan

import (
	"regexp"
	"strings"

	"github.com/gfxkit/wgpugen/ir"
)

var enumRe = regexp.MustCompile(`(?s)typedef enum (\w+)\s*\{(.*?)\}\s*\w+\s*;`)
var enumEntryRe = regexp.MustCompile(`^(\w+)\s*(?:=\s*(.+))?$`)

// force32Sentinel is the C ABI padding trick member present in every
// enum of the header family; it never becomes an emitted variant.
const force32Sentinel = "Force32"

// enumMerges maps vendor extension enums to the base enum they are
// folded into. The fold is a fixed, enumerated special case; the
// extension headers only ever extend these two enums.
var enumMerges = map[string]string{
	"WGPUNativeSType":   "WGPUSType",
	"WGPUNativeFeature": "WGPUFeatureName",
}

// Enums scans "typedef enum NAME { BODY }" declarations and registers
// an EnumDescriptor per enum, excluding the Force32 sentinel and
// folding vendor extension enums into their base enum. Value
// expressions referencing sibling members are evaluated to constants;
// an expression that fails to evaluate degrades to zero with a logged
// diagnostic.
func Enums(src string, reg *ir.Registry) error {
	var pending []*ir.EnumDescriptor

	for _, m := range enumRe.FindAllStringSubmatch(src, -1) {
		name, body := m[1], m[2]
		d := &ir.EnumDescriptor{Name: name, Short: pyTypeName(name)}

		env := map[string]uint32{}
		next := uint32(0)
		for _, entry := range strings.Split(body, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			em := enumEntryRe.FindStringSubmatch(entry)
			if em == nil {
				reg.Logger().Warn("unparsable enum entry", "enum", name, "entry", entry)
				continue
			}
			cname := em[1]
			value := next
			if em[2] != "" {
				v, err := evalConst(em[2], env)
				if err != nil {
					reg.Logger().Warn("enum value expression failed to evaluate, using zero",
						"enum", name, "entry", cname, "expr", em[2], "err", err)
					v = 0
				}
				value = v
			}
			env[cname] = value
			next = value + 1

			variant := strings.TrimPrefix(cname, name+"_")
			if variant == force32Sentinel {
				continue
			}
			d.Variants = append(d.Variants, ir.EnumVariant{Name: variant, Value: value})
		}
		pending = append(pending, d)
	}

	// Register base enums first, then fold extensions; the vendor
	// header may precede or follow the base header in the input.
	for _, d := range pending {
		if _, isExt := enumMerges[d.Name]; !isExt {
			reg.Register(d)
		}
	}
	for _, d := range pending {
		base, isExt := enumMerges[d.Name]
		if !isExt {
			continue
		}
		bd, ok := reg.Lookup(base)
		if !ok {
			reg.Logger().Warn("extension enum has no base enum to merge into, skipped",
				"extension", d.Name, "base", base)
			continue
		}
		bd.(*ir.EnumDescriptor).MergeExtension(d)
	}
	return nil
}

// pyTypeName strips the C vendor prefix from a type name.
func pyTypeName(name string) string {
	name = strings.TrimPrefix(name, "WGPU")
	return name
}
