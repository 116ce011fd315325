package scan

import (
	"regexp"
	"strings"

	"github.com/gfxkit/wgpugen/ir"
)

var flagsRe = regexp.MustCompile(`typedef WGPUFlags (\w+Flags)\s*;`)

// Flags scans "typedef WGPUFlags NAMEFlags" declarations and registers
// a FlagsDescriptor over the matching enum. The source vocabulary is
// not consistent about singular versus plural enum names, so the base
// enum is looked up under both. A flags type whose enum is not found
// under either convention is skipped with a logged diagnostic.
func Flags(src string, reg *ir.Registry) error {
	for _, m := range flagsRe.FindAllStringSubmatch(src, -1) {
		name := m[1]
		base := strings.TrimSuffix(name, "Flags")

		enum := lookupEnum(reg, base)
		if enum == nil && strings.HasSuffix(base, "s") {
			enum = lookupEnum(reg, strings.TrimSuffix(base, "s"))
		}
		if enum == nil {
			enum = lookupEnum(reg, base+"s")
		}
		if enum == nil {
			reg.Logger().Warn("bitflags type has no matching enum, skipped", "flags", name, "enum", base)
			continue
		}

		fd := &ir.FlagsDescriptor{Name: name, Enum: enum}
		enum.Flags = fd
		reg.Register(fd)
	}
	return nil
}

func lookupEnum(reg *ir.Registry, name string) *ir.EnumDescriptor {
	d, ok := reg.Lookup(name)
	if !ok {
		return nil
	}
	e, ok := d.(*ir.EnumDescriptor)
	if !ok {
		return nil
	}
	return e
}
