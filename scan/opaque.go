package scan

import (
	"regexp"

	"github.com/gfxkit/wgpugen/ir"
)

var opaqueRe = regexp.MustCompile(`typedef struct (\w+)\s*\*\s*(\w+)\s*;`)

// Opaques scans the handle-to-incomplete-struct idiom
// ("typedef struct WGPUBufferImpl* WGPUBuffer") and registers an
// OpaqueDescriptor per handle.
func Opaques(src string, reg *ir.Registry) error {
	for _, m := range opaqueRe.FindAllStringSubmatch(src, -1) {
		impl, name := m[1], m[2]
		reg.Register(&ir.OpaqueDescriptor{
			Name:     name,
			Short:    pyTypeName(name),
			ImplName: impl,
		})
	}
	return nil
}
