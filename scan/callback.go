package scan

import (
	"regexp"
	"strings"

	"github.com/gfxkit/wgpugen/ir"
)

var callbackRe = regexp.MustCompile(`typedef ([\w \*]+?)\(\s*\*\s*(\w+)\s*\)\s*\(([^)]*)\)\s*;`)

// callbackSuffix is the naming convention marking a typedef'd function
// pointer as a user-facing callback type.
const callbackSuffix = "Callback"

// Callbacks scans "typedef RETURN (*NAME)(ARGS)" declarations whose
// name follows the callback suffix convention and registers a
// CallbackDescriptor per match. Function pointers outside the
// convention (none exist in the header family) are left alone.
func Callbacks(src string, reg *ir.Registry) error {
	for _, m := range callbackRe.FindAllStringSubmatch(src, -1) {
		ret, name, args := m[1], m[2], m[3]
		if !strings.HasSuffix(name, callbackSuffix) {
			continue
		}

		d := &ir.CallbackDescriptor{
			Name:   name,
			Short:  pyTypeName(name),
			Return: parseReturn(ret),
		}

		for _, arg := range strings.Split(args, ",") {
			arg = strings.TrimSpace(arg)
			if arg == "" || arg == "void" {
				continue
			}
			f, err := parseField(arg)
			if err != nil {
				return err
			}
			d.Args = append(d.Args, f)
		}
		reg.Register(d)
	}
	return nil
}
