package scan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gfxkit/wgpugen/ir"
)

var funcRe = regexp.MustCompile(`(?m)^\s*WGPU_EXPORT\s+(.+?)\s+(\w+)\s*\(([^)]*)\)\s*WGPU_FUNCTION_ATTRIBUTE\s*;`)

// Functions scans exported function declarations, classifies their
// parameters with the same fusion rules as struct fields, and either
// attributes each function to its first argument's type (when that
// type is a registered opaque handle or struct) or appends it to the
// registry's loose-function list. Zero-argument functions are always
// loose.
func Functions(src string, reg *ir.Registry) error {
	for _, m := range funcRe.FindAllStringSubmatch(src, -1) {
		ret, name, args := m[1], m[2], m[3]

		var fields []ir.RawField
		for _, arg := range strings.Split(args, ",") {
			arg = strings.TrimSpace(arg)
			if arg == "" || arg == "void" {
				continue
			}
			f, err := parseField(arg)
			if err != nil {
				return fmt.Errorf("function %s: %w", name, err)
			}
			fields = append(fields, f)
		}

		fn := &ir.FunctionDescriptor{
			Name:   name,
			Short:  pyFuncName(name),
			Args:   Classify(fields, reg),
			Return: parseReturn(ret),
		}

		if len(fields) == 0 {
			reg.AddFunction(fn)
			continue
		}
		switch owner := ownerOf(fields[0], reg).(type) {
		case *ir.OpaqueDescriptor:
			fn.Owner = owner.Name
			fn.MethodName = methodName(name, owner.Short)
			owner.AttachMethod(fn)
		case *ir.StructDescriptor:
			fn.Owner = owner.Name
			fn.MethodName = methodName(name, owner.Short)
			owner.Methods = append(owner.Methods, fn)
		default:
			reg.AddFunction(fn)
		}
	}
	return nil
}

func ownerOf(f ir.RawField, reg *ir.Registry) ir.TypeDescriptor {
	d, ok := reg.Lookup(f.Type.Name)
	if !ok {
		return nil
	}
	return d
}

// pyFuncName derives a loose function's Python name:
// "wgpuCreateInstance" -> "createInstance".
func pyFuncName(name string) string {
	name = strings.TrimPrefix(name, "wgpu")
	return lowerFirst(name)
}

// methodName derives a member function's Python name by stripping the
// export prefix and the owner type's name:
// "wgpuBufferMapAsync" + "Buffer" -> "mapAsync".
func methodName(cname, ownerShort string) string {
	name := strings.TrimPrefix(cname, "wgpu")
	name = strings.TrimPrefix(name, ownerShort)
	if name == "" {
		name = ownerShort
	}
	return lowerFirst(name)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
