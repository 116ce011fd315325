package python

import (
	"bytes"
	"fmt"

	"github.com/gfxkit/wgpugen/ir"
)

// CDef produces the native-declaration block handed to cffi. It is
// reconstructed from the registry rather than copied from the cleaned
// header so that skipped regions, merged enums, and unknown types never
// leak into the binding layer. Enums and flags are declared as plain
// uint32_t: the wrapper always passes integers across the boundary.
func CDef(reg *ir.Registry) []byte {
	var b bytes.Buffer

	b.WriteString("typedef uint32_t WGPUBool;\n")
	b.WriteString("typedef uint32_t WGPUFlags;\n\n")

	for _, t := range reg.Types() {
		switch d := t.(type) {
		case *ir.EnumDescriptor:
			fmt.Fprintf(&b, "typedef uint32_t %s;\n", d.Name)
		case *ir.FlagsDescriptor:
			fmt.Fprintf(&b, "typedef uint32_t %s;\n", d.Name)
		case *ir.OpaqueDescriptor:
			fmt.Fprintf(&b, "typedef struct %s* %s;\n", d.ImplName, d.Name)
		case *ir.CallbackDescriptor:
			fmt.Fprintf(&b, "typedef %s (*%s)(%s);\n", cdeclReturn(d.Return), d.Name, cdeclArgs(d.Args))
		case *ir.StructDescriptor:
			fmt.Fprintf(&b, "typedef struct %s {\n", d.Name)
			for _, u := range d.Units {
				for _, f := range u.Raw() {
					fmt.Fprintf(&b, "    %s;\n", cdecl(f))
				}
			}
			fmt.Fprintf(&b, "} %s;\n", d.Name)
		}
	}

	b.WriteString("\n")
	for _, t := range reg.Types() {
		switch d := t.(type) {
		case *ir.OpaqueDescriptor:
			writeFunctionDecls(&b, d.Methods)
		case *ir.StructDescriptor:
			writeFunctionDecls(&b, d.Methods)
		}
	}
	writeFunctionDecls(&b, reg.Functions())

	return b.Bytes()
}

func writeFunctionDecls(b *bytes.Buffer, fns []*ir.FunctionDescriptor) {
	for _, f := range fns {
		args := "void"
		if len(f.Args) > 0 {
			var raw []ir.RawField
			for _, u := range f.Args {
				raw = append(raw, u.Raw()...)
			}
			args = cdeclArgs(raw)
		}
		fmt.Fprintf(b, "%s %s(%s);\n", cdeclReturn(f.Return), f.Name, args)
	}
}

func cdecl(f ir.RawField) string {
	s := f.Type.Name
	if f.Type.Name == "char" || f.Const && f.Pointer {
		s += " const"
	}
	if f.Pointer {
		s += " *"
	}
	return s + " " + f.Name
}

func cdeclReturn(f ir.RawField) string {
	s := f.Type.Name
	if f.Pointer {
		if f.Const {
			s += " const"
		}
		s += " *"
	}
	return s
}

func cdeclArgs(fields []ir.RawField) string {
	var b bytes.Buffer
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(cdecl(f))
	}
	return b.String()
}
