package python

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gfxkit/wgpugen/ir"
)

// Config controls wrapper emission.
type Config struct {
	// LibName is the native library name passed to dlopen.
	LibName string

	// Frontmatter is inserted verbatim after the module docstring.
	Frontmatter string

	// Docstring is the module docstring. A default is supplied.
	Docstring string
}

// Generate emits the complete Python wrapper module for a resolved
// registry: enums, flag types, callback shims, struct classes, handle
// classes, loose functions, and the embedded cdef block.
func Generate(reg *ir.Registry, cfg Config) ([]byte, error) {
	if cfg.LibName == "" {
		cfg.LibName = "wgpu_native"
	}
	if cfg.Docstring == "" {
		cfg.Docstring = "WebGPU bindings. Generated; do not edit."
	}

	e := &emitter{reg: reg, cfg: cfg}
	return e.generate()
}

type emitter struct {
	reg *ir.Registry
	cfg Config
	buf bytes.Buffer
}

func (e *emitter) generate() ([]byte, error) {
	body := &bytes.Buffer{}
	for _, t := range e.reg.Types() {
		switch d := t.(type) {
		case *ir.EnumDescriptor:
			e.emitEnum(body, d)
		case *ir.FlagsDescriptor:
			e.emitFlags(body, d)
		case *ir.CallbackDescriptor:
			e.scheduleCallback(d)
		case *ir.StructDescriptor:
			e.emitStruct(body, d)
		case *ir.OpaqueDescriptor:
			e.emitOpaque(body, d)
		}
	}
	loose := &bytes.Buffer{}
	for _, f := range e.reg.Functions() {
		e.emitLooseFunction(loose, f)
	}

	out := &e.buf
	fmt.Fprintf(out, "\"\"\"%s\"\"\"\n\n", e.cfg.Docstring)
	out.WriteString("from enum import IntEnum\n")
	out.WriteString("from typing import Any, Callable, List, Optional, Union\n\n")
	out.WriteString("from cffi import FFI\n\n")
	if e.cfg.Frontmatter != "" {
		out.WriteString(e.cfg.Frontmatter)
		out.WriteString("\n\n")
	}

	out.WriteString("_CDEF = r\"\"\"\n")
	out.Write(CDef(e.reg))
	out.WriteString("\"\"\"\n\n")

	fmt.Fprintf(out, "_ffi = FFI()\n_ffi.cdef(_CDEF)\n_lib = _ffi.dlopen(%q)\n\n", e.cfg.LibName)
	out.WriteString(runtimePreamble)

	for _, h := range e.reg.Helpers() {
		out.WriteString(h)
		out.WriteString("\n")
	}
	out.Write(body.Bytes())
	out.Write(loose.Bytes())

	return e.buf.Bytes(), nil
}

// runtimePreamble is the fixed support code every generated module
// carries: string decoding and the flags base class.
const runtimePreamble = `def _ffi_string(data) -> str:
    if data == _ffi.NULL:
        return ""
    return _ffi.string(data).decode("utf8")


class _Flags:
    """Bitmask over an IntEnum; accepts an int, a member, or a list of members."""

    _enum: Any = None

    def __init__(self, flags: Any = 0):
        if isinstance(flags, (list, tuple, set, frozenset)):
            value = 0
            for item in flags:
                value |= int(item)
            self._value = value
        else:
            self._value = int(flags)

    def __contains__(self, member: Any) -> bool:
        bits = int(member)
        return bits != 0 and (self._value & bits) == bits

    def __iter__(self):
        for member in type(self)._enum:
            if member in self:
                yield member

    def __or__(self, other: Any) -> "_Flags":
        return type(self)(self._value | int(other))

    def __int__(self) -> int:
        return self._value

    def __eq__(self, other: Any) -> bool:
        return int(self) == int(other)

    def __hash__(self) -> int:
        return hash(self._value)

    def __repr__(self) -> str:
        names = "|".join(m.name for m in self)
        return f"{type(self).__name__}({names or 0})"


`

func (e *emitter) emitEnum(b *bytes.Buffer, d *ir.EnumDescriptor) {
	fmt.Fprintf(b, "class %s(IntEnum):\n", d.Short)
	if len(d.Variants) == 0 {
		b.WriteString("    pass\n")
	}
	for _, v := range d.Variants {
		fmt.Fprintf(b, "    %s = %s\n", pyIdent(v.Name), v.Hex())
	}
	b.WriteString("\n\n")
}

func (e *emitter) emitFlags(b *bytes.Buffer, d *ir.FlagsDescriptor) {
	fmt.Fprintf(b, "class %s(_Flags):\n    _enum = %s\n\n\n", d.PyName(), d.Enum.Short)
}

// scheduleCallback registers the callback's marshaling shim class as an
// emission helper, so it appears exactly once no matter how many
// structs and functions reference the callback type.
func (e *emitter) scheduleCallback(d *ir.CallbackDescriptor) {
	e.reg.EnsureHelper("callback:"+d.Name, func() string {
		var b bytes.Buffer

		var rawParams, wrapped []string
		for i, a := range d.Args {
			raw := fmt.Sprintf("arg%d", i)
			rawParams = append(rawParams, raw)
			if a.Pointer && a.Type.Name == "void" {
				// The trailing userdata slot is owned by the shim.
				continue
			}
			wrapped = append(wrapped, a.Type.Def().Wrap(raw, a.Pointer, ""))
		}

		fmt.Fprintf(&b, "class %s:\n", d.Short)
		fmt.Fprintf(&b, "    \"\"\"Wraps a Python callable as a native %s.\"\"\"\n\n", d.Name)
		b.WriteString("    def __init__(self, fn: Callable):\n")
		b.WriteString("        self._fn = fn\n")
		fmt.Fprintf(&b, "        self._ffi_cb = _ffi.callback(%q, self._raw)\n\n", callbackSignature(d))
		fmt.Fprintf(&b, "    def _raw(self, %s):\n", strings.Join(rawParams, ", "))
		fmt.Fprintf(&b, "        self._fn(%s)\n\n", strings.Join(wrapped, ", "))
		return b.String()
	})
}

func callbackSignature(d *ir.CallbackDescriptor) string {
	var args []string
	for _, a := range d.Args {
		args = append(args, cdeclReturn(ir.RawField{Type: a.Type, Pointer: a.Pointer, Const: a.Const}))
	}
	return cdeclReturn(d.Return) + "(" + strings.Join(args, ", ") + ")"
}

// arrayHelper registers (once) and names the list-to-native-array
// conversion helper for an element type.
func (e *emitter) arrayHelper(elem ir.RawField) string {
	def := elem.Type.Def()
	name := "_array_" + def.CName()
	e.reg.EnsureHelper("array:"+def.CName(), func() string {
		ctype := def.CName()
		if d, ok := def.(*ir.PrimitiveDescriptor); ok {
			ctype = d.Name
		}
		item := def.Unwrap("item", elem.Pointer && def.Kind() != ir.KindStruct)
		if def.Kind() == ir.KindEnum || def.Kind() == ir.KindFlags {
			item = "int(item)"
		}
		return fmt.Sprintf("def %s(items):\n    return _ffi.new(\"%s[]\", [%s for item in items])\n\n",
			name, ctype, item)
	})
	return name
}
