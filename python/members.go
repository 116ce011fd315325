package python

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gfxkit/wgpugen/ir"
)

func (e *emitter) emitStruct(b *bytes.Buffer, d *ir.StructDescriptor) {
	public := d.PublicUnits()

	fmt.Fprintf(b, "class %s:\n", d.Short)
	fmt.Fprintf(b, "    \"\"\"Wrapper over %s.\"\"\"\n\n", d.Name)

	// Constructor: keyword-only public fields; cdata adopts existing
	// native memory and skips field initialization.
	b.WriteString("    def __init__(self, *, cdata: Any = None, parent: Any = None")
	for _, u := range public {
		fmt.Fprintf(b, ", %s", e.unitParam(u, d.Defaults, true))
	}
	b.WriteString("):\n")
	b.WriteString("        self._parent = parent\n")
	b.WriteString("        self._refs: dict = {}\n")
	b.WriteString("        if cdata is not None:\n")
	b.WriteString("            self._cdata = cdata\n")
	b.WriteString("            return\n")
	fmt.Fprintf(b, "        self._cdata = _ffi.new(\"%s *\")\n", d.Name)
	e.emitChainInit(b, d)
	for _, u := range public {
		name := pyIdent(u.UnitName())
		if _, natural := e.ctorDefault(u, d.Defaults); natural {
			fmt.Fprintf(b, "        self.%s = %s\n", name, name)
			continue
		}
		// None here means "not supplied", not a legal field value.
		fmt.Fprintf(b, "        if %s is not None:\n", name)
		fmt.Fprintf(b, "            self.%s = %s\n", name, name)
	}
	b.WriteString("\n")

	for _, u := range public {
		e.emitProperty(b, u)
	}
	if d.Chainable && e.linkName(d) == ir.ChainLinkName {
		e.emitNextInChain(b)
	}
	for _, m := range d.Methods {
		e.emitMethod(b, m)
	}
	b.WriteString("\n")
}

func (e *emitter) linkName(d *ir.StructDescriptor) string {
	if len(d.Units) == 0 {
		return ""
	}
	raw := d.Units[0].Raw()
	if len(raw) == 0 {
		return ""
	}
	return raw[0].Name
}

func (e *emitter) emitChainInit(b *bytes.Buffer, d *ir.StructDescriptor) {
	if !d.Chainable {
		return
	}
	switch e.linkName(d) {
	case "chain":
		// Extension struct: tag itself and terminate the chain.
		fmt.Fprintf(b, "        self._cdata[0].chain.sType = SType.%s\n", pyIdent(d.STypeVariant))
		b.WriteString("        self._cdata[0].chain.next = _ffi.NULL\n")
	case ir.ChainLinkName:
		b.WriteString("        self._cdata[0].nextInChain = _ffi.NULL\n")
	}
}

func (e *emitter) emitNextInChain(b *bytes.Buffer) {
	b.WriteString("    @property\n")
	b.WriteString("    def nextInChain(self) -> Any:\n")
	b.WriteString("        return self._refs.get(\"nextInChain\")\n\n")
	b.WriteString("    @nextInChain.setter\n")
	b.WriteString("    def nextInChain(self, value: Any) -> None:\n")
	b.WriteString("        self._refs[\"nextInChain\"] = value\n")
	b.WriteString("        self._cdata[0].nextInChain = _ffi.NULL if value is None else _ffi.cast(\"WGPUChainedStruct *\", value._cdata)\n\n")
}

// emitProperty emits the accessor/mutator pair for one field unit.
func (e *emitter) emitProperty(b *bytes.Buffer, u ir.FieldUnit) {
	name := pyIdent(u.UnitName())
	annot := e.unitAnnotation(u)

	switch unit := u.(type) {
	case *ir.ValueField:
		f := unit.Field
		def := f.Type.Def()
		target := "self._cdata[0]." + f.Name
		fmt.Fprintf(b, "    @property\n    def %s(self) -> %s:\n        return %s\n\n",
			name, annot, def.Wrap(target, f.Pointer, "self"))
		fmt.Fprintf(b, "    @%s.setter\n    def %s(self, value: %s) -> None:\n        %s = %s\n\n",
			name, name, annot, target, def.Unwrap("value", f.Pointer))

	case *ir.PointerField:
		f := unit.Field
		def := f.Type.Def()
		target := "self._cdata[0]." + f.Name
		fmt.Fprintf(b, "    @property\n    def %s(self) -> %s:\n        return self._refs.get(%q)\n\n",
			name, annot, name)
		fmt.Fprintf(b, "    @%s.setter\n    def %s(self, value: %s) -> None:\n", name, name, annot)
		fmt.Fprintf(b, "        self._refs[%q] = value\n", name)
		if p, ok := def.(*ir.PrimitiveDescriptor); ok && p.IsString && f.Pointer {
			fmt.Fprintf(b, "        buf = _ffi.NULL if value is None else _ffi.new(\"char[]\", value.encode(\"utf8\"))\n")
			fmt.Fprintf(b, "        self._refs[%q] = buf\n", name+"#buf")
			fmt.Fprintf(b, "        %s = buf\n\n", target)
			return
		}
		if unit.Nullable {
			fmt.Fprintf(b, "        %s = _ffi.NULL if value is None else %s\n\n", target, def.Unwrap("value", f.Pointer))
			return
		}
		fmt.Fprintf(b, "        %s = %s\n\n", target, def.Unwrap("value", f.Pointer))

	case *ir.ArrayField:
		helper := e.arrayHelper(unit.Elems)
		fmt.Fprintf(b, "    @property\n    def %s(self) -> %s:\n        return self._refs.get(%q, [])\n\n",
			name, annot, name)
		fmt.Fprintf(b, "    @%s.setter\n    def %s(self, value: %s) -> None:\n", name, name, annot)
		fmt.Fprintf(b, "        self._refs[%q] = list(value)\n", name)
		fmt.Fprintf(b, "        arr = %s(value)\n", helper)
		fmt.Fprintf(b, "        self._refs[%q] = arr\n", name+"#array")
		fmt.Fprintf(b, "        self._cdata[0].%s = len(value)\n", unit.Count.Name)
		fmt.Fprintf(b, "        self._cdata[0].%s = arr\n\n", unit.Elems.Name)

	case *ir.CallbackField:
		fmt.Fprintf(b, "    @property\n    def %s(self) -> %s:\n        return self._refs.get(%q)\n\n",
			name, annot, name)
		fmt.Fprintf(b, "    @%s.setter\n    def %s(self, value: %s) -> None:\n", name, name, annot)
		fmt.Fprintf(b, "        self._refs[%q] = value\n", name)
		fmt.Fprintf(b, "        self._cdata[0].%s = value._ffi_cb\n", unit.Callback.Name)
		fmt.Fprintf(b, "        self._cdata[0].%s = _ffi.NULL\n\n", unit.UserData.Name)
	}
}

func (e *emitter) emitOpaque(b *bytes.Buffer, d *ir.OpaqueDescriptor) {
	fmt.Fprintf(b, "class %s:\n", d.Short)
	fmt.Fprintf(b, "    \"\"\"Reference-counted handle to a native %s.\"\"\"\n\n", d.Name)
	b.WriteString("    def __init__(self, cdata):\n        self._cdata = cdata\n\n")

	if d.Reference != nil {
		fmt.Fprintf(b, "    def _add_ref(self) -> None:\n        _lib.%s(self._cdata)\n\n", d.Reference.Name)
	}
	if d.Release != nil {
		fmt.Fprintf(b, "    def _release(self) -> None:\n        _lib.%s(self._cdata)\n\n", d.Release.Name)
		b.WriteString("    def __del__(self):\n")
		b.WriteString("        if getattr(self, \"_cdata\", None) is not None:\n")
		b.WriteString("            self._release()\n")
		b.WriteString("            self._cdata = None\n\n")
	}

	for _, m := range d.Methods {
		if m == d.Reference || m == d.Release {
			continue
		}
		e.emitMethod(b, m)
	}
	b.WriteString("\n")
}

// emitMethod emits a member function bound to self.
func (e *emitter) emitMethod(b *bytes.Buffer, f *ir.FunctionDescriptor) {
	e.emitFunction(b, f, "    ", f.MethodName, "self._cdata", true)
	if sd := f.DescriptorArg(); sd != nil && len(f.CallArgs()) == 1 {
		name := pyIdent(f.MethodName)
		ret := e.returnAnnotation(f)
		fmt.Fprintf(b, "    def %sKw(self, **kwargs) -> %s:\n", name, ret)
		fmt.Fprintf(b, "        return self.%s(%s(**kwargs))\n\n", name, sd.Short)
	}
}

func (e *emitter) emitLooseFunction(b *bytes.Buffer, f *ir.FunctionDescriptor) {
	e.emitFunction(b, f, "", f.Short, "", false)
	if sd := f.DescriptorArg(); sd != nil && len(f.CallArgs()) == 1 {
		name := pyIdent(f.Short)
		fmt.Fprintf(b, "def %sKw(**kwargs) -> %s:\n", name, e.returnAnnotation(f))
		fmt.Fprintf(b, "    return %s(%s(**kwargs))\n\n\n", name, sd.Short)
	}
}

// emitFunction emits one callable: signature, argument marshaling, the
// native call, and result wrapping.
func (e *emitter) emitFunction(b *bytes.Buffer, f *ir.FunctionDescriptor, indent, name, receiver string, method bool) {
	var params []string
	if method {
		params = append(params, "self")
	}
	for _, u := range f.CallArgs() {
		params = append(params, e.unitParam(u, nil, false))
	}

	fmt.Fprintf(b, "%sdef %s(%s) -> %s:\n", indent, pyIdent(name), strings.Join(params, ", "), e.returnAnnotation(f))

	var pre []string
	var raw []string
	if receiver != "" {
		raw = append(raw, receiver)
	}
	for _, u := range f.CallArgs() {
		pre, raw = e.marshalUnit(u, pre, raw)
	}

	for _, line := range pre {
		fmt.Fprintf(b, "%s    %s\n", indent, line)
	}

	call := fmt.Sprintf("_lib.%s(%s)", f.Name, strings.Join(raw, ", "))
	retDef := f.Return.Type.Def()
	if retDef.CName() == "void" && !f.Return.Pointer {
		fmt.Fprintf(b, "%s    %s\n", indent, call)
	} else {
		wrapped := retDef.Wrap(call, f.Return.Pointer, "")
		fmt.Fprintf(b, "%s    return %s\n", indent, wrapped)
	}
	b.WriteString("\n")
	if indent == "" {
		b.WriteString("\n")
	}
}

// marshalUnit appends the staging statements and raw call arguments for
// one argument unit, preserving the physical C parameter order.
func (e *emitter) marshalUnit(u ir.FieldUnit, pre, raw []string) ([]string, []string) {
	name := pyIdent(u.UnitName())

	switch unit := u.(type) {
	case *ir.ValueField:
		raw = append(raw, unit.Field.Type.Def().Unwrap(name, unit.Field.Pointer))

	case *ir.PointerField:
		f := unit.Field
		def := f.Type.Def()
		if p, ok := def.(*ir.PrimitiveDescriptor); ok && p.IsString && f.Pointer {
			local := snake(name) + "_c"
			if unit.Nullable {
				pre = append(pre, fmt.Sprintf("%s = _ffi.NULL if %s is None else _ffi.new(\"char[]\", %s.encode(\"utf8\"))", local, name, name))
			} else {
				pre = append(pre, fmt.Sprintf("%s = _ffi.new(\"char[]\", %s.encode(\"utf8\"))", local, name))
			}
			raw = append(raw, local)
			break
		}
		if unit.Nullable {
			raw = append(raw, fmt.Sprintf("(_ffi.NULL if %s is None else %s)", name, def.Unwrap(name, f.Pointer)))
			break
		}
		raw = append(raw, def.Unwrap(name, f.Pointer))

	case *ir.ArrayField:
		helper := e.arrayHelper(unit.Elems)
		local := snake(name) + "_arr"
		pre = append(pre, fmt.Sprintf("%s = %s(%s)", local, helper, name))
		if unit.CountFirst {
			raw = append(raw, fmt.Sprintf("len(%s)", name), local)
		} else {
			raw = append(raw, local, fmt.Sprintf("len(%s)", name))
		}

	case *ir.CallbackField:
		raw = append(raw, name+"._ffi_cb", "_ffi.NULL")
	}
	return pre, raw
}

// unitParam renders one signature parameter with annotation and,
// in keyword-only position, a default. defaults carries spec-document
// enrichment for struct fields. Positional function parameters never
// get defaults: a required parameter after a defaulted one would not
// be valid Python.
func (e *emitter) unitParam(u ir.FieldUnit, defaults map[string]string, allowDefaults bool) string {
	name := pyIdent(u.UnitName())
	annot := e.unitAnnotation(u)
	if !allowDefaults {
		return name + ": " + annot
	}
	d, _ := e.ctorDefault(u, defaults)
	return fmt.Sprintf("%s: %s = %s", name, annot, d)
}

// ctorDefault returns the constructor default for a unit and whether it
// is a real field value. Units with no natural default fall back to
// None so cdata adoption never demands arguments it would discard;
// those fields only get assigned when the caller supplies them.
func (e *emitter) ctorDefault(u ir.FieldUnit, defaults map[string]string) (string, bool) {
	if d, ok := defaults[u.UnitName()]; ok {
		return d, true
	}
	if d, ok := e.unitDefault(u); ok {
		return d, true
	}
	return "None", false
}

func (e *emitter) unitDefault(u ir.FieldUnit) (string, bool) {
	switch unit := u.(type) {
	case *ir.ValueField:
		switch d := unit.Field.Type.Def().(type) {
		case *ir.PrimitiveDescriptor:
			return d.Default, true
		case *ir.EnumDescriptor, *ir.FlagsDescriptor:
			return "0", true
		}
		return "", false
	case *ir.PointerField:
		if unit.Nullable {
			return "None", true
		}
		return "", false
	case *ir.ArrayField:
		return "()", true
	}
	return "", false
}

func (e *emitter) unitAnnotation(u ir.FieldUnit) string {
	switch unit := u.(type) {
	case *ir.ValueField:
		return quoteForward(unit.Field.Type.Def().Annotate(unit.Field.Pointer, false))
	case *ir.PointerField:
		base := quoteForward(unit.Field.Type.Def().Annotate(unit.Field.Pointer, false))
		if unit.Nullable {
			return "Optional[" + base + "]"
		}
		return base
	case *ir.ArrayField:
		return "List[" + quoteForward(unit.Elems.Type.Def().Annotate(false, false)) + "]"
	case *ir.CallbackField:
		return quoteForward(unit.Callback.Type.Def().Annotate(false, false))
	}
	return "Any"
}

func (e *emitter) returnAnnotation(f *ir.FunctionDescriptor) string {
	return quoteForward(f.Return.Type.Def().Annotate(f.Return.Pointer, true))
}

// quoteForward quotes class-name annotations so declaration order never
// matters in the emitted module.
func quoteForward(annot string) string {
	switch annot {
	case "int", "float", "bool", "str", "None", "Any":
		return annot
	}
	if strings.HasPrefix(annot, "Union[") || strings.HasPrefix(annot, "Optional[") {
		return annot
	}
	return "\"" + annot + "\""
}
