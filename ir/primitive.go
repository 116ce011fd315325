package ir

// PrimitiveDescriptor represents a built-in C scalar type with a fixed
// Python mapping. Primitives are pre-seeded into every registry and are
// never produced by extractors.
type PrimitiveDescriptor struct {
	Name       string // C type name
	Annotation string // Python annotation
	Default    string // Python default literal for struct fields
	IsString   bool   // const char* semantics when declared as a pointer
	SizeInt    bool   // eligible to be the count half of a count+array pair
}

// Kind returns KindPrimitive.
func (d *PrimitiveDescriptor) Kind() Kind { return KindPrimitive }

// CName returns the C type name.
func (d *PrimitiveDescriptor) CName() string { return d.Name }

// PyName returns the Python annotation; primitives have no wrapper class.
func (d *PrimitiveDescriptor) PyName() string { return d.Annotation }

// Annotate returns the Python annotation. A char pointer annotates as
// str; any other primitive pointer is an untyped cffi cdata.
func (d *PrimitiveDescriptor) Annotate(pointer, ret bool) string {
	if pointer {
		if d.IsString {
			return "str"
		}
		return "Any"
	}
	return d.Annotation
}

// Wrap converts a raw cffi value to Python. Scalars pass through; a
// char pointer decodes to str.
func (d *PrimitiveDescriptor) Wrap(expr string, pointer bool, owner string) string {
	if pointer && d.IsString {
		return "_ffi_string(" + expr + ")"
	}
	return expr
}

// Unwrap converts a Python value back to its raw representation.
func (d *PrimitiveDescriptor) Unwrap(expr string, pointer bool) string {
	if pointer && d.IsString {
		// The staged buffer from PreStore is passed instead; Unwrap is
		// only reached for string fields read straight from a literal.
		return "_ffi.new(\"char[]\", (" + expr + ").encode(\"utf8\"))"
	}
	return expr
}

// PreStore stages an encoded string buffer that must outlive the native
// call. Only meaningful for char pointers.
func (d *PrimitiveDescriptor) PreStore(expr, tmp string) (string, string) {
	if !d.IsString {
		return "", expr
	}
	stmt := tmp + " = _ffi.new(\"char[]\", (" + expr + ").encode(\"utf8\"))"
	return stmt, tmp
}

func (*PrimitiveDescriptor) sealed() {}

func seedPrimitives(r *Registry) {
	prims := []*PrimitiveDescriptor{
		{Name: "void", Annotation: "None", Default: "None"},
		{Name: "bool", Annotation: "bool", Default: "False"},
		{Name: "WGPUBool", Annotation: "bool", Default: "False"},
		{Name: "char", Annotation: "str", Default: "\"\"", IsString: true},
		{Name: "float", Annotation: "float", Default: "0.0"},
		{Name: "double", Annotation: "float", Default: "0.0"},
		{Name: "int8_t", Annotation: "int", Default: "0"},
		{Name: "int16_t", Annotation: "int", Default: "0"},
		{Name: "int32_t", Annotation: "int", Default: "0"},
		{Name: "int64_t", Annotation: "int", Default: "0"},
		{Name: "int", Annotation: "int", Default: "0"},
		{Name: "uint8_t", Annotation: "int", Default: "0"},
		{Name: "uint16_t", Annotation: "int", Default: "0"},
		{Name: "uint32_t", Annotation: "int", Default: "0", SizeInt: true},
		{Name: "uint64_t", Annotation: "int", Default: "0"},
		{Name: "size_t", Annotation: "int", Default: "0", SizeInt: true},
		{Name: "WGPUFlags", Annotation: "int", Default: "0"},
		{Name: "WGPUSubmissionIndex", Annotation: "int", Default: "0"},
		{Name: "uintptr_t", Annotation: "int", Default: "0"},
	}
	for _, p := range prims {
		r.Register(p)
	}
}
