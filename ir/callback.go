package ir

// CallbackDescriptor represents a typedef'd C function pointer
// following the callback-suffix naming convention. The emitted wrapper
// is a class that adopts a Python callable and marshals arguments
// through a cffi-backed shim; registration schedules that shim as an
// emission helper.
type CallbackDescriptor struct {
	Name   string // C name (e.g. "WGPUBufferMapCallback")
	Short  string // Python class name (e.g. "BufferMapCallback")
	Return RawField
	Args   []RawField
}

// Kind returns KindCallback.
func (d *CallbackDescriptor) Kind() Kind { return KindCallback }

// CName returns the C function-pointer name.
func (d *CallbackDescriptor) CName() string { return d.Name }

// PyName returns the Python wrapper class name.
func (d *CallbackDescriptor) PyName() string { return d.Short }

// Annotate returns the Python wrapper class name.
func (d *CallbackDescriptor) Annotate(pointer, ret bool) string { return d.Short }

// Wrap adopts a raw function pointer; only meaningful for fields read
// back out of a struct, which keep the shim alive via the owner.
func (d *CallbackDescriptor) Wrap(expr string, pointer bool, owner string) string {
	return expr
}

// Unwrap passes the shim's cffi handle.
func (d *CallbackDescriptor) Unwrap(expr string, pointer bool) string {
	return expr + "._ffi_cb"
}

func (*CallbackDescriptor) sealed() {}

func (d *CallbackDescriptor) resolve(reg *Registry) {
	d.Return.Type.Resolve(reg)
	for i := range d.Args {
		d.Args[i].Type.Resolve(reg)
	}
}
