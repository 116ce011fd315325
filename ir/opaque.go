package ir

import "fmt"

// OpaqueDescriptor represents a reference-counted opaque handle: the
// "typedef struct WGPUBufferImpl* WGPUBuffer" idiom. The emitted class
// manages the native refcount, so generation requires both a reference
// and a release function among the handle's attributed members.
type OpaqueDescriptor struct {
	Name     string // C handle name (e.g. "WGPUBuffer")
	Short    string // Python class name (e.g. "Buffer")
	ImplName string // incomplete struct tag (e.g. "WGPUBufferImpl")

	Methods []*FunctionDescriptor

	// Reference and Release are the refcount pair, discovered among
	// Methods during attribution.
	Reference *FunctionDescriptor
	Release   *FunctionDescriptor
}

// Kind returns KindOpaque.
func (d *OpaqueDescriptor) Kind() Kind { return KindOpaque }

// CName returns the C handle name.
func (d *OpaqueDescriptor) CName() string { return d.Name }

// PyName returns the Python class name.
func (d *OpaqueDescriptor) PyName() string { return d.Short }

// Annotate returns the Python class name; nullability is handled at the
// field-unit level.
func (d *OpaqueDescriptor) Annotate(pointer, ret bool) string { return d.Short }

// Wrap adopts a raw handle into the wrapper class.
func (d *OpaqueDescriptor) Wrap(expr string, pointer bool, owner string) string {
	return d.Short + "(" + expr + ")"
}

// Unwrap passes the wrapped handle's cdata.
func (d *OpaqueDescriptor) Unwrap(expr string, pointer bool) string {
	return expr + "._cdata"
}

func (*OpaqueDescriptor) sealed() {}

// AttachMethod records an exported function attributed to this handle
// and claims the refcount pair by derived method name.
func (d *OpaqueDescriptor) AttachMethod(f *FunctionDescriptor) {
	d.Methods = append(d.Methods, f)
	switch f.MethodName {
	case "reference", "addRef":
		d.Reference = f
	case "release":
		d.Release = f
	}
}

// MissingLifecycleError reports an opaque handle whose refcount pair is
// incomplete. This is a fatal generation error: the handle's
// memory-management contract cannot be emitted without both functions.
type MissingLifecycleError struct {
	Handle  string
	Missing string // "reference" or "release"
}

func (e *MissingLifecycleError) Error() string {
	return fmt.Sprintf("opaque handle %s has no %s function; cannot emit its lifecycle contract", e.Handle, e.Missing)
}

// ValidateLifecycle checks that both refcount functions were discovered.
func (d *OpaqueDescriptor) ValidateLifecycle() error {
	if d.Reference == nil {
		return &MissingLifecycleError{Handle: d.Name, Missing: "reference"}
	}
	if d.Release == nil {
		return &MissingLifecycleError{Handle: d.Name, Missing: "release"}
	}
	return nil
}

func (d *OpaqueDescriptor) resolve(reg *Registry) {
	for _, m := range d.Methods {
		m.resolve(reg)
	}
}
