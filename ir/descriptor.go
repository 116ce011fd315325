// Package ir defines the type descriptors for the binding generator.
// Descriptors are built from C declarations by the scan package and
// carry everything the emission layer needs to produce wrapper source:
// the Python-side name, type annotations, and the wrap/unwrap expression
// shapes that convert between raw cffi values and wrapped objects.
package ir

// Kind identifies the category of a type descriptor.
type Kind int

const (
	KindPrimitive Kind = iota // Built-in C primitive (uint32_t, float, char*, ...)
	KindEnum                  // typedef enum
	KindFlags                 // Bitmask wrapper over an enum
	KindOpaque                // Reference-counted opaque handle
	KindStruct                // typedef struct with a body
	KindCallback              // typedef'd function pointer
	KindUnknown               // Unresolved reference placeholder
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindEnum:
		return "Enum"
	case KindFlags:
		return "Flags"
	case KindOpaque:
		return "Opaque"
	case KindStruct:
		return "Struct"
	case KindCallback:
		return "Callback"
	case KindUnknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// TypeDescriptor is the base interface for all type descriptors.
// Implementations are immutable after registry resolution, with one
// exception: enum variant lists may be merged post-hoc when a vendor
// extension enum is folded into its base enum.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() Kind

	// CName returns the original C identifier (e.g. "WGPUBuffer").
	CName() string

	// PyName returns the ergonomic Python identifier (e.g. "Buffer").
	PyName() string

	// Annotate returns the Python type annotation for a value of this
	// type. pointer reports whether the C declaration is a pointer,
	// ret whether the value appears in return position.
	Annotate(pointer, ret bool) string

	// Wrap returns a Python expression converting the raw cffi
	// expression expr into the wrapped type. owner names the Python
	// expression that keeps backing storage alive, or "" if none.
	Wrap(expr string, pointer bool, owner string) string

	// Unwrap returns the inverse of Wrap.
	Unwrap(expr string, pointer bool) string

	// Ensure only types in this package implement TypeDescriptor.
	sealed()
}

// PreStorer is implemented by descriptors whose unwrapped values need
// intermediate staging that must outlive the native call (e.g. encoded
// string buffers). PreStore returns a Python statement binding the
// staged value to tmp, and the expression to pass in its place.
type PreStorer interface {
	PreStore(expr, tmp string) (stmt, passExpr string)
}

// Resolver is implemented by descriptors that hold references to other
// types by name. The registry calls resolve once all extractors have run.
type resolver interface {
	resolve(reg *Registry)
}
