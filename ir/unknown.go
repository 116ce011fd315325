package ir

// UnknownDescriptor is the sentinel for a type name that never resolved.
// It is generatable but untyped: annotations degrade to Any and values
// pass through unconverted, so the rest of generation can proceed. The
// header family is not fully self-consistent across versions, so this is
// a logged degradation rather than a failure.
type UnknownDescriptor struct {
	Name string
}

// Kind returns KindUnknown.
func (d *UnknownDescriptor) Kind() Kind { return KindUnknown }

// CName returns the unresolved C name.
func (d *UnknownDescriptor) CName() string { return d.Name }

// PyName returns "Any"; unknown types have no wrapper class.
func (d *UnknownDescriptor) PyName() string { return "Any" }

// Annotate always returns Any.
func (d *UnknownDescriptor) Annotate(pointer, ret bool) string { return "Any" }

// Wrap passes the raw value through.
func (d *UnknownDescriptor) Wrap(expr string, pointer bool, owner string) string { return expr }

// Unwrap passes the value through.
func (d *UnknownDescriptor) Unwrap(expr string, pointer bool) string { return expr }

func (*UnknownDescriptor) sealed() {}
