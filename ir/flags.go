package ir

// FlagsDescriptor represents a bitmask wrapper over exactly one enum
// (the "typedef WGPUFlags WGPUBufferUsageFlags" idiom). The emitted
// wrapper supports membership tests, iteration over set bits,
// OR-combination, and construction from either an integer or a list of
// enum members; FlagsValue models that behavior for the generator's own
// constant folding and for tests.
type FlagsDescriptor struct {
	Name string // C name (e.g. "WGPUBufferUsageFlags")
	Enum *EnumDescriptor
}

// Kind returns KindFlags.
func (d *FlagsDescriptor) Kind() Kind { return KindFlags }

// CName returns the C flags type name.
func (d *FlagsDescriptor) CName() string { return d.Name }

// PyName returns the Python flags class name.
func (d *FlagsDescriptor) PyName() string { return d.Enum.Short + "Flags" }

// Annotate returns the union accepted by emitted signatures: the flags
// class, a plain int, or a list of enum members.
func (d *FlagsDescriptor) Annotate(pointer, ret bool) string {
	if ret {
		return d.PyName()
	}
	return "Union[" + d.PyName() + ", " + d.Enum.Short + ", int]"
}

// Wrap converts a raw integer into the flags wrapper.
func (d *FlagsDescriptor) Wrap(expr string, pointer bool, owner string) string {
	return d.PyName() + "(" + expr + ")"
}

// Unwrap converts any accepted flags form back to an integer.
func (d *FlagsDescriptor) Unwrap(expr string, pointer bool) string {
	return "int(" + expr + ")"
}

func (*FlagsDescriptor) sealed() {}

// FlagsValue is a concrete bitmask over a flags descriptor's enum.
type FlagsValue struct {
	Flags *FlagsDescriptor
	bits  uint32
}

// NewFlagsValue constructs a value from an integer bit pattern.
func NewFlagsValue(d *FlagsDescriptor, bits uint32) FlagsValue {
	return FlagsValue{Flags: d, bits: bits}
}

// FlagsOf constructs a value from a list of enum members.
func FlagsOf(d *FlagsDescriptor, members ...EnumVariant) FlagsValue {
	v := FlagsValue{Flags: d}
	for _, m := range members {
		v.bits |= m.Value
	}
	return v
}

// Int returns the integer bit pattern.
func (v FlagsValue) Int() uint32 { return v.bits }

// Has reports whether all of the member's bits are set.
func (v FlagsValue) Has(m EnumVariant) bool {
	return m.Value != 0 && v.bits&m.Value == m.Value
}

// Or returns the combination of two values.
func (v FlagsValue) Or(o FlagsValue) FlagsValue {
	return FlagsValue{Flags: v.Flags, bits: v.bits | o.bits}
}

// Members iterates the set bits as enum variants, in the underlying
// enum's declaration order. Zero-valued variants never appear.
func (v FlagsValue) Members() []EnumVariant {
	var out []EnumVariant
	for _, m := range v.Flags.Enum.Variants {
		if v.Has(m) {
			out = append(out, m)
		}
	}
	return out
}
