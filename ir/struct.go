package ir

// RawField is one declared field or parameter as scanned from source,
// before classification: type reference plus pointer/const/nullable
// qualifiers. Pointer fields carrying the explicit nullable marker, or
// whose type is the chain-link struct, are always nullable.
type RawField struct {
	Name     string
	Type     *TypeRef
	Pointer  bool
	Const    bool
	Nullable bool
}

// FieldUnit is one semantic unit produced by the classifier: either a
// single raw field, or two adjacent raw fields fused together.
type FieldUnit interface {
	// UnitName is the Python-visible name of the unit.
	UnitName() string

	// Raw returns the underlying raw fields covered, in source order.
	Raw() []RawField

	sealedUnit()
}

// ValueField is a scalar passed by value (primitive or enum).
type ValueField struct {
	Field RawField
}

func (u *ValueField) UnitName() string { return u.Field.Name }
func (u *ValueField) Raw() []RawField  { return []RawField{u.Field} }
func (*ValueField) sealedUnit()        {}

// PointerField is a by-reference field (opaque handle, struct pointer,
// string, or untyped pointer), optionally nullable.
type PointerField struct {
	Field    RawField
	Nullable bool
}

func (u *PointerField) UnitName() string { return u.Field.Name }
func (u *PointerField) Raw() []RawField  { return []RawField{u.Field} }
func (*PointerField) sealedUnit()        {}

// ArrayField fuses a count field with its pointer field into a single
// list-typed unit. Count and Elems keep their physical source order via
// CountFirst; the unit is named after the pointer field.
type ArrayField struct {
	Count      RawField
	Elems      RawField
	CountFirst bool
}

func (u *ArrayField) UnitName() string { return u.Elems.Name }

func (u *ArrayField) Raw() []RawField {
	if u.CountFirst {
		return []RawField{u.Count, u.Elems}
	}
	return []RawField{u.Elems, u.Count}
}

func (*ArrayField) sealedUnit() {}

// CallbackField fuses a function-pointer field with its following
// userdata field. The userdata slot is claimed by the marshaling shim
// and never surfaces in the public signature.
type CallbackField struct {
	Callback RawField
	UserData RawField
}

func (u *CallbackField) UnitName() string { return u.Callback.Name }
func (u *CallbackField) Raw() []RawField  { return []RawField{u.Callback, u.UserData} }
func (*CallbackField) sealedUnit()        {}

// StructDescriptor represents a typedef'd C struct with a body.
type StructDescriptor struct {
	Name  string // C name (e.g. "WGPUBindGroupEntry")
	Short string // Python name (e.g. "BindGroupEntry")
	Units []FieldUnit

	// Chainable is set when the first field is the chain-link type.
	// The linkage field is excluded from the public constructor and
	// auto-populated with STypeVariant, the struct's own tag in the
	// SType enum.
	Chainable    bool
	STypeVariant string

	// Defaults maps unit names to Python default literals recovered
	// from the side-channel spec document. Best-effort; misses simply
	// leave no entry.
	Defaults map[string]string

	// Methods are exported functions attributed to this struct by
	// first-argument type.
	Methods []*FunctionDescriptor
}

// Kind returns KindStruct.
func (d *StructDescriptor) Kind() Kind { return KindStruct }

// CName returns the C struct name.
func (d *StructDescriptor) CName() string { return d.Name }

// PyName returns the Python class name.
func (d *StructDescriptor) PyName() string { return d.Short }

// Annotate returns the Python class name.
func (d *StructDescriptor) Annotate(pointer, ret bool) string { return d.Short }

// Wrap views raw struct memory as the wrapper class. owner keeps the
// backing cdata alive across the wrapper's lifetime.
func (d *StructDescriptor) Wrap(expr string, pointer bool, owner string) string {
	if owner == "" {
		return d.Short + "(cdata=" + expr + ")"
	}
	return d.Short + "(cdata=" + expr + ", parent=" + owner + ")"
}

// Unwrap passes the wrapper's cdata: the pointer itself for pointer
// positions, the dereferenced value otherwise.
func (d *StructDescriptor) Unwrap(expr string, pointer bool) string {
	if pointer {
		return expr + "._cdata"
	}
	return expr + "._cdata[0]"
}

func (*StructDescriptor) sealed() {}

// PublicUnits returns the field units that appear in the public
// constructor signature: all units except the chain link.
func (d *StructDescriptor) PublicUnits() []FieldUnit {
	if !d.Chainable {
		return d.Units
	}
	var out []FieldUnit
	for _, u := range d.Units {
		if isChainLink(u) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// ChainLinkName is the field linking a chainable struct to its
// extension chain.
const ChainLinkName = "nextInChain"

// ChainStructName is the C type that heads every extension chain.
const ChainStructName = "WGPUChainedStruct"

func isChainLink(u FieldUnit) bool {
	raw := u.Raw()
	if len(raw) != 1 {
		return false
	}
	// Extendable structs link forward through nextInChain; extension
	// structs embed the link itself as their first field.
	return raw[0].Name == ChainLinkName || raw[0].Name == "chain"
}

func (d *StructDescriptor) resolve(reg *Registry) {
	for _, u := range d.Units {
		for _, f := range u.Raw() {
			f.Type.Resolve(reg)
		}
	}
	for _, m := range d.Methods {
		m.resolve(reg)
	}
}
