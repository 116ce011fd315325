package ir

import "strings"

// FunctionDescriptor represents an exported C function. Arguments pass
// through the same classifier as struct fields, so count+array and
// callback+userdata pairs arrive fused. Functions whose first argument
// resolves to a registered opaque handle or struct are attributed to
// that type as methods; all others are loose (module-level).
type FunctionDescriptor struct {
	Name   string // C name (e.g. "wgpuBufferMapAsync")
	Short  string // loose Python name (e.g. "createInstance")
	Args   []FieldUnit
	Return RawField

	// Owner is the C type name the function is attributed to, "" when
	// loose. MethodName is the Python method name with the owner's
	// prefix stripped (e.g. "mapAsync").
	Owner      string
	MethodName string
}

// Receiver returns the first argument unit when the function is a
// method (the self slot), nil otherwise.
func (f *FunctionDescriptor) Receiver() FieldUnit {
	if f.Owner == "" || len(f.Args) == 0 {
		return nil
	}
	return f.Args[0]
}

// CallArgs returns the argument units that surface in the Python
// signature: all units minus the receiver slot.
func (f *FunctionDescriptor) CallArgs() []FieldUnit {
	if f.Owner == "" {
		return f.Args
	}
	return f.Args[1:]
}

// DescriptorSuffixes are the type-name suffixes that make a single
// struct argument eligible for the keyword-expanded convenience entry
// point.
var DescriptorSuffixes = []string{"Descriptor", "Options"}

// DescriptorArg reports the lone struct argument eligible for a
// secondary keyword-expanded entry point that constructs the descriptor
// inline. The convenience form never alters the primary call's
// semantics. Returns nil when the function does not qualify.
func (f *FunctionDescriptor) DescriptorArg() *StructDescriptor {
	var found *StructDescriptor
	for _, u := range f.CallArgs() {
		raw := u.Raw()
		if len(raw) != 1 {
			continue
		}
		sd, ok := raw[0].Type.Def().(*StructDescriptor)
		if !ok {
			continue
		}
		if found != nil {
			// More than one struct argument disqualifies the function.
			return nil
		}
		found = sd
	}
	if found == nil {
		return nil
	}
	for _, suffix := range DescriptorSuffixes {
		if strings.HasSuffix(found.Name, suffix) {
			return found
		}
	}
	return nil
}

func (f *FunctionDescriptor) resolve(reg *Registry) {
	f.Return.Type.Resolve(reg)
	for _, u := range f.Args {
		for _, raw := range u.Raw() {
			raw.Type.Resolve(reg)
		}
	}
}
