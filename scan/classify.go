package scan

import (
	"strings"

	"github.com/gfxkit/wgpugen/ir"
)

// Classify groups a flat ordered list of raw fields into semantic
// units. Classification is order-sensitive and greedy: once two
// adjacent fields satisfy a fusion rule they are consumed together and
// scanning continues after them, with no backtracking. Fusion requires
// a strict naming relationship; ambiguous adjacency falls back to two
// independent units rather than guessing intent.
//
// The registry supplies resolved kinds for the fields seen so far,
// which is why the driver runs extractors in dependency order.
func Classify(fields []ir.RawField, reg *ir.Registry) []ir.FieldUnit {
	var units []ir.FieldUnit
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if i+1 < len(fields) {
			next := fields[i+1]
			if u := fuseArray(f, next, reg); u != nil {
				units = append(units, u)
				i++
				continue
			}
			if u := fuseCallback(f, next, reg); u != nil {
				units = append(units, u)
				i++
				continue
			}
		}
		units = append(units, single(f, reg))
	}
	return units
}

// fuseArray fuses a count field with its pointer partner. Both
// physical orderings occur in the source, so both are checked. A
// dangling count field with no plausible partner stays a plain
// read-only integer unit.
func fuseArray(a, b ir.RawField, reg *ir.Registry) ir.FieldUnit {
	if prefix, ok := countPrefix(a, reg); ok && b.Pointer && isPluralOf(b.Name, prefix) {
		return &ir.ArrayField{Count: a, Elems: b, CountFirst: true}
	}
	if prefix, ok := countPrefix(b, reg); ok && a.Pointer && isPluralOf(a.Name, prefix) {
		return &ir.ArrayField{Count: b, Elems: a, CountFirst: false}
	}
	return nil
}

// countPrefix reports the array-name prefix of a count field: name ends
// in "Count" and the type is the registry's size-integer type.
func countPrefix(f ir.RawField, reg *ir.Registry) (string, bool) {
	const suffix = "Count"
	if !strings.HasSuffix(f.Name, suffix) || len(f.Name) == len(suffix) {
		return "", false
	}
	if f.Pointer {
		return "", false
	}
	d, _ := reg.Lookup(f.Type.Name)
	p, ok := d.(*ir.PrimitiveDescriptor)
	if !ok || !p.SizeInt {
		return "", false
	}
	return strings.TrimSuffix(f.Name, suffix), true
}

// fuseCallback fuses a function-pointer field with its following
// userdata pointer.
func fuseCallback(a, b ir.RawField, reg *ir.Registry) ir.FieldUnit {
	d, _ := reg.Lookup(a.Type.Name)
	if _, ok := d.(*ir.CallbackDescriptor); !ok {
		return nil
	}
	if !b.Pointer || b.Type.Name != "void" || !strings.HasPrefix(strings.ToLower(b.Name), "userdata") {
		return nil
	}
	return &ir.CallbackField{Callback: a, UserData: b}
}

// single classifies an unfused field by resolved kind and pointer
// annotation alone.
func single(f ir.RawField, reg *ir.Registry) ir.FieldUnit {
	d, _ := reg.Lookup(f.Type.Name)
	switch d.(type) {
	case *ir.OpaqueDescriptor, *ir.StructDescriptor, *ir.CallbackDescriptor:
		return &ir.PointerField{Field: f, Nullable: f.Nullable}
	}
	if f.Pointer {
		return &ir.PointerField{Field: f, Nullable: f.Nullable}
	}
	return &ir.ValueField{Field: f}
}

// isPluralOf reports whether candidate is a recognized plural of base.
// The rule table is deliberately small and explicit:
//
//	base + "s"                ("buffer" -> "buffers")
//	base "y" -> stem + "ies"  ("entry" -> "entries")
//	base already plural       ("formats" -> "formats")
func isPluralOf(candidate, base string) bool {
	if candidate == base+"s" {
		return true
	}
	if strings.HasSuffix(base, "y") && candidate == strings.TrimSuffix(base, "y")+"ies" {
		return true
	}
	if strings.HasSuffix(base, "s") && candidate == base {
		return true
	}
	return false
}
