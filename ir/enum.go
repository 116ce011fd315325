package ir

import (
	"fmt"
	"strings"
)

// EnumVariant is a single enum member with its evaluated constant value.
// Value text is kept in normalized fixed-width hex for stable diffing of
// generated output.
type EnumVariant struct {
	Name  string // variant name with the enum prefix stripped (e.g. "Never")
	Value uint32
}

// Hex returns the normalized textual value form.
func (v EnumVariant) Hex() string {
	return fmt.Sprintf("0x%08X", v.Value)
}

// EnumDescriptor represents a typedef'd C enum. The Force32 ABI padding
// sentinel is excluded by the extractor and never appears in Variants.
// Variant lists are append-only after construction except for vendor
// extension merges.
type EnumDescriptor struct {
	Name     string // C name (e.g. "WGPUCompareFunction")
	Short    string // Python name (e.g. "CompareFunction")
	Variants []EnumVariant

	// Flags back-links the bitflags wrapper registered over this enum,
	// if any, for convenience accessors in emitted code.
	Flags *FlagsDescriptor
}

// Kind returns KindEnum.
func (d *EnumDescriptor) Kind() Kind { return KindEnum }

// CName returns the C enum name.
func (d *EnumDescriptor) CName() string { return d.Name }

// PyName returns the Python enum class name.
func (d *EnumDescriptor) PyName() string { return d.Short }

// Annotate returns the Python enum class name.
func (d *EnumDescriptor) Annotate(pointer, ret bool) string { return d.Short }

// Wrap converts a raw integer into the Python enum.
func (d *EnumDescriptor) Wrap(expr string, pointer bool, owner string) string {
	return d.Short + "(" + expr + ")"
}

// Unwrap converts the Python enum back to its integer value.
func (d *EnumDescriptor) Unwrap(expr string, pointer bool) string {
	return "int(" + expr + ")"
}

func (*EnumDescriptor) sealed() {}

// Variant looks up a variant by name.
func (d *EnumDescriptor) Variant(name string) (EnumVariant, bool) {
	for _, v := range d.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return EnumVariant{}, false
}

// MergeExtension folds a vendor extension enum into this base enum.
// The extension's numeric values are kept; each variant name is remapped
// by stripping everything up to and including the first underscore
// segment of its original C constant name. Variants whose remapped name
// already exists in the base are skipped.
func (d *EnumDescriptor) MergeExtension(ext *EnumDescriptor) {
	for _, v := range ext.Variants {
		name := v.Name
		if i := strings.Index(name, "_"); i >= 0 {
			name = name[i+1:]
		}
		if _, ok := d.Variant(name); ok {
			continue
		}
		d.Variants = append(d.Variants, EnumVariant{Name: name, Value: v.Value})
	}
}
