package scan

import (
	"strings"
	"testing"

	"github.com/gfxkit/wgpugen/ir"
)

func TestStructs(t *testing.T) {
	src := `typedef struct WGPUBindGroupEntry {
    WGPUChainedStruct const * nextInChain;
    uint32_t binding;
    WGPU_NULLABLE WGPUBuffer buffer;
    uint64_t offset;
    uint64_t size;
} WGPUBindGroupEntry;
`
	reg := testRegistry()
	reg.Register(&ir.OpaqueDescriptor{Name: "WGPUBuffer", Short: "Buffer", ImplName: "WGPUBufferImpl"})
	if err := Structs(src, reg); err != nil {
		t.Fatalf("Structs() error: %v", err)
	}

	d, ok := reg.Lookup("WGPUBindGroupEntry")
	if !ok {
		t.Fatal("WGPUBindGroupEntry not registered")
	}
	sd := d.(*ir.StructDescriptor)
	if sd.Short != "BindGroupEntry" {
		t.Errorf("Short = %q, want BindGroupEntry", sd.Short)
	}
	if !sd.Chainable {
		t.Error("struct opening with the chain link should be chainable")
	}
	if len(sd.Units) != 5 {
		t.Fatalf("unit count = %d, want 5", len(sd.Units))
	}

	buf, ok := sd.Units[2].(*ir.PointerField)
	if !ok {
		t.Fatalf("buffer unit = %T, want *ir.PointerField", sd.Units[2])
	}
	if !buf.Nullable {
		t.Error("explicitly nullable handle field lost its marker")
	}

	public := sd.PublicUnits()
	if len(public) != 4 {
		t.Errorf("public unit count = %d, want 4 (chain link hidden)", len(public))
	}
}

func TestStructsFuseAdjacentFields(t *testing.T) {
	src := `typedef struct WGPUBindGroupDescriptor {
    size_t entryCount;
    WGPUBindGroupEntry const * entries;
} WGPUBindGroupDescriptor;
`
	reg := testRegistry()
	reg.Register(&ir.StructDescriptor{Name: "WGPUBindGroupEntry", Short: "BindGroupEntry"})
	if err := Structs(src, reg); err != nil {
		t.Fatalf("Structs() error: %v", err)
	}
	sd := reg.Get("WGPUBindGroupDescriptor").(*ir.StructDescriptor)
	if len(sd.Units) != 1 {
		t.Fatalf("unit count = %d, want 1 fused array unit", len(sd.Units))
	}
	if _, ok := sd.Units[0].(*ir.ArrayField); !ok {
		t.Errorf("unit = %T, want *ir.ArrayField", sd.Units[0])
	}
}

func TestStructsNotChainableWithoutLink(t *testing.T) {
	src := `typedef struct WGPUExtent3D {
    uint32_t width;
    uint32_t height;
    uint32_t depthOrArrayLayers;
} WGPUExtent3D;
`
	reg := testRegistry()
	if err := Structs(src, reg); err != nil {
		t.Fatalf("Structs() error: %v", err)
	}
	sd := reg.Get("WGPUExtent3D").(*ir.StructDescriptor)
	if sd.Chainable {
		t.Error("plain struct marked chainable")
	}
}

func TestStructsUnsplittableFieldFails(t *testing.T) {
	src := `typedef struct WGPUBroken {
    uint32_t;
} WGPUBroken;
`
	reg := testRegistry()
	err := Structs(src, reg)
	if err == nil {
		t.Fatal("Structs() = nil error for an unsplittable field")
	}
	if !strings.Contains(err.Error(), "WGPUBroken") {
		t.Errorf("error %q does not name the struct", err.Error())
	}
}
