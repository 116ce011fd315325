package scan

import (
	"io"
	"log/slog"
	"testing"

	"github.com/gfxkit/wgpugen/ir"
)

func testRegistry() *ir.Registry {
	return ir.NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEnums(t *testing.T) {
	src := `typedef enum WGPUCompareFunction {
    WGPUCompareFunction_Undefined = 0x00000000,
    WGPUCompareFunction_Never = 0x00000001,
    WGPUCompareFunction_Less = 0x00000002,
    WGPUCompareFunction_Force32 = 0x7FFFFFFF
} WGPUCompareFunction;
`
	reg := testRegistry()
	if err := Enums(src, reg); err != nil {
		t.Fatalf("Enums() error: %v", err)
	}

	d, ok := reg.Lookup("WGPUCompareFunction")
	if !ok {
		t.Fatal("WGPUCompareFunction not registered")
	}
	enum := d.(*ir.EnumDescriptor)
	if enum.Short != "CompareFunction" {
		t.Errorf("Short = %q, want CompareFunction", enum.Short)
	}
	if len(enum.Variants) != 3 {
		t.Fatalf("variant count = %d, want 3 (Force32 excluded)", len(enum.Variants))
	}
	if _, ok := enum.Variant("Force32"); ok {
		t.Error("Force32 sentinel leaked into variants")
	}
	less, _ := enum.Variant("Less")
	if less.Value != 2 {
		t.Errorf("Less = %d, want 2", less.Value)
	}
}

func TestEnumsAutoIncrement(t *testing.T) {
	src := `typedef enum WGPUPowerPreference {
    WGPUPowerPreference_Undefined,
    WGPUPowerPreference_LowPower,
    WGPUPowerPreference_HighPerformance,
    WGPUPowerPreference_Force32 = 0x7FFFFFFF
} WGPUPowerPreference;
`
	reg := testRegistry()
	if err := Enums(src, reg); err != nil {
		t.Fatalf("Enums() error: %v", err)
	}
	enum := reg.Get("WGPUPowerPreference").(*ir.EnumDescriptor)
	want := []struct {
		name  string
		value uint32
	}{
		{"Undefined", 0},
		{"LowPower", 1},
		{"HighPerformance", 2},
	}
	for _, w := range want {
		v, ok := enum.Variant(w.name)
		if !ok || v.Value != w.value {
			t.Errorf("Variant(%s) = %+v, %v; want value %d", w.name, v, ok, w.value)
		}
	}
}

func TestEnumsCompositeExpressions(t *testing.T) {
	src := `typedef enum WGPUColorWriteMask {
    WGPUColorWriteMask_None = 0x00000000,
    WGPUColorWriteMask_Red = 0x00000001,
    WGPUColorWriteMask_Green = 0x00000002,
    WGPUColorWriteMask_Blue = 0x00000004,
    WGPUColorWriteMask_Alpha = 0x00000008,
    WGPUColorWriteMask_All = WGPUColorWriteMask_Red | WGPUColorWriteMask_Green | WGPUColorWriteMask_Blue | WGPUColorWriteMask_Alpha,
    WGPUColorWriteMask_Force32 = 0x7FFFFFFF
} WGPUColorWriteMask;
`
	reg := testRegistry()
	if err := Enums(src, reg); err != nil {
		t.Fatalf("Enums() error: %v", err)
	}
	enum := reg.Get("WGPUColorWriteMask").(*ir.EnumDescriptor)
	all, ok := enum.Variant("All")
	if !ok {
		t.Fatal("All variant missing")
	}
	if all.Value != 0x0F {
		t.Errorf("All = 0x%08X, want 0x0000000F", all.Value)
	}
}

func TestEnumsBadExpressionDegradesToZero(t *testing.T) {
	src := `typedef enum WGPUWeird {
    WGPUWeird_Ok = 0x00000001,
    WGPUWeird_Broken = SOME_MACRO(3),
    WGPUWeird_Force32 = 0x7FFFFFFF
} WGPUWeird;
`
	reg := testRegistry()
	if err := Enums(src, reg); err != nil {
		t.Fatalf("Enums() error: %v", err)
	}
	enum := reg.Get("WGPUWeird").(*ir.EnumDescriptor)
	broken, ok := enum.Variant("Broken")
	if !ok {
		t.Fatal("Broken variant missing; a bad expression degrades, not drops")
	}
	if broken.Value != 0 {
		t.Errorf("Broken = %d, want 0", broken.Value)
	}
}

func TestEnumsVendorMerge(t *testing.T) {
	src := `typedef enum WGPUSType {
    WGPUSType_Invalid = 0x00000000,
    WGPUSType_SurfaceDescriptorFromMetalLayer = 0x00000001,
    WGPUSType_Force32 = 0x7FFFFFFF
} WGPUSType;

typedef enum WGPUNativeSType {
    WGPUSType_DeviceExtras = 0x00030001,
    WGPUSType_AdapterExtras = 0x00030002,
    WGPUNativeSType_Force32 = 0x7FFFFFFF
} WGPUNativeSType;
`
	reg := testRegistry()
	if err := Enums(src, reg); err != nil {
		t.Fatalf("Enums() error: %v", err)
	}

	if _, ok := reg.Lookup("WGPUNativeSType"); ok {
		t.Error("extension enum registered standalone; it must fold into the base")
	}
	base := reg.Get("WGPUSType").(*ir.EnumDescriptor)
	// Extension constants carry the base enum's prefix, so the merge
	// drops everything up to the first underscore.
	v, ok := base.Variant("DeviceExtras")
	if !ok {
		t.Fatal("merged base enum is missing DeviceExtras")
	}
	if v.Value != 0x00030001 {
		t.Errorf("DeviceExtras = 0x%08X, want 0x00030001", v.Value)
	}
}

func TestEnumsVendorMergeBeforeBase(t *testing.T) {
	// Input order of base and extension headers must not matter.
	src := `typedef enum WGPUNativeFeature {
    WGPUNativeFeature_PushConstants = 0x00030001,
    WGPUNativeFeature_Force32 = 0x7FFFFFFF
} WGPUNativeFeature;

typedef enum WGPUFeatureName {
    WGPUFeatureName_Undefined = 0x00000000,
    WGPUFeatureName_DepthClipControl = 0x00000001,
    WGPUFeatureName_Force32 = 0x7FFFFFFF
} WGPUFeatureName;
`
	reg := testRegistry()
	if err := Enums(src, reg); err != nil {
		t.Fatalf("Enums() error: %v", err)
	}
	base := reg.Get("WGPUFeatureName").(*ir.EnumDescriptor)
	if _, ok := base.Variant("PushConstants"); !ok {
		t.Error("extension preceding its base was not merged")
	}
}
