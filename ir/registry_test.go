package ir

import (
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistryInsertionOrder(t *testing.T) {
	reg := NewRegistry(testLogger())
	seeded := len(reg.Types())

	reg.Register(&EnumDescriptor{Name: "WGPUCompareFunction", Short: "CompareFunction"})
	reg.Register(&OpaqueDescriptor{Name: "WGPUBuffer", Short: "Buffer", ImplName: "WGPUBufferImpl"})
	reg.Register(&StructDescriptor{Name: "WGPUBufferDescriptor", Short: "BufferDescriptor"})

	types := reg.Types()
	if got := len(types); got != seeded+3 {
		t.Fatalf("len(Types()) = %d, want %d", got, seeded+3)
	}
	want := []string{"WGPUCompareFunction", "WGPUBuffer", "WGPUBufferDescriptor"}
	for i, name := range want {
		if got := types[seeded+i].CName(); got != name {
			t.Errorf("Types()[%d] = %s, want %s", seeded+i, got, name)
		}
	}
}

func TestRegistryDuplicateKeepsFirst(t *testing.T) {
	reg := NewRegistry(testLogger())
	first := &EnumDescriptor{Name: "WGPUSType", Short: "SType"}
	second := &EnumDescriptor{Name: "WGPUSType", Short: "Other"}

	reg.Register(first)
	before := len(reg.Types())
	reg.Register(second)

	if got := len(reg.Types()); got != before {
		t.Errorf("duplicate registration grew Types() from %d to %d", before, got)
	}
	if got := reg.Get("WGPUSType"); got != TypeDescriptor(first) {
		t.Errorf("Get after duplicate registration returned %v, want the first descriptor", got)
	}
}

func TestRegistryUnknownFallback(t *testing.T) {
	reg := NewRegistry(testLogger())

	d := reg.Get("WGPUNotAThing")
	u, ok := d.(*UnknownDescriptor)
	if !ok {
		t.Fatalf("Get(unregistered) = %T, want *UnknownDescriptor", d)
	}
	if u.Name != "WGPUNotAThing" {
		t.Errorf("unknown placeholder name = %q, want WGPUNotAThing", u.Name)
	}

	// A second miss of the same name must not duplicate the diagnostic list.
	reg.Get("WGPUNotAThing")
	reg.Get("WGPUAlsoMissing")
	want := []string{"WGPUAlsoMissing", "WGPUNotAThing"}
	got := reg.UnknownNames()
	if len(got) != len(want) {
		t.Fatalf("UnknownNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UnknownNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryLookupDoesNotTrackUnknowns(t *testing.T) {
	reg := NewRegistry(testLogger())
	if _, ok := reg.Lookup("WGPUForwardRef"); ok {
		t.Fatal("Lookup of unregistered name reported ok")
	}
	if n := len(reg.UnknownNames()); n != 0 {
		t.Errorf("Lookup miss recorded %d unknown name(s), want 0", n)
	}
}

func TestRegistryPrimitivesSeeded(t *testing.T) {
	reg := NewRegistry(testLogger())
	for _, name := range []string{"void", "char", "uint32_t", "size_t", "WGPUBool"} {
		d, ok := reg.Lookup(name)
		if !ok {
			t.Errorf("primitive %s not seeded", name)
			continue
		}
		if d.Kind() != KindPrimitive {
			t.Errorf("%s kind = %v, want %v", name, d.Kind(), KindPrimitive)
		}
	}
	for _, name := range []string{"size_t", "uint32_t"} {
		p := mustPrimitive(t, reg, name)
		if !p.SizeInt {
			t.Errorf("%s should be a size integer", name)
		}
	}
	if p := mustPrimitive(t, reg, "uint64_t"); p.SizeInt {
		t.Error("uint64_t should not be a size integer")
	}
}

func mustPrimitive(t *testing.T, reg *Registry, name string) *PrimitiveDescriptor {
	t.Helper()
	d, ok := reg.Lookup(name)
	if !ok {
		t.Fatalf("primitive %s not seeded", name)
	}
	p, ok := d.(*PrimitiveDescriptor)
	if !ok {
		t.Fatalf("%s = %T, want *PrimitiveDescriptor", name, d)
	}
	return p
}

func TestEnsureHelperMemoized(t *testing.T) {
	reg := NewRegistry(testLogger())

	calls := 0
	factory := func() string {
		calls++
		return "def _array_WGPUBindGroupEntry(items): ..."
	}
	reg.EnsureHelper("array:WGPUBindGroupEntry", factory)
	reg.EnsureHelper("array:WGPUBindGroupEntry", factory)
	reg.EnsureHelper("callback:WGPUBufferMapCallback", func() string { return "class BufferMapCallback: ..." })

	if calls != 1 {
		t.Errorf("factory ran %d times, want 1", calls)
	}
	helpers := reg.Helpers()
	if len(helpers) != 2 {
		t.Fatalf("Helpers() len = %d, want 2", len(helpers))
	}
	if helpers[0] != "def _array_WGPUBindGroupEntry(items): ..." {
		t.Errorf("Helpers()[0] = %q, want the array helper first", helpers[0])
	}
}

func TestTypeRefResolve(t *testing.T) {
	reg := NewRegistry(testLogger())
	enum := &EnumDescriptor{Name: "WGPUTextureFormat", Short: "TextureFormat"}
	reg.Register(enum)

	ref := Ref("WGPUTextureFormat")
	if _, ok := ref.Def().(*UnknownDescriptor); !ok {
		t.Fatal("unresolved ref should degrade to the unknown placeholder")
	}

	ref.Resolve(reg)
	if got := ref.Def(); got != TypeDescriptor(enum) {
		t.Errorf("resolved ref Def() = %v, want the registered enum", got)
	}
}

func TestRegistryResolveBindsStructRefs(t *testing.T) {
	reg := NewRegistry(testLogger())
	reg.Register(&EnumDescriptor{Name: "WGPUTextureFormat", Short: "TextureFormat"})

	field := RawField{Name: "format", Type: Ref("WGPUTextureFormat")}
	reg.Register(&StructDescriptor{
		Name:  "WGPUColorTargetState",
		Short: "ColorTargetState",
		Units: []FieldUnit{&ValueField{Field: field}},
	})
	reg.Resolve()

	sd := reg.Get("WGPUColorTargetState").(*StructDescriptor)
	def := sd.Units[0].Raw()[0].Type.Def()
	if _, ok := def.(*EnumDescriptor); !ok {
		t.Errorf("struct field resolved to %T, want *EnumDescriptor", def)
	}
	if n := len(reg.UnknownNames()); n != 0 {
		t.Errorf("resolution recorded %d unknown name(s), want 0", n)
	}
}
