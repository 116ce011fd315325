package scan

import (
	"testing"

	"github.com/gfxkit/wgpugen/ir"
)

func TestCallbacks(t *testing.T) {
	src := `typedef void (*WGPUBufferMapCallback)(WGPUBufferMapAsyncStatus status, void * userdata);
`
	reg := testRegistry()
	if err := Callbacks(src, reg); err != nil {
		t.Fatalf("Callbacks() error: %v", err)
	}

	d, ok := reg.Lookup("WGPUBufferMapCallback")
	if !ok {
		t.Fatal("WGPUBufferMapCallback not registered")
	}
	cb := d.(*ir.CallbackDescriptor)
	if cb.Short != "BufferMapCallback" {
		t.Errorf("Short = %q, want BufferMapCallback", cb.Short)
	}
	if cb.Return.Type.Name != "void" {
		t.Errorf("Return type = %q, want void", cb.Return.Type.Name)
	}
	if len(cb.Args) != 2 {
		t.Fatalf("arg count = %d, want 2", len(cb.Args))
	}
	if cb.Args[0].Name != "status" || cb.Args[1].Name != "userdata" {
		t.Errorf("args = [%s %s], want [status userdata]", cb.Args[0].Name, cb.Args[1].Name)
	}
	if !cb.Args[1].Pointer {
		t.Error("userdata should be a pointer")
	}
}

func TestCallbacksRequireSuffix(t *testing.T) {
	src := `typedef void (*WGPUProc)(void);
`
	reg := testRegistry()
	if err := Callbacks(src, reg); err != nil {
		t.Fatalf("Callbacks() error: %v", err)
	}
	if _, ok := reg.Lookup("WGPUProc"); ok {
		t.Error("function pointer without the Callback suffix was registered")
	}
}

func TestCallbacksNonVoidReturn(t *testing.T) {
	src := `typedef WGPUBool (*WGPUFilterCallback)(uint32_t value, void * userdata);
`
	reg := testRegistry()
	if err := Callbacks(src, reg); err != nil {
		t.Fatalf("Callbacks() error: %v", err)
	}
	cb := reg.Get("WGPUFilterCallback").(*ir.CallbackDescriptor)
	if cb.Return.Type.Name != "WGPUBool" {
		t.Errorf("Return type = %q, want WGPUBool", cb.Return.Type.Name)
	}
}
