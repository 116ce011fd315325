package ir

import (
	"errors"
	"strings"
	"testing"
)

func TestAttachMethodClaimsLifecycle(t *testing.T) {
	d := &OpaqueDescriptor{Name: "WGPUBuffer", Short: "Buffer", ImplName: "WGPUBufferImpl"}

	ref := &FunctionDescriptor{Name: "wgpuBufferReference", MethodName: "reference"}
	rel := &FunctionDescriptor{Name: "wgpuBufferRelease", MethodName: "release"}
	other := &FunctionDescriptor{Name: "wgpuBufferDestroy", MethodName: "destroy"}
	d.AttachMethod(ref)
	d.AttachMethod(rel)
	d.AttachMethod(other)

	if d.Reference != ref {
		t.Error("reference function not claimed")
	}
	if d.Release != rel {
		t.Error("release function not claimed")
	}
	if len(d.Methods) != 3 {
		t.Errorf("Methods len = %d, want 3", len(d.Methods))
	}
	if err := d.ValidateLifecycle(); err != nil {
		t.Errorf("ValidateLifecycle() = %v, want nil", err)
	}
}

func TestAttachMethodAddRefSpelling(t *testing.T) {
	// Newer headers spell the acquire half addRef instead of reference.
	d := &OpaqueDescriptor{Name: "WGPUQueue", Short: "Queue"}
	f := &FunctionDescriptor{Name: "wgpuQueueAddRef", MethodName: "addRef"}
	d.AttachMethod(f)
	if d.Reference != f {
		t.Error("addRef spelling not claimed as the reference function")
	}
}

func TestValidateLifecycleMissing(t *testing.T) {
	tests := []struct {
		name    string
		attach  []string
		missing string
	}{
		{"no reference", []string{"release"}, "reference"},
		{"no release", []string{"reference"}, "release"},
		{"neither", nil, "reference"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &OpaqueDescriptor{Name: "WGPUTexture", Short: "Texture"}
			for _, m := range tt.attach {
				d.AttachMethod(&FunctionDescriptor{MethodName: m})
			}
			err := d.ValidateLifecycle()
			if err == nil {
				t.Fatal("ValidateLifecycle() = nil, want error")
			}
			var lerr *MissingLifecycleError
			if !errors.As(err, &lerr) {
				t.Fatalf("error type = %T, want *MissingLifecycleError", err)
			}
			if lerr.Handle != "WGPUTexture" || lerr.Missing != tt.missing {
				t.Errorf("error = %+v, want handle WGPUTexture missing %s", lerr, tt.missing)
			}
			if !strings.Contains(err.Error(), "WGPUTexture") {
				t.Errorf("error message %q does not name the handle", err.Error())
			}
		})
	}
}
