package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	v := Version()
	if v == "" {
		t.Fatal("empty version")
	}
	if strings.HasPrefix(v, "devel-") && !strings.Contains(v, "0.1.0") {
		t.Errorf("devel version %q does not carry the embedded base", v)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wgpugen.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenCmdConfig(t *testing.T) {
	path := writeConfig(t, "headers:\n  - headers/webgpu.h\nout: generated/wgpu\n")

	t.Run("config out survives without flag", func(t *testing.T) {
		cmd := &GenCmd{Config: path}
		cfg, err := cmd.config()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.OutDir != "generated/wgpu" {
			t.Errorf("OutDir = %q, want %q", cfg.OutDir, "generated/wgpu")
		}
	})

	t.Run("flag overrides config", func(t *testing.T) {
		cmd := &GenCmd{Config: path, Out: "elsewhere"}
		cfg, err := cmd.config()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.OutDir != "elsewhere" {
			t.Errorf("OutDir = %q, want %q", cfg.OutDir, "elsewhere")
		}
	})

	t.Run("defaults to current directory", func(t *testing.T) {
		cmd := &GenCmd{Headers: []string{"webgpu.h"}}
		cfg, err := cmd.config()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.OutDir != "." {
			t.Errorf("OutDir = %q, want %q", cfg.OutDir, ".")
		}
	})

	t.Run("headers from args override config", func(t *testing.T) {
		cmd := &GenCmd{Config: path, Headers: []string{"a.h", "b.h"}}
		cfg, err := cmd.config()
		if err != nil {
			t.Fatal(err)
		}
		if len(cfg.Headers) != 2 || cfg.Headers[0] != "a.h" {
			t.Errorf("Headers = %v, want [a.h b.h]", cfg.Headers)
		}
	})

	t.Run("bad config path reported", func(t *testing.T) {
		cmd := &GenCmd{Config: filepath.Join(t.TempDir(), "missing.yaml")}
		if _, err := cmd.config(); err == nil {
			t.Fatal("expected error for missing config file")
		}
	})
}
