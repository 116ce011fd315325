package wgpugen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gfxkit/wgpugen/ir"
	"github.com/gfxkit/wgpugen/python"
	"github.com/gfxkit/wgpugen/scan"
	"github.com/gfxkit/wgpugen/sink"
	"github.com/gfxkit/wgpugen/specdoc"
)

// Result reports what a generation run produced.
type Result struct {
	// Files maps output paths to byte counts.
	Files map[string]int

	// UnknownTypes lists distinct type names that never resolved.
	// Non-empty is a degradation, not a failure.
	UnknownTypes []string
}

// Generate runs the full pipeline and writes output under cfg.OutDir.
func Generate(cfg *Config, logger *slog.Logger) (*Result, error) {
	return GenerateTo(context.Background(), cfg, sink.NewFilesystemSink(cfg.OutDir), logger)
}

// GenerateTo runs the full pipeline into an arbitrary sink.
func GenerateTo(ctx context.Context, cfg *Config, out sink.OutputSink, logger *slog.Logger) (*Result, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	var parts []string
	for _, path := range cfg.Headers {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		parts = append(parts, string(data))
	}

	reg, err := Build(strings.Join(parts, "\n"), logger)
	if err != nil {
		return nil, err
	}

	if cfg.SpecDoc != "" {
		doc, err := os.ReadFile(cfg.SpecDoc)
		if err != nil {
			logger.Warn("spec document unreadable, defaults skipped", "path", cfg.SpecDoc, "err", err)
		} else {
			Enrich(reg, specdoc.Parse(string(doc)))
		}
	}

	src, err := python.Generate(reg, python.Config{
		LibName:     cfg.LibName,
		Frontmatter: cfg.Frontmatter,
	})
	if err != nil {
		return nil, fmt.Errorf("emission failed: %w", err)
	}
	if err := out.WriteFile(ctx, cfg.OutFile, src); err != nil {
		return nil, err
	}

	return &Result{
		Files:        map[string]int{cfg.OutFile: len(src)},
		UnknownTypes: reg.UnknownNames(),
	}, nil
}

// Build parses raw header text into a fully resolved registry.
// Extractors run in a fixed dependency order: enums and bitflags
// before opaque handles before callbacks before structs before
// exported functions, since each later kind references the earlier
// ones. The order lives here in the driver, not inside extractors.
func Build(headerText string, logger *slog.Logger) (*ir.Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	text, err := scan.Cleanup(headerText)
	if err != nil {
		return nil, fmt.Errorf("cleanup failed: %w", err)
	}

	reg := ir.NewRegistry(logger)
	passes := []struct {
		name string
		run  func(string, *ir.Registry) error
	}{
		{"enums", scan.Enums},
		{"bitflags", scan.Flags},
		{"opaque handles", scan.Opaques},
		{"callbacks", scan.Callbacks},
		{"structs", scan.Structs},
		{"functions", scan.Functions},
	}
	for _, p := range passes {
		if err := p.run(text, reg); err != nil {
			return nil, fmt.Errorf("extracting %s: %w", p.name, err)
		}
	}

	reg.Resolve()

	// Every opaque handle needs its refcount pair before its lifecycle
	// contract can be emitted.
	for _, t := range reg.Types() {
		if d, ok := t.(*ir.OpaqueDescriptor); ok {
			if err := d.ValidateLifecycle(); err != nil {
				return nil, err
			}
		}
	}
	return reg, nil
}

// Enrich attaches spec-document defaults to struct field units.
func Enrich(reg *ir.Registry, defaults specdoc.Defaults) {
	for _, t := range reg.Types() {
		d, ok := t.(*ir.StructDescriptor)
		if !ok {
			continue
		}
		for _, u := range d.Units {
			if v, ok := defaults.Lookup(d.Short, u.UnitName()); ok {
				if d.Defaults == nil {
					d.Defaults = map[string]string{}
				}
				d.Defaults[u.UnitName()] = v
			}
		}
	}
}
