// Package wgpugen generates a Python binding module from the webgpu.h
// header family. It orchestrates the pipeline: lexical cleanup, the
// declaration extractors in dependency order, registry resolution, and
// emission.
package wgpugen

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for one generation run.
type Config struct {
	// Headers are the input header paths, concatenated in order. The
	// base header must precede the vendor extension header so that
	// extension enums find their base enums.
	Headers []string `yaml:"headers" validate:"required,min=1,dive,required"`

	// OutDir is the directory the wrapper module is written to.
	OutDir string `yaml:"out" validate:"required"`

	// OutFile is the wrapper file name within OutDir.
	OutFile string `yaml:"outFile" validate:"omitempty,endswith=.py"`

	// SpecDoc optionally points at the WebGPU specification document
	// consulted for struct field defaults. Best-effort enrichment.
	SpecDoc string `yaml:"specDoc"`

	// LibName is the native library name the wrapper dlopens.
	LibName string `yaml:"libName"`

	// Frontmatter is inserted verbatim near the top of the wrapper.
	Frontmatter string `yaml:"frontmatter"`
}

func (c *Config) applyDefaults() {
	if c.OutFile == "" {
		c.OutFile = "bindings.py"
	}
	if c.LibName == "" {
		c.LibName = "wgpu_native"
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
