package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/gfxkit/wgpugen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Generate the Python wrapper module."`
	Check   CheckCmd   `cmd:"" help:"Parse and validate the headers without generating files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

type GenCmd struct {
	Headers []string `arg:"" optional:"" help:"Header files, base header first." type:"existingfile"`
	Out     string   `help:"Output directory for the generated module (default \".\")." short:"o"`
	SpecDoc string   `help:"WebGPU spec document consulted for field defaults." name:"spec-doc"`
	Lib     string   `help:"Native library name the wrapper loads."`
	Config  string   `help:"YAML config file; flags override its values." short:"c"`
}

func (c *GenCmd) Run() error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	result, err := wgpugen.Generate(cfg, logger())
	if err != nil {
		return err
	}
	for path, size := range result.Files {
		fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", path, size)
	}
	if n := len(result.UnknownTypes); n > 0 {
		fmt.Fprintf(os.Stderr, "%d unresolved type name(s); see diagnostics above\n", n)
	}
	return nil
}

func (c *GenCmd) config() (*wgpugen.Config, error) {
	cfg := &wgpugen.Config{}
	if c.Config != "" {
		loaded, err := wgpugen.LoadConfig(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if len(c.Headers) > 0 {
		cfg.Headers = c.Headers
	}
	if c.Out != "" {
		cfg.OutDir = c.Out
	}
	if c.SpecDoc != "" {
		cfg.SpecDoc = c.SpecDoc
	}
	if c.Lib != "" {
		cfg.LibName = c.Lib
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	return cfg, nil
}

type CheckCmd struct {
	Headers []string `arg:"" help:"Header files, base header first." type:"existingfile"`
}

func (c *CheckCmd) Run() error {
	var text string
	for _, path := range c.Headers {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		text += string(data) + "\n"
	}
	reg, err := wgpugen.Build(text, logger())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "ok: %d types, %d loose functions, %d unresolved names\n",
		len(reg.Types()), len(reg.Functions()), len(reg.UnknownNames()))
	return nil
}

func logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("wgpugen"),
		kong.Description("Generates Python bindings from the webgpu.h header family."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
