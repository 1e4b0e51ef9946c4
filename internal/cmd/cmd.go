// Package cmd implements the command line interface.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/philipparndt/scene3mf/internal/config"
	"github.com/philipparndt/scene3mf/internal/exporter"
	"github.com/philipparndt/scene3mf/internal/inspect"
	"github.com/philipparndt/scene3mf/internal/logger"
	"github.com/philipparndt/scene3mf/internal/scene"
	"github.com/philipparndt/scene3mf/internal/stl"
	"github.com/philipparndt/scene3mf/internal/ui"
	"github.com/philipparndt/scene3mf/version"
)

type CLI struct {
	Verbose bool   `help:"Enable verbose output" short:"v"`
	LogFile string `help:"Write a debug log to this file"`

	Export  *ExportCmd  `cmd:"" help:"Export STL files as a slicer-ready 3MF package"`
	Inspect *InspectCmd `cmd:"" help:"Inspect a generated 3MF package"`
	Version *VersionCmd `cmd:"" help:"Show version information"`
}

type ExportCmd struct {
	Output      string   `help:"Output file path (default: out.3mf)" short:"o"`
	Config      string   `help:"YAML configuration file with printer settings" short:"c"`
	Color       []string `help:"Hex color per input file, in order (e.g. #FF0000)"`
	Group       bool     `help:"Nest all inputs under one group so they print as a single object"`
	Compression string   `help:"Package compression: none or standard" enum:"none,standard," default:""`
	Files       []string `arg:"" help:"STL files to export"`
}

func (c *ExportCmd) Run(cli *CLI) error {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.Compression != "" {
		cfg.Compression = c.Compression
	}

	outputFile := c.Output
	if outputFile == "" {
		outputFile = "out.3mf"
	}

	root, err := c.buildScene()
	if err != nil {
		return err
	}

	ui.PrintInfo(fmt.Sprintf("Exporting %d file(s)...", len(c.Files)))

	blob, err := exporter.Export(root, cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputFile, blob, 0o644); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}

	ui.PrintSuccess("3MF package created!")
	ui.PrintKeyValue("Output file", outputFile)
	ui.PrintKeyValue("Size", fmt.Sprintf("%d bytes", len(blob)))

	if ui.IsVerbose() {
		table, err := exporter.Compose(root)
		if err == nil {
			for _, comp := range table.Components {
				ui.PrintItem(fmt.Sprintf("#%d %s (%s)", comp.ID, comp.Name, comp.Kind))
			}
		}
	}

	return nil
}

// buildScene parses the input files into a scene: one top-level node per
// file, or one group containing all of them when --group is set.
func (c *ExportCmd) buildScene() (scene.Node, error) {
	if len(c.Color) > len(c.Files) {
		return nil, fmt.Errorf("got %d colors for %d files", len(c.Color), len(c.Files))
	}

	parser := stl.NewParser()
	root := scene.NewGroup("Scene")

	parent := &root.NodeBase
	if c.Group {
		group := scene.NewGroup("Combined")
		root.AddChild(group)
		parent = &group.NodeBase
	}

	for i, file := range c.Files {
		mesh, err := parser.Parse(file)
		if err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", file, err)
		}

		if i < len(c.Color) {
			color, err := parseHexColor(c.Color[i])
			if err != nil {
				return nil, fmt.Errorf("invalid color for %s: %w", file, err)
			}
			mesh.Material = &scene.Material{Name: mesh.Name, Color: &color}
		}

		parent.AddChild(mesh)
		if ui.IsVerbose() {
			ui.PrintItem(fmt.Sprintf("%s: %d triangles", mesh.Name, mesh.TriangleCount()))
		}
	}

	return root, nil
}

// parseHexColor parses "#RRGGBB" (the leading '#' is optional).
func parseHexColor(s string) (scene.RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return scene.RGB{}, fmt.Errorf("expected RRGGBB, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return scene.RGB{}, fmt.Errorf("expected RRGGBB, got %q", s)
	}
	return scene.RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

type InspectCmd struct {
	Raw  bool   `help:"Dump the raw model document instead of a summary"`
	File string `arg:"" help:"3MF file to inspect"`
}

func (c *InspectCmd) Run(cli *CLI) error {
	inspector := inspect.NewInspector()
	if c.Raw {
		return inspector.DumpModel(c.File)
	}
	return inspector.Inspect(c.File)
}

type VersionCmd struct{}

func (c *VersionCmd) Run(cli *CLI) error {
	ui.PrintKeyValue("scene3mf", version.Version)
	return nil
}

// Execute parses the command line and runs the selected command.
func Execute() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("scene3mf"),
		kong.Description("Convert 3D scenes into Bambu-Studio-compatible 3MF packages"),
		kong.UsageOnError(),
	)

	ui.SetVerbose(cli.Verbose)
	level := "info"
	if cli.Verbose {
		level = "debug"
	}
	if err := logger.Init(level, cli.LogFile); err != nil {
		ui.PrintError("Failed to initialize logging: " + err.Error())
		os.Exit(1)
	}
	defer func() { _ = logger.Log.Sync() }()

	if err := ctx.Run(cli); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
