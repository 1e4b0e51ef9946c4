// Package config holds the printer and filament configuration an export
// is parameterized with.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Compression modes for the generated package.
const (
	CompressionNone     = "none"
	CompressionStandard = "standard"
)

// Filament describes the filament defaults written to the project
// settings for every extruder slot.
type Filament struct {
	Type     string  `yaml:"type"`
	Diameter float64 `yaml:"diameter"`
}

// Process carries the static print-process parameters passed through
// verbatim into the project settings.
type Process struct {
	LayerHeight         float64 `yaml:"layer_height"`
	WallLoops           int     `yaml:"wall_loops"`
	SparseInfillDensity int     `yaml:"sparse_infill_density"` // percent
	SparseInfillPattern string  `yaml:"sparse_infill_pattern"`
	EnableSupport       bool    `yaml:"enable_support"`
}

// Config is the full export configuration. Zero values are filled from
// Default by ApplyDefaults, so a partial YAML file is enough.
type Config struct {
	PrinterName       string            `yaml:"printer_name"`
	PrinterSettingsID string            `yaml:"printer_settings_id"`
	PrintSettingsID   string            `yaml:"print_settings_id"`
	Filament          Filament          `yaml:"filament"`
	PrintableWidth    float64           `yaml:"printable_width"`
	PrintableDepth    float64           `yaml:"printable_depth"`
	PrintableHeight   float64           `yaml:"printable_height"`
	PrintableArea     []string          `yaml:"printable_area"`
	Process           Process           `yaml:"process"`
	Compression       string            `yaml:"compression"`
	Metadata          map[string]string `yaml:"metadata"`
}

// Default returns the built-in configuration, targeting a Bambu Lab A1
// mini profile.
func Default() Config {
	cfg := Config{
		PrinterName:       "Bambu Lab A1 mini 0.4 nozzle",
		PrinterSettingsID: "Bambu Lab A1 mini 0.4 nozzle",
		PrintSettingsID:   "0.20mm Standard @BBL A1M",
		Filament: Filament{
			Type:     "PLA",
			Diameter: 1.75,
		},
		PrintableWidth:  180,
		PrintableDepth:  180,
		PrintableHeight: 180,
		Process: Process{
			LayerHeight:         0.2,
			WallLoops:           2,
			SparseInfillDensity: 15,
			SparseInfillPattern: "grid",
		},
		Compression: CompressionStandard,
	}
	cfg.PrintableArea = cornersFor(cfg.PrintableWidth, cfg.PrintableDepth)
	return cfg
}

// cornersFor derives the rectangular printable area corners from the
// bed footprint.
func cornersFor(width, depth float64) []string {
	return []string{
		"0x0",
		fmt.Sprintf("%gx0", width),
		fmt.Sprintf("%gx%g", width, depth),
		fmt.Sprintf("0x%g", depth),
	}
}

// Load reads a YAML configuration file merged over the defaults.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults fills unset fields from Default and derives the printable
// area corners from the bed footprint when they were not given.
func (c *Config) ApplyDefaults() {
	def := Default()

	if c.PrinterName == "" {
		c.PrinterName = def.PrinterName
	}
	if c.PrinterSettingsID == "" {
		c.PrinterSettingsID = def.PrinterSettingsID
	}
	if c.PrintSettingsID == "" {
		c.PrintSettingsID = def.PrintSettingsID
	}
	if c.Filament.Type == "" {
		c.Filament.Type = def.Filament.Type
	}
	if c.Filament.Diameter == 0 {
		c.Filament.Diameter = def.Filament.Diameter
	}
	if c.PrintableWidth == 0 {
		c.PrintableWidth = def.PrintableWidth
	}
	if c.PrintableDepth == 0 {
		c.PrintableDepth = def.PrintableDepth
	}
	if c.PrintableHeight == 0 {
		c.PrintableHeight = def.PrintableHeight
	}
	if c.Process.LayerHeight == 0 {
		c.Process.LayerHeight = def.Process.LayerHeight
	}
	if c.Process.WallLoops == 0 {
		c.Process.WallLoops = def.Process.WallLoops
	}
	if c.Process.SparseInfillDensity == 0 {
		c.Process.SparseInfillDensity = def.Process.SparseInfillDensity
	}
	if c.Process.SparseInfillPattern == "" {
		c.Process.SparseInfillPattern = def.Process.SparseInfillPattern
	}
	if c.Compression == "" {
		c.Compression = def.Compression
	}
	if len(c.PrintableArea) == 0 {
		c.PrintableArea = cornersFor(c.PrintableWidth, c.PrintableDepth)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.PrintableWidth <= 0 || c.PrintableDepth <= 0 || c.PrintableHeight <= 0 {
		return fmt.Errorf("printable volume must be positive, got %gx%gx%g",
			c.PrintableWidth, c.PrintableDepth, c.PrintableHeight)
	}

	if c.Compression != CompressionNone && c.Compression != CompressionStandard {
		return fmt.Errorf("compression must be %q or %q, got %q",
			CompressionNone, CompressionStandard, c.Compression)
	}

	if len(c.PrintableArea) != 4 {
		return fmt.Errorf("printable_area must have 4 corners, got %d", len(c.PrintableArea))
	}

	if c.Filament.Diameter <= 0 {
		return fmt.Errorf("filament diameter must be positive, got %g", c.Filament.Diameter)
	}

	return nil
}
