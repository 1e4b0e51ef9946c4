package threemf

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/philipparndt/scene3mf/internal/config"
	"github.com/philipparndt/scene3mf/internal/models"
)

// projectSettings mirrors the flat key/value structure of the slicer's
// Metadata/project_settings.config. All values are strings or string
// arrays; the filament arrays carry one slot per material in extruder
// order.
type projectSettings struct {
	FilamentColour      []string `json:"filament_colour"`
	FilamentDiameter    []string `json:"filament_diameter"`
	FilamentType        []string `json:"filament_type"`
	LayerHeight         string   `json:"layer_height"`
	WallLoops           string   `json:"wall_loops"`
	SparseInfillDensity string   `json:"sparse_infill_density"`
	SparseInfillPattern string   `json:"sparse_infill_pattern"`
	EnableSupport       string   `json:"enable_support"`
	PrintableArea       []string `json:"printable_area"`
	PrintableHeight     string   `json:"printable_height"`
	PrinterName         string   `json:"printer_name"`
	PrinterSettingsID   string   `json:"printer_settings_id"`
	PrintSettingsID     string   `json:"print_settings_id"`
	Version             string   `json:"version"`
}

// BuildProjectSettings emits Metadata/project_settings.config. The
// material list must already be padded to at least two entries; the
// settings parser rejects shorter filament arrays.
func BuildProjectSettings(materials []*models.Material, cfg config.Config) (string, error) {
	if len(materials) < 2 {
		return "", fmt.Errorf("project settings require at least 2 materials, got %d", len(materials))
	}

	settings := projectSettings{
		LayerHeight:         formatFloat(cfg.Process.LayerHeight),
		WallLoops:           strconv.Itoa(cfg.Process.WallLoops),
		SparseInfillDensity: fmt.Sprintf("%d%%", cfg.Process.SparseInfillDensity),
		SparseInfillPattern: cfg.Process.SparseInfillPattern,
		EnableSupport:       boolFlag(cfg.Process.EnableSupport),
		PrintableArea:       cfg.PrintableArea,
		PrintableHeight:     formatFloat(cfg.PrintableHeight),
		PrinterName:         cfg.PrinterName,
		PrinterSettingsID:   cfg.PrinterSettingsID,
		PrintSettingsID:     cfg.PrintSettingsID,
		Version:             "1.0.0",
	}

	for _, m := range materials {
		settings.FilamentColour = append(settings.FilamentColour, m.Color.Hex())
		settings.FilamentDiameter = append(settings.FilamentDiameter, formatFloat(cfg.Filament.Diameter))
		settings.FilamentType = append(settings.FilamentType, cfg.Filament.Type)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshaling project settings: %w", err)
	}

	return string(data), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func boolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
