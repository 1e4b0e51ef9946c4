package exporter

import (
	"fmt"

	"github.com/philipparndt/scene3mf/internal/models"
	"github.com/philipparndt/scene3mf/internal/scene"
)

// White pads the material table: the slicer's settings parser rejects
// projects with fewer than two filament slots.
var white = scene.RGB{R: 0xFF, G: 0xFF, B: 0xFF}

// materialTable deduplicates colors into the shared extruder table.
// Entries are append-only; the first mesh to introduce a color names it.
type materialTable struct {
	entries []*models.Material
}

// resolve returns the existing material with exactly this color, or
// appends a new one. Colors compare channel-wise.
func (t *materialTable) resolve(color scene.RGB, name string) *models.Material {
	for _, m := range t.entries {
		if m.Color == color {
			return m
		}
	}

	if name == "" {
		name = fmt.Sprintf("Material %d", len(t.entries)+1)
	}

	m := &models.Material{
		ID:    len(t.entries) + 1,
		Name:  name,
		Color: color,
	}
	t.entries = append(t.entries, m)
	return m
}

// padToMinimum appends white filler materials until the table has at
// least two entries.
func (t *materialTable) padToMinimum() {
	for len(t.entries) < 2 {
		t.entries = append(t.entries, &models.Material{
			ID:    len(t.entries) + 1,
			Name:  fmt.Sprintf("Material %d", len(t.entries)+1),
			Color: white,
		})
	}
}
