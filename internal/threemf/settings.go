package threemf

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/scene3mf/internal/geometry"
	"github.com/philipparndt/scene3mf/internal/models"
)

// identityMatrix16 is the 4x4 identity in the row-major 16-number form
// the settings parser uses for part matrices.
const identityMatrix16 = "1 0 0 0 0 1 0 0 0 0 1 0 0 0 0 1"

// BuildModelSettings emits Metadata/model_settings.config: per build
// item, one object entry whose parts are the mesh leaves of the
// referenced component tree, one model instance on the single plate, and
// one assemble item.
func BuildModelSettings(t *models.Table, centering mgl64.Vec3) (string, error) {
	settings := ModelSettings{
		Plate: Plate{
			Metadata: []SettingsMetadata{
				{Key: "plater_id", Value: "1"},
				{Key: "plater_name", Value: ""},
				{Key: "locked", Value: "false"},
			},
		},
	}

	partID := 1
	for _, item := range t.Items {
		comp := t.Component(item.ObjectID)
		if comp == nil {
			continue
		}

		var parts []Part
		for _, leaf := range meshLeaves(t, comp) {
			extruder := 1
			if leaf.Material != nil {
				extruder = leaf.Material.ID
			}
			parts = append(parts, Part{
				ID:      partID,
				Subtype: "normal_part",
				Metadata: []SettingsMetadata{
					{Key: "name", Value: leaf.Name},
					{Key: "matrix", Value: identityMatrix16},
					{Key: "extruder", Value: strconv.Itoa(extruder)},
				},
				MeshStat: MeshStat{FaceCount: len(leaf.Triangles)},
			})
			partID++
		}

		settings.Objects = append(settings.Objects, SettingsObject{
			ID: comp.ID,
			Metadata: []SettingsMetadata{
				{Key: "name", Value: comp.Name},
				{Key: "extruder", Value: "1"},
			},
			Parts: parts,
		})

		settings.Plate.ModelInstances = append(settings.Plate.ModelInstances, ModelInstance{
			Metadata: []SettingsMetadata{
				{Key: "object_id", Value: strconv.Itoa(comp.ID)},
				{Key: "instance_id", Value: "0"},
				{Key: "identify_id", Value: strconv.Itoa(comp.ID)},
			},
		})

		settings.Assemble.Items = append(settings.Assemble.Items, AssembleItem{
			ObjectID:   comp.ID,
			InstanceID: 0,
			Transform:  geometry.Format3MF(geometry.Translated(item.Transform, centering)),
			Offset:     "0 0 0",
		})
	}

	data, err := xml.MarshalIndent(settings, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshaling settings XML: %w", err)
	}

	return xml.Header + string(data), nil
}

// meshLeaves flattens a component tree down to its mesh components, in
// depth-first sub-component order.
func meshLeaves(t *models.Table, comp *models.Component) []*models.Component {
	if comp == nil {
		return nil
	}
	if comp.Kind == models.KindMesh {
		return []*models.Component{comp}
	}
	var leaves []*models.Component
	for _, sub := range comp.SubComponents {
		leaves = append(leaves, meshLeaves(t, t.Component(sub.ObjectID))...)
	}
	return leaves
}
