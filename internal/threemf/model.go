package threemf

import (
	"encoding/xml"
	"fmt"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/philipparndt/scene3mf/internal/config"
	"github.com/philipparndt/scene3mf/internal/geometry"
	"github.com/philipparndt/scene3mf/internal/models"
)

// BuildModel emits the 3D/3dmodel.model document: one object per
// component in id order plus one build item per placement. The centering
// translation is added into each item's translation here and nowhere
// else.
func BuildModel(t *models.Table, centering mgl64.Vec3, cfg config.Config) (string, error) {
	model := Model{
		Xmlns:              NamespaceCore,
		XmlnsBambuStudio:   NamespaceBambuStudio,
		XmlnsP:             NamespaceProduction,
		RequiredExtensions: "p",
		Unit:               "millimeter",
		Lang:               "en-US",
		Metadata:           buildMetadata(cfg),
	}

	for _, comp := range t.Components {
		obj := Object{
			ID:   comp.ID,
			UUID: comp.UUID,
			Name: comp.Name,
			Type: "model",
		}

		if comp.Kind == models.KindAssembly {
			refs := make([]ComponentRef, 0, len(comp.SubComponents))
			for _, sub := range comp.SubComponents {
				child := t.Component(sub.ObjectID)
				refs = append(refs, ComponentRef{
					ObjectID:  sub.ObjectID,
					UUID:      child.UUID,
					Transform: geometry.Format3MF(sub.Transform),
				})
			}
			obj.Components = &Components{Component: refs}
		} else {
			mesh := &Mesh{}
			for _, v := range comp.Vertices {
				mesh.Vertices.Vertex = append(mesh.Vertices.Vertex, Vertex{
					X: fmt.Sprintf("%.5f", v.X()),
					Y: fmt.Sprintf("%.5f", v.Y()),
					Z: fmt.Sprintf("%.5f", v.Z()),
				})
			}
			for _, tri := range comp.Triangles {
				mesh.Triangles.Triangle = append(mesh.Triangles.Triangle, Triangle{
					V1: tri[0], V2: tri[1], V3: tri[2],
				})
			}
			obj.Mesh = mesh
		}

		model.Resources.Objects = append(model.Resources.Objects, obj)
	}

	model.Build.UUID = uuid.NewString()
	for _, item := range t.Items {
		model.Build.Items = append(model.Build.Items, Item{
			ObjectID:  item.ObjectID,
			UUID:      item.UUID,
			Transform: geometry.Format3MF(geometry.Translated(item.Transform, centering)),
			Printable: "1",
		})
	}

	data, err := xml.MarshalIndent(model, "", " ")
	if err != nil {
		return "", fmt.Errorf("error marshaling model XML: %w", err)
	}

	return xml.Header + string(data), nil
}

func buildMetadata(cfg config.Config) []Metadata {
	now := time.Now().Format("2006-01-02")
	metadata := []Metadata{
		{Name: "Application", Value: "scene3mf"},
		{Name: "BambuStudio:3mfVersion", Value: "1"},
		{Name: "CreationDate", Value: now},
		{Name: "ModificationDate", Value: now},
	}

	// Free-form user metadata, in stable key order.
	keys := make([]string, 0, len(cfg.Metadata))
	for k := range cfg.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		metadata = append(metadata, Metadata{Name: k, Value: cfg.Metadata[k]})
	}

	return metadata
}
