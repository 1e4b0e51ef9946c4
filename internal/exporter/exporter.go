// Package exporter converts a scene graph into a Bambu-Studio-compatible
// 3MF package: it flattens the hierarchy into a component table, lays
// the build out on the bed and emits the package documents.
package exporter

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/philipparndt/scene3mf/internal/config"
	"github.com/philipparndt/scene3mf/internal/logger"
	"github.com/philipparndt/scene3mf/internal/models"
	"github.com/philipparndt/scene3mf/internal/scene"
	"github.com/philipparndt/scene3mf/internal/threemf"
)

// Export converts the scene below root into a 3MF package blob. The
// direct children of root become one build item each; a root that is
// itself a mesh becomes a single build item. Tables are local to one
// call, so concurrent exports never share state.
func Export(root scene.Node, cfg config.Config) ([]byte, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table, err := Compose(root)
	if err != nil {
		return nil, err
	}

	translation := centeringTranslation(table, cfg.PrintableWidth, cfg.PrintableDepth)

	logger.Log.Debug("export composed",
		zap.Int("components", len(table.Components)),
		zap.Int("materials", len(table.Materials)),
		zap.Int("buildItems", len(table.Items)),
		zap.Float64s("centering", translation[:]))

	modelXML, err := threemf.BuildModel(table, translation, cfg)
	if err != nil {
		return nil, fmt.Errorf("error building model document: %w", err)
	}

	settingsXML, err := threemf.BuildModelSettings(table, translation)
	if err != nil {
		return nil, fmt.Errorf("error building model settings: %w", err)
	}

	projectJSON, err := threemf.BuildProjectSettings(table.Materials, cfg)
	if err != nil {
		return nil, fmt.Errorf("error building project settings: %w", err)
	}

	blob, err := threemf.Pack(threemf.Documents{
		Model:           modelXML,
		ModelSettings:   settingsXML,
		ProjectSettings: projectJSON,
	}, cfg.Compression)
	if err != nil {
		return nil, fmt.Errorf("error packaging 3MF: %w", err)
	}

	return blob, nil
}

// Compose flattens the scene below root into the component, material and
// build item tables without emitting any documents. Exposed for callers
// that inspect the flattened model.
func Compose(root scene.Node) (*models.Table, error) {
	scene.UpdateWorldMatrices(root)

	c := newComposer()
	table := &models.Table{}

	if mesh, ok := root.(*scene.Mesh); ok {
		id, ok, err := c.compose(mesh, 0)
		if err != nil {
			return nil, err
		}
		if ok {
			table.Items = append(table.Items, &models.BuildItem{
				ObjectID:  id,
				Transform: mesh.World,
				UUID:      uuid.NewString(),
			})
		}
	} else {
		for _, child := range root.AsNodeBase().Children {
			id, ok, err := c.compose(child, 0)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			table.Items = append(table.Items, &models.BuildItem{
				ObjectID:  id,
				Transform: child.AsNodeBase().World,
				UUID:      uuid.NewString(),
			})
		}
	}

	c.materials.padToMinimum()

	table.Components = c.components
	table.Materials = c.materials.entries
	return table, nil
}
