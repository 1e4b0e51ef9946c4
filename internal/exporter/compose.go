package exporter

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/philipparndt/scene3mf/internal/geometry"
	"github.com/philipparndt/scene3mf/internal/models"
	"github.com/philipparndt/scene3mf/internal/scene"
)

// maxSceneDepth bounds the recursive descent. Scene graphs are expected
// to be acyclic; the cap turns an accidental cycle into an error instead
// of a stack overflow.
const maxSceneDepth = 1024

// composer builds the flat component table from a scene subtree.
// Components are appended depth-first, children before the parent
// assembly that references them, so ids form a contiguous 1-based
// sequence and assemblies only ever point backwards.
type composer struct {
	components []*models.Component
	materials  *materialTable
}

func newComposer() *composer {
	return &composer{materials: &materialTable{}}
}

// append assigns the next id and identity to comp and stores it.
func (c *composer) append(comp *models.Component) int {
	comp.ID = len(c.components) + 1
	comp.UUID = uuid.NewString()
	c.components = append(c.components, comp)
	return comp.ID
}

// compose converts a node and its descendants into components. The
// second return value is false when the node produced nothing: empty
// groups and unrecognized node kinds are skipped silently.
func (c *composer) compose(n scene.Node, depth int) (int, bool, error) {
	if depth > maxSceneDepth {
		return 0, false, fmt.Errorf("scene deeper than %d levels, aborting (cycle?)", maxSceneDepth)
	}

	switch node := n.(type) {
	case *scene.Mesh:
		return c.append(flattenMesh(node, c.materials)), true, nil

	case *scene.Group:
		var subs []models.SubComponent
		for _, child := range node.Children {
			id, ok, err := c.compose(child, depth+1)
			if err != nil {
				return 0, false, err
			}
			if !ok {
				continue
			}
			subs = append(subs, models.SubComponent{
				ObjectID:  id,
				Transform: geometry.Relative(node.World, child.AsNodeBase().World),
			})
		}
		if len(subs) == 0 {
			return 0, false, nil
		}
		return c.append(&models.Component{
			Kind:          models.KindAssembly,
			Name:          node.Name,
			SubComponents: subs,
		}), true, nil

	default:
		return 0, false, nil
	}
}
