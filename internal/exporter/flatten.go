package exporter

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/scene3mf/internal/models"
	"github.com/philipparndt/scene3mf/internal/scene"
)

// defaultColor is used for meshes that carry no material or no color.
var defaultColor = scene.RGB{R: 0x80, G: 0x80, B: 0x80}

// flattenMesh converts a mesh node into a mesh component in the node's
// local space. The node's own placement is never baked into the
// vertices; it lives on whatever references the component.
//
// Vertices are deduplicated by exact coordinate equality using a
// full-precision string key. No epsilon: two coordinates that differ
// only by rounding stay distinct, which keeps output topology and ids
// stable across exports of the same scene.
func flattenMesh(m *scene.Mesh, materials *materialTable) *models.Component {
	comp := &models.Component{
		Kind: models.KindMesh,
		Name: m.Name,
	}

	index := make(map[string]int)
	addVertex := func(p mgl64.Vec3) int {
		key := vertexKey(p)
		if i, ok := index[key]; ok {
			return i
		}
		i := len(comp.Vertices)
		index[key] = i
		comp.Vertices = append(comp.Vertices, p)
		return i
	}

	position := func(i uint32) mgl64.Vec3 {
		return mgl64.Vec3{
			m.Positions[3*i],
			m.Positions[3*i+1],
			m.Positions[3*i+2],
		}
	}

	if len(m.Indices) > 0 {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			comp.Triangles = append(comp.Triangles, [3]int{
				addVertex(position(m.Indices[i])),
				addVertex(position(m.Indices[i+1])),
				addVertex(position(m.Indices[i+2])),
			})
		}
	} else {
		// No index buffer: every three consecutive positions are one
		// triangle.
		count := uint32(len(m.Positions) / 3)
		for i := uint32(0); i+2 < count; i += 3 {
			comp.Triangles = append(comp.Triangles, [3]int{
				addVertex(position(i)),
				addVertex(position(i + 1)),
				addVertex(position(i + 2)),
			})
		}
	}

	color := defaultColor
	name := ""
	if m.Material != nil {
		name = m.Material.Name
		if m.Material.Color != nil {
			color = *m.Material.Color
		}
	}
	comp.Material = materials.resolve(color, name)

	return comp
}

// vertexKey builds the exact-coordinate dedup key "x,y,z" at full
// floating precision.
func vertexKey(p mgl64.Vec3) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatFloat(p.X(), 'g', -1, 64))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(p.Y(), 'g', -1, 64))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(p.Z(), 'g', -1, 64))
	return sb.String()
}
