// Package models holds the flattened component table the exporter builds
// from a scene and the document emitters consume.
package models

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/scene3mf/internal/scene"
)

// ComponentKind distinguishes the two kinds of exported objects.
type ComponentKind int

const (
	// KindMesh is a component that owns vertices and triangles.
	KindMesh ComponentKind = iota
	// KindAssembly is a component defined entirely by references to
	// other components with relative transforms.
	KindAssembly
)

func (k ComponentKind) String() string {
	if k == KindAssembly {
		return "assembly"
	}
	return "mesh"
}

// SubComponent is one child reference inside an assembly. Transform maps
// the child's local space into the assembly's local space.
type SubComponent struct {
	ObjectID  int
	Transform mgl64.Mat4
}

// Component is the unit of exported geometry or grouping. IDs form a
// contiguous 1-based sequence; an assembly only ever references
// components with smaller ids, so the table can be emitted as a forward
// list.
type Component struct {
	ID   int
	Kind ComponentKind
	Name string
	UUID string

	// Mesh data, local space. Empty for assemblies.
	Vertices  []mgl64.Vec3
	Triangles [][3]int
	Material  *Material

	// Assembly data. Empty for meshes.
	SubComponents []SubComponent
}

// Material is one entry of the shared extruder table. ID is 1-based and
// doubles as the extruder number.
type Material struct {
	ID    int
	Name  string
	Color scene.RGB
}

// BuildItem is one top-level placement on the print bed.
type BuildItem struct {
	ObjectID  int
	Transform mgl64.Mat4
	UUID      string
}

// Table is the finished output of hierarchy composition: everything the
// document emitters need.
type Table struct {
	Components []*Component
	Materials  []*Material
	Items      []*BuildItem
}

// Component returns the component with the given id, or nil.
func (t *Table) Component(id int) *Component {
	if id < 1 || id > len(t.Components) {
		return nil
	}
	return t.Components[id-1]
}
