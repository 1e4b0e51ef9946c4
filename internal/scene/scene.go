// Package scene holds the in-memory scene graph consumed by the exporter:
// meshes and nested groups with local and world transforms.
package scene

import "github.com/go-gl/mathgl/mgl64"

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as "#RRGGBB" (uppercase), the form Bambu Studio
// expects in its filament tables.
func (c RGB) Hex() string {
	const digits = "0123456789ABCDEF"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range [3]uint8{c.R, c.G, c.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0xF]
	}
	return string(b)
}

// Material describes the surface color of a mesh. Color may be nil when
// the source provided no color information.
type Material struct {
	Name  string
	Color *RGB
}

// Node is any element of the scene graph. Concrete kinds are Group and
// Mesh; anything else is skipped by the exporter.
type Node interface {
	AsNodeBase() *NodeBase
}

// NodeBase provides the transform and child bookkeeping shared by all
// node kinds. Matrix is the node's transform relative to its parent;
// World is filled in by UpdateWorldMatrices.
type NodeBase struct {
	Name     string
	Matrix   mgl64.Mat4
	World    mgl64.Mat4
	Children []Node
}

// AsNodeBase implements Node.
func (nb *NodeBase) AsNodeBase() *NodeBase { return nb }

// AddChild appends child nodes.
func (nb *NodeBase) AddChild(children ...Node) {
	nb.Children = append(nb.Children, children...)
}

// Group is a pure container node: no geometry of its own.
type Group struct {
	NodeBase
}

// NewGroup creates a named group with an identity transform.
func NewGroup(name string) *Group {
	return &Group{NodeBase: NodeBase{
		Name:   name,
		Matrix: mgl64.Ident4(),
		World:  mgl64.Ident4(),
	}}
}

// Mesh is a triangle mesh node. Positions is a flat x,y,z buffer in the
// mesh's local space. Indices is optional: when nil, every three
// consecutive positions form one triangle.
type Mesh struct {
	NodeBase
	Positions []float64
	Indices   []uint32
	Material  *Material
}

// NewMesh creates a named mesh with an identity transform.
func NewMesh(name string) *Mesh {
	return &Mesh{NodeBase: NodeBase{
		Name:   name,
		Matrix: mgl64.Ident4(),
		World:  mgl64.Ident4(),
	}}
}

// TriangleCount returns the number of triangles the mesh describes.
func (m *Mesh) TriangleCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices) / 3
	}
	return len(m.Positions) / 9
}

// UpdateWorldMatrices recomputes the world transform of root and all of
// its descendants from their local matrices. The exporter runs this pass
// before composing so relative transforms are derived from consistent
// world matrices.
func UpdateWorldMatrices(root Node) {
	updateWorld(root, mgl64.Ident4())
}

func updateWorld(n Node, parent mgl64.Mat4) {
	nb := n.AsNodeBase()
	nb.World = parent.Mul4(nb.Matrix)
	for _, child := range nb.Children {
		updateWorld(child, nb.World)
	}
}
