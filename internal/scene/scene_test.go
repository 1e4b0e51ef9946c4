package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestUpdateWorldMatrices(t *testing.T) {
	root := NewGroup("root")
	root.Matrix = mgl64.Translate3D(10, 0, 0)

	child := NewGroup("child")
	child.Matrix = mgl64.Translate3D(0, 5, 0)
	root.AddChild(child)

	leaf := NewMesh("leaf")
	leaf.Matrix = mgl64.Translate3D(0, 0, 2)
	child.AddChild(leaf)

	UpdateWorldMatrices(root)

	want := mgl64.Vec3{10, 5, 2}
	got := mgl64.Vec3{leaf.World.At(0, 3), leaf.World.At(1, 3), leaf.World.At(2, 3)}
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("leaf world translation = %v, want %v", got, want)
			break
		}
	}
}

func TestUpdateWorldMatricesIdentityRoot(t *testing.T) {
	root := NewGroup("root")
	mesh := NewMesh("mesh")
	root.AddChild(mesh)

	UpdateWorldMatrices(root)

	if mesh.World != mgl64.Ident4() {
		t.Errorf("mesh world = %v, want identity", mesh.World)
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name      string
		positions int // number of xyz triples
		indices   []uint32
		want      int
	}{
		{"indexed", 4, []uint32{0, 1, 2, 0, 2, 3}, 2},
		{"non-indexed", 6, nil, 2},
		{"empty", 0, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMesh("m")
			m.Positions = make([]float64, tt.positions*3)
			m.Indices = tt.indices
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		color RGB
		want  string
	}{
		{RGB{255, 0, 0}, "#FF0000"},
		{RGB{0x80, 0x80, 0x80}, "#808080"},
		{RGB{0, 0, 0}, "#000000"},
		{RGB{255, 255, 255}, "#FFFFFF"},
		{RGB{0x12, 0xAB, 0x03}, "#12AB03"},
	}

	for _, tt := range tests {
		if got := tt.color.Hex(); got != tt.want {
			t.Errorf("Hex(%v) = %s, want %s", tt.color, got, tt.want)
		}
	}
}
