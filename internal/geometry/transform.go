package geometry

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Format3MF encodes an affine matrix in the 12-number 3MF attribute form:
// the 3x3 linear part in row-major order followed by the translation
// vector. Values use fixed 5-decimal formatting; the downstream parser
// relies on that exact shape.
func Format3MF(m mgl64.Mat4) string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%.5f", m.At(row, col))
		}
	}
	fmt.Fprintf(&sb, " %.5f %.5f %.5f", m.At(0, 3), m.At(1, 3), m.At(2, 3))
	return sb.String()
}

// Relative returns the transform mapping a child's local space into its
// parent's local space: inverse(parentWorld) * childWorld.
func Relative(parentWorld, childWorld mgl64.Mat4) mgl64.Mat4 {
	return parentWorld.Inv().Mul4(childWorld)
}

// TransformPoint applies an affine matrix to a point.
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// Translated returns m with t added into its translation column. The
// linear part is untouched.
func Translated(m mgl64.Mat4, t mgl64.Vec3) mgl64.Mat4 {
	out := m
	out.Set(0, 3, m.At(0, 3)+t.X())
	out.Set(1, 3, m.At(1, 3)+t.Y())
	out.Set(2, 3, m.At(2, 3)+t.Z())
	return out
}
