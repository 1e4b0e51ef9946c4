package geometry

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFormat3MFIdentity(t *testing.T) {
	result := Format3MF(mgl64.Ident4())
	expected := "1.00000 0.00000 0.00000 0.00000 1.00000 0.00000 0.00000 0.00000 1.00000 0.00000 0.00000 0.00000"

	if result != expected {
		t.Errorf("Format3MF(identity) = %v, want %v", result, expected)
	}
}

func TestFormat3MFTranslation(t *testing.T) {
	result := Format3MF(mgl64.Translate3D(10.5, 20.75, 5.25))
	parts := strings.Fields(result)

	if len(parts) != 12 {
		t.Fatalf("expected 12 values, got %d", len(parts))
	}

	if parts[9] != "10.50000" || parts[10] != "20.75000" || parts[11] != "5.25000" {
		t.Errorf("translation part is incorrect: %v", result)
	}
}

func TestFormat3MFRowMajorLinearPart(t *testing.T) {
	// A 90 degree Z rotation has a distinct off-diagonal pattern that
	// verifies row-major ordering of the linear part.
	result := Format3MF(mgl64.HomogRotate3DZ(math.Pi / 2))
	parts := strings.Fields(result)

	if len(parts) != 12 {
		t.Fatalf("expected 12 values, got %d", len(parts))
	}

	// Row 0 is (cos -sin 0) = (0 -1 0), row 1 is (sin cos 0) = (1 0 0).
	if parts[1] != "-1.00000" {
		t.Errorf("m12 = %v, want -1.00000 (full result: %v)", parts[1], result)
	}
	if parts[3] != "1.00000" {
		t.Errorf("m21 = %v, want 1.00000 (full result: %v)", parts[3], result)
	}
}

func TestRelative(t *testing.T) {
	parent := mgl64.Translate3D(10, 0, 0)
	child := mgl64.Translate3D(15, 5, 0)

	rel := Relative(parent, child)
	p := TransformPoint(rel, mgl64.Vec3{0, 0, 0})

	want := mgl64.Vec3{5, 5, 0}
	if !vecNear(p, want) {
		t.Errorf("Relative() maps origin to %v, want %v", p, want)
	}
}

func TestRelativeRoundTrip(t *testing.T) {
	parent := mgl64.Translate3D(3, -2, 1).Mul4(mgl64.HomogRotate3DZ(0.7))
	child := parent.Mul4(mgl64.Translate3D(1, 2, 3))

	// parent * relative must reproduce the child world transform.
	back := parent.Mul4(Relative(parent, child))
	for i := 0; i < 16; i++ {
		if math.Abs(back[i]-child[i]) > 1e-9 {
			t.Fatalf("parent*relative != child: %v vs %v", back, child)
		}
	}
}

func TestTransformPoint(t *testing.T) {
	m := mgl64.Translate3D(1, 2, 3)
	p := TransformPoint(m, mgl64.Vec3{10, 20, 30})

	want := mgl64.Vec3{11, 22, 33}
	if !vecNear(p, want) {
		t.Errorf("TransformPoint() = %v, want %v", p, want)
	}
}

func TestTranslated(t *testing.T) {
	m := mgl64.Translate3D(1, 1, 1)
	out := Translated(m, mgl64.Vec3{10, 20, 30})

	if out.At(0, 3) != 11 || out.At(1, 3) != 21 || out.At(2, 3) != 31 {
		t.Errorf("Translated() translation = (%v %v %v), want (11 21 31)",
			out.At(0, 3), out.At(1, 3), out.At(2, 3))
	}

	// Linear part untouched
	if out.At(0, 0) != 1 || out.At(1, 1) != 1 || out.At(2, 2) != 1 {
		t.Errorf("Translated() changed the linear part: %v", out)
	}

	// Input not mutated
	if m.At(0, 3) != 1 {
		t.Errorf("Translated() mutated its input")
	}
}

func vecNear(a, b mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}
