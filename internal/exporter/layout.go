package exporter

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/scene3mf/internal/geometry"
	"github.com/philipparndt/scene3mf/internal/models"
)

// centeringTranslation computes the single translation that centers the
// combined world-space bounding box of all build items on the bed
// footprint and rests its lowest point on the print surface. It is added
// into the build item transforms at emission time only; component
// geometry and stored transforms stay untouched.
func centeringTranslation(t *models.Table, bedWidth, bedDepth float64) mgl64.Vec3 {
	bbox := geometry.NewBoundingBox()
	for _, item := range t.Items {
		collectWorldPoints(t, t.Component(item.ObjectID), item.Transform, bbox)
	}
	if bbox.IsEmpty() {
		// Empty scene: degenerate box at the origin.
		bbox.Extend(mgl64.Vec3{})
	}

	center := bbox.Center()
	return mgl64.Vec3{
		bedWidth/2 - center.X(),
		bedDepth/2 - center.Y(),
		-bbox.MinZ,
	}
}

// collectWorldPoints extends bbox with every vertex reachable from comp,
// transformed into world space by the accumulated matrix.
func collectWorldPoints(t *models.Table, comp *models.Component, m mgl64.Mat4, bbox *geometry.BoundingBox) {
	if comp == nil {
		return
	}
	if comp.Kind == models.KindMesh {
		for _, v := range comp.Vertices {
			bbox.Extend(geometry.TransformPoint(m, v))
		}
		return
	}
	for _, sub := range comp.SubComponents {
		collectWorldPoints(t, t.Component(sub.ObjectID), m.Mul4(sub.Transform), bbox)
	}
}
