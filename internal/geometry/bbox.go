package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BoundingBox represents a 3D axis-aligned bounding box.
type BoundingBox struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// NewBoundingBox returns an empty box that any Extend call will replace.
func NewBoundingBox() *BoundingBox {
	return &BoundingBox{
		MinX: math.Inf(1), MinY: math.Inf(1), MinZ: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1), MaxZ: math.Inf(-1),
	}
}

// IsEmpty reports whether the box has never been extended.
func (b *BoundingBox) IsEmpty() bool {
	return b.MinX > b.MaxX
}

// Extend grows the box to contain the point.
func (b *BoundingBox) Extend(p mgl64.Vec3) {
	b.MinX = math.Min(b.MinX, p.X())
	b.MinY = math.Min(b.MinY, p.Y())
	b.MinZ = math.Min(b.MinZ, p.Z())
	b.MaxX = math.Max(b.MaxX, p.X())
	b.MaxY = math.Max(b.MaxY, p.Y())
	b.MaxZ = math.Max(b.MaxZ, p.Z())
}

// Width returns the width (X dimension) of the bounding box.
func (b *BoundingBox) Width() float64 {
	return b.MaxX - b.MinX
}

// Depth returns the depth (Y dimension) of the bounding box.
func (b *BoundingBox) Depth() float64 {
	return b.MaxY - b.MinY
}

// Height returns the height (Z dimension) of the bounding box.
func (b *BoundingBox) Height() float64 {
	return b.MaxZ - b.MinZ
}

// Center returns the center point of the bounding box.
func (b *BoundingBox) Center() mgl64.Vec3 {
	return mgl64.Vec3{
		(b.MinX + b.MaxX) / 2,
		(b.MinY + b.MaxY) / 2,
		(b.MinZ + b.MaxZ) / 2,
	}
}
