package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABBFromCenter builds the box spanning center ± halfExtents
func NewAABBFromCenter(center, halfExtents mgl64.Vec3) AABB {
	return AABB{
		Min: center.Sub(halfExtents),
		Max: center.Add(halfExtents),
	}
}

func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) Size() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}

func (a AABB) HalfExtents() mgl64.Vec3 {
	return a.Size().Mul(0.5)
}

// Translate returns the box moved by offset
func (a AABB) Translate(offset mgl64.Vec3) AABB {
	return AABB{Min: a.Min.Add(offset), Max: a.Max.Add(offset)}
}

// Union returns the smallest box containing both a and other
func (a AABB) Union(other AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{math.Min(a.Min.X(), other.Min.X()), math.Min(a.Min.Y(), other.Min.Y()), math.Min(a.Min.Z(), other.Min.Z())},
		Max: mgl64.Vec3{math.Max(a.Max.X(), other.Max.X()), math.Max(a.Max.Y(), other.Max.Y()), math.Max(a.Max.Z(), other.Max.Z())},
	}
}

// Expand grows the box by margin on every side
func (a AABB) Expand(margin float64) AABB {
	m := mgl64.Vec3{margin, margin, margin}
	return AABB{Min: a.Min.Sub(m), Max: a.Max.Add(m)}
}

// Valid reports whether every coordinate is finite and Min <= Max on each axis
func (a AABB) Valid() bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(a.Min[i]) || math.IsInf(a.Min[i], 0) || math.IsNaN(a.Max[i]) || math.IsInf(a.Max[i], 0) {
			return false
		}
		if a.Min[i] > a.Max[i] {
			return false
		}
	}
	return true
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap, touching faces included
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Intersects is a strict overlap test: the boxes must interpenetrate by more
// than eps on all three axes. Touching faces never intersect.
func (a AABB) Intersects(other AABB, eps float64) bool {
	return a.Min.X() <= other.Max.X()-eps && a.Max.X() >= other.Min.X()+eps &&
		a.Min.Y() <= other.Max.Y()-eps && a.Max.Y() >= other.Min.Y()+eps &&
		a.Min.Z() <= other.Max.Z()-eps && a.Max.Z() >= other.Min.Z()+eps
}

// OverlapsXZ checks the horizontal footprints, excluding touching edges
func (a AABB) OverlapsXZ(other AABB) bool {
	return a.Max.X() > other.Min.X() && a.Min.X() < other.Max.X() &&
		a.Max.Z() > other.Min.Z() && a.Min.Z() < other.Max.Z()
}

// VerticalOverlap is the length shared by both boxes on Y; negative when they are apart
func (a AABB) VerticalOverlap(other AABB) float64 {
	return math.Min(a.Max.Y(), other.Max.Y()) - math.Max(a.Min.Y(), other.Min.Y())
}
