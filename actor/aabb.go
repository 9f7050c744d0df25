package actor

import "github.com/go-gl/mathgl/mgl64"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB builds the box centered on center with the given full size
func NewAABB(center, size mgl64.Vec3) AABB {
	half := size.Mul(0.5)
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// ContainsPoint checks if a point is inside the AABB, boundary included
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs share volume. Touching faces do not count.
func (a AABB) Overlaps(other AABB) bool {
	return a.OverlapsXZ(other) &&
		a.Min.Y() < other.Max.Y() && a.Max.Y() > other.Min.Y()
}

// OverlapsXZ checks if the footprints of two AABBs overlap on the floor plane.
// Intervals are open: boxes that only touch along an edge are not overlapping.
func (a AABB) OverlapsXZ(other AABB) bool {
	return a.Min.X() < other.Max.X() && a.Max.X() > other.Min.X() &&
		a.Min.Z() < other.Max.Z() && a.Max.Z() > other.Min.Z()
}

// Translate returns the AABB moved by delta
func (a AABB) Translate(delta mgl64.Vec3) AABB {
	return AABB{Min: a.Min.Add(delta), Max: a.Max.Add(delta)}
}

// Footprint returns the AABB moved so its center sits at (x, z) on the floor
// plane. The vertical extent is left untouched.
func (a AABB) Footprint(x, z float64) AABB {
	center := a.Center()
	return a.Translate(mgl64.Vec3{x - center.X(), 0, z - center.Z()})
}

func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) Size() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}
