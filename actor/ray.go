package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a world-space picking ray, usually built by the camera from the
// pointer coordinates. Direction does not need to be normalized.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// IntersectAABB returns the distance along the ray to the first hit with box,
// using the slab method. A ray starting inside the box hits at distance 0.
func (r Ray) IntersectAABB(box AABB) (float64, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		origin := r.Origin[axis]
		direction := r.Direction[axis]

		if direction == 0 {
			// Parallel to the slab: either always inside it or never
			if origin < box.Min[axis] || origin > box.Max[axis] {
				return 0, false
			}
			continue
		}

		t1 := (box.Min[axis] - origin) / direction
		t2 := (box.Max[axis] - origin) / direction
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)

		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}

	return tmin * r.Direction.Len(), true
}

// IntersectPlaneY returns the point where the ray crosses the horizontal
// plane at height y. Rays parallel to the plane or pointing away from it miss.
func (r Ray) IntersectPlaneY(y float64) (mgl64.Vec3, bool) {
	if r.Direction.Y() == 0 {
		return mgl64.Vec3{}, false
	}

	t := (y - r.Origin.Y()) / r.Direction.Y()
	if t < 0 {
		return mgl64.Vec3{}, false
	}

	return r.Origin.Add(r.Direction.Mul(t)), true
}
