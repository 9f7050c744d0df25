package space

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/minkowski-home/design-your-space/actor"
	"golang.org/x/exp/constraints"
)

// RoomBounds is the square floor every object must stay on.
// The floor plane is y = 0.
type RoomBounds struct {
	HalfExtent float64
}

func NewRoomBounds(halfExtent float64) RoomBounds {
	return RoomBounds{HalfExtent: halfExtent}
}

// ClampXZ returns the closest floor position to (x, z) where a box of the
// given half extents stays inside the room.
// A box wider than the room on one axis is centered on that axis.
func (r RoomBounds) ClampXZ(x, z float64, halfExtents mgl64.Vec3) (float64, float64) {
	return r.clampAxis(x, halfExtents.X()), r.clampAxis(z, halfExtents.Z())
}

func (r RoomBounds) clampAxis(value, halfExtent float64) float64 {
	limit := r.HalfExtent - halfExtent
	if limit < 0 {
		return 0
	}
	return clamp(value, -limit, limit)
}

// Contains reports whether the footprint of box lies inside the room
func (r RoomBounds) Contains(box actor.AABB) bool {
	return box.Min.X() >= -r.HalfExtent && box.Max.X() <= r.HalfExtent &&
		box.Min.Z() >= -r.HalfExtent && box.Max.Z() <= r.HalfExtent
}

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
