package space

import (
	"math"

	"github.com/minkowski-home/design-your-space/actor"
)

// SupportResolver finds the highest surface a footprint would rest on.
// The floor (y = 0) is always a candidate.
//
// Two policies exist and the caller picks one explicitly:
//   - RestingHeight, for drags: the moving footprint is tested against every
//     object outside the excluded set, whatever its current height.
//   - GroundHeight, for gravity: only surfaces at or below the falling
//     object's bottom (plus GroundSnapEpsilon) can hold it, so an object is
//     never lifted by something it is passing through from below.
type SupportResolver struct {
	objects []*actor.PlacedObject
	grid    *SpatialGrid
	epsilon float64
}

// NewSupportResolver indexes objects at their current positions.
// The resolver must be rebuilt after any object moves.
func NewSupportResolver(objects []*actor.PlacedObject, grid *SpatialGrid, epsilon float64) *SupportResolver {
	if grid != nil {
		grid.Build(objects)
	}
	return &SupportResolver{
		objects: objects,
		grid:    grid,
		epsilon: epsilon,
	}
}

// candidates returns the objects that may overlap footprint, ordered by handle
func (s *SupportResolver) candidates(footprint actor.AABB) []*actor.PlacedObject {
	if s.grid == nil {
		return s.objects
	}

	handles := s.grid.Query(footprint)
	result := make([]*actor.PlacedObject, 0, len(handles))
	for _, handle := range handles {
		result = append(result, s.objects[handle])
	}
	return result
}

// RestingHeight returns the height footprint would rest at: the highest top
// among the non-excluded objects it overlaps on X/Z, or 0 for the floor.
// The object being moved must be part of excluded.
func (s *SupportResolver) RestingHeight(footprint actor.AABB, excluded Set) float64 {
	height := 0.0
	for _, target := range s.candidates(footprint) {
		if excluded.Contains(target.Handle) {
			continue
		}
		if footprint.OverlapsXZ(target.AABB()) {
			height = math.Max(height, target.Top())
		}
	}
	return height
}

// GroundHeight returns the height of the highest surface object can fall onto
func (s *SupportResolver) GroundHeight(object *actor.PlacedObject) float64 {
	footprint := object.AABB()
	reach := object.Bottom() + s.epsilon

	height := 0.0
	for _, target := range s.candidates(footprint) {
		if target.Handle == object.Handle {
			continue
		}
		top := target.Top()
		if top > reach {
			continue
		}
		if footprint.OverlapsXZ(target.AABB()) {
			height = math.Max(height, top)
		}
	}
	return height
}
