package space

import (
	"github.com/minkowski-home/design-your-space/actor"
)

// Pair is a pair of objects whose boxes share volume
type Pair struct {
	A *actor.PlacedObject
	B *actor.PlacedObject
}

// BroadPhase indexes every object in the grid at its current position
func BroadPhase(spatialGrid *SpatialGrid, objects []*actor.PlacedObject) *SpatialGrid {
	spatialGrid.Build(objects)
	return spatialGrid
}

// Interpenetrations returns the pairs of objects that overlap in 3D.
// Placement keeps the dragged stack above whatever it hovers, but objects
// carried along by a stack are not resolved against their new neighbours, so
// this is the check for a scene that is not clean.
func Interpenetrations(spatialGrid *SpatialGrid, objects []*actor.PlacedObject, workersCount int) []Pair {
	return BroadPhase(spatialGrid, objects).FindPairsParallel(objects, workersCount)
}
