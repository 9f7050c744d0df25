package space

import (
	"math"

	"github.com/minkowski-home/design-your-space/actor"
)

// Picker finds the object under a picking ray
type Picker interface {
	Pick(ray actor.Ray, objects []*actor.PlacedObject) (int, bool)
}

// PickerFunc adapts a function to the Picker interface
type PickerFunc func(ray actor.Ray, objects []*actor.PlacedObject) (int, bool)

func (f PickerFunc) Pick(ray actor.Ray, objects []*actor.PlacedObject) (int, bool) {
	return f(ray, objects)
}

// RayPicker returns the closest box hit by the ray; equal distances go to the lowest handle
type RayPicker struct {
	// MaxDistance ignores hits further than this; zero means unlimited
	MaxDistance float64
}

func (p RayPicker) Pick(ray actor.Ray, objects []*actor.PlacedObject) (int, bool) {
	maxDistance := p.MaxDistance
	if maxDistance <= 0 {
		maxDistance = math.Inf(1)
	}

	closest := NoSelection
	closestDistance := maxDistance

	for _, object := range objects {
		distance, hit := ray.IntersectAABB(object.AABB())
		if !hit || distance > closestDistance {
			continue
		}
		if distance == closestDistance && closest != NoSelection {
			continue
		}
		closest = object.Handle
		closestDistance = distance
	}

	return closest, closest != NoSelection
}
