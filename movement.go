package space

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/minkowski-home/design-your-space/actor"
)

// MovementController resolves a single drag update
type MovementController struct {
	world *World
}

func NewMovementController(world *World) *MovementController {
	return &MovementController{world: world}
}

// Stack returns the objects that travel with selected.
// In ModeStacking this is the stack rooted at selected, as recorded by the
// last graph rebuild. In ModeGravity the object always moves alone.
func (m *MovementController) Stack(selected int) Set {
	if m.world.Config.Mode == ModeGravity {
		return NewSet(selected)
	}
	return m.world.Graph.Descendants(selected)
}

// MoveTo moves selected toward the floor point requested (X, Z) and returns
// the delta applied to it, or the zero vector when the move was dropped.
//
// The position is clamped so the box stays in the room, then lifted onto the
// highest surface under its footprint. Objects of its own stack are never
// surfaces for it. When the delta is above MoveThreshold on any axis the whole
// stack is translated by it.
//
// requested must be finite: NaN coordinates propagate into the positions.
func (m *MovementController) MoveTo(selected int, requested mgl64.Vec2) mgl64.Vec3 {
	delta, _ := m.moveTo(selected, requested)
	return delta
}

func (m *MovementController) moveTo(selected int, requested mgl64.Vec2) (mgl64.Vec3, Set) {
	object, ok := m.world.Object(selected)
	if !ok {
		return mgl64.Vec3{}, nil
	}

	halfExtents := object.HalfExtents()
	x, z := m.world.Room.ClampXZ(requested.X(), requested.Y(), halfExtents)

	stack := m.Stack(selected)
	footprint := object.AABB().Footprint(x, z)
	targetY := m.world.Resolver().RestingHeight(footprint, stack)

	final := mgl64.Vec3{x, targetY + halfExtents.Y(), z}
	delta := final.Sub(object.Transform.Position)

	if !m.exceedsThreshold(delta) {
		return mgl64.Vec3{}, nil
	}

	translate(m.world.Objects, stack, delta)
	return delta, stack
}

func (m *MovementController) exceedsThreshold(delta mgl64.Vec3) bool {
	threshold := m.world.Config.MoveThreshold
	return math.Abs(delta.X()) > threshold ||
		math.Abs(delta.Y()) > threshold ||
		math.Abs(delta.Z()) > threshold
}

// translate moves every object of stack rigidly by delta
func translate(objects []*actor.PlacedObject, stack Set, delta mgl64.Vec3) {
	for _, handle := range stack.Handles() {
		objects[handle].Translate(delta)
	}
}
