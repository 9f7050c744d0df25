package space

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/minkowski-home/design-your-space/actor"
	"go.uber.org/zap"
)

// State of a drag session
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// CameraControl is the orbit control of the viewer.
// It is disabled for the duration of a drag.
type CameraControl interface {
	SetEnabled(enabled bool)
}

// DragSession is the pick, move, release state machine around one selected object.
// Events are not reentrant: each call must return before the next one is made.
type DragSession struct {
	world    *World
	movement *MovementController
	camera   CameraControl

	state    State
	selected int
	// snapshot is the stack of the selected object when it was picked
	snapshot Set
}

// NewDragSession creates an idle session. camera may be nil.
func NewDragSession(world *World, camera CameraControl) *DragSession {
	return &DragSession{
		world:    world,
		movement: NewMovementController(world),
		camera:   camera,
		state:    Idle,
		selected: NoSelection,
	}
}

func (s *DragSession) State() State {
	return s.state
}

// Selected returns the object under manipulation
func (s *DragSession) Selected() (*actor.PlacedObject, bool) {
	if s.state != Dragging {
		return nil, false
	}
	return s.world.Object(s.selected)
}

// Snapshot returns the pre-drag stack of the selected object, in ascending order
func (s *DragSession) Snapshot() []int {
	if s.state != Dragging {
		return nil
	}
	return s.snapshot.Handles()
}

// Pick selects the object hit by ray and starts dragging it.
// It returns false and stays idle when nothing is hit or a drag is already in progress.
func (s *DragSession) Pick(ray actor.Ray) bool {
	if s.state == Dragging {
		return false
	}

	handle, hit := s.world.picker.Pick(ray, s.world.Objects)
	if !hit {
		return false
	}
	object, ok := s.world.Object(handle)
	if !ok {
		s.world.logger.Warn("picker returned an unknown object", zap.Int("handle", handle))
		return false
	}

	if s.world.Config.Mode == ModeStacking {
		// Objects may have been moved by someone else since the last release
		s.world.RebuildStacks()
	}

	s.setCamera(false)
	s.state = Dragging
	s.selected = handle
	s.snapshot = s.movement.Stack(handle)

	s.world.logger.Debug("drag started",
		zap.Int("handle", handle),
		zap.Stringer("id", object.ID),
		zap.Int("stack", len(s.snapshot)),
	)
	s.world.Events.emit(DragStartEvent{Object: object, Stack: s.snapshot.Handles()})
	s.world.Events.flush()

	return true
}

// Move drags the selected object toward the floor point, ignoring its Y.
// It returns the applied delta; nothing happens while idle.
func (s *DragSession) Move(point mgl64.Vec3) mgl64.Vec3 {
	if s.state != Dragging {
		return mgl64.Vec3{}
	}

	delta, moved := s.movement.moveTo(s.selected, mgl64.Vec2{point.X(), point.Z()})
	if moved != nil {
		s.world.Events.emit(DragMoveEvent{
			Object: s.world.Objects[s.selected],
			Delta:  delta,
			Moved:  moved.Handles(),
		})
	}
	s.world.Events.flush()

	return delta
}

// MoveRay drags the selected object toward the point where ray meets the floor.
// Rays that never reach the floor are ignored.
func (s *DragSession) MoveRay(ray actor.Ray) mgl64.Vec3 {
	point, ok := ray.IntersectPlaneY(0)
	if !ok {
		return mgl64.Vec3{}
	}
	return s.Move(point)
}

// Release ends the drag. In ModeStacking the support relation is rebuilt from
// the new positions; in ModeGravity the selected object is handed back to the
// settler with no vertical velocity. The camera is re-enabled in any case.
func (s *DragSession) Release() {
	s.setCamera(true)

	if s.state != Dragging {
		return
	}

	object := s.world.Objects[s.selected]
	switch s.world.Config.Mode {
	case ModeStacking:
		s.world.RebuildStacks()
	case ModeGravity:
		object.Velocity = 0
	}

	if pairs := s.world.Interpenetrations(); len(pairs) > 0 {
		s.world.logger.Warn("objects interpenetrate after release",
			zap.Int("handle", object.Handle),
			zap.Int("pairs", len(pairs)),
		)
	}

	s.world.logger.Debug("drag ended",
		zap.Int("handle", object.Handle),
		zap.Stringer("id", object.ID),
		zap.Float64s("position", object.Transform.Position[:]),
	)

	s.state = Idle
	s.selected = NoSelection
	s.snapshot = nil

	s.world.Events.emit(DragEndEvent{Object: object})
	s.world.Events.flush()
}

// Step advances the gravity settler, leaving the selected object alone.
// It does nothing in ModeStacking.
func (s *DragSession) Step(dt float64) {
	s.world.step(dt, s.selected)
	s.world.Events.flush()
}

func (s *DragSession) setCamera(enabled bool) {
	if s.camera != nil {
		s.camera.SetEnabled(enabled)
	}
}
