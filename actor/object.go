package actor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// PlacedObject is a movable box resting in the room.
// Only translation is modelled: the box is always axis aligned.
type PlacedObject struct {
	// Handle is the index of the object in its world registry
	Handle int
	// ID is the external identity of the object, stable across sessions
	ID   uuid.UUID
	Name string

	// Transform.Position is the center of the box
	Transform Transform
	// Size is the full width, height and depth. It never changes after creation.
	Size mgl64.Vec3

	// Velocity is the vertical velocity (m/s), only used by the gravity settler
	Velocity float64
}

// NewPlacedObject creates an object centered on position
func NewPlacedObject(handle int, position, size mgl64.Vec3) *PlacedObject {
	return &PlacedObject{
		Handle:    handle,
		ID:        uuid.New(),
		Transform: NewTransform(position),
		Size:      size,
	}
}

// AABB computes the world-space bounding box from the current position.
// It is never cached: every call reflects the latest position.
func (o *PlacedObject) AABB() AABB {
	return NewAABB(o.Transform.Position, o.Size)
}

func (o *PlacedObject) HalfExtents() mgl64.Vec3 {
	return o.Size.Mul(0.5)
}

// Bottom returns the height of the lower face
func (o *PlacedObject) Bottom() float64 {
	return o.Transform.Position.Y() - o.Size.Y()/2
}

// Top returns the height of the upper face, the surface other objects rest on
func (o *PlacedObject) Top() float64 {
	return o.Transform.Position.Y() + o.Size.Y()/2
}

func (o *PlacedObject) Translate(delta mgl64.Vec3) {
	o.Transform.Translate(delta)
}

// Integrate advances a falling object by dt with semi-implicit Euler:
// the velocity is updated first, then the position with the new velocity.
// gravity is the signed vertical acceleration (negative pulls down).
func (o *PlacedObject) Integrate(dt float64, gravity float64) {
	o.Velocity += gravity * dt
	o.Transform.Position[1] += o.Velocity * dt
}

// Rest stops the object and snaps its bottom face onto groundY
func (o *PlacedObject) Rest(groundY float64) {
	o.Velocity = 0
	o.Transform.Position[1] = groundY + o.Size.Y()/2
}

// IsAirborne reports whether the bottom face is above groundY
func (o *PlacedObject) IsAirborne(groundY float64) bool {
	return o.Bottom() > groundY
}
