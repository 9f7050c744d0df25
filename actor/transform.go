package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position in 3D space.
// Placed objects are never rotated, so only the translation is kept.
type Transform struct {
	Position mgl64.Vec3
}

// NewTransform creates a transform at the given position
func NewTransform(position mgl64.Vec3) Transform {
	return Transform{Position: position}
}

// Translate moves the transform by delta
func (t *Transform) Translate(delta mgl64.Vec3) {
	t.Position = t.Position.Add(delta)
}
