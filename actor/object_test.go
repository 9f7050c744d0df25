package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

func TestNewPlacedObject(t *testing.T) {
	object := NewPlacedObject(3, mgl64.Vec3{1, 0.5, -1}, mgl64.Vec3{1, 1, 1})

	if object.Handle != 3 {
		t.Errorf("Handle = %d, want 3", object.Handle)
	}
	if object.ID == uuid.Nil {
		t.Error("ID should be set")
	}
	if object.Velocity != 0 {
		t.Errorf("Velocity = %v, want 0", object.Velocity)
	}

	other := NewPlacedObject(4, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	if object.ID == other.ID {
		t.Error("two objects should not share an ID")
	}
}

func TestPlacedObject_AABBFollowsPosition(t *testing.T) {
	object := NewPlacedObject(0, mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{1, 1, 1})

	before := object.AABB()
	object.Translate(mgl64.Vec3{2, 1, -1})
	after := object.AABB()

	if after.Min != before.Min.Add(mgl64.Vec3{2, 1, -1}) {
		t.Errorf("AABB().Min = %v after translation, want %v", after.Min, before.Min.Add(mgl64.Vec3{2, 1, -1}))
	}

	// min = position - size/2, max = position + size/2
	half := object.HalfExtents()
	if after.Min != object.Transform.Position.Sub(half) || after.Max != object.Transform.Position.Add(half) {
		t.Errorf("AABB() = %v..%v, not centered on %v", after.Min, after.Max, object.Transform.Position)
	}
}

func TestPlacedObject_TopBottom(t *testing.T) {
	tests := []struct {
		name       string
		position   mgl64.Vec3
		size       mgl64.Vec3
		wantBottom float64
		wantTop    float64
	}{
		{"on the floor", mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{1, 1, 1}, 0, 1},
		{"stacked", mgl64.Vec3{0, 1.5, 0}, mgl64.Vec3{1, 1, 1}, 1, 2},
		{"tall", mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0.5, 4, 0.5}, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			object := NewPlacedObject(0, tt.position, tt.size)
			if object.Bottom() != tt.wantBottom {
				t.Errorf("Bottom() = %v, want %v", object.Bottom(), tt.wantBottom)
			}
			if object.Top() != tt.wantTop {
				t.Errorf("Top() = %v, want %v", object.Top(), tt.wantTop)
			}
		})
	}
}

func TestPlacedObject_IntegrateSemiImplicit(t *testing.T) {
	object := NewPlacedObject(0, mgl64.Vec3{0, 10, 0}, mgl64.Vec3{1, 1, 1})
	dt := 0.1

	object.Integrate(dt, -9.8)

	// Velocity is updated before the position
	wantVelocity := -0.98
	wantY := 10 + wantVelocity*dt
	if !almostEqual(object.Velocity, wantVelocity, 1e-12) {
		t.Errorf("Velocity = %v, want %v", object.Velocity, wantVelocity)
	}
	if !almostEqual(object.Transform.Position.Y(), wantY, 1e-12) {
		t.Errorf("Y = %v, want %v", object.Transform.Position.Y(), wantY)
	}

	// Horizontal position never changes
	if object.Transform.Position.X() != 0 || object.Transform.Position.Z() != 0 {
		t.Errorf("Integrate moved the object horizontally: %v", object.Transform.Position)
	}
}

func TestPlacedObject_Rest(t *testing.T) {
	object := NewPlacedObject(0, mgl64.Vec3{0, 0.2, 0}, mgl64.Vec3{1, 1, 1})
	object.Velocity = -3

	object.Rest(1.0)

	if object.Velocity != 0 {
		t.Errorf("Velocity = %v, want 0", object.Velocity)
	}
	if object.Transform.Position.Y() != 1.5 {
		t.Errorf("Y = %v, want 1.5", object.Transform.Position.Y())
	}
	if object.IsAirborne(1.0) {
		t.Error("object resting on the ground should not be airborne")
	}
	if !object.IsAirborne(0.5) {
		t.Error("object above the ground should be airborne")
	}
}

// Helper function to compare floats with epsilon tolerance
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}
