package space

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/minkowski-home/design-your-space/actor"
)

// box is a test fixture: a center and a full size
type box struct {
	position mgl64.Vec3
	size     mgl64.Vec3
}

func cube(x, y, z float64) box {
	return box{position: mgl64.Vec3{x, y, z}, size: mgl64.Vec3{1, 1, 1}}
}

func createTestWorld(mode Mode, boxes ...box) *World {
	config := DefaultConfig()
	config.Mode = mode

	world := NewWorld(WithConfig(config))
	for _, b := range boxes {
		world.AddObject(b.position, b.size)
	}
	world.RebuildStacks()
	world.Flush()
	return world
}

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestNewWorld_Defaults(t *testing.T) {
	world := NewWorld()

	if world.Config != DefaultConfig() {
		t.Errorf("Config = %+v, want defaults", world.Config)
	}
	if world.Room.HalfExtent != 5 {
		t.Errorf("Room.HalfExtent = %v, want 5", world.Room.HalfExtent)
	}
	if world.Logger() == nil {
		t.Error("Logger() should never be nil")
	}
	if _, ok := world.picker.(RayPicker); !ok {
		t.Errorf("default picker = %T, want RayPicker", world.picker)
	}
}

func TestNewWorld_Options(t *testing.T) {
	config := DefaultConfig()
	config.RoomHalfExtent = 8

	picked := false
	world := NewWorld(
		WithConfig(config),
		WithGridCellSize(2),
		WithWorkers(4),
		WithLogger(nil),
		WithPicker(PickerFunc(func(actor.Ray, []*actor.PlacedObject) (int, bool) {
			picked = true
			return NoSelection, false
		})),
	)

	if world.Room.HalfExtent != 8 {
		t.Errorf("Room.HalfExtent = %v, want 8", world.Room.HalfExtent)
	}
	if world.SpatialGrid.cellSize != 2 {
		t.Errorf("grid cell size = %v, want 2", world.SpatialGrid.cellSize)
	}
	if world.Workers != 4 {
		t.Errorf("Workers = %d, want 4", world.Workers)
	}
	if world.Logger() == nil {
		t.Error("WithLogger(nil) should keep the no-op logger")
	}

	world.picker.Pick(actor.Ray{}, nil)
	if !picked {
		t.Error("WithPicker should replace the picker")
	}
}

func TestWorld_AddObject(t *testing.T) {
	world := NewWorld()

	a := world.AddObject(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{1, 1, 1})
	b := world.AddObject(mgl64.Vec3{2, 0.5, 0}, mgl64.Vec3{1, 1, 1})

	if a.Handle != 0 || b.Handle != 1 {
		t.Errorf("handles = %d, %d, want 0, 1", a.Handle, b.Handle)
	}
	for i, object := range world.Objects {
		if object.Handle != i {
			t.Errorf("Objects[%d].Handle = %d", i, object.Handle)
		}
	}

	if got, ok := world.Object(1); !ok || got != b {
		t.Errorf("Object(1) = %v, %v", got, ok)
	}
	if _, ok := world.Object(2); ok {
		t.Error("Object(2) should not exist")
	}
	if _, ok := world.Object(NoSelection); ok {
		t.Error("Object(NoSelection) should not exist")
	}
}

func TestWorld_StepIsNoopWhenStacking(t *testing.T) {
	world := createTestWorld(ModeStacking, cube(0, 3, 0))

	world.Step(1.0 / 60.0)

	if world.Objects[0].Transform.Position.Y() != 3 {
		t.Errorf("Y = %v, stacking mode should not apply gravity", world.Objects[0].Transform.Position.Y())
	}
}

func TestValidateBox(t *testing.T) {
	tests := []struct {
		name     string
		position mgl64.Vec3
		size     mgl64.Vec3
		wantErr  bool
	}{
		{"valid", mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{1, 1, 1}, false},
		{"NaN position", mgl64.Vec3{math.NaN(), 0.5, 0}, mgl64.Vec3{1, 1, 1}, true},
		{"infinite position", mgl64.Vec3{0, math.Inf(1), 0}, mgl64.Vec3{1, 1, 1}, true},
		{"zero size", mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{1, 0, 1}, true},
		{"negative size", mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{-1, 1, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBox(tt.position, tt.size)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateBox() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidObject) {
				t.Errorf("error %v should wrap ErrInvalidObject", err)
			}
		})
	}
}
