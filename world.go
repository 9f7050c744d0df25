package space

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/minkowski-home/design-your-space/actor"
	"go.uber.org/zap"
)

const (
	// NoSelection is used where no object is under manipulation
	NoSelection = -1

	DEFAULT_WORKERS = 1
)

var ErrInvalidObject = errors.New("invalid object")

// World is the object registry and the collision world.
//
// The engine is single threaded: every method runs synchronously and mutates
// shared state across several objects, so concurrent callers must serialize
// access to the World and to its StackGraph.
type World struct {
	// Objects is the arena of placed objects; Objects[i].Handle == i
	Objects []*actor.PlacedObject
	Config  Config
	Room    RoomBounds

	Graph       *StackGraph
	SpatialGrid *SpatialGrid
	// Workers is the number of goroutines used by read-only scans
	Workers int
	Events  Events

	picker Picker
	logger *zap.Logger
}

type Option func(w *World)

func WithConfig(config Config) Option {
	return func(w *World) {
		w.Config = config
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithPicker replaces the ray/box picker used by drag sessions
func WithPicker(picker Picker) Option {
	return func(w *World) {
		if picker != nil {
			w.picker = picker
		}
	}
}

func WithWorkers(workers int) Option {
	return func(w *World) {
		w.Workers = max(DEFAULT_WORKERS, workers)
	}
}

func WithGridCellSize(cellSize float64) Option {
	return func(w *World) {
		if cellSize > 0 {
			w.SpatialGrid = NewSpatialGrid(cellSize, DEFAULT_NUM_CELLS)
		}
	}
}

// NewWorld creates an empty room with the default configuration
func NewWorld(opts ...Option) *World {
	w := &World{
		Config:      DefaultConfig(),
		Graph:       NewStackGraph(),
		SpatialGrid: NewSpatialGrid(DEFAULT_CELL_SIZE, DEFAULT_NUM_CELLS),
		Workers:     DEFAULT_WORKERS,
		Events:      NewEvents(),
		picker:      RayPicker{},
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.Room = NewRoomBounds(w.Config.RoomHalfExtent)

	return w
}

// AddObject registers a box centered on position and returns it.
// The stack graph is not refreshed: call RebuildStacks once the scene is populated.
func (w *World) AddObject(position, size mgl64.Vec3) *actor.PlacedObject {
	object := actor.NewPlacedObject(len(w.Objects), position, size)
	w.Objects = append(w.Objects, object)
	return object
}

// Object returns the object registered under handle
func (w *World) Object(handle int) (*actor.PlacedObject, bool) {
	if handle < 0 || handle >= len(w.Objects) {
		return nil, false
	}
	return w.Objects[handle], true
}

func (w *World) Logger() *zap.Logger {
	return w.logger
}

// Resolver returns a support resolver over the current positions
func (w *World) Resolver() *SupportResolver {
	return NewSupportResolver(w.Objects, w.SpatialGrid, w.Config.GroundSnapEpsilon)
}

// RebuildStacks recomputes the support relation from the current positions
func (w *World) RebuildStacks() {
	w.Graph.Rebuild(w.Objects, w.SpatialGrid, w.Config.StackTolerance)

	if w.Graph.Rejected > 0 {
		w.logger.Debug("stack edges rejected by cycle guard", zap.Int("rejected", w.Graph.Rejected))
	}

	w.Events.emit(StackRebuiltEvent{
		Edges:    w.Graph.Edges(),
		Rejected: w.Graph.Rejected,
	})
}

// Interpenetrations returns the pairs of objects sharing volume
func (w *World) Interpenetrations() []Pair {
	return Interpenetrations(w.SpatialGrid, w.Objects, w.Workers)
}

// Step advances the gravity settler by dt. It does nothing in ModeStacking.
// Use DragSession.Step while a drag may be in progress so the selected
// object is left alone.
func (w *World) Step(dt float64) {
	w.step(dt, NoSelection)
	w.Events.flush()
}

func (w *World) step(dt float64, selected int) {
	if w.Config.Mode != ModeGravity {
		return
	}
	NewGravitySimulator(w).Step(selected, dt)
}

// Flush dispatches the events buffered outside of a drag session or Step
func (w *World) Flush() {
	w.Events.flush()
}

// ValidateBox checks a box before it is added to a world
func ValidateBox(position, size mgl64.Vec3) error {
	for axis := 0; axis < 3; axis++ {
		if math.IsNaN(position[axis]) || math.IsInf(position[axis], 0) {
			return fmt.Errorf("%w: position %v is not finite", ErrInvalidObject, position)
		}
		if math.IsNaN(size[axis]) || math.IsInf(size[axis], 0) || size[axis] <= 0 {
			return fmt.Errorf("%w: size %v must be finite and positive", ErrInvalidObject, size)
		}
	}
	return nil
}
