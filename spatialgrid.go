package space

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/minkowski-home/design-your-space/actor"
)

const (
	DEFAULT_CELL_SIZE = 1.0
	DEFAULT_NUM_CELLS = 256
)

// ============================================================================
// Types
// ============================================================================

// CellKey is the coordinate of a cell on the floor plane
type CellKey struct {
	X, Z int
}

// Cell holds the handles of the objects whose footprint touches it
type Cell struct {
	handles []int
}

// SpatialGrid is a uniform hashed grid over the floor plane (X/Z).
// Support and stacking only care about footprints, so the vertical axis is
// not partitioned: an object is inserted in every cell its footprint covers.
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
	// large holds the objects covering more cells than the grid has slots.
	// They are returned by every query.
	large []int
}

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid creates a grid; numCells is rounded up to a power of two
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].handles = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert adds the object to every cell covered by its footprint
func (sg *SpatialGrid) Insert(object *actor.PlacedObject) {
	aabb := object.AABB()
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	if sg.oversized(minCell, maxCell) {
		sg.large = append(sg.large, object.Handle)
		return
	}

	for x := minCell.X; x <= maxCell.X; x++ {
		for z := minCell.Z; z <= maxCell.Z; z++ {
			cellIdx := sg.hashCell(CellKey{x, z})
			sg.cells[cellIdx].handles = append(sg.cells[cellIdx].handles, object.Handle)
		}
	}
}

// Build clears the grid and inserts every object at its current position
func (sg *SpatialGrid) Build(objects []*actor.PlacedObject) {
	sg.Clear()
	for _, object := range objects {
		sg.Insert(object)
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].handles = sg.cells[i].handles[:0]
	}
	sg.large = sg.large[:0]
}

// Query returns the handles of every object that may overlap footprint, in
// ascending order and without duplicates. Hash collisions can return extra
// handles: callers still run the exact overlap test.
func (sg *SpatialGrid) Query(footprint actor.AABB) []int {
	minCell := sg.worldToCell(footprint.Min)
	maxCell := sg.worldToCell(footprint.Max)

	seen := make(map[int]struct{})
	result := make([]int, 0, 8+len(sg.large))

	add := func(handles []int) {
		for _, handle := range handles {
			if _, ok := seen[handle]; ok {
				continue
			}
			seen[handle] = struct{}{}
			result = append(result, handle)
		}
	}

	add(sg.large)

	if sg.oversized(minCell, maxCell) {
		// Every slot would be visited anyway
		for i := range sg.cells {
			add(sg.cells[i].handles)
		}
	} else {
		for x := minCell.X; x <= maxCell.X; x++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				add(sg.cells[sg.hashCell(CellKey{x, z})].handles)
			}
		}
	}

	sort.Ints(result)
	return result
}

// oversized reports whether the cell range spans more cells than the grid has slots
func (sg *SpatialGrid) oversized(minCell, maxCell CellKey) bool {
	numCells := len(sg.cells)
	spanX := maxCell.X - minCell.X + 1
	spanZ := maxCell.Z - minCell.Z + 1
	if spanX > numCells || spanZ > numCells {
		return true
	}
	return spanX*spanZ > numCells
}

// FindPairs returns every pair of objects whose boxes share volume.
// Each pair is reported once, with A.Handle < B.Handle, ordered by A then B.
func (sg *SpatialGrid) FindPairs(objects []*actor.PlacedObject) []Pair {
	return sg.FindPairsParallel(objects, DEFAULT_WORKERS)
}

// FindPairsParallel is FindPairs with the queries spread over workersCount
// goroutines. The grid is only read, and the result order does not depend on
// the number of workers.
func (sg *SpatialGrid) FindPairsParallel(objects []*actor.PlacedObject, workersCount int) []Pair {
	found := make([][]Pair, len(objects))

	task(workersCount, objects, func(i int, objectA *actor.PlacedObject) {
		boxA := objectA.AABB()
		for _, otherHandle := range sg.Query(boxA) {
			// Deterministic order, avoids (A,B) and (B,A)
			if otherHandle <= objectA.Handle {
				continue
			}
			objectB := objects[otherHandle]
			if boxA.Overlaps(objectB.AABB()) {
				found[i] = append(found[i], Pair{A: objectA, B: objectB})
			}
		}
	})

	pairs := make([]Pair, 0, len(objects)/2)
	for _, list := range found {
		pairs = append(pairs, list...)
	}
	return pairs
}

// worldToCell converts a world position to the coordinates of its floor cell
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell maps a cell to an index in the cell array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
