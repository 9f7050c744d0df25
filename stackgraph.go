package space

import (
	"math"
	"sort"

	"github.com/minkowski-home/design-your-space/actor"
)

// NoParent marks an object resting on the floor or on nothing it is cleanly stacked on
const NoParent = -1

// Set is a set of object handles
type Set map[int]struct{}

func NewSet(handles ...int) Set {
	s := make(Set, len(handles))
	for _, h := range handles {
		s[h] = struct{}{}
	}
	return s
}

func (s Set) Add(handle int) {
	s[handle] = struct{}{}
}

// Contains is safe to call on a nil Set
func (s Set) Contains(handle int) bool {
	_, ok := s[handle]
	return ok
}

// Handles returns the members in ascending order
func (s Set) Handles() []int {
	handles := make([]int, 0, len(s))
	for h := range s {
		handles = append(handles, h)
	}
	sort.Ints(handles)
	return handles
}

// Edge is a support relation: Child rests on Parent
type Edge struct {
	Parent int
	Child  int
}

// StackGraph records which object rests on which.
// It is a derived index over the current positions, not a source of truth:
// Rebuild recomputes it from scratch and it is never patched incrementally.
type StackGraph struct {
	parent   []int
	children [][]int
	// Rejected holds the number of edges dropped by the cycle guard during the last Rebuild
	Rejected int
}

func NewStackGraph() *StackGraph {
	return &StackGraph{}
}

func (g *StackGraph) reset(n int) {
	g.Rejected = 0
	g.parent = g.parent[:0]
	g.children = g.children[:0]
	for i := 0; i < n; i++ {
		g.parent = append(g.parent, NoParent)
		g.children = append(g.children, nil)
	}
}

// Rebuild clears every relation and recomputes it from the current positions.
//
// Objects are processed from the lowest to the highest. For each one, a
// candidate parent qualifies when their footprints overlap and the gap between
// the object's bottom and the candidate's top is below tolerance; the highest
// qualifying top wins. Exact ties go to the lowest handle.
// An edge that would close a cycle is dropped and the object stays parentless.
func (g *StackGraph) Rebuild(objects []*actor.PlacedObject, grid *SpatialGrid, tolerance float64) {
	g.reset(len(objects))

	if grid != nil {
		grid.Build(objects)
	}

	sorted := make([]*actor.PlacedObject, len(objects))
	copy(sorted, objects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Transform.Position.Y() < sorted[j].Transform.Position.Y()
	})

	for _, object := range sorted {
		box := object.AABB()
		bottom := object.Bottom()

		bestParent := NoParent
		bestTop := math.Inf(-1)

		for _, candidate := range g.candidates(objects, grid, box) {
			if candidate.Handle == object.Handle {
				continue
			}
			top := candidate.Top()
			if !box.OverlapsXZ(candidate.AABB()) || math.Abs(bottom-top) >= tolerance {
				continue
			}
			// Strictly greater keeps the first, lowest handle on ties
			if top > bestTop {
				bestTop = top
				bestParent = candidate.Handle
			}
		}

		if bestParent == NoParent {
			continue
		}
		if g.wouldCreateCycle(object.Handle, bestParent) {
			g.Rejected++
			continue
		}

		g.parent[object.Handle] = bestParent
		g.children[bestParent] = append(g.children[bestParent], object.Handle)
	}
}

func (g *StackGraph) candidates(objects []*actor.PlacedObject, grid *SpatialGrid, box actor.AABB) []*actor.PlacedObject {
	if grid == nil {
		return objects
	}
	handles := grid.Query(box)
	result := make([]*actor.PlacedObject, 0, len(handles))
	for _, h := range handles {
		result = append(result, objects[h])
	}
	return result
}

// wouldCreateCycle walks the parent chain of parent looking for child.
// The walk is bounded by the number of objects.
func (g *StackGraph) wouldCreateCycle(child, parent int) bool {
	current := parent
	for i := 0; i < len(g.parent)+1; i++ {
		if current == NoParent {
			return false
		}
		if current == child {
			return true
		}
		current = g.parent[current]
	}
	// Longer than the object count: the chain already loops
	return true
}

// Len returns the number of objects the graph was built for
func (g *StackGraph) Len() int {
	return len(g.parent)
}

// Parent returns the object handle rests on
func (g *StackGraph) Parent(handle int) (int, bool) {
	if handle < 0 || handle >= len(g.parent) || g.parent[handle] == NoParent {
		return NoParent, false
	}
	return g.parent[handle], true
}

// Children returns the objects resting directly on handle
func (g *StackGraph) Children(handle int) []int {
	if handle < 0 || handle >= len(g.children) {
		return nil
	}
	return append([]int(nil), g.children[handle]...)
}

// Roots returns the objects that rest on nothing, in ascending order
func (g *StackGraph) Roots() []int {
	roots := make([]int, 0)
	for h, p := range g.parent {
		if p == NoParent {
			roots = append(roots, h)
		}
	}
	return roots
}

// Edges returns every relation, ordered by child
func (g *StackGraph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.parent))
	for child, parent := range g.parent {
		if parent != NoParent {
			edges = append(edges, Edge{Parent: parent, Child: child})
		}
	}
	return edges
}

// Descendants returns the stack rooted at handle: the object itself and
// everything resting on it, directly or not.
// The traversal uses an explicit worklist and visits each object at most once,
// so it terminates even on a malformed graph.
func (g *StackGraph) Descendants(handle int) Set {
	stack := NewSet(handle)
	if handle < 0 || handle >= len(g.children) {
		return stack
	}

	worklist := []int{handle}
	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for _, child := range g.children[current] {
			if stack.Contains(child) {
				continue
			}
			stack.Add(child)
			worklist = append(worklist, child)
		}
	}

	return stack
}
