package space

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/minkowski-home/design-your-space/actor"
)

const (
	DRAG_START EventType = iota
	DRAG_MOVE
	DRAG_END
	STACK_REBUILT
	OBJECT_LANDED
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// DragStartEvent is sent when a pick selects an object
type DragStartEvent struct {
	Object *actor.PlacedObject
	// Stack is the pre-drag stack of Object, Object included
	Stack []int
}

func (e DragStartEvent) Type() EventType { return DRAG_START }

// DragMoveEvent is sent for every move that was applied
type DragMoveEvent struct {
	Object *actor.PlacedObject
	Delta  mgl64.Vec3
	Moved  []int
}

func (e DragMoveEvent) Type() EventType { return DRAG_MOVE }

type DragEndEvent struct {
	Object *actor.PlacedObject
}

func (e DragEndEvent) Type() EventType { return DRAG_END }

// StackRebuiltEvent carries the relation computed after a release
type StackRebuiltEvent struct {
	Edges    []Edge
	Rejected int
}

func (e StackRebuiltEvent) Type() EventType { return STACK_REBUILT }

// ObjectLandedEvent is sent when a falling object comes to rest
type ObjectLandedEvent struct {
	Object *actor.PlacedObject
	Ground float64
}

func (e ObjectLandedEvent) Type() EventType { return OBJECT_LANDED }

// EventListener - callback for events
type EventListener func(event Event)

// Events buffers engine events and dispatches them synchronously on flush,
// once the operation that produced them is complete.
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 16),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	// Listeners may emit new events during dispatch
	pending := e.buffer
	e.buffer = make([]Event, 0, cap(pending))

	for _, event := range pending {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
}
