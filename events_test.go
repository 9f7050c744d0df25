package space

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/minkowski-home/design-your-space/actor"
)

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) count() int {
	return len(ec.events)
}

func (ec *eventCapture) hasEventType(eventType EventType) bool {
	for _, e := range ec.events {
		if e.Type() == eventType {
			return true
		}
	}
	return false
}

func testObject(handle int) *actor.PlacedObject {
	return actor.NewPlacedObject(handle, mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{1, 1, 1})
}

// =============================================================================
// Subscribe and Listeners Tests
// =============================================================================

func TestEvents_Subscribe(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}

	events.Subscribe(DRAG_START, capture.capture)

	if len(events.listeners[DRAG_START]) != 1 {
		t.Errorf("Expected 1 listener for DRAG_START, got %d", len(events.listeners[DRAG_START]))
	}
}

func TestEvents_SubscribeOnZeroValue(t *testing.T) {
	var events Events
	capture := &eventCapture{}

	events.Subscribe(DRAG_END, capture.capture)
	events.emit(DragEndEvent{Object: testObject(0)})
	events.flush()

	if capture.count() != 1 {
		t.Errorf("Expected 1 event, got %d", capture.count())
	}
}

func TestEvents_MultipleListeners(t *testing.T) {
	events := NewEvents()
	first := &eventCapture{}
	second := &eventCapture{}

	events.Subscribe(STACK_REBUILT, first.capture)
	events.Subscribe(STACK_REBUILT, second.capture)

	events.emit(StackRebuiltEvent{Edges: []Edge{{Parent: 0, Child: 1}}})
	events.flush()

	if first.count() != 1 || second.count() != 1 {
		t.Errorf("Expected both listeners to receive 1 event, got %d and %d", first.count(), second.count())
	}
}

func TestEvents_OnlyMatchingType(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}

	events.Subscribe(DRAG_MOVE, capture.capture)

	events.emit(DragStartEvent{Object: testObject(0)})
	events.emit(DragMoveEvent{Object: testObject(0), Delta: mgl64.Vec3{1, 0, 0}})
	events.emit(ObjectLandedEvent{Object: testObject(1)})
	events.flush()

	if capture.count() != 1 {
		t.Fatalf("Expected 1 event, got %d", capture.count())
	}
	if !capture.hasEventType(DRAG_MOVE) {
		t.Error("Expected a DRAG_MOVE event")
	}
}

// =============================================================================
// Flush Tests
// =============================================================================

func TestEvents_FlushClearsBuffer(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(DRAG_END, capture.capture)

	events.emit(DragEndEvent{Object: testObject(0)})
	events.flush()
	events.flush()

	if capture.count() != 1 {
		t.Errorf("Expected 1 event after two flushes, got %d", capture.count())
	}
	if len(events.buffer) != 0 {
		t.Errorf("Expected empty buffer, got %d events", len(events.buffer))
	}
}

func TestEvents_FlushPreservesOrder(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	for _, eventType := range []EventType{DRAG_START, DRAG_MOVE, DRAG_END} {
		events.Subscribe(eventType, capture.capture)
	}

	events.emit(DragStartEvent{})
	events.emit(DragMoveEvent{})
	events.emit(DragEndEvent{})
	events.flush()

	expected := []EventType{DRAG_START, DRAG_MOVE, DRAG_END}
	for i, event := range capture.events {
		if event.Type() != expected[i] {
			t.Errorf("event %d = %d, want %d", i, event.Type(), expected[i])
		}
	}
}

func TestEvents_EmitDuringDispatch(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}

	events.Subscribe(DRAG_END, func(event Event) {
		events.emit(StackRebuiltEvent{})
	})
	events.Subscribe(STACK_REBUILT, capture.capture)

	events.emit(DragEndEvent{})
	events.flush()

	if capture.count() != 0 {
		t.Fatalf("Events emitted by a listener should wait for the next flush, got %d", capture.count())
	}

	events.flush()
	if capture.count() != 1 {
		t.Errorf("Expected 1 event after the second flush, got %d", capture.count())
	}
}
