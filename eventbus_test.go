package bento

import (
	"reflect"
	"testing"
)

type testEvent struct {
	Value int
}

type otherEvent struct {
	Delta float64
}

func TestEventBusSubscribeAndPublish(t *testing.T) {
	bus := &EventBus{}
	received := 0
	Subscribe(bus, func(e testEvent) {
		received += e.Value
	})
	Subscribe(bus, func(e testEvent) {
		received += e.Value * 2
	})
	Publish(bus, testEvent{Value: 1})
	if received != 3 {
		t.Errorf("expected received 3, got %d", received)
	}
	Publish(bus, testEvent{Value: 2})
	if received != 3+6 {
		t.Errorf("expected received 9, got %d", received)
	}
}

func TestEventBusMultipleTypes(t *testing.T) {
	bus := &EventBus{}
	received1 := 0
	received2 := 0
	Subscribe(bus, func(e testEvent) {
		received1 += e.Value
	})
	Subscribe(bus, func(e otherEvent) {
		received2 += int(e.Delta)
	})
	Publish(bus, testEvent{Value: 42})
	Publish(bus, otherEvent{Delta: 10})
	if received1 != 42 {
		t.Errorf("expected received1 42, got %d", received1)
	}
	if received2 != 10 {
		t.Errorf("expected received2 10, got %d", received2)
	}
}

func TestEventBusNoHandlers(t *testing.T) {
	bus := &EventBus{}
	// No panic expected
	Publish(bus, testEvent{Value: 42})
}

func TestEventBusManySubscribers(t *testing.T) {
	bus := &EventBus{}
	const numSubs = 100
	received := 0
	for i := 0; i < numSubs; i++ {
		Subscribe(bus, func(e testEvent) {
			received += e.Value
		})
	}
	Publish(bus, testEvent{Value: 1})
	if received != numSubs {
		t.Errorf("expected %d, got %d", numSubs, received)
	}
}

func TestEventBusTypeCapacity(t *testing.T) {
	bus := &EventBus{}
	types, _ := generateDistinctTypesAndRes(MaxEventTypes)
	seen := make(map[uint8]bool, MaxEventTypes)
	for _, typ := range types {
		id := bus.getEventTypeID(typ)
		if seen[id] {
			t.Fatalf("event type id %d assigned twice", id)
		}
		seen[id] = true
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic past the event type capacity")
		}
	}()
	bus.getEventTypeID(reflect.TypeOf(0))
}

func TestEventBusLifecycleEvents(t *testing.T) {
	w, a, _, _ := newTestWorld()

	var created, released, added, removed int
	Subscribe(w.Events(), func(e EntityCreated) { created++ })
	Subscribe(w.Events(), func(e EntityReleased) { released++ })
	Subscribe(w.Events(), func(e ComponentAdded) { added++ })
	Subscribe(w.Events(), func(e ComponentRemoved) { removed++ })

	e := w.CreateEntity()
	e.AddComponent(a, nil)
	e.RemoveComponent(a, true)
	e.Dispose(true)

	if created != 1 || released != 1 {
		t.Errorf("expected 1 created and 1 released, got %d/%d", created, released)
	}
	if added != 1 || removed != 1 {
		t.Errorf("expected 1 added and 1 removed, got %d/%d", added, removed)
	}
}
