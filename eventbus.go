package bento

import "reflect"

// MaxEventTypes defines the maximum number of unique event types that can be
// registered in an EventBus. This value is fixed at 256.
const MaxEventTypes = 256

// EventBus is a simple typed publish/subscribe bus. The World carries one
// for entity/component lifecycle events and every Query carries its own for
// membership and reactive change events. Handlers run synchronously in
// subscription order; Publish is allocation-free.
type EventBus struct {
	eventTypeMap    map[reflect.Type]uint8
	handlers        [MaxEventTypes][]interface{}
	nextEventTypeID int
}

// Subscribe registers a handler for events of type T on bus.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	id := bus.getEventTypeID(t)
	if cap(bus.handlers[id]) == 0 {
		bus.handlers[id] = make([]interface{}, 0, 4)
	}
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// Publish delivers event to every handler subscribed for type T on bus.
func Publish[T any](bus *EventBus, event T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if id, ok := bus.eventTypeMap[t]; ok {
		for _, h := range bus.handlers[id] {
			h.(func(T))(event)
		}
	}
}

// getEventTypeID retrieves or assigns an ID for the event type.
func (bus *EventBus) getEventTypeID(t reflect.Type) uint8 {
	if bus.eventTypeMap == nil {
		bus.eventTypeMap = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.eventTypeMap[t]; ok {
		return id
	}
	if bus.nextEventTypeID >= MaxEventTypes {
		panic("bento: too many event types")
	}
	id := uint8(bus.nextEventTypeID)
	bus.nextEventTypeID++
	bus.eventTypeMap[t] = id
	return id
}

// World lifecycle events, published on World.Events().

// EntityCreated fires when a new entity registers with the world.
type EntityCreated struct{ Entity *Entity }

// EntityReleased fires when a disposed entity is returned to the entity
// pool. Its Entity pointer must not be retained: the object is recycled.
type EntityReleased struct{ ID int }

// ComponentAdded fires after a component attaches to a live entity and all
// query memberships have been updated.
type ComponentAdded struct {
	Entity    *Entity
	Component *Component
}

// ComponentRemoved fires when a component is removed from a live entity,
// immediate or deferred. For deferred removals the instance is still
// readable through the entity's removed-component accessors.
type ComponentRemoved struct {
	Entity    *Entity
	Component *Component
}

// Query events, published on Query.Events().

// QueryEntityAdded fires when an entity starts matching a query.
type QueryEntityAdded struct {
	Query  *Query
	Entity *Entity
}

// QueryEntityRemoved fires when an entity stops matching a query.
type QueryEntityRemoved struct {
	Query  *Query
	Entity *Entity
}

// QueryComponentChanged fires on a reactive query when a matching entity's
// component is mutated through GetMutableComponent.
type QueryComponentChanged struct {
	Query     *Query
	Entity    *Entity
	Component *Component
}
