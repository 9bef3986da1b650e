package bento

import (
	"sort"
	"strconv"
	"strings"
)

// Query is a cached index of entities matching a component predicate: every
// type in Components present, every type in NotComponents absent. The
// predicate is fixed at construction. The entity list is seeded by one full
// scan when the query is created and afterwards maintained purely
// incrementally by the world's attach/detach notifications.
type Query struct {
	components    []*ComponentType
	notComponents []*ComponentType
	required      maskType
	excluded      maskType
	key           string
	entities      []*Entity
	bus           *EventBus
	reactive      bool
}

func newQuery(components, notComponents []*ComponentType) *Query {
	q := &Query{
		components:    components,
		notComponents: notComponents,
		bus:           &EventBus{},
	}
	for _, t := range components {
		q.required = setMask(q.required, t.id)
	}
	for _, t := range notComponents {
		q.excluded = setMask(q.excluded, t.id)
	}
	q.key = queryKey(components, notComponents)
	return q
}

// queryKey derives the canonical cache key for a predicate: sorted required
// ids, then sorted excluded ids prefixed with "!".
func queryKey(components, notComponents []*ComponentType) string {
	ids := make([]int, 0, len(components))
	for _, t := range components {
		ids = append(ids, int(t.id))
	}
	sort.Ints(ids)
	notIDs := make([]int, 0, len(notComponents))
	for _, t := range notComponents {
		notIDs = append(notIDs, int(t.id))
	}
	sort.Ints(notIDs)

	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	for _, id := range notIDs {
		b.WriteString(",!")
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

// Key returns the canonical cache key of the predicate.
func (self *Query) Key() string { return self.key }

// Match reports whether e currently satisfies the predicate. Types pending
// deferred removal are already out of the entity's live mask, so a
// logically removed component never matches.
func (self *Query) Match(e *Entity) bool {
	return includesAll(e.mask, self.required) && !intersects(e.mask, self.excluded)
}

// Entities returns the matching entities in first-match order. The slice is
// owned by the query and is invalidated by world mutations; copy it for
// long-term use.
func (self *Query) Entities() []*Entity { return self.entities }

// NumEntities returns the current match count.
func (self *Query) NumEntities() int { return len(self.entities) }

// Events returns the query's event bus. QueryEntityAdded and
// QueryEntityRemoved fire on every membership change;
// QueryComponentChanged additionally fires for reactive queries.
func (self *Query) Events() *EventBus { return self.bus }

// SetReactive toggles component-changed notification for entities already
// matching the query.
func (self *Query) SetReactive(reactive bool) { self.reactive = reactive }

// Reactive reports whether component-changed notification is enabled.
func (self *Query) Reactive() bool { return self.reactive }

// contains reports membership via the entity's back-reference list, which
// is never longer than the number of cached queries.
func (self *Query) contains(e *Entity) bool {
	for _, q := range e.queries {
		if q == self {
			return true
		}
	}
	return false
}

// addEntity is the single routine growing the bidirectional membership
// relation: the query's entity list and the entity's back-reference list
// always change together.
func (self *Query) addEntity(e *Entity) {
	e.queries = append(e.queries, self)
	self.entities = append(self.entities, e)
	Publish(self.bus, QueryEntityAdded{Query: self, Entity: e})
}

// removeEntity is the single routine shrinking the membership relation.
// Unknown entities are a no-op.
func (self *Query) removeEntity(e *Entity) {
	idx := -1
	for i, cur := range self.entities {
		if cur == e {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	self.entities = append(self.entities[:idx], self.entities[idx+1:]...)
	for i, q := range e.queries {
		if q == self {
			e.queries = append(e.queries[:i], e.queries[i+1:]...)
			break
		}
	}
	Publish(self.bus, QueryEntityRemoved{Query: self, Entity: e})
}
