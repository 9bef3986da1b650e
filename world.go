package bento

import (
	"go.uber.org/zap"
)

// nextTypeID hands out process-wide component slot indices. Types keep
// their slot across worlds, so the same ComponentType value can register
// with several worlds without colliding.
var nextTypeID int

// ResetGlobalRegistry resets the process-wide component slot counter. This
// is useful for tests that build many throwaway component types; component
// types created before the reset must not be reused afterwards.
func ResetGlobalRegistry() { nextTypeID = 0 }

// componentRegistry maps component-type names to their schema and each
// registered type to its dedicated pool.
type componentRegistry struct {
	byName map[string]*ComponentType
	byID   [MaxComponentTypes]*ComponentType
	pools  [MaxComponentTypes]*Pool[*Component] // nil when pooling is disabled
}

// entityRegistry owns every entity object of a world.
type entityRegistry struct {
	pool *Pool[*Entity]
	list []*Entity
	byID map[int]*Entity
}

// queryRegistry caches queries by their canonical predicate key for the
// lifetime of the world.
type queryRegistry struct {
	byKey map[string]*Query
	list  []*Query
}

// World owns all entities, component types, pools and cached queries, and
// is the single mutation gateway keeping them consistent. All methods are
// single-threaded by contract; no mutation suspends before its index
// updates are applied.
type World struct {
	logger     *zap.Logger
	bus        *EventBus
	resources  *Resources
	scheduler  *SystemScheduler
	components componentRegistry
	entities   entityRegistry
	queries    queryRegistry

	entitiesToRemove               []*Entity
	entitiesWithComponentsToRemove []*Entity

	wrapComponent func(*Entity, *Component) *Component
	nextEntityID  int
	enabled       bool
}

// WorldOption configures a World at construction.
type WorldOption func(*World)

// WithLogger installs a structured logger for the world's warning and
// diagnostics output. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) WorldOption {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithComponentWrapper installs the debug injection point: when set,
// GetComponent routes every returned instance through wrap (typically an
// immutability-enforcing view). GetMutableComponent stays raw.
func WithComponentWrapper(wrap func(*Entity, *Component) *Component) WorldOption {
	return func(w *World) {
		w.wrapComponent = wrap
	}
}

// NewWorld creates a world with an entity pool pre-filled with
// initialCapacity recyclable entities.
func NewWorld(initialCapacity int, opts ...WorldOption) *World {
	w := &World{
		logger:    zap.NewNop(),
		bus:       &EventBus{},
		resources: &Resources{},
		enabled:   true,
		components: componentRegistry{
			byName: make(map[string]*ComponentType, 16),
		},
		entities: entityRegistry{
			byID: make(map[int]*Entity, max(initialCapacity, 16)),
		},
		queries: queryRegistry{
			byKey: make(map[string]*Query),
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	w.scheduler = newSystemScheduler(w)
	w.entities.pool = NewPool(func() *Entity { return newEntity(w) }, initialCapacity)
	return w
}

// Events returns the world-level lifecycle event bus.
func (self *World) Events() *EventBus { return self.bus }

// Resources returns the world's type-keyed singleton store.
func (self *World) Resources() *Resources { return self.resources }

// Scheduler returns the system scheduler driven by Execute.
func (self *World) Scheduler() *SystemScheduler { return self.scheduler }

// Play enables scheduler execution.
func (self *World) Play() { self.enabled = true }

// Stop disables scheduler execution. Entity and component mutation stays
// permitted while stopped.
func (self *World) Stop() { self.enabled = false }

// Enabled reports whether Execute runs the scheduler.
func (self *World) Enabled() bool { return self.enabled }

// ----------------------------------------
// Component type registration
// ----------------------------------------

// RegisterComponent registers t with a pooled allocator that grows on
// demand. Registration fails fast on an incomplete schema; registering the
// same name twice is a logged no-op.
func (self *World) RegisterComponent(t *ComponentType) error {
	return self.registerComponent(t, true, 0)
}

// RegisterComponentWithPool registers t with a pool pre-filled with
// initialSize reset instances.
func (self *World) RegisterComponentWithPool(t *ComponentType, initialSize int) error {
	return self.registerComponent(t, true, initialSize)
}

// RegisterComponentUnpooled registers t without a pool; instances are
// allocated fresh and left to the garbage collector on disposal.
func (self *World) RegisterComponentUnpooled(t *ComponentType) error {
	return self.registerComponent(t, false, 0)
}

// RegisterComponents registers every given type pooled, stopping at the
// first schema error.
func (self *World) RegisterComponents(types ...*ComponentType) error {
	for _, t := range types {
		if err := self.registerComponent(t, true, 0); err != nil {
			return err
		}
	}
	return nil
}

func (self *World) registerComponent(t *ComponentType, pooled bool, poolSize int) error {
	if err := t.validate(); err != nil {
		return err
	}
	if existing, ok := self.components.byName[t.name]; ok {
		if existing != t {
			self.logger.Warn("component type name already registered to a different schema",
				zap.String("component", t.name))
		} else {
			self.logger.Warn("component type already registered", zap.String("component", t.name))
		}
		return nil
	}
	if !t.idAssigned {
		if nextTypeID >= MaxComponentTypes {
			return ErrTooManyComponentTypes
		}
		t.id = ComponentID(nextTypeID)
		t.idAssigned = true
		nextTypeID++
	}
	self.components.byName[t.name] = t
	self.components.byID[t.id] = t
	if pooled {
		var p *Pool[*Component]
		p = NewPool(func() *Component {
			c := newComponent(t)
			c.pool = p
			return c
		}, 0)
		if poolSize > 0 {
			p.expand(poolSize)
		}
		self.components.pools[t.id] = p
	}
	return nil
}

// ComponentType returns the registered type for name, or nil.
func (self *World) ComponentType(name string) *ComponentType {
	return self.components.byName[name]
}

// ComponentTypes returns every registered type in registration order.
func (self *World) ComponentTypes() []*ComponentType {
	out := make([]*ComponentType, 0, len(self.components.byName))
	for _, t := range self.components.byID {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// ensureRegistered registers t on the fly when a mutation references it
// before registration. That is collaborator misuse, so it is logged, but
// the operation proceeds when the schema is valid.
func (self *World) ensureRegistered(t *ComponentType) bool {
	if t == nil {
		return false
	}
	if existing, ok := self.components.byName[t.name]; ok {
		if existing == t {
			return true
		}
		// A distinct type value under a registered name never gets a slot:
		// its zero id would alias whichever type owns slot 0.
		self.logger.Warn("component type name already registered to a different schema",
			zap.String("component", t.name))
		return false
	}
	self.logger.Warn("component type used before registration", zap.String("component", t.name))
	if err := self.registerComponent(t, true, 0); err != nil {
		self.logger.Error("implicit component registration failed",
			zap.String("component", t.name), zap.Error(err))
		return false
	}
	return true
}

// acquireComponent hands out an instance of t, recycled from the type's
// pool when one exists.
func (self *World) acquireComponent(t *ComponentType) *Component {
	if !self.ensureRegistered(t) {
		return nil
	}
	if p := self.components.pools[t.id]; p != nil {
		return p.Acquire()
	}
	return newComponent(t)
}

// ----------------------------------------
// Entity lifecycle
// ----------------------------------------

// CreateEntity acquires a recycled or new entity and registers it live.
func (self *World) CreateEntity() *Entity {
	e := self.entities.pool.Acquire()
	e.alive = true
	return self.addEntity(e)
}

func (self *World) addEntity(e *Entity) *Entity {
	if existing, ok := self.entities.byID[e.id]; ok {
		self.logger.Warn("duplicate entity id registration", zap.Int("id", e.id))
		e.reset()
		self.entities.pool.Release(e)
		return existing
	}
	self.entities.list = append(self.entities.list, e)
	self.entities.byID[e.id] = e
	Publish(self.bus, EntityCreated{Entity: e})
	// A pooled entity should come back empty, but any component it still
	// carries from a previous lifetime must reach the query index.
	for _, t := range e.componentTypes {
		self.onComponentAdded(e, e.components[t.id])
	}
	return e
}

// EntityByID returns the entity registered under id, if any. Dead entities
// held open by system-state components are still indexable here.
func (self *World) EntityByID(id int) (*Entity, bool) {
	e, ok := self.entities.byID[id]
	return e, ok
}

// Entities returns the world's entity list. Owned by the world; do not
// mutate.
func (self *World) Entities() []*Entity { return self.entities.list }

// NumEntities returns the number of registered entities.
func (self *World) NumEntities() int { return len(self.entities.list) }

// removeEntity is the single disposal gateway. Disposing an entity that is
// not registered (or already queued) is a silent no-op.
func (self *World) removeEntity(e *Entity, immediate bool) {
	if e == nil || e.pendingRelease {
		return
	}
	if cur, ok := self.entities.byID[e.id]; !ok || cur != e {
		return
	}
	e.alive = false
	self.onEntityRemoved(e)
	if e.numSystemStateComponents == 0 {
		e.RemoveAllComponents(immediate)
		if immediate {
			self.releaseEntity(e)
		} else {
			e.pendingRelease = true
			self.entitiesToRemove = append(self.entitiesToRemove, e)
		}
		return
	}
	// System-state components hold the entity in the index until they are
	// removed explicitly; only the ordinary components go now.
	e.RemoveAllComponents(immediate)
}

// onEntityRemoved strips the entity from every query containing it, using
// the entity's own back-reference list.
func (self *World) onEntityRemoved(e *Entity) {
	for len(e.queries) > 0 {
		e.queries[len(e.queries)-1].removeEntity(e)
	}
}

// releaseEntity finalizes disposal: pending component removals are flushed,
// the id is retired and the object returns to the entity pool.
func (self *World) releaseEntity(e *Entity) {
	for i, cur := range self.entities.list {
		if cur == e {
			self.entities.list = append(self.entities.list[:i], self.entities.list[i+1:]...)
			break
		}
	}
	delete(self.entities.byID, e.id)
	e.ProcessRemovedComponents()
	id := e.id
	e.reset()
	self.entities.pool.Release(e)
	Publish(self.bus, EntityReleased{ID: id})
}

// queueComponentRemoval records that e has components awaiting the
// per-tick physical removal flush.
func (self *World) queueComponentRemoval(e *Entity) {
	self.entitiesWithComponentsToRemove = append(self.entitiesWithComponentsToRemove, e)
}

// ----------------------------------------
// Query index maintenance
// ----------------------------------------

// Query returns the cached query for the given predicate, creating and
// seeding it on first request. The notComponents types must all be absent
// for an entity to match.
func (self *World) Query(components []*ComponentType, notComponents ...*ComponentType) *Query {
	required := make([]*ComponentType, len(components))
	copy(required, components)
	excluded := make([]*ComponentType, len(notComponents))
	copy(excluded, notComponents)
	for _, t := range required {
		self.ensureRegistered(t)
	}
	for _, t := range excluded {
		self.ensureRegistered(t)
	}
	key := queryKey(required, excluded)
	if q, ok := self.queries.byKey[key]; ok {
		return q
	}
	q := newQuery(required, excluded)
	for _, e := range self.entities.list {
		if e.alive && q.Match(e) {
			q.addEntity(e)
		}
	}
	self.queries.byKey[key] = q
	self.queries.list = append(self.queries.list, q)
	return q
}

// onComponentAdded re-evaluates every cached query for e after c attached.
// A query excluding the new type drops the entity immediately, regardless
// of the rest of the predicate.
func (self *World) onComponentAdded(e *Entity, c *Component) {
	t := c.typ
	if self.components.byID[t.id] != t {
		self.logger.Warn("query index notified for unregistered component type",
			zap.String("component", t.name))
	}
	for _, q := range self.queries.list {
		if q.excluded.has(t.id) {
			if q.contains(e) {
				q.removeEntity(e)
			}
			continue
		}
		if !q.required.has(t.id) || !q.Match(e) || q.contains(e) {
			continue
		}
		q.addEntity(e)
	}
	Publish(self.bus, ComponentAdded{Entity: e, Component: c})
}

// onComponentRemoved is the symmetric half: a query excluding the removed
// type becomes eligible the instant the type disappears, and a matching
// query loses the entity the instant a required type disappears.
func (self *World) onComponentRemoved(e *Entity, c *Component) {
	t := c.typ
	for _, q := range self.queries.list {
		if q.excluded.has(t.id) && !q.contains(e) && e.alive && q.Match(e) {
			q.addEntity(e)
			continue
		}
		if q.required.has(t.id) && q.contains(e) && !q.Match(e) {
			q.removeEntity(e)
		}
	}
	Publish(self.bus, ComponentRemoved{Entity: e, Component: c})
}

// onComponentChanged notifies reactive queries containing e that c was
// handed out for mutation.
func (self *World) onComponentChanged(e *Entity, c *Component) {
	for _, q := range e.queries {
		if q.reactive && q.required.has(c.typ.id) {
			Publish(q.bus, QueryComponentChanged{Query: q, Entity: e, Component: c})
		}
	}
}

// ----------------------------------------
// Tick
// ----------------------------------------

// Execute runs one tick: the scheduler executes every registered system in
// order, then both deferred-removal queues are flushed, entities first,
// then pending component removals. A stopped world skips the tick
// entirely.
func (self *World) Execute(delta, time float64) {
	if !self.enabled {
		return
	}
	self.scheduler.Execute(delta, time)
	self.processDeferredRemoval()
}

func (self *World) processDeferredRemoval() {
	for _, e := range self.entitiesToRemove {
		self.releaseEntity(e)
	}
	self.entitiesToRemove = self.entitiesToRemove[:0]
	for _, e := range self.entitiesWithComponentsToRemove {
		e.ProcessRemovedComponents()
	}
	self.entitiesWithComponentsToRemove = self.entitiesWithComponentsToRemove[:0]
}
