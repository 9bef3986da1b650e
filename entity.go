package bento

// Entity is one identifier plus the component instances currently attached
// to it. Entities are created and disposed only through their World, which
// keeps every cached query consistent with the entity's component set.
//
// An entity id is one-shot: it is unique for the lifetime of the World and
// never identifies a different logical entity after disposal, even though
// the Entity object itself is recycled through the world's pool.
type Entity struct {
	world *World
	id    int
	alive bool

	componentTypes         []*ComponentType // attach order, live types only
	componentTypesToRemove []*ComponentType
	components             map[ComponentID]*Component
	componentsToRemove     map[ComponentID]*Component
	mask                   maskType // live types
	removedMask            maskType // types pending physical removal

	// queries holds a back-reference to every query currently containing
	// this entity. Maintained by Query.addEntity/removeEntity only.
	queries []*Query

	numSystemStateComponents int
	pendingRelease           bool
}

func newEntity(w *World) *Entity {
	e := &Entity{
		world:              w,
		components:         make(map[ComponentID]*Component),
		componentsToRemove: make(map[ComponentID]*Component),
	}
	e.id = w.nextEntityID
	w.nextEntityID++
	return e
}

// ID returns the entity's world-lifetime unique id.
func (self *Entity) ID() int { return self.id }

// Alive reports whether the entity is registered and visible to queries.
func (self *Entity) Alive() bool { return self.alive }

// World returns the owning world.
func (self *Entity) World() *World { return self.world }

// ComponentTypes returns the live attached types in attach order. The
// returned slice is owned by the entity and must not be mutated.
func (self *Entity) ComponentTypes() []*ComponentType { return self.componentTypes }

// HasComponent reports whether t is live on the entity. Types pending
// deferred removal do not count.
func (self *Entity) HasComponent(t *ComponentType) bool {
	return self.mask.has(t.id)
}

// HasRemovedComponent reports whether t is pending physical removal.
func (self *Entity) HasRemovedComponent(t *ComponentType) bool {
	return self.removedMask.has(t.id)
}

// HasAllComponents reports whether every given type is live on the entity.
func (self *Entity) HasAllComponents(types ...*ComponentType) bool {
	for _, t := range types {
		if !self.mask.has(t.id) {
			return false
		}
	}
	return true
}

// HasAnyComponents reports whether at least one given type is live.
func (self *Entity) HasAnyComponents(types ...*ComponentType) bool {
	for _, t := range types {
		if self.mask.has(t.id) {
			return true
		}
	}
	return false
}

// GetComponent returns the live instance of t, or nil. When the world has a
// component wrapper installed (debug immutability), the instance is routed
// through it; use GetMutableComponent for a mutation that should notify
// reactive queries.
func (self *Entity) GetComponent(t *ComponentType) *Component {
	c := self.components[t.id]
	if c == nil {
		return nil
	}
	if self.world.wrapComponent != nil {
		return self.world.wrapComponent(self, c)
	}
	return c
}

// GetRemovedComponent returns the instance of t pending physical removal,
// or nil. This is the "include removed" read: after a deferred
// RemoveComponent the data stays addressable here until the flush.
func (self *Entity) GetRemovedComponent(t *ComponentType) *Component {
	return self.componentsToRemove[t.id]
}

// GetMutableComponent returns the raw live instance of t and notifies every
// reactive query containing this entity that the component is about to
// change. Returns nil if t is not live.
func (self *Entity) GetMutableComponent(t *ComponentType) *Component {
	c := self.components[t.id]
	if c == nil {
		return nil
	}
	self.world.onComponentChanged(self, c)
	return c
}

// AttachComponent attaches an existing instance, transferring ownership to
// the entity. A type already live on the entity makes this a no-op: the
// stored instance and the type list are left untouched.
func (self *Entity) AttachComponent(c *Component) *Entity {
	if c == nil {
		return self
	}
	t := c.typ
	if !self.world.ensureRegistered(t) {
		return self
	}
	if self.mask.has(t.id) {
		return self
	}
	if self.removedMask.has(t.id) {
		self.cancelPendingRemoval(t)
	}
	self.componentTypes = append(self.componentTypes, t)
	self.components[t.id] = c
	self.mask = setMask(self.mask, t.id)
	if t.systemState {
		self.numSystemStateComponents++
	}
	if self.alive {
		self.world.onComponentAdded(self, c)
	}
	return self
}

// AddComponent attaches a pool-sourced instance of t, overwriting its
// defaulted fields from values when given. Re-adding a live type is an
// idempotent no-op returning the existing instance.
func (self *Entity) AddComponent(t *ComponentType, values map[string]any) *Component {
	if t == nil {
		return nil
	}
	if self.mask.has(t.id) {
		return self.components[t.id]
	}
	c := self.world.acquireComponent(t)
	if c == nil {
		return nil
	}
	if values != nil {
		c.CopyValues(values)
	}
	self.AttachComponent(c)
	return c
}

// RemoveComponent detaches t from the entity. With immediate=true the
// instance is disposed synchronously; otherwise it moves to the
// pending-removal map, invisible to queries and HasComponent but still
// readable via GetRemovedComponent until the world's next flush. Removing a
// type that is not live is a silent no-op.
func (self *Entity) RemoveComponent(t *ComponentType, immediate bool) bool {
	if t == nil || !self.mask.has(t.id) {
		return false
	}
	c := self.components[t.id]

	self.detachType(t)
	delete(self.components, t.id)
	if !immediate {
		if len(self.componentTypesToRemove) == 0 {
			self.world.queueComponentRemoval(self)
		}
		self.componentTypesToRemove = append(self.componentTypesToRemove, t)
		self.componentsToRemove[t.id] = c
		self.removedMask = setMask(self.removedMask, t.id)
	}
	// Query membership and the removal event see the instance before it is
	// recycled.
	self.world.onComponentRemoved(self, c)
	if immediate {
		c.Dispose()
	}

	if t.systemState {
		self.numSystemStateComponents--
		if self.numSystemStateComponents == 0 && !self.alive {
			// Last system-state component gone on a dead entity:
			// final disposal fires now.
			self.world.removeEntity(self, immediate)
		}
	}
	return true
}

// cancelPendingRemoval disposes the instance of t awaiting the flush. A type
// re-attaching as live must not sit in both the live and pending indexes.
func (self *Entity) cancelPendingRemoval(t *ComponentType) {
	c := self.componentsToRemove[t.id]
	delete(self.componentsToRemove, t.id)
	self.removedMask = unsetMask(self.removedMask, t.id)
	for i, ct := range self.componentTypesToRemove {
		if ct == t {
			self.componentTypesToRemove = append(self.componentTypesToRemove[:i], self.componentTypesToRemove[i+1:]...)
			break
		}
	}
	if c != nil {
		c.Dispose()
	}
}

// detachType strips t from the live type list and mask.
func (self *Entity) detachType(t *ComponentType) {
	for i, ct := range self.componentTypes {
		if ct == t {
			self.componentTypes = append(self.componentTypes[:i], self.componentTypes[i+1:]...)
			break
		}
	}
	self.mask = unsetMask(self.mask, t.id)
}

// RemoveAllComponents removes every live component except system-state
// ones, which outlive entity death until removed explicitly.
func (self *Entity) RemoveAllComponents(immediate bool) {
	for i := len(self.componentTypes) - 1; i >= 0; i-- {
		if t := self.componentTypes[i]; !t.systemState {
			self.RemoveComponent(t, immediate)
		}
	}
}

// ProcessRemovedComponents physically disposes every component pending
// removal. Safe to call with nothing pending.
func (self *Entity) ProcessRemovedComponents() {
	for _, t := range self.componentTypesToRemove {
		c := self.componentsToRemove[t.id]
		delete(self.componentsToRemove, t.id)
		self.removedMask = unsetMask(self.removedMask, t.id)
		if c != nil {
			c.Dispose()
		}
	}
	self.componentTypesToRemove = self.componentTypesToRemove[:0]
}

// Copy attaches a clone of every component on src to this entity. Each
// instance is produced by the source component's Clone, never its Copy, so
// no schema agreement between pre-existing instances is assumed. Types
// already live on the destination are left untouched (idempotent attach);
// dispose first if reuse is intended.
func (self *Entity) Copy(src *Entity) *Entity {
	if src == nil || src == self {
		return self
	}
	for _, t := range src.componentTypes {
		if self.mask.has(t.id) {
			continue
		}
		self.AttachComponent(src.components[t.id].Clone())
	}
	return self
}

// Clone creates a fresh entity in the same world carrying clones of every
// component on this one.
func (self *Entity) Clone() *Entity {
	return self.world.CreateEntity().Copy(self)
}

// Dispose removes the entity from the world. Immediate disposal strips and
// recycles everything synchronously and retires the id; deferred disposal
// hides the entity from queries now and recycles it at the next flush.
// System-state components keep the dead entity indexable until they are
// removed explicitly.
func (self *Entity) Dispose(immediate bool) {
	self.world.removeEntity(self, immediate)
}

// reset clears all state and assigns a fresh id. Called when the entity
// object returns to the world's pool; the old id is permanently retired.
func (self *Entity) reset() {
	self.alive = false
	self.pendingRelease = false
	self.componentTypes = self.componentTypes[:0]
	self.componentTypesToRemove = self.componentTypesToRemove[:0]
	clear(self.components)
	clear(self.componentsToRemove)
	self.mask = maskType{}
	self.removedMask = maskType{}
	self.queries = self.queries[:0]
	self.numSystemStateComponents = 0
	self.id = self.world.nextEntityID
	self.world.nextEntityID++
}
