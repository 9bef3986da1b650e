package bento

import "reflect"

// Resources holds world-scoped singleton values keyed by their Go type. It
// gives scheduler systems a sanctioned place for shared context (clocks,
// input state, tuning tables) without ambient globals. At most one value
// per type may be present at a time.
type Resources struct {
	items   []any
	types   map[reflect.Type]int
	freeIDs []int
}

// Add stores a resource and returns its slot id. It panics when res is nil
// or a resource of the same type is already present. Freed slots are
// reused.
func (self *Resources) Add(res any) int {
	if res == nil {
		panic("bento: cannot add nil resource")
	}
	t := reflect.TypeOf(res)
	if self.types == nil {
		self.types = make(map[reflect.Type]int)
	}
	if _, ok := self.types[t]; ok {
		panic("bento: resource of the same type already exists")
	}
	var id int
	if n := len(self.freeIDs); n > 0 {
		id = self.freeIDs[n-1]
		self.freeIDs = self.freeIDs[:n-1]
		self.items[id] = res
	} else {
		self.items = append(self.items, res)
		id = len(self.items) - 1
	}
	self.types[t] = id
	return id
}

// Has reports whether a resource occupies slot id.
func (self *Resources) Has(id int) bool {
	return id >= 0 && id < len(self.items) && self.items[id] != nil
}

// Get returns the resource in slot id, or nil.
func (self *Resources) Get(id int) any {
	if !self.Has(id) {
		return nil
	}
	return self.items[id]
}

// Remove frees slot id if occupied, making the id reusable.
func (self *Resources) Remove(id int) {
	if !self.Has(id) {
		return
	}
	t := reflect.TypeOf(self.items[id])
	delete(self.types, t)
	self.items[id] = nil
	self.freeIDs = append(self.freeIDs, id)
}

// Clear removes every resource and resets the free list.
func (self *Resources) Clear() {
	for i := range self.items {
		self.items[i] = nil
	}
	self.items = self.items[:0]
	clear(self.types)
	self.freeIDs = self.freeIDs[:0]
}

// HasResource reports whether a resource of type *T is present, returning
// its slot id when found and -1 otherwise.
func HasResource[T any](r *Resources) (bool, int) {
	t := reflect.TypeOf((*T)(nil))
	if id, ok := r.types[t]; ok {
		return true, id
	}
	return false, -1
}

// GetResource returns the resource of type *T and its slot id, or nil and
// -1 when absent.
func GetResource[T any](r *Resources) (*T, int) {
	t := reflect.TypeOf((*T)(nil))
	if id, ok := r.types[t]; ok {
		return r.items[id].(*T), id
	}
	return nil, -1
}
