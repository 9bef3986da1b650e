package bento

// Pool is a free-list recycler for one object type. Acquire hands out reset
// instances, growing the pool by an expansion batch when the free list runs
// dry; Release returns an instance whose semantic state the caller has
// already reset. The pool does not track which consumer holds an acquired
// instance: exclusive ownership between Acquire and Release is the caller's
// contract.
//
// Not safe for concurrent use, matching the single-threaded world model.
type Pool[T any] struct {
	freeList []T
	factory  func() T
	count    int // total instances ever created
}

// NewPool creates a pool around factory, pre-filling it with initialSize
// instances. factory must return a fully reset instance.
func NewPool[T any](factory func() T, initialSize int) *Pool[T] {
	p := &Pool[T]{factory: factory}
	if initialSize > 0 {
		p.expand(initialSize)
	}
	return p
}

// Acquire pops a reset instance off the free list, expanding the pool by
// roughly 20% of its current size (at least one) when it is empty.
func (self *Pool[T]) Acquire() T {
	if len(self.freeList) == 0 {
		self.expand(self.count/5 + 1)
	}
	item := self.freeList[len(self.freeList)-1]
	self.freeList = self.freeList[:len(self.freeList)-1]
	return item
}

// Release pushes an instance back onto the free list. The caller must have
// reset the instance's semantic fields beforehand.
func (self *Pool[T]) Release(item T) {
	self.freeList = append(self.freeList, item)
}

// expand synthesizes n new instances onto the free list.
func (self *Pool[T]) expand(n int) {
	for i := 0; i < n; i++ {
		self.freeList = append(self.freeList, self.factory())
	}
	self.count += n
}

// TotalSize returns the number of instances the pool has ever created.
func (self *Pool[T]) TotalSize() int { return self.count }

// TotalFree returns the number of instances currently on the free list.
func (self *Pool[T]) TotalFree() int { return len(self.freeList) }

// TotalUsed returns the number of instances currently held by consumers.
func (self *Pool[T]) TotalUsed() int { return self.count - len(self.freeList) }
