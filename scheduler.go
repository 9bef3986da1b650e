package bento

import (
	"reflect"
	"sort"

	"go.uber.org/zap"
)

// System is update logic driven once per tick by the world. Systems obtain
// their entity sets from cached queries and must not retain query slices
// across ticks.
type System interface {
	Execute(delta, time float64)
}

// SystemIniter is implemented by systems that need world access before
// their first tick. Init runs once at registration.
type SystemIniter interface {
	Init(w *World)
}

// SystemAttributes configure a system at registration.
type SystemAttributes struct {
	// Priority orders execution; lower values run first. Systems with equal
	// priority run in registration order.
	Priority int
}

type systemEntry struct {
	system   System
	priority int
	order    int
	enabled  bool
}

// SystemScheduler owns registered systems and executes them in a
// deterministic order each tick: ascending priority, then registration
// order. Ordering policy beyond that is deliberately minimal; the world
// only depends on the invocation contract.
type SystemScheduler struct {
	world     *World
	entries   []*systemEntry
	nextOrder int
	sorted    bool
}

func newSystemScheduler(w *World) *SystemScheduler {
	return &SystemScheduler{world: w}
}

// Register adds a system. A system instance already registered is a logged
// no-op.
func (self *SystemScheduler) Register(sys System, attrs ...SystemAttributes) {
	if sys == nil {
		return
	}
	if self.find(sys) != nil {
		self.world.logger.Warn("system already registered",
			zap.String("system", systemName(sys)))
		return
	}
	entry := &systemEntry{system: sys, order: self.nextOrder, enabled: true}
	self.nextOrder++
	if len(attrs) > 0 {
		entry.priority = attrs[0].Priority
	}
	if init, ok := sys.(SystemIniter); ok {
		init.Init(self.world)
	}
	self.entries = append(self.entries, entry)
	self.sorted = false
}

// Unregister removes a system. Unknown systems are a silent no-op.
func (self *SystemScheduler) Unregister(sys System) {
	for i, entry := range self.entries {
		if entry.system == sys {
			self.entries = append(self.entries[:i], self.entries[i+1:]...)
			return
		}
	}
}

// Play resumes execution of sys after a Stop.
func (self *SystemScheduler) Play(sys System) {
	if entry := self.find(sys); entry != nil {
		entry.enabled = true
	}
}

// Stop suspends execution of sys without unregistering it.
func (self *SystemScheduler) Stop(sys System) {
	if entry := self.find(sys); entry != nil {
		entry.enabled = false
	}
}

// Systems returns the registered systems in execution order.
func (self *SystemScheduler) Systems() []System {
	self.ensureSorted()
	out := make([]System, len(self.entries))
	for i, entry := range self.entries {
		out[i] = entry.system
	}
	return out
}

// Execute runs every enabled system once, in execution order.
func (self *SystemScheduler) Execute(delta, time float64) {
	self.ensureSorted()
	for _, entry := range self.entries {
		if entry.enabled {
			entry.system.Execute(delta, time)
		}
	}
}

func (self *SystemScheduler) find(sys System) *systemEntry {
	for _, entry := range self.entries {
		if entry.system == sys {
			return entry
		}
	}
	return nil
}

func (self *SystemScheduler) ensureSorted() {
	if self.sorted {
		return
	}
	sort.SliceStable(self.entries, func(i, j int) bool {
		if self.entries[i].priority != self.entries[j].priority {
			return self.entries[i].priority < self.entries[j].priority
		}
		return self.entries[i].order < self.entries[j].order
	})
	self.sorted = true
}

// GetSystem returns the registered system of type T, if any.
func GetSystem[T System](s *SystemScheduler) (T, bool) {
	for _, entry := range s.entries {
		if sys, ok := entry.system.(T); ok {
			return sys, true
		}
	}
	var zero T
	return zero, false
}

// RegisterSystem adds sys to the world's scheduler.
func (self *World) RegisterSystem(sys System, attrs ...SystemAttributes) {
	self.scheduler.Register(sys, attrs...)
}

// UnregisterSystem removes sys from the world's scheduler.
func (self *World) UnregisterSystem(sys System) {
	self.scheduler.Unregister(sys)
}

// Systems returns the scheduler's systems in execution order.
func (self *World) Systems() []System {
	return self.scheduler.Systems()
}

// systemName derives a readable name for logs and stats.
func systemName(sys System) string {
	t := reflect.TypeOf(sys)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
