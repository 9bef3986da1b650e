package bento

import "testing"

func newTestWorld() (*World, *ComponentType, *ComponentType, *ComponentType) {
	ResetGlobalRegistry()
	a := NewComponentType("A", FieldSpec{Name: "v", Type: Number})
	b := NewComponentType("B", FieldSpec{Name: "v", Type: Number})
	c := NewComponentType("C", FieldSpec{Name: "v", Type: Number})
	w := NewWorld(8)
	if err := w.RegisterComponents(a, b, c); err != nil {
		panic(err)
	}
	return w, a, b, c
}

func TestQueryKeyCanonical(t *testing.T) {
	_, a, b, c := newTestWorld()

	k1 := queryKey([]*ComponentType{a, b}, []*ComponentType{c})
	k2 := queryKey([]*ComponentType{b, a}, []*ComponentType{c})
	if k1 != k2 {
		t.Errorf("Expected order-independent keys, got %q and %q", k1, k2)
	}
	k3 := queryKey([]*ComponentType{a, b, c}, nil)
	if k1 == k3 {
		t.Error("Excluded types must be distinguished from required ones in the key")
	}
}

func TestQueryMatchInvariant(t *testing.T) {
	w, a, b, c := newTestWorld()
	queries := []*Query{
		w.Query([]*ComponentType{a}),
		w.Query([]*ComponentType{a, b}),
		w.Query([]*ComponentType{a}, b),
		w.Query([]*ComponentType{b}, c),
	}

	check := func(step string) {
		t.Helper()
		for _, q := range queries {
			for _, e := range w.entities.list {
				want := e.alive && q.Match(e)
				got := q.contains(e)
				if want != got {
					t.Fatalf("%s: query %q membership %v, match %v for entity %d",
						step, q.key, got, want, e.id)
				}
			}
		}
	}

	e1 := w.CreateEntity()
	e1.AddComponent(a, nil)
	check("after adding A")

	e1.AddComponent(b, nil)
	check("after adding B")

	e2 := w.CreateEntity()
	e2.AddComponent(b, nil)
	e2.AddComponent(c, nil)
	check("after second entity")

	e1.RemoveComponent(b, false)
	check("after deferred removal of B")

	e2.RemoveComponent(c, true)
	check("after immediate removal of C")

	e1.Dispose(false)
	check("after deferred disposal")

	w.processDeferredRemoval()
	check("after flush")
}

func TestQueryBackReferences(t *testing.T) {
	w, a, b, _ := newTestWorld()
	q1 := w.Query([]*ComponentType{a})
	q2 := w.Query([]*ComponentType{a, b})

	e := w.CreateEntity()
	e.AddComponent(a, nil)
	e.AddComponent(b, nil)

	if len(e.queries) != 2 {
		t.Fatalf("Expected 2 query back-references, got %d", len(e.queries))
	}

	e.RemoveComponent(b, false)
	if len(e.queries) != 1 || e.queries[0] != q1 {
		t.Fatalf("Expected only the single-component query to remain, got %d refs", len(e.queries))
	}
	if q2.NumEntities() != 0 {
		t.Fatal("Two-component query must have dropped the entity")
	}
}

func TestQueryMembershipEvents(t *testing.T) {
	w, a, _, _ := newTestWorld()
	q := w.Query([]*ComponentType{a})

	var added, removed int
	Subscribe(q.Events(), func(ev QueryEntityAdded) { added++ })
	Subscribe(q.Events(), func(ev QueryEntityRemoved) { removed++ })

	e := w.CreateEntity()
	e.AddComponent(a, nil)
	if added != 1 {
		t.Fatalf("Expected 1 added event, got %d", added)
	}

	e.RemoveComponent(a, false)
	if removed != 1 {
		t.Fatalf("Expected 1 removed event, got %d", removed)
	}
}

func TestReactiveComponentChanged(t *testing.T) {
	w, a, b, _ := newTestWorld()
	q := w.Query([]*ComponentType{a})
	q.SetReactive(true)
	silent := w.Query([]*ComponentType{a, b})

	var changed []*Component
	Subscribe(q.Events(), func(ev QueryComponentChanged) { changed = append(changed, ev.Component) })
	Subscribe(silent.Events(), func(ev QueryComponentChanged) {
		t.Error("Non-reactive query must not receive change events")
	})

	e := w.CreateEntity()
	c := e.AddComponent(a, nil)
	e.AddComponent(b, nil)

	if got := e.GetMutableComponent(a); got != c {
		t.Fatalf("GetMutableComponent returned wrong instance")
	}
	if len(changed) != 1 || changed[0] != c {
		t.Fatalf("Expected 1 change notification for the instance, got %d", len(changed))
	}

	// Changes to types outside the reactive query's predicate are silent.
	e.GetMutableComponent(b)
	if len(changed) != 1 {
		t.Fatalf("Expected no extra notification, got %d", len(changed))
	}
}

func TestQueryEntitiesOrder(t *testing.T) {
	w, a, _, _ := newTestWorld()
	q := w.Query([]*ComponentType{a})

	var ids []int
	for i := 0; i < 4; i++ {
		e := w.CreateEntity()
		e.AddComponent(a, nil)
		ids = append(ids, e.id)
	}
	for i, e := range q.Entities() {
		if e.id != ids[i] {
			t.Fatalf("Expected first-match order %v, got entity %d at %d", ids, e.id, i)
		}
	}
}
