package bento

import "testing"

type poolItem struct {
	n     int
	reset bool
}

func TestPoolAcquireRelease(t *testing.T) {
	p := NewPool(func() *poolItem { return &poolItem{reset: true} }, 4)

	if p.TotalSize() != 4 {
		t.Fatalf("Expected initial size 4, got %d", p.TotalSize())
	}
	if p.TotalUsed() != 0 {
		t.Fatalf("Expected 0 used, got %d", p.TotalUsed())
	}

	item := p.Acquire()
	if !item.reset {
		t.Fatal("Acquire must hand out reset instances")
	}
	if p.TotalUsed() != 1 || p.TotalFree() != 3 {
		t.Fatalf("Expected 1 used / 3 free, got %d / %d", p.TotalUsed(), p.TotalFree())
	}

	p.Release(item)
	if p.TotalUsed() != 0 || p.TotalFree() != 4 {
		t.Fatalf("Expected 0 used / 4 free after release, got %d / %d", p.TotalUsed(), p.TotalFree())
	}
}

func TestPoolExpansion(t *testing.T) {
	p := NewPool(func() *poolItem { return &poolItem{} }, 0)

	// First acquire on an empty pool synthesizes a batch.
	first := p.Acquire()
	if first == nil {
		t.Fatal("Acquire returned nil")
	}
	if p.TotalSize() < 1 {
		t.Fatalf("Expected pool to expand, size %d", p.TotalSize())
	}

	held := []*poolItem{first}
	for i := 0; i < 50; i++ {
		held = append(held, p.Acquire())
	}
	if p.TotalUsed() != len(held) {
		t.Fatalf("Expected %d used, got %d", len(held), p.TotalUsed())
	}
	for _, item := range held {
		p.Release(item)
	}
	if p.TotalUsed() != 0 {
		t.Fatalf("Expected 0 used after releasing everything, got %d", p.TotalUsed())
	}
}

func TestPoolConservation(t *testing.T) {
	const initial = 8
	p := NewPool(func() *poolItem { return &poolItem{} }, initial)

	baseline := p.TotalUsed()
	for cycle := 0; cycle < 5; cycle++ {
		items := make([]*poolItem, 0, initial)
		for i := 0; i < initial; i++ {
			items = append(items, p.Acquire())
		}
		for _, item := range items {
			p.Release(item)
		}
	}
	if p.TotalUsed() != baseline {
		t.Errorf("Expected used to return to %d, got %d", baseline, p.TotalUsed())
	}
	if p.TotalSize() != initial {
		t.Errorf("Acquire/release within capacity must not expand; size %d", p.TotalSize())
	}
}
