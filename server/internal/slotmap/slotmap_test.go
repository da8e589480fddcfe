package slotmap

import (
	"sync"
	"testing"
)

func TestInsertGetRemove(t *testing.T) {
	m := New[string]()
	k := m.Insert("alice")

	got, ok := m.Get(k)
	if !ok || got != "alice" {
		t.Fatalf("Get() = %q, %v; want alice, true", got, ok)
	}
	if n := m.Len(); n != 1 {
		t.Fatalf("Len() = %d; want 1", n)
	}

	removed, ok := m.Remove(k)
	if !ok || removed != "alice" {
		t.Fatalf("Remove() = %q, %v; want alice, true", removed, ok)
	}
	if n := m.Len(); n != 0 {
		t.Fatalf("Len() after remove = %d; want 0", n)
	}
}

func TestStaleKeyNeverResolves(t *testing.T) {
	m := New[int]()
	k1 := m.Insert(1)
	if _, ok := m.Remove(k1); !ok {
		t.Fatal("Remove(k1) = false; want true")
	}

	k2 := m.Insert(2)
	if k1.index != k2.index {
		t.Fatalf("expected slot reuse: k1.index=%d k2.index=%d", k1.index, k2.index)
	}
	if k1.generation == k2.generation {
		t.Fatalf("expected generation bump on reuse: k1.gen=%d k2.gen=%d", k1.generation, k2.generation)
	}

	if _, ok := m.Get(k1); ok {
		t.Fatal("Get(k1) = true after slot reuse; want false")
	}
	if v, ok := m.Get(k2); !ok || v != 2 {
		t.Fatalf("Get(k2) = %d, %v; want 2, true", v, ok)
	}
}

func TestDoubleRemoveFails(t *testing.T) {
	m := New[int]()
	k := m.Insert(42)
	if _, ok := m.Remove(k); !ok {
		t.Fatal("first Remove() = false; want true")
	}
	if _, ok := m.Remove(k); ok {
		t.Fatal("second Remove() = true; want false")
	}
}

func TestRangeVisitsEveryLiveEntry(t *testing.T) {
	m := New[int]()
	keys := make([]Key, 0, 5)
	for i := range 5 {
		keys = append(keys, m.Insert(i))
	}
	m.Remove(keys[2])

	seen := make(map[int]bool)
	m.Range(func(_ Key, v int) bool {
		seen[v] = true
		return true
	})
	if len(seen) != 4 || seen[2] {
		t.Fatalf("Range() saw %v; want all but 2", seen)
	}
}

func TestRangeParallelVisitsEveryLiveEntryExactlyOnce(t *testing.T) {
	m := New[int]()
	const n = 200
	for i := range n {
		m.Insert(i)
	}

	var mu sync.Mutex
	seen := make(map[int]int)
	m.RangeParallel(func(_ Key, v int) {
		mu.Lock()
		seen[v]++
		mu.Unlock()
	})

	if len(seen) != n {
		t.Fatalf("RangeParallel saw %d distinct values; want %d", len(seen), n)
	}
	for v, count := range seen {
		if count != 1 {
			t.Fatalf("value %d visited %d times; want 1", v, count)
		}
	}
}

func TestWithMutatesInPlace(t *testing.T) {
	m := New[int]()
	k := m.Insert(10)
	ok := m.With(k, func(v *int) { *v += 5 })
	if !ok {
		t.Fatal("With() = false; want true")
	}
	got, _ := m.Get(k)
	if got != 15 {
		t.Fatalf("Get() after With() = %d; want 15", got)
	}
}
