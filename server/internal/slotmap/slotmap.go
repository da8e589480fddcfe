// Package slotmap implements a generational, dense-storage container used
// throughout the server core wherever stable handles to values that may be
// removed at arbitrary times are required: clients, entities, worlds and
// player lists all live inside a SlotMap.
package slotmap

import (
	"runtime"
	"sync"
)

// Key identifies a slot inside a SlotMap. A Key is only ever valid for the
// SlotMap that produced it. Once the slot it refers to is removed, the Key
// becomes permanently stale: a later Insert reusing the same index bumps the
// generation, so a stale Key never collides with a live one.
type Key struct {
	index      uint32
	generation uint32
}

// Null is the zero value of Key. It never refers to a live slot.
var Null = Key{}

// Split decomposes a Key into its raw index and generation, for containers
// that need to pack a Key into an external integer-keyed index (e.g.
// entity.Entities' network-ID resolution table).
func Split(k Key) (index, generation uint32) {
	return k.index, k.generation
}

// Join is the inverse of Split.
func Join(index, generation uint32) Key {
	return Key{index: index, generation: generation}
}

type slot[T any] struct {
	value      T
	generation uint32
	occupied   bool
}

// SlotMap is a generational container offering O(1) insert, remove and
// lookup. Iteration order is unspecified.
type SlotMap[T any] struct {
	mu       sync.RWMutex
	slots    []slot[T]
	freeList []uint32
	len      int
}

// New returns an empty SlotMap.
func New[T any]() *SlotMap[T] {
	return &SlotMap[T]{}
}

// Insert adds value to the map and returns the Key that may be used to
// retrieve or remove it later.
func (m *SlotMap[T]) Insert(value T) Key {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n := len(m.freeList); n > 0 {
		idx := m.freeList[n-1]
		m.freeList = m.freeList[:n-1]
		s := &m.slots[idx]
		s.value = value
		s.occupied = true
		m.len++
		return Key{index: idx, generation: s.generation}
	}

	idx := uint32(len(m.slots))
	m.slots = append(m.slots, slot[T]{value: value, occupied: true})
	m.len++
	return Key{index: idx, generation: 0}
}

// Remove deletes the slot referred to by key, if any, and bumps its
// generation so the key can never be reused. It reports whether a live slot
// was actually removed.
func (m *SlotMap[T]) Remove(key Key) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	if int(key.index) >= len(m.slots) {
		return zero, false
	}
	s := &m.slots[key.index]
	if !s.occupied || s.generation != key.generation {
		return zero, false
	}
	value := s.value
	s.value = zero
	s.occupied = false
	s.generation++
	m.freeList = append(m.freeList, key.index)
	m.len--
	return value, true
}

// Get returns a copy of the value at key, if the key is still valid.
func (m *SlotMap[T]) Get(key Key) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var zero T
	if int(key.index) >= len(m.slots) {
		return zero, false
	}
	s := &m.slots[key.index]
	if !s.occupied || s.generation != key.generation {
		return zero, false
	}
	return s.value, true
}

// With runs fn with exclusive access to the value at key, if the key is
// still valid. It reports whether fn was invoked.
func (m *SlotMap[T]) With(key Key, fn func(*T)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if int(key.index) >= len(m.slots) {
		return false
	}
	s := &m.slots[key.index]
	if !s.occupied || s.generation != key.generation {
		return false
	}
	fn(&s.value)
	return true
}

// Len returns the number of live slots in the map.
func (m *SlotMap[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.len
}

// Range calls fn once for every live (Key, value) pair, in an unspecified
// order. Range holds no lock across calls to fn; fn must not call back into
// the same SlotMap's mutating methods.
func (m *SlotMap[T]) Range(fn func(Key, T) bool) {
	m.mu.RLock()
	type pair struct {
		key   Key
		value T
	}
	pairs := make([]pair, 0, m.len)
	for i := range m.slots {
		s := &m.slots[i]
		if s.occupied {
			pairs = append(pairs, pair{key: Key{index: uint32(i), generation: s.generation}, value: s.value})
		}
	}
	m.mu.RUnlock()

	for _, p := range pairs {
		if !fn(p.key, p.value) {
			return
		}
	}
}

// RangeParallel fans fn out across GOMAXPROCS workers, one call per live
// (Key, value) pair. It blocks until every call has returned. Used by the
// egress phase of the tick loop, where every client may be updated
// independently of every other.
func (m *SlotMap[T]) RangeParallel(fn func(Key, T)) {
	m.mu.RLock()
	type pair struct {
		key   Key
		value T
	}
	pairs := make([]pair, 0, m.len)
	for i := range m.slots {
		s := &m.slots[i]
		if s.occupied {
			pairs = append(pairs, pair{key: Key{index: uint32(i), generation: s.generation}, value: s.value})
		}
	}
	m.mu.RUnlock()

	if len(pairs) == 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(pairs) {
		workers = len(pairs)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	chunk := (len(pairs) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(pairs) {
			break
		}
		end := min(start+chunk, len(pairs))
		wg.Add(1)
		go func(batch []pair) {
			defer wg.Done()
			for _, p := range batch {
				fn(p.key, p.value)
			}
		}(pairs[start:end])
	}
	wg.Wait()
}
