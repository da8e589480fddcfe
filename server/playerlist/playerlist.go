// Package playerlist implements the shared tab-list: a roster owned by a
// world and referenced by every client connected to it.
package playerlist

import (
	"sync"

	"github.com/google/uuid"
)

// Entry is one row of the tab-list.
type Entry struct {
	UUID        uuid.UUID
	Name        string
	GameMode    int32
	Latency     int32
	DisplayName string
}

// PlayerList is a shared, diffed roster. Add/Remove/UpdateLatency mutate it
// during the game-logic phase; Snapshot and Diff are read during egress.
type PlayerList struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]Entry
	prev    map[uuid.UUID]Entry
}

// New returns an empty PlayerList.
func New() *PlayerList {
	return &PlayerList{entries: make(map[uuid.UUID]Entry), prev: make(map[uuid.UUID]Entry)}
}

// Add inserts or replaces an entry.
func (l *PlayerList) Add(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[e.UUID] = e
}

// Remove deletes the entry for id.
func (l *PlayerList) Remove(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, id)
}

// UpdateLatency updates only the latency field of an existing entry.
func (l *PlayerList) UpdateLatency(id uuid.UUID, ms int32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[id]; ok {
		e.Latency = ms
		l.entries[id] = e
	}
}

// Snapshot returns every current entry, for a client's initial-join packet.
func (l *PlayerList) Snapshot() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	return out
}

// Diff is the set of changes since the last call to Advance: entries added
// or updated, and UUIDs removed.
type Diff struct {
	Upserted []Entry
	Removed  []uuid.UUID
}

// ComputeDiff returns the difference between the current state and the
// state as of the previous Advance call, without mutating anything.
func (l *PlayerList) ComputeDiff() Diff {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var d Diff
	for id, e := range l.entries {
		if old, ok := l.prev[id]; !ok || old != e {
			d.Upserted = append(d.Upserted, e)
		}
	}
	for id := range l.prev {
		if _, ok := l.entries[id]; !ok {
			d.Removed = append(d.Removed, id)
		}
	}
	return d
}

// Advance snapshots the current state as the baseline for the next
// ComputeDiff call. Called once per tick, after every client has read this
// tick's diff.
func (l *PlayerList) Advance() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prev = make(map[uuid.UUID]Entry, len(l.entries))
	for id, e := range l.entries {
		l.prev[id] = e
	}
}
