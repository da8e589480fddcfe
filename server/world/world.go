// Package world holds the per-world chunk grid, spatial index and player
// list that the client-update subsystem reads from every tick.
package world

import (
	"sync"

	"github.com/riftcraft/rift/server/playerlist"
)

// Dimension names a world type: its size, time behaviour and biome source.
// The core treats it as an opaque identifier; dimension semantics (terrain,
// sky, ceiling) are an external collaborator's concern.
type Dimension struct {
	Identifier string
	MinY       int32
	MaxY       int32
}

// World holds a chunk grid, a shared player list and a spatial index of
// entity AABBs for one dimension instance.
type World struct {
	mu sync.RWMutex

	Dimension Dimension
	Players   *playerlist.PlayerList
	Spatial   *SpatialIndex

	FixedTime int64
	IsFlat    bool

	chunks map[ChunkPos]*Chunk
}

// New returns an empty World for the given dimension.
func New(dim Dimension) *World {
	return &World{
		Dimension: dim,
		Players:   playerlist.New(),
		Spatial:   NewSpatialIndex(),
		chunks:    make(map[ChunkPos]*Chunk),
	}
}

// Chunk returns the chunk at pos, if loaded.
func (w *World) Chunk(pos ChunkPos) (*Chunk, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.chunks[pos]
	return c, ok
}

// SetChunk installs or replaces the chunk at its own position.
func (w *World) SetChunk(c *Chunk) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.chunks[c.pos] = c
}

// RemoveChunk evicts the chunk at pos.
func (w *World) RemoveChunk(pos ChunkPos) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.chunks, pos)
}

// EachChunk calls fn for every loaded chunk. fn must not call back into
// SetChunk/RemoveChunk.
func (w *World) EachChunk(fn func(*Chunk)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, c := range w.chunks {
		fn(c)
	}
}
