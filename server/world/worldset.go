package world

import (
	"github.com/riftcraft/rift/server/internal/slotmap"
)

// WorldId is a stable handle to a World inside a WorldSet.
type WorldId = slotmap.Key

// WorldSet is the generational collection of every World a Server manages.
type WorldSet struct {
	worlds *slotmap.SlotMap[*World]
}

// NewWorldSet returns an empty WorldSet.
func NewWorldSet() *WorldSet {
	return &WorldSet{worlds: slotmap.New[*World]()}
}

// Insert adds w to the set and returns its stable ID.
func (s *WorldSet) Insert(w *World) WorldId {
	return s.worlds.Insert(w)
}

// Get resolves a WorldId to its World, if still valid.
func (s *WorldSet) Get(id WorldId) (*World, bool) {
	return s.worlds.Get(id)
}

// Remove deletes the world at id.
func (s *WorldSet) Remove(id WorldId) {
	s.worlds.Remove(id)
}

// Each calls fn for every world in the set.
func (s *WorldSet) Each(fn func(WorldId, *World) bool) {
	s.worlds.Range(fn)
}
