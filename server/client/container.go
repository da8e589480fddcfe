package client

import "github.com/riftcraft/rift/server/internal/slotmap"

// Id is the stable handle to a Client inside a Container.
type Id = slotmap.Key

// Container is the generational collection of every logged-in Client a
// Server manages.
type Container struct {
	clients *slotmap.SlotMap[*Client]
}

// NewContainer returns an empty Container.
func NewContainer() *Container {
	return &Container{clients: slotmap.New[*Client]()}
}

// Insert adds c and returns its stable ID.
func (s *Container) Insert(c *Client) Id {
	return s.clients.Insert(c)
}

// Remove deletes the client at id.
func (s *Container) Remove(id Id) {
	s.clients.Remove(id)
}

// Get resolves id to its Client, if still valid.
func (s *Container) Get(id Id) (*Client, bool) {
	return s.clients.Get(id)
}

// Len returns the number of connected clients.
func (s *Container) Len() int { return s.clients.Len() }

// Each calls fn for every client, sequentially.
func (s *Container) Each(fn func(Id, *Client) bool) {
	s.clients.Range(fn)
}

// EachParallel fans fn out across workers, one call per client. Used by the
// egress phase.
func (s *Container) EachParallel(fn func(Id, *Client)) {
	s.clients.RangeParallel(fn)
}
