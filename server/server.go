// Package server ties together the client, entity and world containers
// into the fixed-rate tick loop: ingress, game logic, egress, sweep.
package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/riftcraft/rift/server/client"
	"github.com/riftcraft/rift/server/entity"
	"github.com/riftcraft/rift/server/protocol/packet"
	"github.com/riftcraft/rift/server/world"
)

// Server owns every container the tick loop touches and drives the fixed
// per-tick ingress/game-logic/egress/sweep sequence until its context is
// cancelled.
type Server struct {
	Clients  *client.Container
	Entities *entity.Entities
	Worlds   *world.WorldSet
	Config   Config
	Log      *slog.Logger

	tickRate uint32
	registry packet.RegistryCodec

	tick uint64

	closeOnce sync.Once
	closed    chan struct{}
}

// New returns a Server ready to Run, with its containers freshly
// allocated. tickRate is the fixed simulation rate in ticks per second.
func New(cfg Config, tickRate uint32, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if tickRate == 0 {
		tickRate = client.StandardTPS
	}
	return &Server{
		Clients:  client.NewContainer(),
		Entities: entity.New(),
		Worlds:   world.NewWorldSet(),
		Config:   cfg,
		Log:      log,
		tickRate: tickRate,
		registry: buildRegistry(cfg),
		closed:   make(chan struct{}),
	}
}

// TickRate returns the server's fixed simulation rate.
func (s *Server) TickRate() uint32 { return s.tickRate }

// CurrentTick returns the tick counter as of the last completed tick.
func (s *Server) CurrentTick() uint64 { return s.tick }

// Admit reports whether one more play connection may be accepted, per
// Config.MaxConnections. A login subsystem must check this before handing
// a connection a Client and inserting it into Clients; a full server
// disconnects the connection with a server-full reason instead.
func (s *Server) Admit() bool {
	return s.Clients.Len() < s.Config.MaxConnections()
}

// Run drives the tick loop at TickRate ticks per second until ctx is
// cancelled or Stop is called. It blocks until the loop exits.
func (s *Server) Run(ctx context.Context) {
	s.Config.Init(s)

	period := time.Second / time.Duration(s.tickRate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.closed:
			return
		case <-ticker.C:
			s.step()
		}
	}
}

// Stop signals Run to exit after the in-flight tick (if any) completes.
func (s *Server) Stop() {
	s.closeOnce.Do(func() { close(s.closed) })
}

// step runs one full tick: ingress, game logic, spatial reindex, egress,
// sweep. Ingress and game logic are single-threaded; egress fans out across
// GOMAXPROCS workers, each client handled by exactly one of them with
// exclusive access to that Client and read-only access to
// Clients/Entities/Worlds.
func (s *Server) step() {
	resolve := s.Entities.GetWithNetworkID

	s.Clients.Each(func(_ client.Id, c *client.Client) bool {
		c.Ingress(resolve)
		return true
	})

	s.Config.Update(s)

	s.reindexWorlds()

	deps := client.EgressDeps{
		Worlds:         s.Worlds,
		Entities:       s.Entities,
		Registry:       s.registry,
		DummyDimension: dummyDimensionIdentifier,
	}
	tick, rate := s.tick, s.tickRate
	s.Clients.EachParallel(func(_ client.Id, c *client.Client) {
		c.Egress(tick, rate, deps)
	})

	s.Worlds.Each(func(_ world.WorldId, w *world.World) bool {
		w.Players.Advance()
		w.EachChunk(func(ch *world.Chunk) { ch.ClearDirty() })
		return true
	})

	s.Entities.Each(func(_ entity.Id, e *entity.Entity) bool {
		e.OldPosition = e.Position
		e.Flags.Clear()
		return true
	})

	s.tick++
}

// reindexWorlds rebuilds every world's SpatialIndex from the entities
// currently assigned to it. Run once per tick, after game logic and before
// egress, so every client's egress pass sees a consistent snapshot.
func (s *Server) reindexWorlds() {
	byWorld := make(map[world.WorldId][]world.IndexedEntity)
	s.Entities.Each(func(_ entity.Id, e *entity.Entity) bool {
		minX, minY, minZ, maxX, maxY, maxZ := e.AABB()
		byWorld[e.World] = append(byWorld[e.World], world.IndexedEntity{
			NetworkID: e.NetworkID,
			UUID:      e.UUID,
			Kind:      e.Kind,
			Box: world.AABB{
				MinX: minX, MinY: minY, MinZ: minZ,
				MaxX: maxX, MaxY: maxY, MaxZ: maxZ,
			},
		})
		return true
	})

	s.Worlds.Each(func(id world.WorldId, w *world.World) bool {
		w.Spatial.Rebuild(byWorld[id])
		return true
	})
}
