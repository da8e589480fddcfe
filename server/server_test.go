package server

import (
	"context"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/riftcraft/rift/server/client"
	"github.com/riftcraft/rift/server/protocol/packet"
	"github.com/riftcraft/rift/server/world"
)

type testConfig struct {
	maxConns   int
	updateHits int
	onUpdate   func(*Server)
}

func (c *testConfig) MaxConnections() int              { return c.maxConns }
func (c *testConfig) OnlineMode() bool                  { return false }
func (c *testConfig) Dimensions() []world.Dimension     { return nil }
func (c *testConfig) Biomes() []string                  { return nil }
func (c *testConfig) ServerListPing(string) PingResponse { return Respond }
func (c *testConfig) Init(*Server)                       {}
func (c *testConfig) Update(s *Server) {
	c.updateHits++
	if c.onUpdate != nil {
		c.onUpdate(s)
	}
}

func TestBuildRegistryAppendsDefaultPlainsBiome(t *testing.T) {
	cfg := &testConfig{maxConns: 10}
	reg := buildRegistry(cfg)
	found := false
	for _, b := range reg.Biomes {
		if b == "minecraft:plains" {
			found = true
		}
	}
	if !found {
		t.Fatal("registry missing default plains biome")
	}
	if reg.DummyDim != dummyDimensionIdentifier {
		t.Fatalf("DummyDim = %q; want %q", reg.DummyDim, dummyDimensionIdentifier)
	}
}

func TestAdmitRejectsAtMaxConnections(t *testing.T) {
	cfg := &testConfig{maxConns: 1}
	s := New(cfg, 20, nil)
	if !s.Admit() {
		t.Fatal("expected Admit() to allow the first connection")
	}
	s.Clients.Insert(client.New(uuid.New(), "steve", 0, packet.NewCodec(8, 8), nil))
	if s.Admit() {
		t.Fatal("expected Admit() to reject once at MaxConnections")
	}
}

func TestStepRunsUpdateAndAdvancesTick(t *testing.T) {
	cfg := &testConfig{maxConns: 10}
	s := New(cfg, 20, nil)
	w := world.New(world.Dimension{Identifier: "overworld"})
	wid := s.Worlds.Insert(w)

	c := client.New(uuid.New(), "steve", 0, packet.NewCodec(256, 64), nil)
	c.World = wid
	c.NewPosition = mgl64.Vec3{0, 0, 0}
	s.Clients.Insert(c)

	if s.CurrentTick() != 0 {
		t.Fatalf("CurrentTick() = %d before any step; want 0", s.CurrentTick())
	}
	s.step()
	if cfg.updateHits != 1 {
		t.Fatalf("Update called %d times; want 1", cfg.updateHits)
	}
	if s.CurrentTick() != 1 {
		t.Fatalf("CurrentTick() = %d after one step; want 1", s.CurrentTick())
	}

	var sawLogin bool
	for {
		select {
		case p := <-c.Codec().Outbound():
			if _, ok := p.(packet.Login); ok {
				sawLogin = true
			}
		default:
			goto done
		}
	}
done:
	if !sawLogin {
		t.Fatal("expected a Login packet on the client's first tick")
	}
}

func TestRunStopsOnStopCall(t *testing.T) {
	cfg := &testConfig{maxConns: 10}
	s := New(cfg, 200, nil)

	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	s.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	if cfg.updateHits == 0 {
		t.Fatal("expected at least one tick to have run")
	}
}

func TestReindexWorldsGroupsEntitiesByWorld(t *testing.T) {
	cfg := &testConfig{maxConns: 10}
	s := New(cfg, 20, nil)
	w := world.New(world.Dimension{Identifier: "overworld"})
	wid := s.Worlds.Insert(w)

	_, ent := s.Entities.Create("zombie", nil)
	ent.World = wid
	ent.Position = mgl64.Vec3{5, 0, 5}

	s.reindexWorlds()

	res := w.Spatial.Query(5, 5, 1)
	if len(res) != 1 {
		t.Fatalf("Query found %d entities; want 1", len(res))
	}
}
