package client

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/riftcraft/rift/server/entity"
	"github.com/riftcraft/rift/server/playerlist"
	"github.com/riftcraft/rift/server/protocol/packet"
	"github.com/riftcraft/rift/server/world"
)

// cacheRadiusExtra is the hysteresis added to view distance when deciding
// whether to retain an already-loaded chunk, avoiding reload flicker when a
// client oscillates across a chunk boundary.
const cacheRadiusExtra = 2

// keepAlivePeriodMultiplier ticks between keep-alive probes is tickRate * 8.
const keepAlivePeriodMultiplier = 8

// EgressDeps bundles the read-only shared state an egress pass consults.
// During the egress phase every worker holds exclusive access to exactly
// one Client and only read-only access to these.
type EgressDeps struct {
	Worlds         *world.WorldSet
	Entities       *entity.Entities
	Registry       packet.RegistryCodec
	DummyDimension string
}

func chunkPosOf(x, z float64) world.ChunkPos {
	return world.ChunkPos{X: int32(math.Floor(x / 16)), Z: int32(math.Floor(z / 16))}
}

// Egress runs the full per-tick outbound sequence for this client. The
// ordering is contractual: some packets only take effect when sequenced
// correctly relative to others.
func (c *Client) Egress(tick uint64, tickRate uint32, deps EgressDeps) {
	// 1. Disconnection detection.
	if c.disconnected || c.codec == nil {
		return
	}

	// 2. World resolution.
	w, ok := deps.Worlds.Get(c.World)
	if !ok {
		c.log.Warn("invalid world reference")
		c.Disconnect("invalid world")
		return
	}

	initialJoin := c.CreatedTick == tick
	var respawned bool

	// 3. Initial join.
	if initialJoin {
		w.Players.Add(playerListEntry(c))
		entry := packet.Login{
			EntityID:     0,
			Registry:     deps.Registry,
			Dimension:    w.Dimension.Identifier,
			GameMode:     int32(c.GameMode),
			Hardcore:     c.Hardcore,
			ViewDistance: c.MaxViewDistance,
		}
		if c.DeathLocation != nil {
			entry.HasLastDeath = true
			entry.LastDeathDim = c.DeathLocation.Dimension
			entry.LastDeathPos = c.DeathLocation.Position
		}
		if !c.trySend(entry) {
			return
		}
		if snapshot := w.Players.Snapshot(); len(snapshot) > 0 {
			if !c.trySend(packet.PlayerInfoUpdate{Entries: snapshot}) {
				return
			}
		}
		c.oldGameMode = c.GameMode
		c.oldViewDistance = c.MaxViewDistance
		c.Teleport(c.NewPosition, c.Yaw, c.Pitch)
	} else if c.spawnFlag {
		// 4. Respawn / dimension change.
		clear(c.LoadedChunks)
		clear(c.LoadedEntities)
		if !c.trySend(packet.Respawn{Dimension: deps.DummyDimension, GameMode: int32(c.GameMode), Hardcore: c.Hardcore}) {
			return
		}
		if !c.trySend(packet.Respawn{Dimension: w.Dimension.Identifier, GameMode: int32(c.GameMode), Hardcore: c.Hardcore}) {
			return
		}
		c.Teleport(c.NewPosition, c.Yaw, c.Pitch)
		c.spawnFlag = false
		respawned = true
	}

	// 5. Game-mode change packet.
	if c.oldGameMode != c.GameMode {
		if !c.trySend(packet.GameEvent{Event: 3, Value: float32(c.GameMode)}) {
			return
		}
		c.oldGameMode = c.GameMode
	}

	// 6. Player-list diff packet.
	c.sendPlayerListDiff(w)

	// 7. Attribute packets.
	if c.PlayerData.AttackSpeedModified() {
		v := c.PlayerData.AttackSpeed
		if !c.trySend(packet.UpdateAttributes{EntityID: 0, AttackSpeed: &v}) {
			return
		}
	}
	if c.PlayerData.MovementSpeedModified() {
		v := c.PlayerData.MovementSpeed
		if !c.trySend(packet.UpdateAttributes{EntityID: 0, MovementSpeed: &v}) {
			return
		}
	}

	// 8. Spawn-position packet.
	if c.modifiedSpawnPosition {
		if !c.trySend(packet.SetDefaultSpawnPosition{Position: c.SpawnPosition, Angle: c.SpawnAngle}) {
			return
		}
	}

	// 9. View-distance packet.
	if !initialJoin && c.oldViewDistance != c.MaxViewDistance {
		if !c.trySend(packet.SetChunkCacheRadius{Radius: c.MaxViewDistance}) {
			return
		}
		c.oldViewDistance = c.MaxViewDistance
	}

	// 10. Keep-alive (not on the join tick: the first probe comes at the
	// next period boundary).
	if !initialJoin && tick%(uint64(tickRate)*keepAlivePeriodMultiplier) == 0 {
		if c.gotKeepAlive {
			c.lastKeepAliveID = rand.Int64()
			c.gotKeepAlive = false
			if !c.trySend(packet.KeepAlive{ID: c.lastKeepAliveID}) {
				return
			}
		} else {
			c.log.Warn("keep-alive timeout")
			c.Disconnect("keep-alive timeout")
			return
		}
	}

	// 11. Chunk-center tracking (the packet itself is sent after loading, so
	// a dimension change delivers chunk-data before its cache-center update).
	oldCenter := chunkPosOf(c.OldPosition.X(), c.OldPosition.Z())
	newCenter := chunkPosOf(c.NewPosition.X(), c.NewPosition.Z())
	centerChanged := oldCenter != newCenter || respawned

	// 12. Chunk retention.
	retainRadius := c.MaxViewDistance + cacheRadiusExtra
	for pos := range c.LoadedChunks {
		ch, exists := w.Chunk(pos)
		if exists && pos.DistanceChebyshev(newCenter) <= retainRadius && ch.CreatedTick() != tick {
			if changes := ch.BlockChanges(); len(changes) > 0 {
				if !c.trySend(packet.SectionBlocksUpdate{ChunkX: pos.X, ChunkZ: pos.Z, Changes: changes}) {
					return
				}
			}
			continue
		}
		delete(c.LoadedChunks, pos)
		if !c.trySend(packet.ForgetLevelChunk{ChunkX: pos.X, ChunkZ: pos.Z}) {
			return
		}
	}

	// 13. Chunk loading.
	vd := c.MaxViewDistance
	for dx := -vd; dx <= vd; dx++ {
		for dz := -vd; dz <= vd; dz++ {
			pos := newCenter.Add(dx, dz)
			if _, already := c.LoadedChunks[pos]; already {
				continue
			}
			ch, exists := w.Chunk(pos)
			if !exists {
				continue
			}
			c.LoadedChunks[pos] = struct{}{}
			if !c.trySend(packet.ChunkData{ChunkX: pos.X, ChunkZ: pos.Z, States: snapshotChunkStates(ch)}) {
				return
			}
			if changes := ch.BlockChanges(); len(changes) > 0 {
				if !c.trySend(packet.SectionBlocksUpdate{ChunkX: pos.X, ChunkZ: pos.Z, Changes: changes}) {
					return
				}
			}
		}
	}

	if centerChanged {
		if !c.trySend(packet.SetChunkCacheCenter{ChunkX: newCenter.X, ChunkZ: newCenter.Z}) {
			return
		}
	}

	// 14. Dig acknowledgements.
	for _, seq := range c.dugBlocks {
		if !c.trySend(packet.BlockChangedAck{Sequence: seq}) {
			return
		}
	}
	c.dugBlocks = c.dugBlocks[:0]

	// 15. Teleport packet.
	if c.teleportedThisTick {
		teleportID := int32(c.teleportIDCounter - 1)
		if !c.trySend(packet.PlayerPosition{
			Position:   [3]float64{c.NewPosition.X(), c.NewPosition.Y(), c.NewPosition.Z()},
			Yaw:        c.Yaw,
			Pitch:      c.Pitch,
			TeleportID: teleportID,
		}) {
			return
		}
		c.teleportedThisTick = false
	}

	// 16. Velocity packet.
	if c.velocityModified {
		if !c.trySend(packet.SetEntityMotion{
			EntityID: 0,
			Vx:       velocityUnits(c.Velocity.X(), tickRate),
			Vy:       velocityUnits(c.Velocity.Y(), tickRate),
			Vz:       velocityUnits(c.Velocity.Z(), tickRate),
		}) {
			return
		}
	}

	// 17. Chat messages.
	for _, msg := range c.msgsToSend {
		if !c.trySend(msg) {
			return
		}
	}
	c.msgsToSend = c.msgsToSend[:0]
	for _, t := range c.titles {
		if !c.trySend(t.(packet.S2cPlayPacket)) {
			return
		}
	}
	c.titles = c.titles[:0]

	// 18. Visible-entity update + 19. bulk unload.
	var removed []int32
	viewBlocks := float64(c.MaxViewDistance) * 16
	for id, networkID := range c.LoadedEntities {
		ent, exists := deps.Entities.Get(id)
		if !exists || distance(c.NewPosition, ent.Position) > viewBlocks {
			delete(c.LoadedEntities, id)
			removed = append(removed, networkID)
			continue
		}
		if !c.emitEntityDiff(ent) {
			return
		}
	}
	if len(removed) > 0 {
		if !c.trySend(packet.RemoveEntities{EntityIDs: removed}) {
			return
		}
	}

	// 20. Self-metadata.
	if !c.trySend(packet.SetEntityMetadata{
		EntityID: 0,
		Health:   c.PlayerData.Health,
		Hunger:   c.PlayerData.Hunger,
		Flags:    selfMetaFlags(c),
	}) {
		return
	}

	// 21. Entity discovery.
	entries := w.Spatial.Query(c.NewPosition.X(), c.NewPosition.Z(), viewBlocks)
	for _, ie := range entries {
		if ie.Kind == "marker" || ie.UUID == c.UUID {
			continue
		}
		id, exists := deps.Entities.GetWithNetworkID(ie.NetworkID)
		if !exists {
			continue
		}
		if _, already := c.LoadedEntities[id]; already {
			continue
		}
		c.LoadedEntities[id] = ie.NetworkID
		ent, ok := deps.Entities.Get(id)
		if !ok {
			continue
		}
		if !c.trySend(packet.SpawnEntity{
			EntityID: ent.NetworkID,
			UUID:     ent.UUID,
			Kind:     ent.Kind,
			Position: [3]float64{ent.Position.X(), ent.Position.Y(), ent.Position.Z()},
			Yaw:      angleByte(ent.Yaw),
			Pitch:    angleByte(ent.Pitch),
		}) {
			return
		}
		for _, code := range ent.Flags.EventCodes {
			if !c.sendEntityEvent(ent.NetworkID, code) {
				return
			}
		}
	}

	// 22. Self-event codes (suppressing animation codes for self).
	for _, code := range c.selfEventCodes {
		if code > entity.EntityEventMaxBound {
			continue
		}
		if !c.trySend(packet.EntityEvent{EntityID: 0, Code: int8(code)}) {
			return
		}
	}
	c.selfEventCodes = c.selfEventCodes[:0]

	// 23. Sweep.
	c.PlayerData.ClearModifications()
	c.velocityModified = false
	c.OldPosition = c.NewPosition
}

func (c *Client) emitEntityDiff(ent *entity.Entity) bool {
	dx := ent.Position.X() - ent.OldPosition.X()
	dy := ent.Position.Y() - ent.OldPosition.Y()
	dz := ent.Position.Z() - ent.OldPosition.Z()
	moved := dx != 0 || dy != 0 || dz != 0
	rotated := ent.Flags.YawOrPitchModified

	if overflowsDelta(dx) || overflowsDelta(dy) || overflowsDelta(dz) {
		if !c.trySend(packet.TeleportEntity{
			EntityID: ent.NetworkID,
			Position: [3]float64{ent.Position.X(), ent.Position.Y(), ent.Position.Z()},
			Yaw:      angleByte(ent.Yaw),
			Pitch:    angleByte(ent.Pitch),
			OnGround: ent.OnGround,
		}) {
			return false
		}
	} else if moved && rotated {
		if !c.trySend(packet.MoveEntityPosRot{
			EntityID: ent.NetworkID,
			Dx:       fixedDelta(dx), Dy: fixedDelta(dy), Dz: fixedDelta(dz),
			Yaw: angleByte(ent.Yaw), Pitch: angleByte(ent.Pitch),
			OnGround: ent.OnGround,
		}) {
			return false
		}
	} else if moved {
		if !c.trySend(packet.MoveEntityPos{
			EntityID: ent.NetworkID,
			Dx:       fixedDelta(dx), Dy: fixedDelta(dy), Dz: fixedDelta(dz),
			OnGround: ent.OnGround,
		}) {
			return false
		}
	} else if rotated {
		if !c.trySend(packet.MoveEntityRot{
			EntityID: ent.NetworkID,
			Yaw:      angleByte(ent.Yaw), Pitch: angleByte(ent.Pitch),
			OnGround: ent.OnGround,
		}) {
			return false
		}
	}

	if ent.Flags.HeadYawModified {
		if !c.trySend(packet.RotateHead{EntityID: ent.NetworkID, HeadYaw: angleByte(ent.HeadYaw)}) {
			return false
		}
	}
	if ent.Flags.VelocityModified {
		if !c.trySend(packet.SetEntityMotion{
			EntityID: ent.NetworkID,
			Vx:       velocityUnits(ent.Velocity.X(), StandardTPS),
			Vy:       velocityUnits(ent.Velocity.Y(), StandardTPS),
			Vz:       velocityUnits(ent.Velocity.Z(), StandardTPS),
		}) {
			return false
		}
	}
	for _, code := range ent.Flags.EventCodes {
		if !c.sendEntityEvent(ent.NetworkID, code) {
			return false
		}
	}
	return true
}

func (c *Client) sendEntityEvent(networkID int32, code int32) bool {
	if code <= entity.EntityEventMaxBound {
		return c.trySend(packet.EntityEvent{EntityID: networkID, Code: int8(code)})
	}
	return c.trySend(packet.Animate{EntityID: networkID, Action: uint8(code)})
}

func distance(a, b mgl64.Vec3) float64 {
	d := a.Sub(b)
	return math.Sqrt(d.X()*d.X() + d.Y()*d.Y() + d.Z()*d.Z())
}

func snapshotChunkStates(ch *world.Chunk) []uint16 {
	states := ch.States()
	out := make([]uint16, len(states))
	copy(out, states)
	return out
}

func selfMetaFlags(c *Client) uint8 {
	var f uint8
	if c.PlayerData.Invisible {
		f |= 1 << 5
	}
	if c.PlayerData.Glowing {
		f |= 1 << 6
	}
	return f
}

func playerListEntry(c *Client) playerlist.Entry {
	return playerlist.Entry{UUID: c.UUID, Name: c.Username, GameMode: int32(c.GameMode)}
}

// sendPlayerListDiff emits the tab-list delta accumulated since the
// previous tick. The world's PlayerList is finalized before egress begins
// (per the concurrency model, shared containers are read-only during this
// phase), so every client observes the same diff.
func (c *Client) sendPlayerListDiff(w *world.World) {
	d := w.Players.ComputeDiff()
	if len(d.Upserted) > 0 {
		c.trySend(packet.PlayerInfoUpdate{Entries: d.Upserted})
	}
	if len(d.Removed) > 0 {
		c.trySend(packet.PlayerInfoRemove{UUIDs: d.Removed})
	}
}
