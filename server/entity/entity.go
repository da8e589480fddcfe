// Package entity implements the generational container of server-side
// actors: players' own bodies, markers, projectiles and the like.
package entity

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/riftcraft/rift/server/internal/slotmap"
	"github.com/riftcraft/rift/server/world"
)

// Id is the stable handle to an Entity inside an Entities container. It
// survives across ticks; a NetworkID does not survive a delete/recreate at
// the same index.
type Id = slotmap.Key

// Flags is a compact per-entity dirty bitfield, cheaper and less
// error-prone than shadowing every field to detect what changed.
type Flags struct {
	YawOrPitchModified bool
	HeadYawModified    bool
	VelocityModified   bool
	EventCodes         []int32
}

// Clear resets every flag and drains pending event codes, run once per tick
// during the sweep phase.
func (f *Flags) Clear() {
	f.YawOrPitchModified = false
	f.HeadYawModified = false
	f.VelocityModified = false
	f.EventCodes = nil
}

// PushEvent queues an entity-event code for emission during the next
// egress pass (EntityEvent if <= EntityEventMaxBound, Animate otherwise).
func (f *Flags) PushEvent(code int32) {
	f.EventCodes = append(f.EventCodes, code)
}

// EntityEventMaxBound is the boundary between the two wire packets encoding
// entity-event codes: values at or below it use EntityEvent, values above
// use Animate.
const EntityEventMaxBound = 63

// Entity is one server-side actor.
type Entity struct {
	Kind string
	Data any // typed per-kind user state, opaque to the core

	UUID      uuid.UUID
	NetworkID int32
	World     world.WorldId

	Position, OldPosition mgl64.Vec3
	Yaw, Pitch             float32
	HeadYaw                float32
	Velocity               mgl64.Vec3
	OnGround               bool

	Flags Flags
}

// AABB returns a fixed-size hitbox centered on Position, used only for
// spatial-index queries; real per-kind collision geometry is an external
// collaborator's concern.
func (e *Entity) AABB() (minX, minY, minZ, maxX, maxY, maxZ float64) {
	const halfWidth, height = 0.3, 1.8
	return e.Position.X() - halfWidth, e.Position.Y(), e.Position.Z() - halfWidth,
		e.Position.X() + halfWidth, e.Position.Y() + height, e.Position.Z() + halfWidth
}
