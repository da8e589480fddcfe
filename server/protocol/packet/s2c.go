// Package packet defines the server<->client play-state packet sum types
// and the bounded-channel codec that moves them between the tick thread and
// a client's network goroutine.
package packet

import (
	"github.com/google/uuid"

	"github.com/riftcraft/rift/server/playerlist"
	"github.com/riftcraft/rift/server/world"
)

// S2cPlayPacket is implemented by every server-to-client play packet.
// Go has no enum-of-structs; a sealed marker method is the idiomatic
// substitute.
type S2cPlayPacket interface {
	isS2cPlayPacket()
}

// RegistryCodec is the merged catalogue of dimensions, biomes, the
// synthetic chat-type registry and the dummy respawn-bounce dimension, sent
// once as part of Login.
type RegistryCodec struct {
	Dimensions []world.Dimension
	Biomes     []string
	ChatTypes  []string
	DummyDim   string
}

type Login struct {
	EntityID        int32
	Registry        RegistryCodec
	Dimension       string
	GameMode        int32
	Hardcore        bool
	ViewDistance    int32
	LastDeathDim    string
	LastDeathPos    [3]int32
	HasLastDeath    bool
}

type Respawn struct {
	Dimension string
	GameMode  int32
	Hardcore  bool
}

type GameEvent struct {
	Event int32
	Value float32
}

type UpdateAttributes struct {
	EntityID   int32
	AttackSpeed, MovementSpeed *float64
}

type SetDefaultSpawnPosition struct {
	Position [3]int32
	Angle    float32
}

type SetChunkCacheRadius struct {
	Radius int32
}

type SetChunkCacheCenter struct {
	ChunkX, ChunkZ int32
}

type KeepAlive struct {
	ID int64
}

type ForgetLevelChunk struct {
	ChunkX, ChunkZ int32
}

type ChunkData struct {
	ChunkX, ChunkZ int32
	States         []uint16
}

type BlockUpdate struct {
	ChunkX, ChunkZ int32
	X, Y, Z        int32
	State           uint16
}

type SectionBlocksUpdate struct {
	ChunkX, ChunkZ int32
	Changes        []world.BlockChange
}

type BlockChangedAck struct {
	Sequence int32
}

type PlayerPosition struct {
	Position             [3]float64
	Yaw, Pitch           float32
	TeleportID           int32
}

type SetEntityMotion struct {
	EntityID int32
	Vx, Vy, Vz int16
}

type SystemChat struct {
	Message   string
	Overlay   bool
}

type MoveEntityPos struct {
	EntityID       int32
	Dx, Dy, Dz     int16
	OnGround       bool
}

type MoveEntityPosRot struct {
	EntityID   int32
	Dx, Dy, Dz int16
	Yaw, Pitch uint8
	OnGround   bool
}

type MoveEntityRot struct {
	EntityID   int32
	Yaw, Pitch uint8
	OnGround   bool
}

type TeleportEntity struct {
	EntityID   int32
	Position   [3]float64
	Yaw, Pitch uint8
	OnGround   bool
}

type RotateHead struct {
	EntityID int32
	HeadYaw  uint8
}

type SetEntityMetadata struct {
	EntityID int32
	Health   float32
	Hunger   int32
	Flags    uint8
}

type RemoveEntities struct {
	EntityIDs []int32
}

type EntityEvent struct {
	EntityID int32
	Code     int8
}

type Animate struct {
	EntityID int32
	Action   uint8
}

type SpawnEntity struct {
	EntityID int32
	UUID     uuid.UUID
	Kind     string
	Position [3]float64
	Yaw, Pitch uint8
}

type Disconnect struct {
	Reason string
}

type PlayerInfoUpdate struct {
	Entries []playerlist.Entry
}

type PlayerInfoRemove struct {
	UUIDs []uuid.UUID
}

func (PlayerInfoUpdate) isS2cPlayPacket() {}
func (PlayerInfoRemove) isS2cPlayPacket() {}

type SetTitleText struct{ Text string }
type SetSubtitleText struct{ Text string }
type SetTitleAnimationTimes struct{ FadeIn, Stay, FadeOut int32 }
type ClearTitles struct{ Reset bool }

func (Login) isS2cPlayPacket()                  {}
func (Respawn) isS2cPlayPacket()                {}
func (GameEvent) isS2cPlayPacket()              {}
func (UpdateAttributes) isS2cPlayPacket()       {}
func (SetDefaultSpawnPosition) isS2cPlayPacket(){}
func (SetChunkCacheRadius) isS2cPlayPacket()    {}
func (SetChunkCacheCenter) isS2cPlayPacket()    {}
func (KeepAlive) isS2cPlayPacket()              {}
func (ForgetLevelChunk) isS2cPlayPacket()       {}
func (ChunkData) isS2cPlayPacket()              {}
func (BlockUpdate) isS2cPlayPacket()            {}
func (SectionBlocksUpdate) isS2cPlayPacket()    {}
func (BlockChangedAck) isS2cPlayPacket()        {}
func (PlayerPosition) isS2cPlayPacket()         {}
func (SetEntityMotion) isS2cPlayPacket()        {}
func (SystemChat) isS2cPlayPacket()             {}
func (MoveEntityPos) isS2cPlayPacket()          {}
func (MoveEntityPosRot) isS2cPlayPacket()       {}
func (MoveEntityRot) isS2cPlayPacket()          {}
func (TeleportEntity) isS2cPlayPacket()         {}
func (RotateHead) isS2cPlayPacket()             {}
func (SetEntityMetadata) isS2cPlayPacket()      {}
func (RemoveEntities) isS2cPlayPacket()         {}
func (EntityEvent) isS2cPlayPacket()            {}
func (Animate) isS2cPlayPacket()                {}
func (SpawnEntity) isS2cPlayPacket()            {}
func (Disconnect) isS2cPlayPacket()             {}
func (SetTitleText) isS2cPlayPacket()           {}
func (SetSubtitleText) isS2cPlayPacket()        {}
func (SetTitleAnimationTimes) isS2cPlayPacket() {}
func (ClearTitles) isS2cPlayPacket()            {}
