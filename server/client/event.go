package client

import (
	"github.com/riftcraft/rift/server/entity"
	"github.com/riftcraft/rift/server/protocol/packet"
)

// Event is a high-level, normalized client action produced by the ingress
// phase and consumed by user code via Client.PopEvent. Events are
// single-tick-lived: the queue is cleared at the top of every ingress
// phase, whether or not user code drained it.
type Event interface {
	isEvent()
}

type Movement struct {
	Position         [3]float64
	Yaw, Pitch       float32
	OnGround         bool
	DerivedVelocity  [3]float64
}

type InteractWithEntity struct {
	EntityID entity.Id
	Kind     packet.InteractKind
	Sneaking bool
}

type StartSneaking struct{}
type StopSneaking struct{}
type StartSprinting struct{}
type StopSprinting struct{}

type StartJumpWithHorse struct{ JumpBoost int32 }
type StopJumpWithHorse struct{}

type LeaveBed struct{}
type OpenHorseInventory struct{}
type StartFlyingWithElytra struct{}

type ArmSwing struct{ Hand packet.Hand }

type ChatMessage struct {
	Message   string
	Timestamp int64
}

type SettingsChanged struct{ Prev ClientInformation }

type DiggingStatus = packet.DiggingStatus

type Digging struct {
	Status   DiggingStatus
	Position [3]int32
	Face     uint8
}

type SteerBoat struct {
	LeftPaddleTurning, RightPaddleTurning bool
}

// RespawnRequest is a framework-only high-level event: it is never produced
// from a decoded wire packet, only synthesized by user code driving a
// respawn flow.
type RespawnRequest struct{}

func (Movement) isEvent()              {}
func (InteractWithEntity) isEvent()    {}
func (StartSneaking) isEvent()         {}
func (StopSneaking) isEvent()          {}
func (StartSprinting) isEvent()        {}
func (StopSprinting) isEvent()         {}
func (StartJumpWithHorse) isEvent()    {}
func (StopJumpWithHorse) isEvent()     {}
func (LeaveBed) isEvent()              {}
func (OpenHorseInventory) isEvent()    {}
func (StartFlyingWithElytra) isEvent() {}
func (ArmSwing) isEvent()              {}
func (ChatMessage) isEvent()           {}
func (SettingsChanged) isEvent()       {}
func (Digging) isEvent()               {}
func (SteerBoat) isEvent()             {}
func (RespawnRequest) isEvent()        {}

// ClientInformation mirrors the inbound client-information packet's
// settings, with Locale validated through golang.org/x/text/language
// rather than stored as a raw string.
type ClientInformation struct {
	Locale       string
	ViewDistance int32
}
