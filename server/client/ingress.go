package client

import (
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/text/language"

	"github.com/riftcraft/rift/server/entity"
	"github.com/riftcraft/rift/server/protocol/packet"
)

// StandardTPS is the framework's fixed simulation rate.
const StandardTPS = 20

// ClearEvents discards whatever remains in the event queue. Called at the
// top of every ingress phase before draining new inbound packets — events
// are single-tick-lived.
func (c *Client) ClearEvents() {
	c.events = c.events[:0]
}

// Ingress drains every packet currently queued on the client's codec (the
// length sampled once at phase start) and translates it into zero or more
// high-level Events, per the inbound translation table.
func (c *Client) Ingress(resolve func(networkID int32) (entity.Id, bool)) {
	c.ClearEvents()
	if c.codec == nil {
		return
	}
	c.codec.DrainInbound(func(pkt packet.C2sPlayPacket) {
		c.handleInbound(pkt, resolve)
	})
}

func (c *Client) handleInbound(pkt packet.C2sPlayPacket, resolve func(int32) (entity.Id, bool)) {
	if c.disconnected {
		return
	}
	switch p := pkt.(type) {
	case packet.AcceptTeleportation:
		c.AcceptTeleport(p.TeleportID)

	case packet.MovePlayer:
		if c.pendingTeleports > 0 {
			return
		}
		old := c.NewPosition
		if p.Kind == packet.MovePositionOnly || p.Kind == packet.MovePositionAndRotation {
			c.NewPosition = mgl64.Vec3{p.Position[0], p.Position[1], p.Position[2]}
		}
		if p.Kind == packet.MoveRotationOnly || p.Kind == packet.MovePositionAndRotation {
			c.Yaw, c.Pitch = p.Yaw, p.Pitch
		}
		c.OnGround = p.OnGround
		delta := c.NewPosition.Sub(old)
		velocity := [3]float64{delta.X() * StandardTPS, delta.Y() * StandardTPS, delta.Z() * StandardTPS}
		c.pushEvent(Movement{
			Position:        [3]float64{c.NewPosition.X(), c.NewPosition.Y(), c.NewPosition.Z()},
			Yaw:             c.Yaw,
			Pitch:           c.Pitch,
			OnGround:        c.OnGround,
			DerivedVelocity: velocity,
		})

	case packet.Interact:
		if id, ok := resolve(p.EntityID); ok {
			c.pushEvent(InteractWithEntity{EntityID: id, Kind: p.Kind, Sneaking: p.Sneaking})
		}

	case packet.PlayerCommand:
		c.handlePlayerCommand(p)

	case packet.KeepAliveResponse:
		if c.gotKeepAlive {
			c.log.Warn("unsolicited keep-alive response")
			c.Disconnect("unsolicited keep-alive")
			return
		}
		if p.ID != c.lastKeepAliveID {
			c.log.Warn("keep-alive id mismatch")
			c.Disconnect("keep-alive id mismatch")
			return
		}
		c.gotKeepAlive = true

	case packet.ChatMessage:
		c.pushEvent(ChatMessage{Message: p.Message, Timestamp: p.Timestamp})

	case packet.ClientInformation:
		prev := c.settings
		tag, err := language.Parse(p.Locale)
		locale := p.Locale
		if err != nil {
			tag = language.Und
			locale = tag.String()
		}
		c.settings = ClientInformation{Locale: tag.String(), ViewDistance: p.ViewDistance}
		_ = locale
		c.pushEvent(SettingsChanged{Prev: prev})

	case packet.PlayerAction:
		c.dugBlocks = append(c.dugBlocks, p.Sequence)
		c.pushEvent(Digging{Status: p.Status, Position: p.Position, Face: p.Face})

	case packet.SwingArm:
		c.pushEvent(ArmSwing{Hand: p.Hand})

	case packet.PaddleBoat:
		c.pushEvent(SteerBoat{LeftPaddleTurning: p.LeftPaddleTurning, RightPaddleTurning: p.RightPaddleTurning})

	default:
		// Other inbound variants (move-vehicle, etc.) are ignored.
	}
}

func (c *Client) handlePlayerCommand(p packet.PlayerCommand) {
	switch p.Action {
	case packet.CmdStartSneaking:
		if !c.sneaking {
			c.sneaking = true
			c.pushEvent(StartSneaking{})
		}
	case packet.CmdStopSneaking:
		if c.sneaking {
			c.sneaking = false
			c.pushEvent(StopSneaking{})
		}
	case packet.CmdStartSprinting:
		if !c.sprinting {
			c.sprinting = true
			c.pushEvent(StartSprinting{})
		}
	case packet.CmdStopSprinting:
		if c.sprinting {
			c.sprinting = false
			c.pushEvent(StopSprinting{})
		}
	case packet.CmdStartJumpWithHorse:
		if !c.jumpingWithHorse {
			c.jumpingWithHorse = true
			c.pushEvent(StartJumpWithHorse{JumpBoost: p.JumpBoost})
		}
	case packet.CmdStopJumpWithHorse:
		if c.jumpingWithHorse {
			c.jumpingWithHorse = false
			c.pushEvent(StopJumpWithHorse{})
		}
	case packet.CmdLeaveBed:
		c.pushEvent(LeaveBed{})
	case packet.CmdOpenHorseInventory:
		c.pushEvent(OpenHorseInventory{})
	case packet.CmdStartFlyingWithElytra:
		c.pushEvent(StartFlyingWithElytra{})
	}
}
