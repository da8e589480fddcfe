package client

import "github.com/go-gl/mathgl/mgl64"

// Teleport arms the teleport handshake for the client's next egress pass.
// Calling it more than once within a tick coalesces the positions: only
// the final position is sent, and exactly one handshake covers it.
//
// States: Idle (pending == 0) and Awaiting(k) (pending == k >= 1).
//   - first call this tick: pending += 1, counter += 1 (wrapping), teleportedThisTick := true
//   - subsequent calls this tick: position replaced, pending unchanged
func (c *Client) Teleport(pos mgl64.Vec3, yaw, pitch float32) {
	c.NewPosition = pos
	c.Yaw, c.Pitch = yaw, pitch

	if !c.teleportedThisTick {
		c.pendingTeleports++
		c.teleportIDCounter++ // wraps naturally on uint32 overflow
		c.teleportedThisTick = true
	}
}

// PendingTeleports reports how many teleport acknowledgements are
// outstanding.
func (c *Client) PendingTeleports() uint32 { return c.pendingTeleports }

// AcceptTeleport processes an inbound accept-teleport packet. id must equal
// counter-pending for the handshake to advance; any mismatch, or an accept
// with no teleport outstanding, is a protocol violation and disconnects the
// client.
func (c *Client) AcceptTeleport(id int32) {
	if c.pendingTeleports == 0 {
		c.log.Warn("accept-teleport with no pending teleport")
		c.Disconnect("unsolicited teleport confirmation")
		return
	}
	expected := c.teleportIDCounter - c.pendingTeleports
	if uint32(id) != expected {
		c.log.Warn("teleport id mismatch", "expected", expected, "got", id)
		c.Disconnect("teleport id mismatch")
		return
	}
	c.pendingTeleports--
}
