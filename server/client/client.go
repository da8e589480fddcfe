// Package client implements the per-client protocol state machine: the
// subsystem that translates coarse game-level state into a minimal, correct
// per-tick stream of play packets, and the inbound stream into normalized
// events.
package client

import (
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/riftcraft/rift/server/entity"
	"github.com/riftcraft/rift/server/protocol/packet"
	"github.com/riftcraft/rift/server/world"
)

// GameMode is the client's current play mode.
type GameMode int32

const (
	Survival GameMode = iota
	Creative
	Adventure
	Spectator
)

// DeathLocation names where a client last died, for the compass/"last
// death" pointer carried on the Login/Respawn packets.
type DeathLocation struct {
	Dimension string
	Position  [3]int32
}

// Client represents one logged-in remote connection: the per-tick
// simulation loop's unit of parallel work during egress.
type Client struct {
	mu sync.Mutex

	UUID     uuid.UUID
	Username string
	Textures []byte

	World world.WorldId

	NewPosition, OldPosition mgl64.Vec3
	Yaw, Pitch               float32
	OnGround                 bool

	Velocity        mgl64.Vec3
	GameMode        GameMode
	oldGameMode     GameMode
	MaxViewDistance int32
	oldViewDistance int32
	Hardcore        bool

	SpawnPosition         [3]int32
	SpawnAngle            float32
	modifiedSpawnPosition bool
	DeathLocation         *DeathLocation

	teleportIDCounter uint32
	pendingTeleports  uint32
	teleportedThisTick bool

	lastKeepAliveID int64
	gotKeepAlive    bool

	CreatedTick uint64

	LoadedChunks map[world.ChunkPos]struct{}
	// LoadedEntities maps each visible entity's stable ID to the network ID
	// it was spawned under, so a RemoveEntities packet can still be built
	// after the entity itself has been deleted from its container.
	LoadedEntities map[entity.Id]int32

	events     []Event
	msgsToSend []packet.SystemChat
	titles     []any
	dugBlocks  []int32

	spawnFlag        bool // respawn/dimension-change pending
	velocityModified bool

	PlayerEntity entity.Id
	PlayerData   *entity.PlayerData

	sneaking, sprinting, jumpingWithHorse bool

	selfEventCodes []int32

	settings ClientInformation

	codec        *packet.Codec
	disconnected bool

	log *slog.Logger
}

// New returns a Client ready to be inserted into a Clients container by the
// login subsystem, stamped with the tick it completes login on.
func New(id uuid.UUID, username string, createdTick uint64, codec *packet.Codec, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		UUID:            id,
		Username:        username,
		CreatedTick:     createdTick,
		MaxViewDistance: 10,
		oldViewDistance: 10,
		LoadedChunks:    make(map[world.ChunkPos]struct{}),
		LoadedEntities:  make(map[entity.Id]int32),
		PlayerData:      &entity.PlayerData{},
		gotKeepAlive:    true,
		codec:           codec,
		log:             log.With("player", username, "uuid", id.String()),
	}
}

// Clients is the generational container of logged-in connections, keyed by
// the same slotmap the rest of the core uses.
type Clients = Container

// Disconnected reports whether this client's outbound channel has been
// cleared — a monotone, one-way transition.
func (c *Client) Disconnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnected
}

// Disconnect clears the outbound channel handle and logs reason at warn
// level. It never panics and never propagates an error: disconnection is
// the sole error channel to the client.
func (c *Client) Disconnect(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disconnected {
		return
	}
	c.disconnected = true
	if c.codec != nil {
		c.codec.Close()
	}
	c.log.Warn("client disconnected", "reason", reason)
}

// PopEvent dequeues the oldest buffered event, FIFO. Events are
// single-tick-lived: whatever remains is discarded at the next ingress
// phase.
func (c *Client) PopEvent() (Event, bool) {
	if len(c.events) == 0 {
		return nil, false
	}
	e := c.events[0]
	c.events = c.events[1:]
	return e, true
}

func (c *Client) pushEvent(e Event) {
	c.events = append(c.events, e)
}

// SendChat queues a system-chat message for the next egress pass. Chat is
// deferred because anything sent before the login packet is discarded by
// the client.
func (c *Client) SendChat(message string) {
	c.msgsToSend = append(c.msgsToSend, packet.SystemChat{Message: message})
}

// SetTitle queues a title/subtitle/animation-times triple, deferred the
// same way chat is.
func (c *Client) SetTitle(title, subtitle string, fadeIn, stay, fadeOut int32) {
	c.titles = append(c.titles,
		packet.SetTitleText{Text: title},
		packet.SetSubtitleText{Text: subtitle},
		packet.SetTitleAnimationTimes{FadeIn: fadeIn, Stay: stay, FadeOut: fadeOut},
	)
}

// ClearTitle queues a clear-titles packet.
func (c *Client) ClearTitle() {
	c.titles = append(c.titles, packet.ClearTitles{Reset: true})
}

// SetSpawnPosition updates the compass target and marks it modified for
// the next spawn-position packet.
func (c *Client) SetSpawnPosition(pos [3]int32, angle float32) {
	c.SpawnPosition = pos
	c.SpawnAngle = angle
	c.modifiedSpawnPosition = true
}

// SetVelocity updates the client's server-side velocity and marks it
// modified.
func (c *Client) SetVelocity(v mgl64.Vec3) {
	c.Velocity = v
	c.velocityModified = true
}

// SetAttackSpeed updates the client's attack-speed attribute.
func (c *Client) SetAttackSpeed(v float64) {
	c.PlayerData.SetAttackSpeed(v)
}

// SetMovementSpeed updates the client's movement-speed attribute.
func (c *Client) SetMovementSpeed(v float64) {
	c.PlayerData.SetMovementSpeed(v)
}

// Spawn moves the client to a different world, arming the respawn/
// dimension-change sequence for the next egress pass.
func (c *Client) Spawn(w world.WorldId, pos mgl64.Vec3, yaw, pitch float32) {
	c.World = w
	c.NewPosition = pos
	c.Yaw, c.Pitch = yaw, pitch
	c.spawnFlag = true
}

// PushSelfEvent queues an entity-event code for the client's own player
// data, emitted during step 22 of egress. Animation codes are suppressed
// for self since they have no visual effect on the owning client.
func (c *Client) PushSelfEvent(code int32) {
	c.selfEventCodes = append(c.selfEventCodes, code)
}

// SetGameMode updates the client's game mode, diffed against the previous
// tick's value at egress time.
func (c *Client) SetGameMode(m GameMode) {
	c.GameMode = m
}

// SetMaxViewDistance clamps and sets the client's view distance.
func (c *Client) SetMaxViewDistance(chunks int32) {
	if chunks < 2 {
		chunks = 2
	}
	if chunks > 32 {
		chunks = 32
	}
	c.MaxViewDistance = chunks
}

// Codec exposes the outbound codec for the network-writer goroutine.
func (c *Client) Codec() *packet.Codec { return c.codec }

func (c *Client) trySend(pkt packet.S2cPlayPacket) bool {
	if c.disconnected {
		return false
	}
	if err := c.codec.TrySend(pkt); err != nil {
		c.log.Warn("outbound buffer full, disconnecting", "err", err)
		c.Disconnect("outbound buffer full")
		return false
	}
	return true
}
