package packet

// C2sPlayPacket is implemented by every client-to-server play packet.
type C2sPlayPacket interface {
	isC2sPlayPacket()
}

type AcceptTeleportation struct {
	TeleportID int32
}

// MoveKind distinguishes the four wire variants of client movement, which
// the core treats uniformly once decoded.
type MoveKind uint8

const (
	MovePositionOnly MoveKind = iota
	MovePositionAndRotation
	MoveRotationOnly
	MoveStatusOnly
)

type MovePlayer struct {
	Kind             MoveKind
	Position         [3]float64
	Yaw, Pitch       float32
	OnGround         bool
}

type MoveVehicle struct {
	Position   [3]float64
	Yaw, Pitch float32
}

// InteractKind distinguishes the interact packet's sub-actions.
type InteractKind uint8

const (
	InteractAttack InteractKind = iota
	InteractUse
)

type Interact struct {
	EntityID  int32
	Kind      InteractKind
	Sneaking  bool
}

type KeepAliveResponse struct {
	ID int64
}

type ChatMessage struct {
	Message   string
	Timestamp int64
}

type ClientInformation struct {
	Locale       string
	ViewDistance int32
}

// DiggingStatus enumerates player-action digging states.
type DiggingStatus uint8

const (
	DiggingStart DiggingStatus = iota
	DiggingCancel
	DiggingFinish
)

type PlayerAction struct {
	Status   DiggingStatus
	Position [3]int32
	Face     uint8
	Sequence int32
}

// PlayerCommandAction enumerates the sneaking/sprinting/jump-with-horse
// transitions the player-command packet carries.
type PlayerCommandAction uint8

const (
	CmdStartSneaking PlayerCommandAction = iota
	CmdStopSneaking
	CmdLeaveBed
	CmdStartSprinting
	CmdStopSprinting
	CmdStartJumpWithHorse
	CmdStopJumpWithHorse
	CmdOpenHorseInventory
	CmdStartFlyingWithElytra
)

type PlayerCommand struct {
	Action    PlayerCommandAction
	JumpBoost int32
}

// Hand identifies which hand a swing or interact used.
type Hand uint8

const (
	MainHand Hand = iota
	OffHand
)

type SwingArm struct {
	Hand Hand
}

type PaddleBoat struct {
	LeftPaddleTurning, RightPaddleTurning bool
}

func (AcceptTeleportation) isC2sPlayPacket() {}
func (MovePlayer) isC2sPlayPacket()          {}
func (MoveVehicle) isC2sPlayPacket()         {}
func (Interact) isC2sPlayPacket()            {}
func (KeepAliveResponse) isC2sPlayPacket()   {}
func (ChatMessage) isC2sPlayPacket()         {}
func (ClientInformation) isC2sPlayPacket()   {}
func (PlayerAction) isC2sPlayPacket()        {}
func (PlayerCommand) isC2sPlayPacket()       {}
func (SwingArm) isC2sPlayPacket()            {}
func (PaddleBoat) isC2sPlayPacket()          {}
