package world

// ChunkPos is a chunk column coordinate.
type ChunkPos struct {
	X, Z int32
}

// Add returns the chunk position offset by dx, dz.
func (p ChunkPos) Add(dx, dz int32) ChunkPos {
	return ChunkPos{X: p.X + dx, Z: p.Z + dz}
}

// DistanceChebyshev returns the Chebyshev (chunk-grid) distance between two
// chunk positions, the metric view-distance and cache-radius checks use.
func (p ChunkPos) DistanceChebyshev(o ChunkPos) int32 {
	dx := p.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dz := p.Z - o.Z
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}

// blockIndex is a flat index into a Chunk's block-state array.
type blockIndex int32

// Chunk stores block states for a 16×h×16 column of a World.
type Chunk struct {
	pos        ChunkPos
	minY, maxY int32
	states     []uint16
	dirty      map[blockIndex]uint16
	createdAt  uint64
}

// NewChunk allocates an empty chunk spanning [minY, maxY) at pos, stamped
// with createdTick as its creation tick.
func NewChunk(pos ChunkPos, minY, maxY int32, createdTick uint64) *Chunk {
	h := maxY - minY
	return &Chunk{
		pos:       pos,
		minY:      minY,
		maxY:      maxY,
		states:    make([]uint16, 16*int32(h)*16),
		dirty:     make(map[blockIndex]uint16),
		createdAt: createdTick,
	}
}

// Pos returns the chunk's column position.
func (c *Chunk) Pos() ChunkPos { return c.pos }

// CreatedTick returns the tick on which this Chunk structure was created (or
// last recreated). Client egress compares it against the current tick: a
// chunk created on the current tick is forgotten and re-sent to every
// client that had it loaded.
func (c *Chunk) CreatedTick() uint64 { return c.createdAt }

// States returns the full packed block-state array, for a full chunk-data
// packet on first load.
func (c *Chunk) States() []uint16 { return c.states }

func (c *Chunk) index(x, y, z int32) (blockIndex, bool) {
	if x < 0 || x >= 16 || z < 0 || z >= 16 || y < c.minY || y >= c.maxY {
		return 0, false
	}
	ly := y - c.minY
	return blockIndex(ly*16*16 + z*16 + x), true
}

// BlockState returns the block state at the local coordinate, or 0 if it is
// out of bounds.
func (c *Chunk) BlockState(x, y, z int32) uint16 {
	idx, ok := c.index(x, y, z)
	if !ok {
		return 0
	}
	return c.states[idx]
}

// SetBlockState sets the block state at the local coordinate and marks the
// cell dirty for every client that still has this chunk loaded.
func (c *Chunk) SetBlockState(x, y, z int32, state uint16) {
	idx, ok := c.index(x, y, z)
	if !ok {
		return
	}
	c.states[idx] = state
	c.dirty[idx] = state
}

// DirtyCount reports how many block cells changed since the dirty set was
// last cleared (once per tick, by the server's sweep phase).
func (c *Chunk) DirtyCount() int { return len(c.dirty) }

// BlockChanges returns the set of (x, y, z, state) cells modified since the
// dirty set was last cleared (once per tick, by the server's sweep phase),
// for emission as a compact block-change packet.
func (c *Chunk) BlockChanges() []BlockChange {
	if len(c.dirty) == 0 {
		return nil
	}
	out := make([]BlockChange, 0, len(c.dirty))
	for idx, state := range c.dirty {
		y := int32(idx)/(16*16) + c.minY
		rem := int32(idx) % (16 * 16)
		z := rem / 16
		x := rem % 16
		out = append(out, BlockChange{X: x, Y: y, Z: z, State: state})
	}
	return out
}

// ClearDirty clears the dirty set. Called once per tick, after every
// client's egress pass has read BlockChanges.
func (c *Chunk) ClearDirty() {
	clear(c.dirty)
}

// BlockChange describes one modified cell within a chunk, in local
// coordinates.
type BlockChange struct {
	X, Y, Z int32
	State   uint16
}
