package world

import "testing"

func TestSetBlockStateMarksDirty(t *testing.T) {
	c := NewChunk(ChunkPos{0, 0}, 0, 16, 1)
	if c.DirtyCount() != 0 {
		t.Fatalf("DirtyCount() = %d; want 0", c.DirtyCount())
	}

	c.SetBlockState(1, 2, 3, 7)
	if got := c.BlockState(1, 2, 3); got != 7 {
		t.Fatalf("BlockState() = %d; want 7", got)
	}
	if c.DirtyCount() != 1 {
		t.Fatalf("DirtyCount() = %d; want 1", c.DirtyCount())
	}

	changes := c.BlockChanges()
	if len(changes) != 1 || changes[0] != (BlockChange{X: 1, Y: 2, Z: 3, State: 7}) {
		t.Fatalf("BlockChanges() = %+v", changes)
	}

	c.ClearDirty()
	if c.DirtyCount() != 0 {
		t.Fatalf("DirtyCount() after ClearDirty() = %d; want 0", c.DirtyCount())
	}
}

func TestSetBlockStateOutOfBoundsIgnored(t *testing.T) {
	c := NewChunk(ChunkPos{0, 0}, 0, 16, 1)
	c.SetBlockState(99, 2, 3, 7)
	if c.DirtyCount() != 0 {
		t.Fatalf("DirtyCount() = %d; want 0 for out-of-bounds write", c.DirtyCount())
	}
}

func TestChunkPosDistanceChebyshev(t *testing.T) {
	a := ChunkPos{0, 0}
	b := ChunkPos{100, 0}
	if d := a.DistanceChebyshev(b); d != 100 {
		t.Fatalf("DistanceChebyshev() = %d; want 100", d)
	}
}
