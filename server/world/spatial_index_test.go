package world

import (
	"testing"

	"github.com/google/uuid"
)

func box(x, y, z float64) AABB {
	return AABB{MinX: x - 0.3, MaxX: x + 0.3, MinY: y, MaxY: y + 1.8, MinZ: z - 0.3, MaxZ: z + 0.3}
}

func TestSpatialIndexQueryBoundary(t *testing.T) {
	idx := NewSpatialIndex()
	target := IndexedEntity{NetworkID: 1, UUID: uuid.New(), Kind: "player", Box: box(0, 0, 0)}
	idx.Rebuild([]IndexedEntity{target})

	// Exactly on the 16*2 boundary: visible.
	res := idx.Query(0, 32, 32)
	if len(res) != 1 {
		t.Fatalf("Query at boundary found %d entities; want 1", len(res))
	}

	// Just past the boundary: not visible.
	res = idx.Query(0, 32.001, 32)
	if len(res) != 0 {
		t.Fatalf("Query past boundary found %d entities; want 0", len(res))
	}
}

func TestSpatialIndexRebuildReplacesContents(t *testing.T) {
	idx := NewSpatialIndex()
	idx.Rebuild([]IndexedEntity{{NetworkID: 1, UUID: uuid.New(), Kind: "player", Box: box(0, 0, 0)}})
	idx.Rebuild([]IndexedEntity{{NetworkID: 2, UUID: uuid.New(), Kind: "player", Box: box(1000, 0, 1000)}})

	if res := idx.Query(0, 0, 16); len(res) != 0 {
		t.Fatalf("stale entry survived Rebuild: %+v", res)
	}
	if res := idx.Query(1000, 1000, 16); len(res) != 1 {
		t.Fatalf("Query() = %d; want 1", len(res))
	}
}
