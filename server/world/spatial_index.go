package world

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// cellSize is the edge length, in chunks, of one SpatialIndex grid cell.
const cellSize = 16

// AABB is an axis-aligned bounding box tracked by a SpatialIndex, expressed
// in world (block) coordinates.
type AABB struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// Center returns the AABB's midpoint.
func (b AABB) Center() (x, y, z float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2, (b.MinZ + b.MaxZ) / 2
}

// IndexedEntity is the payload a SpatialIndex stores per entry.
type IndexedEntity struct {
	NetworkID int32 // wire-level entity ID; resolved via entity.Entities.GetWithNetworkID
	UUID      uuid.UUID
	Kind      string
	Box       AABB
}

type cellEntry struct {
	cx, cz int64
	entity IndexedEntity
}

// SpatialIndex is a uniform grid over entity AABB centers, rebuilt once per
// tick after the game-logic phase and queried read-only during egress.
// Cell hashing uses xxhash for throughput on this hot per-tick path; the
// originating cell coordinate rides along in each bucket entry so a hash
// collision between distinct cells never drops an entity from a query.
type SpatialIndex struct {
	cells map[uint64][]cellEntry
}

// NewSpatialIndex returns an empty index.
func NewSpatialIndex() *SpatialIndex {
	return &SpatialIndex{cells: make(map[uint64][]cellEntry)}
}

func cellHash(cx, cz int64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(cx))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(cz))
	return xxhash.Sum64(buf[:])
}

func cellOf(x, z float64) (int64, int64) {
	return int64(math.Floor(x / (16 * cellSize))), int64(math.Floor(z / (16 * cellSize)))
}

// Rebuild clears and repopulates the index from entries.
func (s *SpatialIndex) Rebuild(entries []IndexedEntity) {
	clear(s.cells)
	for _, e := range entries {
		x, _, z := e.Box.Center()
		cx, cz := cellOf(x, z)
		h := cellHash(cx, cz)
		s.cells[h] = append(s.cells[h], cellEntry{cx: cx, cz: cz, entity: e})
	}
}

// Query returns every indexed entity whose AABB center lies within radius r
// of point (px, pz), projected onto the horizontal plane. Vertical distance
// is not considered.
func (s *SpatialIndex) Query(px, pz, r float64) []IndexedEntity {
	cx0, cz0 := cellOf(px-r, pz-r)
	cx1, cz1 := cellOf(px+r, pz+r)

	var out []IndexedEntity
	r2 := r * r
	for cx := cx0; cx <= cx1; cx++ {
		for cz := cz0; cz <= cz1; cz++ {
			bucket, ok := s.cells[cellHash(cx, cz)]
			if !ok {
				continue
			}
			for _, ce := range bucket {
				if ce.cx != cx || ce.cz != cz {
					continue
				}
				ex, _, ez := ce.entity.Box.Center()
				dx, dz := ex-px, ez-pz
				if dx*dx+dz*dz <= r2 {
					out = append(out, ce.entity)
				}
			}
		}
	}
	return out
}
