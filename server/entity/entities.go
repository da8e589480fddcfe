package entity

import (
	"github.com/brentp/intintmap"
	"github.com/google/uuid"
	"github.com/segmentio/fasthash/fnv1a"

	"github.com/riftcraft/rift/server/internal/slotmap"
)

// Entities is the generational container owning every Entity in a Server.
// Network-ID resolution is backed by intintmap, a specialised int64->int64
// open-addressed map: stable slot-map keys pack into a single int64
// (index<<32 | generation) so every inbound interact packet resolves its
// wire-level entity ID without boxing through map[int32]Id.
type Entities struct {
	slots *slotmap.SlotMap[*Entity]

	netIDs     *intintmap.Map
	freeNetIDs []int32
	nextNetID  int32

	byUUID     map[uint32][]uuidEntry
}

type uuidEntry struct {
	uuid uuid.UUID
	id   Id
}

// New returns an empty Entities container. Network ID 0 is reserved for
// "self" and never allocated to a real entity.
func New() *Entities {
	return &Entities{
		slots:     slotmap.New[*Entity](),
		netIDs:    intintmap.New(1024, 0.6),
		nextNetID: 1,
		byUUID:    make(map[uint32][]uuidEntry),
	}
}

func packKey(id Id) int64 {
	index, generation := slotmap.Split(id)
	return int64(index)<<32 | int64(generation)
}

func (e *Entities) allocNetworkID() int32 {
	if n := len(e.freeNetIDs); n > 0 {
		id := e.freeNetIDs[n-1]
		e.freeNetIDs = e.freeNetIDs[:n-1]
		return id
	}
	id := e.nextNetID
	e.nextNetID++
	return id
}

// Create inserts an entity of the given kind with opaque user data and
// returns its stable ID and a pointer into the container.
func (e *Entities) Create(kind string, data any) (Id, *Entity) {
	ent := &Entity{Kind: kind, Data: data, UUID: uuid.New(), NetworkID: e.allocNetworkID()}
	id := e.slots.Insert(ent)
	e.netIDs.Put(int64(ent.NetworkID), packKey(id))
	e.indexUUID(ent.UUID, id)
	return id, ent
}

// CreateWithUUID is like Create but uses a caller-supplied UUID, failing
// with ok=false on conflict with a still-live entity.
func (e *Entities) CreateWithUUID(kind string, id uuid.UUID, data any) (Id, *Entity, bool) {
	if _, exists := e.findByUUID(id); exists {
		return Id{}, nil, false
	}
	ent := &Entity{Kind: kind, Data: data, UUID: id, NetworkID: e.allocNetworkID()}
	eid := e.slots.Insert(ent)
	e.netIDs.Put(int64(ent.NetworkID), packKey(eid))
	e.indexUUID(ent.UUID, eid)
	return eid, ent, true
}

// Delete invalidates id, freeing its network ID and UUID slot for reuse.
func (e *Entities) Delete(id Id) {
	ent, ok := e.slots.Remove(id)
	if !ok {
		return
	}
	e.netIDs.Del(int64(ent.NetworkID))
	e.freeNetIDs = append(e.freeNetIDs, ent.NetworkID)
	e.unindexUUID(ent.UUID)
}

// Get resolves id to its Entity, if still valid.
func (e *Entities) Get(id Id) (*Entity, bool) {
	return e.slots.Get(id)
}

// GetWithNetworkID resolves a wire-level network ID to the entity's stable
// ID, used on the inbound "interact" packet path.
func (e *Entities) GetWithNetworkID(network int32) (Id, bool) {
	packed, ok := e.netIDs.Get(int64(network))
	if !ok {
		return Id{}, false
	}
	return slotmap.Join(uint32(packed>>32), uint32(packed)), true
}

// Each calls fn for every live entity.
func (e *Entities) Each(fn func(Id, *Entity) bool) {
	e.slots.Range(fn)
}

func (e *Entities) indexUUID(id uuid.UUID, eid Id) {
	h := fnv1a.HashBytes32(id[:])
	e.byUUID[h] = append(e.byUUID[h], uuidEntry{uuid: id, id: eid})
}

func (e *Entities) unindexUUID(id uuid.UUID) {
	h := fnv1a.HashBytes32(id[:])
	bucket := e.byUUID[h]
	for i, entry := range bucket {
		if entry.uuid == id {
			e.byUUID[h] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

func (e *Entities) findByUUID(id uuid.UUID) (Id, bool) {
	h := fnv1a.HashBytes32(id[:])
	for _, entry := range e.byUUID[h] {
		if entry.uuid == id {
			if _, ok := e.slots.Get(entry.id); ok {
				return entry.id, true
			}
		}
	}
	return Id{}, false
}
