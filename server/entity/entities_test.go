package entity

import (
	"testing"

	"github.com/google/uuid"
)

func TestCreateAndResolveNetworkID(t *testing.T) {
	e := New()
	id, ent := e.Create("player", nil)

	got, ok := e.GetWithNetworkID(ent.NetworkID)
	if !ok || got != id {
		t.Fatalf("GetWithNetworkID() = %v, %v; want %v, true", got, ok, id)
	}
}

func TestNetworkIDZeroNeverAllocated(t *testing.T) {
	e := New()
	for range 10 {
		_, ent := e.Create("marker", nil)
		if ent.NetworkID == 0 {
			t.Fatal("NetworkID 0 allocated to a real entity; it is reserved for self")
		}
	}
}

func TestDeleteFreesNetworkIDForReuse(t *testing.T) {
	e := New()
	id, ent := e.Create("player", nil)
	netID := ent.NetworkID
	e.Delete(id)

	if _, ok := e.GetWithNetworkID(netID); ok {
		t.Fatal("GetWithNetworkID() resolved a deleted network ID")
	}

	_, ent2 := e.Create("player", nil)
	if ent2.NetworkID != netID {
		t.Fatalf("expected network ID reuse: got %d want %d", ent2.NetworkID, netID)
	}
}

func TestCreateWithUUIDConflict(t *testing.T) {
	e := New()
	u := uuid.New()
	_, _, ok := e.CreateWithUUID("player", u, nil)
	if !ok {
		t.Fatal("first CreateWithUUID() = false; want true")
	}
	_, _, ok = e.CreateWithUUID("player", u, nil)
	if ok {
		t.Fatal("second CreateWithUUID() with same UUID = true; want false (conflict)")
	}
}

func TestDeleteFreesUUIDForReuse(t *testing.T) {
	e := New()
	u := uuid.New()
	id, _, _ := e.CreateWithUUID("player", u, nil)
	e.Delete(id)

	_, _, ok := e.CreateWithUUID("player", u, nil)
	if !ok {
		t.Fatal("CreateWithUUID() after delete should succeed; UUID slot must free up")
	}
}

func TestFlagsClearDrainsEventCodes(t *testing.T) {
	var f Flags
	f.PushEvent(3)
	f.YawOrPitchModified = true
	f.Clear()
	if f.YawOrPitchModified || len(f.EventCodes) != 0 {
		t.Fatalf("Clear() left state: %+v", f)
	}
}
