package playerlist

import (
	"testing"

	"github.com/google/uuid"
)

func TestDiffReportsUpsertsAndRemovals(t *testing.T) {
	l := New()
	a, b := uuid.New(), uuid.New()

	l.Add(Entry{UUID: a, Name: "alice"})
	l.Advance()

	l.Add(Entry{UUID: b, Name: "bob"})
	l.Remove(a)

	d := l.ComputeDiff()
	if len(d.Upserted) != 1 || d.Upserted[0].UUID != b {
		t.Fatalf("Upserted = %+v; want [bob]", d.Upserted)
	}
	if len(d.Removed) != 1 || d.Removed[0] != a {
		t.Fatalf("Removed = %+v; want [a]", d.Removed)
	}
}

func TestAdvanceClearsDiff(t *testing.T) {
	l := New()
	a := uuid.New()
	l.Add(Entry{UUID: a, Name: "alice"})
	l.Advance()

	if d := l.ComputeDiff(); len(d.Upserted) != 0 || len(d.Removed) != 0 {
		t.Fatalf("diff after Advance = %+v; want empty", d)
	}
}

func TestSnapshotReturnsAllEntries(t *testing.T) {
	l := New()
	l.Add(Entry{UUID: uuid.New(), Name: "alice"})
	l.Add(Entry{UUID: uuid.New(), Name: "bob"})
	if got := len(l.Snapshot()); got != 2 {
		t.Fatalf("Snapshot() has %d entries; want 2", got)
	}
}
