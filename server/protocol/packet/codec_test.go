package packet

import "testing"

func TestTrySendFullReturnsErrFull(t *testing.T) {
	c := NewCodec(2, 2)
	if err := c.TrySend(KeepAlive{ID: 1}); err != nil {
		t.Fatalf("TrySend() = %v; want nil", err)
	}
	if err := c.TrySend(KeepAlive{ID: 2}); err != nil {
		t.Fatalf("TrySend() = %v; want nil", err)
	}
	if err := c.TrySend(KeepAlive{ID: 3}); err != ErrFull {
		t.Fatalf("TrySend() on full buffer = %v; want ErrFull", err)
	}
}

func TestDrainInboundBoundedAtPhaseStart(t *testing.T) {
	c := NewCodec(2, 4)
	c.Enqueue(ChatMessage{Message: "one"})
	c.Enqueue(ChatMessage{Message: "two"})

	var drained []C2sPlayPacket
	c.DrainInbound(func(p C2sPlayPacket) {
		drained = append(drained, p)
		// A packet enqueued mid-drain must not be seen this phase.
		c.Enqueue(ChatMessage{Message: "late"})
	})

	if len(drained) != 2 {
		t.Fatalf("DrainInbound() processed %d packets; want 2 (length sampled at phase start)", len(drained))
	}
}

func TestEnqueueFullDropsPacket(t *testing.T) {
	c := NewCodec(2, 1)
	if ok := c.Enqueue(SwingArm{}); !ok {
		t.Fatal("first Enqueue() = false; want true")
	}
	if ok := c.Enqueue(SwingArm{}); ok {
		t.Fatal("Enqueue() on full buffer = true; want false")
	}
}
