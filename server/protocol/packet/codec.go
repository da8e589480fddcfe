package packet

import "errors"

// ErrFull is returned by TrySend when the outbound channel's buffer is
// saturated. The back-pressure policy is to disconnect the client rather
// than block the tick thread: receiving ErrFull is always a disconnect
// signal, never a retry signal.
var ErrFull = errors.New("packet: outbound channel full")

// Codec is the non-blocking bounded-channel transport for one client's
// outbound packet stream.
type Codec struct {
	out chan S2cPlayPacket
	in  chan C2sPlayPacket
}

// NewCodec allocates a Codec with the given outbound/inbound buffer sizes.
func NewCodec(outBuf, inBuf int) *Codec {
	return &Codec{
		out: make(chan S2cPlayPacket, outBuf),
		in:  make(chan C2sPlayPacket, inBuf),
	}
}

// TrySend attempts a non-blocking send of pkt to the outbound channel.
// Returns ErrFull if the buffer is saturated.
func (c *Codec) TrySend(pkt S2cPlayPacket) error {
	select {
	case c.out <- pkt:
		return nil
	default:
		return ErrFull
	}
}

// Outbound exposes the outbound channel for the network-writer goroutine to
// drain; it is not read by the tick thread.
func (c *Codec) Outbound() <-chan S2cPlayPacket { return c.out }

// Enqueue is called by the network-reader goroutine to hand a decoded
// inbound packet to the tick thread. It is non-blocking; a full inbound
// buffer drops the packet (the reader should back off, but this never
// blocks the tick thread either).
func (c *Codec) Enqueue(pkt C2sPlayPacket) bool {
	select {
	case c.in <- pkt:
		return true
	default:
		return false
	}
}

// DrainInbound pulls every packet queued at the moment of the call — never
// more — into fn, so a flooding client cannot starve later clients within
// the same ingress phase. The length is sampled once up front because the
// tick thread is the sole reader within a phase.
func (c *Codec) DrainInbound(fn func(C2sPlayPacket)) {
	n := len(c.in)
	for range n {
		fn(<-c.in)
	}
}

// Close closes the outbound channel, signalling the network-writer
// goroutine to exit. Called once, when the owning client disconnects. The
// inbound channel is left open: it is written to by an external
// network-reader goroutine, and only that goroutine may close it.
func (c *Codec) Close() {
	close(c.out)
}
