package core

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
)

// LineCapacity is the number of payload bytes a line can hold:
// one tag byte and up to five digits
const LineCapacity = 6

// LineTerminator ends every command line
const LineTerminator = '\n'

// ReceiverStats counts what the receiver has seen
type ReceiverStats struct {
	Lines   uint32 // Completed lines
	Applied uint32 // Lines that changed the motion state
	Ignored uint32 // Lines with an unknown tag or empty
	Dropped uint32 // Bytes discarded because a line was too long
}

// Receiver accumulates command bytes into lines and applies each parsed
// command to the motion state. Feed is the interrupt-context handler: it
// never blocks, and only one context may call it.
type Receiver struct {
	state *MotionState

	buf [LineCapacity]byte
	idx uint8

	// Bytes dropped from the line in progress
	lineDropped uint32

	lines   atomic.Uint32
	applied atomic.Uint32
	ignored atomic.Uint32
	dropped atomic.Uint32
}

// NewReceiver creates a receiver that writes into state
func NewReceiver(state *MotionState) *Receiver {
	return &Receiver{state: state}
}

// Feed consumes one received byte.
// Bytes beyond LineCapacity are dropped; the line is still parsed from
// the bytes that fit once the terminator arrives.
func (r *Receiver) Feed(b byte) {
	if b == LineTerminator {
		r.completeLine()
		return
	}

	if int(r.idx) >= len(r.buf) {
		r.lineDropped++
		r.dropped.Add(1)
		return
	}
	r.buf[r.idx] = b
	r.idx++
}

// completeLine parses the buffered line and resets the index
func (r *Receiver) completeLine() {
	line := r.buf[:r.idx]
	r.lines.Add(1)

	if r.lineDropped > 0 {
		RecordEvent(EvtOverflow, int32(r.idx), r.lineDropped)
		if IsDebugEnabled() {
			DebugAsync("[RX] line overflow, dropped " + utoa(r.lineDropped) + " bytes")
		}
	}

	cmd, ok := ParseCommand(line)
	if ok {
		cmd.Apply(r.state)
		r.applied.Add(1)
		if cmd.Kind == CmdSetSpeed {
			RecordEvent(EvtSpeed, int32(cmd.Value), 0)
		} else {
			RecordEvent(EvtPosition, int32(cmd.Position()), 0)
		}
		if IsDebugEnabled() {
			DebugAsync("[RX] " + cmd.String())
		}
	} else {
		r.ignored.Add(1)
		first := int32(-1)
		if len(line) > 0 {
			first = int32(line[0])
		}
		RecordEvent(EvtIgnored, first, 0)
	}

	r.idx = 0
	r.lineDropped = 0
}

// Run feeds every byte read from src until src reports io.EOF, a read
// fails, or ctx is cancelled. The context is checked between reads, so a
// source that blocks forever should be closed to stop Run.
func (r *Receiver) Run(ctx context.Context, src io.Reader) error {
	var chunk [64]byte
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := src.Read(chunk[:])
		for i := 0; i < n; i++ {
			r.Feed(chunk[i])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// Stats returns the receiver counters; safe from any goroutine
func (r *Receiver) Stats() ReceiverStats {
	return ReceiverStats{
		Lines:   r.lines.Load(),
		Applied: r.applied.Load(),
		Ignored: r.ignored.Load(),
		Dropped: r.dropped.Load(),
	}
}
