package core

import (
	"context"
	"sync/atomic"
	"time"
)

// RotationRequest is one move derived from a motion state snapshot
type RotationRequest struct {
	Direction Direction
	Delay     uint16 // 10us ticks per coil write
	Count     uint16 // Full 8-pattern cycles
}

// PlanRotation computes the move from previous to the snapshot target.
// ok is false when the target equals previous. The difference uses
// 16-bit wrap-around arithmetic, as the position itself is 16 bits.
func PlanRotation(previous int16, snap Snapshot) (req RotationRequest, ok bool) {
	delta := snap.Target() - previous
	switch {
	case delta > 0:
		return RotationRequest{Direction: DirCW, Delay: snap.StepDelay, Count: uint16(delta)}, true
	case delta < 0:
		return RotationRequest{Direction: DirCCW, Delay: snap.StepDelay, Count: uint16(-delta)}, true
	}
	return RotationRequest{}, false
}

// Controller is the motion loop: it snapshots the shared state, works out
// how far to move and drives the sequencer until the move is done
type Controller struct {
	state *MotionState
	seq   *Sequencer

	// Sleep after an iteration with nothing to do; 0 spins
	idle time.Duration

	previous atomic.Int32 // Last applied position, only written by the loop
	moves    atomic.Uint32
}

// NewController creates a motion controller starting at position 0
func NewController(state *MotionState, seq *Sequencer, idle time.Duration) *Controller {
	return &Controller{
		state: state,
		seq:   seq,
		idle:  idle,
	}
}

// Step runs one iteration of the motion loop and reports whether it moved.
// Commands that arrive while a rotation is in progress take effect on the
// next call; several position updates between two calls collapse into a
// single move to the latest one.
func (c *Controller) Step() bool {
	snap := c.state.Snapshot()
	previous := int16(c.previous.Load())

	req, ok := PlanRotation(previous, snap)
	if ok {
		RecordEvent(EvtMoveStart, int32(req.Direction), uint32(req.Count))
		DebugPrintln("[MOVE] " + req.Direction.String() +
			" cycles=" + utoa(uint32(req.Count)) +
			" delay=" + utoa(uint32(req.Delay)))

		c.seq.Rotate(SequenceFor(req.Direction), req.Delay, req.Count)

		c.moves.Add(1)
		RecordEvent(EvtMoveDone, int32(snap.Target()), uint32(req.Count)*SeqSize)
	}

	// The position read above, not a fresher one
	c.previous.Store(int32(snap.Target()))
	return ok
}

// Run loops Step until ctx is cancelled. Cancellation is only noticed
// between iterations; a rotation in progress always completes.
func (c *Controller) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if !c.Step() && c.idle > 0 {
			time.Sleep(c.idle)
		}
	}
}

// Drain steps until the controller has caught up with the motion state.
// Call it after Run has returned, once no more commands can arrive.
func (c *Controller) Drain() {
	for c.Step() {
	}
}

// Position returns the last applied position
func (c *Controller) Position() int16 {
	return int16(c.previous.Load())
}

// Moves returns the number of rotations performed
func (c *Controller) Moves() uint32 {
	return c.moves.Load()
}
