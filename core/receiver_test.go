package core

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestReceiverAppliesCommands(t *testing.T) {
	state := NewMotionState()
	rx := NewReceiver(state)

	feedString(rx, "s50\np200\n")

	snap := state.Snapshot()
	if snap.StepDelay != 50 {
		t.Errorf("Expected delay 50, got %d", snap.StepDelay)
	}
	if snap.Target() != 200 {
		t.Errorf("Expected target 200, got %d", snap.Target())
	}

	stats := rx.Stats()
	if stats.Lines != 2 || stats.Applied != 2 {
		t.Errorf("Expected 2 lines applied, got %+v", stats)
	}
}

func TestReceiverSpeedOverflow(t *testing.T) {
	state := NewMotionState()
	rx := NewReceiver(state)

	feedString(rx, "s40\ns99999\n")

	if snap := state.Snapshot(); snap.StepDelay != 0 {
		t.Errorf("Expected s99999 to coerce delay to 0, got %d", snap.StepDelay)
	}
}

func TestReceiverIgnoresUnknownTag(t *testing.T) {
	state := NewMotionState()
	rx := NewReceiver(state)

	feedString(rx, "s12\np34\n")
	before := state.Snapshot()

	feedString(rx, "xhello\n\n")

	if after := state.Snapshot(); after != before {
		t.Errorf("Expected state unchanged, got %+v (was %+v)", after, before)
	}
	if stats := rx.Stats(); stats.Ignored != 2 {
		t.Errorf("Expected 2 ignored lines, got %d", stats.Ignored)
	}
}

func TestReceiverOverflowDropsExcess(t *testing.T) {
	state := NewMotionState()
	rx := NewReceiver(state)

	// Only "p12345" fits; "67" is dropped
	feedString(rx, "p1234567\n")

	if snap := state.Snapshot(); snap.Target() != 12345 {
		t.Errorf("Expected target 12345, got %d", snap.Target())
	}
	if stats := rx.Stats(); stats.Dropped != 2 {
		t.Errorf("Expected 2 dropped bytes, got %d", stats.Dropped)
	}

	// The index was reset, the next line is unaffected
	feedString(rx, "p7\n")
	if snap := state.Snapshot(); snap.Target() != 7 {
		t.Errorf("Expected target 7 after overflow, got %d", snap.Target())
	}

	// A very long line never writes past the buffer
	feedString(rx, "s40\n")
	feedString(rx, "s"+strings.Repeat("9", 1000)+"\n")
	if snap := state.Snapshot(); snap.StepDelay != 0 {
		t.Errorf("Expected truncated s99999 to coerce to 0, got %d", snap.StepDelay)
	}
}

func TestReceiverCarriageReturn(t *testing.T) {
	state := NewMotionState()
	rx := NewReceiver(state)

	feedString(rx, "p12\r\n")

	if snap := state.Snapshot(); snap.Target() != 12 {
		t.Errorf("Expected target 12, got %d", snap.Target())
	}
}

func TestReceiverRecordsEvents(t *testing.T) {
	ClearEvents()
	rx := NewReceiver(NewMotionState())

	feedString(rx, "s5\nq\np-3\n")

	events := Events()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].Type != EvtSpeed || events[0].Value1 != 5 {
		t.Errorf("Expected SPEED 5 first, got %s %d", EventName(events[0].Type), events[0].Value1)
	}
	if events[1].Type != EvtIgnored || events[1].Value1 != 'q' {
		t.Errorf("Expected IGNORED 'q' second, got %s %d", EventName(events[1].Type), events[1].Value1)
	}
	if events[2].Type != EvtPosition || events[2].Value1 != -3 {
		t.Errorf("Expected POSITION -3 third, got %s %d", EventName(events[2].Type), events[2].Value1)
	}
}

func TestReceiverRun(t *testing.T) {
	state := NewMotionState()
	rx := NewReceiver(state)

	err := rx.Run(context.Background(), strings.NewReader("s10\np5\np9\n"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	snap := state.Snapshot()
	if snap.StepDelay != 10 || snap.Target() != 9 {
		t.Errorf("Expected delay 10 target 9, got %d %d", snap.StepDelay, snap.Target())
	}
}

type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, f.err
}

func TestReceiverRunReadError(t *testing.T) {
	state := NewMotionState()
	rx := NewReceiver(state)
	readErr := errors.New("line noise")

	err := rx.Run(context.Background(), &failingReader{data: []byte("p4\n"), err: readErr})
	if !errors.Is(err, readErr) {
		t.Errorf("Expected read error, got %v", err)
	}

	// Bytes that came with the error are still consumed
	if snap := state.Snapshot(); snap.Target() != 4 {
		t.Errorf("Expected target 4, got %d", snap.Target())
	}
}

func TestReceiverRunCancelled(t *testing.T) {
	rx := NewReceiver(NewMotionState())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rx.Run(ctx, strings.NewReader("p1\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
