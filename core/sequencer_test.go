package core

import "testing"

func TestSequencerRotateWrites(t *testing.T) {
	coils := NewMockCoilDriver()
	waiter := &countingWaiter{}
	seq := NewSequencer(coils, waiter)

	seq.Rotate(SequenceFor(DirCW), 3, 4)

	patterns := coils.Patterns()
	if len(patterns) != 8*4 {
		t.Fatalf("Expected 32 coil writes, got %d", len(patterns))
	}

	cw := SequenceFor(DirCW)
	for i, p := range patterns {
		if p != cw[i%SeqSize] {
			t.Errorf("Write %d: expected pattern 0x%x, got 0x%x", i, cw[i%SeqSize], p)
		}
	}

	calls, ticks := waiter.totals()
	if calls != 32 {
		t.Errorf("Expected 32 waits, got %d", calls)
	}
	if ticks != 32*3 {
		t.Errorf("Expected 96 ticks, got %d", ticks)
	}

	if seq.Writes() != 32 || seq.Cycles() != 4 {
		t.Errorf("Expected 32 writes and 4 cycles, got %d and %d", seq.Writes(), seq.Cycles())
	}
}

func TestSequencerZeroDelay(t *testing.T) {
	coils := NewMockCoilDriver()
	waiter := &countingWaiter{}
	seq := NewSequencer(coils, waiter)

	seq.Rotate(SequenceFor(DirCCW), 0, 2)

	if n := len(coils.Patterns()); n != 16 {
		t.Errorf("Expected 16 writes with zero delay, got %d", n)
	}
	if _, ticks := waiter.totals(); ticks != 0 {
		t.Errorf("Expected no wait ticks, got %d", ticks)
	}
}

func TestSequencerZeroCount(t *testing.T) {
	coils := NewMockCoilDriver()
	seq := NewSequencer(coils, &countingWaiter{})

	seq.Rotate(SequenceFor(DirCW), 10, 0)

	if n := len(coils.Patterns()); n != 0 {
		t.Errorf("Expected no writes, got %d", n)
	}
}

func TestSequenceTables(t *testing.T) {
	cw := SequenceFor(DirCW)
	ccw := SequenceFor(DirCCW)

	// CCW is CW played backwards
	for i := 0; i < SeqSize; i++ {
		if cw[i] != ccw[SeqSize-1-i] {
			t.Errorf("Entry %d: CW 0x%x does not mirror CCW 0x%x", i, cw[i], ccw[SeqSize-1-i])
		}
	}

	// Half-step: consecutive patterns differ by exactly one coil
	for i := 0; i < SeqSize; i++ {
		diff := cw[i] ^ cw[(i+1)%SeqSize]
		if diff == 0 || diff&(diff-1) != 0 {
			t.Errorf("Patterns 0x%x -> 0x%x change more than one coil", cw[i], cw[(i+1)%SeqSize])
		}
	}

	// Callers get copies
	cw[0] = 0xf
	if SequenceFor(DirCW)[0] != 0x1 {
		t.Error("Coil table was modified through a returned copy")
	}
}
