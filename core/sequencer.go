package core

import "sync/atomic"

// Sequencer emits coil-pattern cycles on a CoilDriver
type Sequencer struct {
	coils CoilDriver
	wait  Waiter

	writes atomic.Uint32 // Total coil writes
	cycles atomic.Uint32 // Total full 8-pattern cycles
}

// NewSequencer creates a sequencer bound to a coil backend and a wait service
func NewSequencer(coils CoilDriver, wait Waiter) *Sequencer {
	return &Sequencer{
		coils: coils,
		wait:  wait,
	}
}

// Rotate writes the whole table count times, holding every pattern for
// delay ticks. It blocks until all 8*count writes are done; nothing can
// cut a rotation short.
func (s *Sequencer) Rotate(seq CoilSequence, delay uint16, count uint16) {
	for n := uint16(0); n < count; n++ {
		for i := 0; i < SeqSize; i++ {
			s.coils.SetCoils(seq[i])
			s.wait.Wait(delay)
		}
		s.writes.Add(SeqSize)
		s.cycles.Add(1)
	}
}

// Writes returns the number of coil writes since start
func (s *Sequencer) Writes() uint32 {
	return s.writes.Load()
}

// Cycles returns the number of completed cycles since start
func (s *Sequencer) Cycles() uint32 {
	return s.cycles.Load()
}
