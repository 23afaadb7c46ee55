package pio

import "unistep/core"

// PIO timing for the coil program
const (
	sysClockHz        = 125000000
	coilClockDiv      = 1 // State machine clock divider
	coilProgramCycles = 2 // pull + out, from FIFO word to pins
)

// patternLatencyNs is the worst-case time from TxPut until a pattern is
// on the pins, for a given clock divider
func patternLatencyNs(div uint32) uint64 {
	return coilProgramCycles * uint64(div) * 1000000000 / sysClockHz
}

// tickNs is the length of one hold tick
const tickNs = core.TickMicros * 1000
