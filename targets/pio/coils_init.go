//go:build rp2040

package pio

import (
	"machine"

	"unistep/core"
)

// Backend selects how coil patterns reach the pins
type Backend uint8

const (
	BackendGPIO Backend = iota
	BackendPIO
)

var (
	// PIO allocation tracking
	// RP2040 has 2 PIO blocks (PIO0, PIO1) with 4 state machines each
	pioAllocations = [2][4]bool{} // [pioNum][smNum]
	nextPIONum     = uint8(0)
	nextSMNum      = uint8(0)
)

// NewCoils creates a coil driver for the requested backend
// Falls back to GPIO when no PIO state machine is free
func NewCoils(backend Backend, basePin machine.Pin) core.CoilDriver {
	if backend == BackendPIO {
		if pioNum, smNum, ok := allocatePIO(); ok {
			return NewPIOCoils(pioNum, smNum, basePin)
		}
	}
	return NewGPIOCoils(basePin)
}

// allocatePIO allocates a PIO state machine
// Returns (pioNum, smNum, ok)
func allocatePIO() (uint8, uint8, bool) {
	// Round-robin allocation across PIO blocks and state machines
	for i := 0; i < 8; i++ { // 2 PIO × 4 SM = 8 total
		pioNum := nextPIONum
		smNum := nextSMNum

		nextSMNum++
		if nextSMNum >= 4 {
			nextSMNum = 0
			nextPIONum = (nextPIONum + 1) % 2
		}

		if !pioAllocations[pioNum][smNum] {
			pioAllocations[pioNum][smNum] = true
			return pioNum, smNum, true
		}
	}

	return 0, 0, false
}
