//go:build rp2040

package pio

// PIO coil backend using tinygo-org/pio package
// The state machine latches each 4-bit pattern onto four consecutive pins

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// PIO program for coil output
// Each FIFO word carries one pattern in its low nibble:
//
//	pull block      ; wait for the next pattern
//	out pins, 4     ; drive it onto the coil pins
//
// buildCoilProgram creates the coil PIO program using AssemblerV0
func buildCoilProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),          // 0: pull block
		asm.Out(rp2pio.OutDestPins, 4).Encode(), // 1: out pins, 4
		// .wrap
	}
}

const coilPIOOrigin = 0 // Load at offset 0

// PIOCoils drives the coil nibble from a PIO state machine
type PIOCoils struct {
	pio     *rp2pio.PIO
	sm      rp2pio.StateMachine
	basePin machine.Pin
	offset  uint8
	pioNum  uint8
	smNum   uint8
}

// NewPIOCoils creates a new PIO coil backend
// pioNum: 0 for PIO0, 1 for PIO1
// smNum: 0-3 for state machine number
func NewPIOCoils(pioNum, smNum uint8, basePin machine.Pin) *PIOCoils {
	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}

	return &PIOCoils{
		pio:     pioHW,
		sm:      pioHW.StateMachine(smNum),
		basePin: basePin,
		pioNum:  pioNum,
		smNum:   smNum,
	}
}

// Configure loads the program and starts the state machine with all coils off
func (c *PIOCoils) Configure() error {
	// Claim the state machine first
	c.sm.TryClaim()

	program := buildCoilProgram()
	offset, err := c.pio.AddProgram(program, coilPIOOrigin)
	if err != nil {
		return err
	}
	c.offset = offset

	for i := machine.Pin(0); i < CoilPins; i++ {
		(c.basePin + i).Configure(machine.PinConfig{Mode: c.pio.PinMode()})
	}

	cfg := rp2pio.DefaultStateMachineConfig()

	// OUT pins carry the nibble
	cfg.SetOutPins(c.basePin, CoilPins)

	// Shift right, explicit PULL, 32-bit threshold
	cfg.SetOutShift(true, false, 32)

	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	// Full speed clock: a pattern reaches the pins a few cycles after
	// TxPut, well inside one 10us tick
	cfg.SetClkDivIntFrac(coilClockDiv, 0)

	// Initialize state machine FIRST
	c.sm.Init(offset, cfg)

	// THEN set pin directions (must be after Init!)
	c.sm.SetPindirsConsecutive(c.basePin, CoilPins, true)
	c.sm.SetPinsConsecutive(c.basePin, CoilPins, false)

	c.sm.SetEnabled(true)
	return nil
}

// SetCoils queues one pattern for the state machine
func (c *PIOCoils) SetCoils(pattern uint8) {
	for c.sm.IsTxFIFOFull() {
		// Busy wait - the program drains one word per pull
	}
	c.sm.TxPut(uint32(pattern & CoilMask))
}

// GetName returns the backend name
func (c *PIOCoils) GetName() string {
	return "PIO"
}
