//go:build rp2040

package pio

import (
	"device/rp"
	"machine"
)

// CoilPins is the width of the coil output
const CoilPins = 4

// CoilMask selects the coil bits of a pattern
const CoilMask = 0x0F

// GPIOCoils drives the coil nibble on four consecutive GPIO pins
// This is the baseline/fallback implementation
type GPIOCoils struct {
	basePin machine.Pin

	// Cached register mask for the four pins
	mask uint32
}

// NewGPIOCoils creates a new GPIO coil backend starting at basePin
func NewGPIOCoils(basePin machine.Pin) *GPIOCoils {
	return &GPIOCoils{basePin: basePin}
}

// Configure sets the four coil pins as outputs, all low
func (c *GPIOCoils) Configure() error {
	for i := machine.Pin(0); i < CoilPins; i++ {
		pin := c.basePin + i
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pin.Low()
	}
	c.mask = CoilMask << uint32(c.basePin)
	return nil
}

// SetCoils writes the pattern in one SIO access so no intermediate
// combination ever reaches the driver
func (c *GPIOCoils) SetCoils(pattern uint8) {
	want := uint32(pattern&CoilMask) << uint32(c.basePin)
	diff := (rp.SIO.GPIO_OUT.Get() ^ want) & c.mask
	rp.SIO.GPIO_OUT_XOR.Set(diff)
}

// GetName returns the backend name
func (c *GPIOCoils) GetName() string {
	return "GPIO"
}
