package core

// CoilDriver is the hardware abstraction for the four coil outputs.
// Platform-specific implementations drive GPIO, PIO, or a simulation.
type CoilDriver interface {
	// Configure makes the four coil lines outputs, all de-energized
	Configure() error

	// SetCoils energizes the coils selected by the low nibble of pattern.
	// Called once per half-step, so it must be fast and must not fail.
	SetCoils(pattern uint8)

	// GetName returns the backend implementation name
	GetName() string
}

// Waiter holds the current coil pattern for a number of 10us ticks.
// Wait(0) returns immediately.
type Waiter interface {
	Wait(ticks uint16)
}

// WaiterFunc adapts a plain function to the Waiter interface
type WaiterFunc func(ticks uint16)

// Wait calls f(ticks)
func (f WaiterFunc) Wait(ticks uint16) {
	f(ticks)
}

// TickMicros is the duration of one delay tick in microseconds
const TickMicros = 10
