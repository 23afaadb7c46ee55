// Package sim provides host-side stand-ins for the coil outputs and the
// delay primitive, so the motion core can run without hardware.
package sim

import (
	"sync"
	"sync/atomic"
	"time"

	"unistep/core"
)

// Coils is a virtual four-coil output. It remembers the energized
// pattern, counts writes and can trace every write to the debug writer.
type Coils struct {
	trace bool

	mu         sync.Mutex
	configured bool
	pattern    uint8

	writes atomic.Uint64
}

// NewCoils creates a virtual coil output
func NewCoils(trace bool) *Coils {
	return &Coils{trace: trace}
}

// Configure de-energizes all coils
func (c *Coils) Configure() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configured = true
	c.pattern = 0
	core.DebugPrintln("[SIM] coils configured")
	return nil
}

// SetCoils latches the low nibble of pattern
func (c *Coils) SetCoils(pattern uint8) {
	c.mu.Lock()
	c.pattern = pattern & 0x0f
	c.mu.Unlock()

	c.writes.Add(1)
	if c.trace {
		core.DebugPrintln("[COIL] " + core.PatternString(pattern))
	}
}

// GetName returns the backend name
func (c *Coils) GetName() string {
	return "sim"
}

// Pattern returns the currently energized coils
func (c *Coils) Pattern() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pattern
}

// Configured reports whether Configure has run
func (c *Coils) Configured() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.configured
}

// Writes returns the number of SetCoils calls
func (c *Coils) Writes() uint64 {
	return c.writes.Load()
}

// SleepWaiter holds each pattern by sleeping ticks*Tick
type SleepWaiter struct {
	Tick time.Duration
}

// Wait sleeps for the given number of ticks
func (w SleepWaiter) Wait(ticks uint16) {
	if ticks == 0 {
		return
	}
	time.Sleep(time.Duration(ticks) * w.Tick)
}

// NullWaiter returns immediately
type NullWaiter struct{}

func (NullWaiter) Wait(uint16) {}

// NewWaiter returns a waiter for the given tick length, or one that never
// waits when dryRun is set
func NewWaiter(tick time.Duration, dryRun bool) core.Waiter {
	if dryRun {
		return NullWaiter{}
	}
	return SleepWaiter{Tick: tick}
}
