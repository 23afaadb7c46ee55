//go:build tinygo

package core

import "runtime/interrupt"

// criticalSection masks interrupts, so the UART handler cannot run inside it
type criticalSection struct{}

// disable disables interrupts and returns the previous state
func (c *criticalSection) disable() interrupt.State {
	return interrupt.Disable()
}

// restore restores the interrupt state
func (c *criticalSection) restore(state interrupt.State) {
	interrupt.Restore(state)
}
