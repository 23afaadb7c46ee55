//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// criticalSection excludes the receiver goroutine on regular Go.
// There are no interrupts to mask on a host, so a mutex stands in.
type criticalSection struct {
	mu sync.Mutex
}

// disable enters the critical section
func (c *criticalSection) disable() State {
	c.mu.Lock()
	return 0
}

// restore leaves the critical section
func (c *criticalSection) restore(state State) {
	c.mu.Unlock()
}
