package core

import "sync"

// MockCoilDriver records every pattern written to it
type MockCoilDriver struct {
	mu         sync.Mutex
	configured bool
	patterns   []uint8
}

func NewMockCoilDriver() *MockCoilDriver {
	return &MockCoilDriver{}
}

func (m *MockCoilDriver) Configure() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configured = true
	return nil
}

func (m *MockCoilDriver) SetCoils(pattern uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = append(m.patterns, pattern)
}

func (m *MockCoilDriver) GetName() string {
	return "mock"
}

func (m *MockCoilDriver) Patterns() []uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]uint8, len(m.patterns))
	copy(out, m.patterns)
	return out
}

func (m *MockCoilDriver) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = nil
}

// countingWaiter counts wait calls and ticks instead of sleeping
type countingWaiter struct {
	mu    sync.Mutex
	calls int
	ticks uint64
}

func (w *countingWaiter) Wait(ticks uint16) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	w.ticks += uint64(ticks)
}

func (w *countingWaiter) totals() (int, uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls, w.ticks
}

// newTestRig wires a state, receiver, sequencer and controller around mocks
func newTestRig() (*MotionState, *Receiver, *Controller, *MockCoilDriver, *countingWaiter) {
	state := NewMotionState()
	coils := NewMockCoilDriver()
	waiter := &countingWaiter{}
	seq := NewSequencer(coils, waiter)
	return state, NewReceiver(state), NewController(state, seq, 0), coils, waiter
}

func feedString(r *Receiver, s string) {
	for i := 0; i < len(s); i++ {
		r.Feed(s[i])
	}
}
