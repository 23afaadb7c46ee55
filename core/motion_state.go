package core

// Snapshot is a consistent copy of the shared motion values
type Snapshot struct {
	StepDelay      uint16 // Delay between coil writes, 10us ticks
	TargetPosition uint16 // Signed target position, stored as its bit pattern
}

// Target returns the target position as the signed value the host sent
func (s Snapshot) Target() int16 {
	return int16(s.TargetPosition)
}

// MotionState holds the values written by the command receiver and read
// by the motion controller. Both fields are only touched inside the
// critical section, so a Snapshot never mixes an old delay with a new
// position or the other way round.
type MotionState struct {
	cs        criticalSection
	stepDelay uint16
	position  uint16
}

// NewMotionState creates a zeroed motion state
func NewMotionState() *MotionState {
	return &MotionState{}
}

// SetStepDelay overwrites the step delay
func (m *MotionState) SetStepDelay(delay uint16) {
	state := m.cs.disable()
	defer m.cs.restore(state)

	m.stepDelay = delay
}

// SetTargetPosition overwrites the target position
func (m *MotionState) SetTargetPosition(position uint16) {
	state := m.cs.disable()
	defer m.cs.restore(state)

	m.position = position
}

// Snapshot reads both values as of one instant
func (m *MotionState) Snapshot() Snapshot {
	state := m.cs.disable()
	defer m.cs.restore(state)

	return Snapshot{
		StepDelay:      m.stepDelay,
		TargetPosition: m.position,
	}
}
