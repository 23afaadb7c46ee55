package core

import "sync/atomic"

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures a motion or command event for post-mortem analysis
type Event struct {
	Type   uint8  // Event type code
	Seq    uint32 // Monotonic sequence number
	Value1 int32  // Context-dependent value
	Value2 uint32 // Context-dependent value
}

// Event type codes
const (
	EvtSpeed     = 1 // Step delay set; v1=delay
	EvtPosition  = 2 // Target set; v1=position
	EvtIgnored   = 3 // Line with unknown tag; v1=first byte
	EvtOverflow  = 4 // Line exceeded buffer; v2=bytes dropped
	EvtMoveStart = 5 // Rotation started; v1=direction, v2=cycles
	EvtMoveDone  = 6 // Rotation finished; v1=new position, v2=coil writes
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {}

	// debugEnabled controls whether debug output is active
	debugEnabled atomic.Bool

	// Event ring, written from both the receiver and the motion loop
	eventRing     [EventRingSize]Event
	eventRingHead uint8
	eventSeq      uint32
	eventLock     criticalSection

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled.Store(enabled)
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled.Load()
}

// InitAsyncDebug starts the async debug output goroutine.
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16)
	go debugOutputWorker(debugChan)
}

func debugOutputWorker(ch chan string) {
	for msg := range ch {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer.
// Blocks for as long as the writer does; the receiver must use DebugAsync.
func DebugPrintln(msg string) {
	if IsDebugEnabled() && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output.
// Never blocks: the message is dropped when the queue is full.
func DebugAsync(msg string) {
	if !IsDebugEnabled() || debugChan == nil {
		return
	}
	select {
	case debugChan <- msg:
	default:
	}
}

// RecordEvent appends an event to the ring buffer
func RecordEvent(eventType uint8, value1 int32, value2 uint32) {
	state := eventLock.disable()
	defer eventLock.restore(state)

	eventSeq++
	idx := eventRingHead
	eventRing[idx] = Event{
		Type:   eventType,
		Seq:    eventSeq,
		Value1: value1,
		Value2: value2,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// Events returns the recorded events, oldest first
func Events() []Event {
	state := eventLock.disable()
	defer eventLock.restore(state)

	out := make([]Event, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.Type == 0 {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// EventName returns a printable name for an event type
func EventName(eventType uint8) string {
	switch eventType {
	case EvtSpeed:
		return "SPEED"
	case EvtPosition:
		return "POSITION"
	case EvtIgnored:
		return "IGNORED"
	case EvtOverflow:
		return "OVERFLOW"
	case EvtMoveStart:
		return "MOVE_START"
	case EvtMoveDone:
		return "MOVE_DONE"
	default:
		return "UNKNOWN"
	}
}

// DumpEvents writes the ring to the debug writer regardless of the
// debug flag; call it on shutdown
func DumpEvents() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENTS] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln("[EVENTS] #" + utoa(evt.Seq) + " " + EventName(evt.Type) +
			" v1=" + itoa(int(evt.Value1)) +
			" v2=" + utoa(evt.Value2))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

// ClearEvents clears the ring buffer
func ClearEvents() {
	state := eventLock.disable()
	defer eventLock.restore(state)

	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
	eventSeq = 0
}
