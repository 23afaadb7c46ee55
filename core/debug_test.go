package core

import (
	"strings"
	"sync"
	"testing"
)

func TestEventRingWraps(t *testing.T) {
	ClearEvents()
	defer ClearEvents()

	for i := 0; i < EventRingSize+5; i++ {
		RecordEvent(EvtPosition, int32(i), 0)
	}

	events := Events()
	if len(events) != EventRingSize {
		t.Fatalf("Expected %d events, got %d", EventRingSize, len(events))
	}
	// Oldest five were overwritten
	if events[0].Value1 != 5 {
		t.Errorf("Expected oldest event value 5, got %d", events[0].Value1)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Seq != events[i-1].Seq+1 {
			t.Errorf("Events out of order at %d: %d after %d", i, events[i].Seq, events[i-1].Seq)
		}
	}
}

func TestDumpEvents(t *testing.T) {
	ClearEvents()
	defer ClearEvents()

	var mu sync.Mutex
	var lines []string
	SetDebugWriter(func(s string) {
		mu.Lock()
		lines = append(lines, s)
		mu.Unlock()
	})
	defer SetDebugWriter(func(string) {})

	RecordEvent(EvtMoveStart, int32(DirCCW), 3)
	RecordEvent(EvtMoveDone, -3, 24)
	DumpEvents()

	mu.Lock()
	defer mu.Unlock()
	if len(lines) != 4 {
		t.Fatalf("Expected 4 dump lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[1], "MOVE_START v1=1 v2=3") {
		t.Errorf("Unexpected start line: %s", lines[1])
	}
	if !strings.Contains(lines[2], "MOVE_DONE v1=-3 v2=24") {
		t.Errorf("Unexpected done line: %s", lines[2])
	}
}

func TestDebugPrintlnRespectsFlag(t *testing.T) {
	var got []string
	SetDebugWriter(func(s string) { got = append(got, s) })
	defer SetDebugWriter(func(string) {})

	SetDebugEnabled(false)
	DebugPrintln("hidden")
	SetDebugEnabled(true)
	DebugPrintln("shown")
	SetDebugEnabled(false)

	if len(got) != 1 || got[0] != "shown" {
		t.Errorf("Expected only 'shown', got %v", got)
	}
}

func TestDebugAsyncNeverBlocks(t *testing.T) {
	saved := debugChan
	defer func() { debugChan = saved }()

	// A queue with no reader: DebugAsync must drop instead of blocking
	debugChan = make(chan string, 1)
	SetDebugEnabled(true)
	defer SetDebugEnabled(false)

	for i := 0; i < 10; i++ {
		DebugAsync("msg")
	}
	if len(debugChan) != 1 {
		t.Errorf("Expected 1 queued message, got %d", len(debugChan))
	}
}

func TestStringHelpers(t *testing.T) {
	if itoa(-32768) != "-32768" || itoa(0) != "0" || utoa(4294967295) != "4294967295" {
		t.Error("itoa/utoa produced wrong output")
	}
	if PatternString(0x6) != "0110" || PatternString(0x9) != "1001" {
		t.Errorf("Unexpected nibble output %s %s", PatternString(0x6), PatternString(0x9))
	}
}
