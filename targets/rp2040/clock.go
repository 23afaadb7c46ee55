//go:build rp2040

package main

import (
	"runtime/volatile"
	"time"
	"unsafe"

	"unistep/core"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// GetHardwareTime reads the low 32 bits of the 1MHz hardware timer
func GetHardwareTime() uint32 {
	return timerRAWL.Get()
}

// timerWaiter holds each coil pattern against the hardware timer.
// It sleeps in tick slices so the UART reader keeps running.
type timerWaiter struct{}

func (timerWaiter) Wait(ticks uint16) {
	if ticks == 0 {
		return
	}
	start := GetHardwareTime()
	span := uint32(ticks) * core.TickMicros
	for GetHardwareTime()-start < span {
		time.Sleep(core.TickMicros * time.Microsecond)
	}
}
