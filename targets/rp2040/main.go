//go:build rp2040

package main

import (
	"context"
	"machine"
	"time"

	"unistep/core"
	"unistep/targets/pio"
)

// Coil pins are GPIO2..GPIO5, bit 0 on GPIO2
const coilBasePin = machine.GPIO2

// Idle pause between controller iterations with nothing to do
const idleInterval = 1 * time.Millisecond

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	mode := GetMode()

	// Debug output goes to the USB console
	core.SetDebugWriter(func(s string) { println(s) })
	core.SetDebugEnabled(mode.Debug)
	core.InitAsyncDebug()

	coils := pio.NewCoils(mode.Backend, coilBasePin)
	if err := coils.Configure(); err != nil {
		blinkError()
	}

	uart, err := InitCommandUART()
	if err != nil {
		blinkError()
	}

	state := core.NewMotionState()
	rx := core.NewReceiver(state)
	seq := core.NewSequencer(coils, timerWaiter{})
	ctrl := core.NewController(state, seq, idleInterval)

	core.DebugPrintln("[BOOT] unistep " + coils.GetName() + " coils")

	go uartReaderLoop(uart, rx)

	ctrl.Run(context.Background())
}

// blinkError flashes the LED rapidly forever
func blinkError() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}
}
