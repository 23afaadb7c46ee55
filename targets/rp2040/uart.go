//go:build rp2040

package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers"

	"unistep/core"
)

// Command link serial settings, 8N1
const (
	commandBaud = 4800
	commandTX   = machine.UART0_TX_PIN
	commandRX   = machine.UART0_RX_PIN
)

// InitCommandUART configures UART0 for the command link
func InitCommandUART() (drivers.UART, error) {
	uart := machine.UART0
	err := uart.Configure(machine.UARTConfig{
		BaudRate: commandBaud,
		TX:       commandTX,
		RX:       commandRX,
	})
	if err != nil {
		return nil, err
	}
	return uart, nil
}

// uartReaderLoop runs in a goroutine and feeds every received byte to the
// receiver. It stands in for the receive interrupt.
func uartReaderLoop(uart drivers.UART, rx *core.Receiver) {
	// Recover from panics to prevent a firmware crash
	defer func() {
		if r := recover(); r != nil {
			time.Sleep(100 * time.Millisecond)
			go uartReaderLoop(uart, rx)
		}
	}()

	var buf [16]byte
	for {
		if uart.Buffered() > 0 {
			n, err := uart.Read(buf[:])
			if err != nil {
				time.Sleep(1 * time.Millisecond)
				continue
			}
			for _, b := range buf[:n] {
				rx.Feed(b)
			}
			continue
		}
		// Yield to avoid a busy loop
		time.Sleep(100 * time.Microsecond)
	}
}
