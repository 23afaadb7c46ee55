//go:build rp2040

package main

import "unistep/targets/pio"

// ModeConfig determines how the board drives the coils
type ModeConfig struct {
	// Coil output backend: PIO latches each pattern in hardware,
	// GPIO writes the SIO registers directly
	Backend pio.Backend

	// Prints every parsed command and move on the debug console
	Debug bool
}

// GetMode returns the current mode configuration
// This can be modified at compile time
func GetMode() ModeConfig {
	return ModeConfig{
		Backend: pio.BackendPIO,
		Debug:   false,
	}
}
