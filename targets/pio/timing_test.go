package pio

import "testing"

func TestPatternLatencyWithinTick(t *testing.T) {
	latency := patternLatencyNs(coilClockDiv)

	// A one-tick hold must not be stretched by the output path
	if latency*10 > tickNs {
		t.Errorf("Expected latency under a tenth of a tick (%dns), got %dns", tickNs/10, latency)
	}
}

func TestPatternLatencyScalesWithDivider(t *testing.T) {
	if got := patternLatencyNs(1); got != 16 {
		t.Errorf("Expected 16ns at full speed, got %d", got)
	}
	if got := patternLatencyNs(1000); got != 16000 {
		t.Errorf("Expected 16000ns at divider 1000, got %d", got)
	}
}
