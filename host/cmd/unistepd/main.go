package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"unistep/core"
	"unistep/host/config"
)

var (
	configPath = flag.String("config", "", "YAML configuration file")
	transport  = flag.String("transport", "", "Command link: serial, tcp or stdin (overrides config)")
	device     = flag.String("device", "", "Serial device path (overrides config)")
	listen     = flag.String("listen", "", "TCP listen address (overrides config)")
	debug      = flag.Bool("debug", false, "Enable debug output")
	trace      = flag.Bool("trace", false, "Log every coil write")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	applyFlags(cfg)
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	// Debug output goes through the standard logger
	core.SetDebugWriter(func(s string) { log.Print(s) })
	core.SetDebugEnabled(cfg.Log.Debug || cfg.Log.TraceCoils)
	core.InitAsyncDebug()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := run(ctx, cfg, nil)
	rs := st.Receiver
	log.Printf("unistepd: position %d, %d moves, %d coil writes", st.Position, st.Moves, st.Writes)
	log.Printf("unistepd: %d lines, %d applied, %d ignored, %d bytes dropped", rs.Lines, rs.Applied, rs.Ignored, rs.Dropped)
	core.DumpEvents()
	if err != nil {
		log.Fatalf("unistepd: %v", err)
	}
}

// applyFlags lets command-line flags override the loaded configuration
func applyFlags(cfg *config.Config) {
	if *transport != "" {
		cfg.Link.Transport = *transport
	}
	if *device != "" {
		cfg.Serial.Device = *device
	}
	if *listen != "" {
		cfg.Link.Listen = *listen
	}
	if *debug {
		cfg.Log.Debug = true
	}
	if *trace {
		cfg.Log.TraceCoils = true
	}
}
