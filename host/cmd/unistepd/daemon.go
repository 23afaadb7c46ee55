package main

import (
	"context"
	"errors"
	"log"
	"net"

	"unistep/core"
	"unistep/host/config"
	"unistep/host/link"
	"unistep/host/sim"
)

// Stats summarizes a daemon run
type Stats struct {
	Position int16
	Moves    uint32
	Writes   uint32
	Receiver core.ReceiverStats
}

// run wires the motion core to a command link and blocks until the link
// ends or ctx is cancelled. When src is nil the link comes from cfg.
//
// A link that ends cleanly (EOF) still gets every received command
// executed before run returns. Cancellation stops after the rotation in
// progress.
func run(ctx context.Context, cfg *config.Config, src link.Source) (Stats, error) {
	state := core.NewMotionState()
	rx := core.NewReceiver(state)

	coils := sim.NewCoils(cfg.Log.TraceCoils)
	if err := coils.Configure(); err != nil {
		return Stats{}, err
	}
	seq := core.NewSequencer(coils, sim.NewWaiter(cfg.Tick(), cfg.Motion.DryRun))
	ctrl := core.NewController(state, seq, cfg.Idle())

	linkCtx, stopLink := context.WithCancel(ctx)
	defer stopLink()

	linkErr := make(chan error, 1)
	go func() {
		if src != nil {
			linkErr <- link.Pump(linkCtx, rx, src)
			return
		}
		linkErr <- runLink(linkCtx, cfg, rx)
	}()

	log.Printf("unistepd: %s link, %s coils, tick %s", cfg.Link.Transport, coils.GetName(), cfg.Tick())

	ctrlCtx, stopCtrl := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		ctrl.Run(ctrlCtx)
		close(done)
	}()

	var err error
	drain := false
	select {
	case <-ctx.Done():
	case err = <-linkErr:
		switch {
		case err == nil:
			log.Printf("link closed")
			drain = true
		case errors.Is(err, context.Canceled):
			err = nil
		default:
			log.Printf("link stopped: %v", err)
		}
	}
	stopLink()
	stopCtrl()
	<-done

	// The receiver has stopped, so the state can only hold what was
	// already received
	if drain {
		ctrl.Drain()
	}

	return Stats{
		Position: ctrl.Position(),
		Moves:    ctrl.Moves(),
		Writes:   seq.Writes(),
		Receiver: rx.Stats(),
	}, err
}

// runLink feeds the configured transport into the receiver
func runLink(ctx context.Context, cfg *config.Config, rx *core.Receiver) error {
	switch cfg.Link.Transport {
	case config.TransportTCP:
		return link.ServeTCP(ctx, cfg.Link.Listen, rx, func(a net.Addr) {
			log.Printf("link: listening on %s", a)
		})
	case config.TransportStdin:
		return link.Pump(ctx, rx, link.Stdin())
	default:
		src, err := link.OpenSerial(cfg.SerialPort())
		if err != nil {
			return err
		}
		log.Printf("link: reading commands from %s at %d baud", src.Name(), cfg.Serial.Baud)
		return link.Pump(ctx, rx, src)
	}
}
