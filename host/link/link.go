// Package link connects byte streams to the command receiver. The
// goroutine that runs Pump plays the part of the UART interrupt: it is
// the only caller of Receiver.Feed.
package link

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"

	"unistep/core"
	"unistep/host/serial"
)

// Source is a byte stream that carries command lines
type Source interface {
	io.ReadCloser
	Name() string
}

type namedSource struct {
	io.ReadCloser
	name string
	once sync.Once
	err  error
}

func (s *namedSource) Name() string {
	return s.name
}

// Close closes the stream once; later calls return the first result
func (s *namedSource) Close() error {
	s.once.Do(func() { s.err = s.ReadCloser.Close() })
	return s.err
}

// NewSource names an arbitrary stream
func NewSource(name string, rc io.ReadCloser) Source {
	return &namedSource{ReadCloser: rc, name: name}
}

// openPort opens a serial port; replaced in tests
var openPort = serial.Open

// OpenSerial opens the serial command port and discards whatever the
// driver buffered before the daemon started
func OpenSerial(cfg *serial.Config) (Source, error) {
	port, err := openPort(cfg)
	if err != nil {
		return nil, err
	}
	if err := port.Flush(); err != nil {
		port.Close()
		return nil, fmt.Errorf("flush %s: %w", cfg.Device, err)
	}
	return NewSource(cfg.Device, port), nil
}

// Stdin reads commands from standard input. Closing it leaves the
// process's stdin open.
func Stdin() Source {
	return NewSource("stdin", io.NopCloser(os.Stdin))
}

// Pump feeds src into rx until the stream ends or ctx is cancelled.
// src is closed on return; cancelling ctx closes it to unblock a read.
func Pump(ctx context.Context, rx *core.Receiver, src Source) error {
	stop := context.AfterFunc(ctx, func() { src.Close() })
	defer stop()
	defer src.Close()

	err := rx.Run(ctx, src)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", src.Name(), err)
	}
	return nil
}

// ServeTCP accepts command connections on addr, one at a time, so the
// receiver only ever has a single producer. ready, if not nil, is called
// with the bound address once the listener is up.
func ServeTCP(ctx context.Context, addr string, rx *core.Receiver, ready func(net.Addr)) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer ln.Close()

	if ready != nil {
		ready(ln.Addr())
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		remote := conn.RemoteAddr().String()
		log.Printf("link: client %s connected", remote)
		err = Pump(ctx, rx, NewSource(remote, conn))
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil
		case err != nil:
			log.Printf("link: client %s: %v", remote, err)
		default:
			log.Printf("link: client %s disconnected", remote)
		}
	}
}
