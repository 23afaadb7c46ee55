package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"unistep/core"
	"unistep/host/serial"
)

var (
	device = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud   = flag.Int("baud", serial.DefaultBaud, "Baud rate")
	addr   = flag.String("addr", "", "Send to a unistepd TCP link instead of a serial port")
)

// errQuit ends the console loop
var errQuit = errors.New("quit")

func main() {
	flag.Parse()

	out, err := connect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	// One-shot mode: unistepctl pos 200
	if flag.NArg() > 0 {
		if err := send(out, flag.Args()); err != nil && err != errQuit {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	if err := console(os.Stdin, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

// connect opens the TCP link or the serial port
func connect() (io.WriteCloser, error) {
	if *addr != "" {
		conn, err := net.Dial("tcp", *addr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", *addr, err)
		}
		return conn, nil
	}

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	return serial.Open(cfg)
}

// console reads command lines until EOF or quit
func console(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		args, err := shlex.Split(scanner.Text())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch err := send(out, args); {
		case err == errQuit:
			fmt.Println("Goodbye!")
			return nil
		case err != nil:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return scanner.Err()
}

// send runs one console command
func send(out io.Writer, args []string) error {
	if args[0] == "help" || args[0] == "?" {
		printHelp()
		return nil
	}

	line, err := buildLine(args)
	if err != nil {
		return err
	}
	if _, err := out.Write(line); err != nil {
		return fmt.Errorf("failed to send %q: %w", strings.TrimSpace(string(line)), err)
	}
	return nil
}

// buildLine translates console arguments into a wire command line
func buildLine(args []string) ([]byte, error) {
	switch args[0] {
	case "quit", "exit", "q":
		return nil, errQuit

	case "speed", "s":
		if len(args) != 2 {
			return nil, fmt.Errorf("usage: speed <ticks>")
		}
		v, err := strconv.ParseUint(args[1], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid delay %q: %w", args[1], err)
		}
		return core.SpeedLine(uint16(v)), nil

	case "pos", "p":
		if len(args) != 2 {
			return nil, fmt.Errorf("usage: pos <position>")
		}
		v, err := strconv.ParseInt(args[1], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid position %q: %w", args[1], err)
		}
		return core.PositionLine(int16(v)), nil

	case "raw":
		if len(args) < 2 {
			return nil, fmt.Errorf("usage: raw <text>")
		}
		text := strings.Join(args[1:], " ")
		if strings.ContainsRune(text, core.LineTerminator) {
			return nil, fmt.Errorf("raw text cannot contain a newline")
		}
		return []byte(text + string(rune(core.LineTerminator))), nil
	}

	return nil, fmt.Errorf("unknown command: %s (type 'help' for available commands)", args[0])
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  speed <ticks>  - Set delay between coil writes (10us ticks)")
	fmt.Println("  pos <n>        - Move to absolute position n (cycles)")
	fmt.Println("  raw <text>     - Send text as one line, unchanged")
	fmt.Println("  quit/exit/q    - Exit the program")
	fmt.Println()
}
